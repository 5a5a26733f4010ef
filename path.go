package staterouter

import (
	"regexp"
	"strings"
)

const indexFile = "index.html"

var absoluteURL = regexp.MustCompile(`^(.*:)?//`)

// cleanBasePath returns the base path with a single leading slash and no
// trailing one, or an empty string.
func cleanBasePath(basePath string) string {
	basePath = strings.Trim(basePath, "/")
	if basePath == "" {
		return ""
	}

	return "/" + basePath
}

// cleanLocation removes the base path and a trailing index.html from the
// path part of a location. The result always starts with a single '/'.
func cleanLocation(location, basePath string) string {
	path, query, hasQuery := strings.Cut(location, "?")
	path = "/" + strings.TrimLeft(path, "/")

	if basePath != "" && (path == basePath || strings.HasPrefix(path, basePath+"/")) {
		path = path[len(basePath):]
	}

	path = "/" + strings.TrimLeft(strings.TrimSuffix(path, indexFile), "/")

	if hasQuery {
		return path + "?" + query
	}

	return path
}

// pathOf returns a location without its query string.
func pathOf(location string) string {
	path, _, _ := strings.Cut(location, "?")

	return path
}
