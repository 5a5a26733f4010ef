package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fasthttp/staterouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

const testRoutes = `[
	{"name": "home", "pattern": "/", "body": "home"},
	{"name": "post", "pattern": "/post"},
	{"name": "post.show", "pattern": "/{id:[0-9]+}?{tab}"},
	{"name": "post.edit", "pattern": "/{id}/edit"},
	{"name": "old", "pattern": "/old/{id}", "redirectTo": "post.show"},
	{"name": "files", "pattern": "/files[/{path}]*"}
]`

func writeRoutes(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "routes.json")
	require.NoError(t, os.WriteFile(path, []byte(testRoutes), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd(&out)
	cmd.SetArgs(append([]string{
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--routes", writeRoutes(t),
	}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestMatchCmd(t *testing.T) {
	out, err := run(t, "match", "/post/5?tab=comments")
	require.NoError(t, err)
	assert.Equal(t, "post.show\n  id=5\n  tab=comments\n", out)

	out, err = run(t, "match", "/old/7")
	require.NoError(t, err)
	assert.Equal(t, "post.show\n  id=7\n", out)

	_, err = run(t, "match", "/nope/nope")
	assert.True(t, errors.Is(err, staterouter.ErrNotFound))
}

func TestMatchCmdBasePath(t *testing.T) {
	out, err := run(t, "--base-path", "/app", "match", "/app/post")
	require.NoError(t, err)
	assert.Equal(t, "post\n", out)
}

func TestLinkCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: []string{"link", "home"}, want: "/\n"},
		{args: []string{"link", "post.show", "id=5", "tab=comments"}, want: "/post/5?tab=comments\n"},
		{args: []string{"link", "old", "id=5"}, want: "/post/5\n"},
		{args: []string{"link", "files", "path=a", "path=b"}, want: "/files/a/b\n"},
		{args: []string{"--base-path", "app", "link", "post"}, want: "/app/post\n"},
	}

	for _, test := range tests {
		out, err := run(t, test.args...)
		require.NoError(t, err, test.args)

		assert.Equal(t, test.want, out, test.args)
	}

	t.Setenv("STATEROUTER_HOST", "example.com")
	t.Setenv("STATEROUTER_SCHEME", "https")

	out, err := run(t, "link", "--absolute", "post.show", "id=5")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/post/5\n", out)

	_, err = run(t, "link", "post.show")
	assert.Error(t, err)

	_, err = run(t, "link", "post.show", "id")
	assert.EqualError(t, err, "invalid param 'id', expected key=value")
}

func TestRoutesCmd(t *testing.T) {
	out, err := run(t, "routes")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"home\t/",
		"post\t/post",
		"post.show\t/post/{id:[0-9]+}?tab",
		"post.edit\t/post/{id}/edit",
		"old\t/old/{id}\t-> post.show",
		"files\t/files[/{path}]*",
	}, "\n")+"\n", out)
}

func TestDiffCmd(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want string
	}{
		{from: "/post/5", to: "/post/6/edit", want: "exit\tpost.show\nenter\tpost.edit\njunction\tpost\n"},
		{from: "/post/5", to: "/post/5?tab=x", want: "exit\tpost.show\nenter\tpost.show\njunction\tpost\n"},
		{from: "/post/5", to: "/", want: "exit\tpost.show\nexit\tpost\nenter\thome\njunction\t(root)\n"},
	}

	for _, test := range tests {
		out, err := run(t, "diff", test.from, test.to)
		require.NoError(t, err, test.to)

		assert.Equal(t, test.want, out, test.to)
	}

	_, err := run(t, "diff", "/nope/nope", "/post")
	assert.True(t, errors.Is(err, staterouter.ErrNotFound))
}

func TestMissingRoutesFile(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})
	cmd.SetArgs([]string{"--routes", filepath.Join(t.TempDir(), "nope.json"), "routes"})

	err := cmd.Execute()
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadRoutes(t *testing.T) {
	entries, err := readRoutes(strings.NewReader(testRoutes))
	require.NoError(t, err)
	require.Len(t, entries, 6)
	assert.Equal(t, "post.show", entries[4].RedirectTo)

	_, err = readRoutes(strings.NewReader(`[{"name": "a", "handler": "x"}]`))
	assert.Error(t, err)

	r := staterouter.New()
	err = addRoutes(r, []routeEntry{{Name: "a.b", Pattern: "/b"}})
	assert.Error(t, err)

	r = staterouter.New()
	require.NoError(t, addRoutes(r, []routeEntry{{Name: "list", Pattern: "/list", Defaults: map[string]any{"page": "1"}}}))

	route, err := r.Fetch("list")
	require.NoError(t, err)
	assert.Equal(t, "1", route.Params()["page"])
}

func TestRouteHandler(t *testing.T) {
	r := staterouter.New()
	entries, err := readRoutes(strings.NewReader(testRoutes))
	require.NoError(t, err)
	require.NoError(t, addRoutes(r, entries))

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/post/5")
	r.Handler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))
	assert.JSONEq(t, `{"route": "post.show", "params": {"id": "5"}}`, string(ctx.Response.Body()))

	ctx = new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/")
	r.Handler(ctx)

	assert.Equal(t, "home", string(ctx.Response.Body()))
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	r := staterouter.New()
	r.Metrics = staterouter.NewMetrics(staterouter.WithRegistry(reg))
	r.MustAdd("home", "/", staterouter.Content{Handler: func(ctx *fasthttp.RequestCtx) {
		ctx.SetBodyString("home")
	}})

	handler := withMetrics(r.Handler, reg)

	ctx := new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI("/")
	handler(ctx)
	assert.Equal(t, "home", string(ctx.Response.Body()))

	ctx = new(fasthttp.RequestCtx)
	ctx.Request.SetRequestURI(metricsPath)
	handler(ctx)

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `staterouter_matches_total{route="home"} 1`)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "routes.json", cfg.Routes)
	assert.Equal(t, "http", cfg.Scheme)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STATEROUTER_LOG_FORMAT=json\n"), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("STATEROUTER_LOG_FORMAT")
	})

	cfg, err = loadConfig(envFile)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&Config{LogLevel: "debug", LogFormat: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger(&Config{LogLevel: "loud"}, &buf)
	assert.Error(t, err)

	_, err = newLogger(&Config{LogLevel: "info", LogFormat: "xml"}, &buf)
	assert.EqualError(t, err, "unknown log format 'xml'")
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"id=5", "path=a", "path=b", "path=c", "q=a=b"})
	require.NoError(t, err)

	assert.Equal(t, "5", params["id"])
	assert.Equal(t, []string{"a", "b", "c"}, params["path"])
	assert.Equal(t, "a=b", params["q"])

	_, err = parseParams([]string{"=x"})
	assert.Error(t, err)
}
