package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink(t *testing.T) {
	root := New()

	_, err := root.Add("list", "list?{page}", nil)
	require.NoError(t, err)
	item, err := root.Add("list.item", "/{id}?{sort}", nil)
	require.NoError(t, err)

	tests := []struct {
		params Params
		opts   *LinkOptions
		want   string
	}{
		{params: Params{"id": 5}, opts: nil, want: "/list/5"},
		{params: Params{"id": 5, "page": 2, "sort": "asc"}, opts: nil, want: "/list/5?page=2&sort=asc"},
		{params: Params{"id": 5}, opts: &LinkOptions{BasePath: "/app/"}, want: "/app/list/5"},
		{params: Params{"id": 5}, opts: &LinkOptions{BasePath: "app", Scope: "admin"}, want: "/app/admin/list/5"},
		{
			params: Params{"id": 5, "page": 2},
			opts:   &LinkOptions{Query: map[string]any{"page": 1, "q": "a b"}},
			want:   "/list/5?page=2&q=a+b",
		},
		{
			params: Params{"id": 5},
			opts:   &LinkOptions{Absolute: true, Host: "example.com"},
			want:   "http://example.com/list/5",
		},
		{
			params: Params{"id": 5},
			opts:   &LinkOptions{Absolute: true, Scheme: "https", Host: "example.com", BasePath: "app"},
			want:   "https://example.com/app/list/5",
		},
	}

	for _, test := range tests {
		link, err := item.Link(test.params, test.opts)
		require.NoError(t, err)

		assert.Equal(t, test.want, link)
	}

	_, err = item.Link(nil, nil)
	assert.Error(t, err)
}

func TestLinkRoot(t *testing.T) {
	root := New()

	link, err := root.Link(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/", link)

	link, err = root.Link(nil, &LinkOptions{Absolute: true, Host: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/", link)

	link, err = root.Link(nil, &LinkOptions{BasePath: "app"})
	require.NoError(t, err)
	assert.Equal(t, "/app", link)
}
