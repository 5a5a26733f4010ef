package transition

import (
	"testing"

	"github.com/fasthttp/staterouter/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T) *tree.Route {
	t.Helper()

	root := tree.New()

	for _, route := range []struct{ name, pattern string }{
		{"a", "a"},
		{"a.b", "b"},
		{"a.c", "c"},
		{"user", "user/{id}?{tab}"},
		{"user.posts", "posts"},
		{"user.friends", "friends"},
	} {
		_, err := root.Add(route.name, route.pattern, nil)
		require.NoError(t, err)
	}

	return root
}

func fetch(t *testing.T, root *tree.Route, name string) *tree.Route {
	t.Helper()

	r, err := root.Fetch(name)
	require.NoError(t, err)

	return r
}

func TestTransitionSiblings(t *testing.T) {
	root := buildTree(t)
	a, b, c := fetch(t, root, "a"), fetch(t, root, "a.b"), fetch(t, root, "a.c")

	tr := New(b, c, nil, "")

	assert.Same(t, b, tr.From())
	assert.Same(t, c, tr.To())
	assert.NotNil(t, tr.Params())

	assert.Equal(t, []*tree.Route{b}, tr.Disabled(nil))
	assert.Equal(t, []*tree.Route{c}, tr.Enabled(nil))
	assert.Same(t, a, tr.Junction(nil))
}

func TestTransitionIdentical(t *testing.T) {
	root := buildTree(t)
	posts := fetch(t, root, "user.posts")
	params := tree.Params{"id": "1"}

	tr := New(posts, posts, params, "")

	assert.Empty(t, tr.Disabled(params))
	assert.Empty(t, tr.Enabled(params))
	assert.Nil(t, tr.Junction(params))
}

func TestTransitionFromNil(t *testing.T) {
	root := buildTree(t)
	user, posts := fetch(t, root, "user"), fetch(t, root, "user.posts")

	tr := New(nil, posts, tree.Params{"id": "1"}, "")

	assert.Nil(t, tr.From())
	assert.Empty(t, tr.Disabled(nil))
	assert.Equal(t, []*tree.Route{root, user, posts}, tr.Enabled(nil))
	assert.Nil(t, tr.Junction(nil))
}

func TestTransitionAncestorParamsChange(t *testing.T) {
	root := buildTree(t)
	user := fetch(t, root, "user")
	posts, friends := fetch(t, root, "user.posts"), fetch(t, root, "user.friends")

	tr := New(posts, friends, tree.Params{"id": "2"}, "")

	assert.Equal(t, []*tree.Route{posts, user}, tr.Disabled(tree.Params{"id": "1"}))
	assert.Equal(t, []*tree.Route{user, friends}, tr.Enabled(tree.Params{"id": "1"}))
	assert.Same(t, root, tr.Junction(tree.Params{"id": "1"}))

	assert.Equal(t, []*tree.Route{posts}, tr.Disabled(tree.Params{"id": "2"}))
	assert.Equal(t, []*tree.Route{friends}, tr.Enabled(tree.Params{"id": "2"}))
}

func TestTransitionQueryVariableChange(t *testing.T) {
	root := buildTree(t)
	user, posts := fetch(t, root, "user"), fetch(t, root, "user.posts")

	tr := New(posts, posts, tree.Params{"id": "1", "tab": "b"}, "")

	assert.Equal(t, []*tree.Route{posts, user}, tr.Disabled(tree.Params{"id": "1", "tab": "a"}))
	assert.Equal(t, []*tree.Route{user, posts}, tr.Enabled(tree.Params{"id": "1", "tab": "a"}))

	assert.Empty(t, tr.Enabled(tree.Params{"id": 1, "tab": "b"}))
}

func TestTransitionUngeneratableLink(t *testing.T) {
	root := buildTree(t)
	user, posts := fetch(t, root, "user"), fetch(t, root, "user.posts")

	tr := New(posts, posts, tree.Params{"id": "1"}, "admin")

	assert.Equal(t, "admin", tr.Scope())
	assert.Equal(t, []*tree.Route{posts, user}, tr.Disabled(nil))
	assert.Equal(t, []*tree.Route{user, posts}, tr.Enabled(nil))
}
