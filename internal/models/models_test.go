package models

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TestLocation_String — путь, query и якорь собираются в относительный URL.
func TestLocation_String(t *testing.T) {
	t.Parallel()

	l := Location{Path: "/node/7", Fragment: "new"}
	require.Equal(t, "/node/7#new", l.String())

	l = l.WithPage(2)
	require.Equal(t, "/node/7?page=2#new", l.String())
}

// TestLocation_WithPage_KeepsSourceQuery — исходный query не меняется.
func TestLocation_WithPage_KeepsSourceQuery(t *testing.T) {
	t.Parallel()

	orig := Location{Path: "/node/1", Query: url.Values{"sort": {"asc"}, "page": {"9"}}}
	got := orig.WithPage(0)

	require.Equal(t, "9", orig.Query.Get("page"))
	require.Equal(t, "0", got.Query.Get("page"))
	require.Equal(t, "asc", got.Query.Get("sort"))
}

func TestActor_HasAndAnonymous(t *testing.T) {
	t.Parallel()

	anon := Anonymous(PermAccessContent)
	require.True(t, anon.IsAnonymous())
	require.True(t, anon.Has(PermAccessContent))
	require.False(t, anon.Has(PermPostComments))

	user := Actor{ID: uuid.New(), Permissions: []Permission{PermPostComments}}
	require.False(t, user.IsAnonymous())
	require.True(t, user.Has(PermPostComments))
}

// TestEntity_Allows — правило доступа view/update.
func TestEntity_Allows(t *testing.T) {
	t.Parallel()

	reader := Actor{ID: uuid.New(), Permissions: []Permission{PermAccessContent}}
	admin := Actor{ID: uuid.New(), Permissions: []Permission{PermBypassAccess}}

	published := Entity{Type: "node", ID: "1", Published: true}
	draft := Entity{Type: "node", ID: "2", Published: false}

	require.True(t, published.Allows(ActionView, reader))
	require.False(t, draft.Allows(ActionView, reader))
	require.False(t, published.Allows(ActionUpdate, reader))
	require.True(t, draft.Allows(ActionView, admin))
	require.True(t, draft.Allows(ActionUpdate, admin))
	require.False(t, published.Allows(ActionView, Actor{}))
}

func TestEntity_FieldNames_Sorted(t *testing.T) {
	t.Parallel()

	e := Entity{Fields: map[string]CommentField{
		"comment_forum": {Name: "comment_forum"},
		"comment":       {Name: "comment"},
	}}

	require.Equal(t, []string{"comment", "comment_forum"}, e.FieldNames())

	f, ok := e.Field("comment")
	require.True(t, ok)
	require.Equal(t, "comment", f.Name)

	_, ok = e.Field("missing")
	require.False(t, ok)
}
