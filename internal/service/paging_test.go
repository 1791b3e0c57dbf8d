package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPageOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		ordinal, perPage int64
		want             int64
	}{
		{"first", 0, 10, 0},
		{"last on first page", 9, 10, 0},
		{"first on second page", 10, 10, 1},
		{"ordinal 19 of 25", 19, 10, 1},
		{"ordinal 20 of 25", 20, 10, 2},
		{"one per page", 7, 1, 7},
		{"zero per page", 5, 0, 0},
		{"negative ordinal", -1, 10, 0},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, PageOf(tt.ordinal, tt.perPage), tt.name)
	}
}

// Для любого p > 0 и k >= 0 страница равна floor(k/p), на границах k = p-1 и k = p.
func TestPageOf_Floor(t *testing.T) {
	t.Parallel()

	for p := int64(1); p <= 12; p++ {
		require.Equal(t, int64(0), PageOf(p-1, p))
		require.Equal(t, int64(1), PageOf(p, p))

		for k := int64(0); k <= 60; k++ {
			require.Equal(t, k/p, PageOf(k, p), "k=%d p=%d", k, p)
		}
	}
}

func TestOrderingFor(t *testing.T) {
	t.Parallel()

	paging := models.FieldPagingConfig{PerPage: 10, Mode: models.Threaded, Sort: models.NewestFirst}

	got := orderingFor(paging, user())
	require.Equal(t, models.Ordering{Mode: models.Threaded, Sort: models.NewestFirst}, got)

	got = orderingFor(paging, user(models.PermAdministerComments))
	require.True(t, got.IncludeUnpublished)
}

func TestNewCommentsPage(t *testing.T) {
	f := newServiceWithMocks(t)
	ctx := context.Background()

	e := article("1", flat(10), models.FieldOpen)
	field := e.Fields["comment"]

	// Всё на одной странице.
	page, err := f.svc.newCommentsPage(ctx, *e, field, 10, 3)
	require.NoError(t, err)
	require.Zero(t, page)

	// Новых нет.
	page, err = f.svc.newCommentsPage(ctx, *e, field, 25, 0)
	require.NoError(t, err)
	require.Zero(t, page)

	// Flat, oldest-first: (25-5)/10.
	page, err = f.svc.newCommentsPage(ctx, *e, field, 25, 5)
	require.NoError(t, err)
	require.EqualValues(t, 2, page)

	// Flat, newest-first: новые на первой странице.
	field.Paging.Sort = models.NewestFirst
	page, err = f.svc.newCommentsPage(ctx, *e, field, 25, 5)
	require.NoError(t, err)
	require.Zero(t, page)

	// Threaded: позиция первого нового из хранилища.
	te := article("2", threaded(10), models.FieldOpen)
	f.index.EXPECT().
		FirstNewPosition(gomock.Any(), te.Ref(), "comment", int64(4), models.Ordering{Mode: models.Threaded}).
		Return(int64(13), nil)

	page, err = f.svc.newCommentsPage(ctx, *te, te.Fields["comment"], 30, 4)
	require.NoError(t, err)
	require.EqualValues(t, 1, page)

	f.index.EXPECT().
		FirstNewPosition(gomock.Any(), te.Ref(), "comment", int64(4), gomock.Any()).
		Return(int64(0), errors.New("db down"))

	_, err = f.svc.newCommentsPage(ctx, *te, te.Fields["comment"], 30, 4)
	require.Error(t, err)
}

func TestEntityPath(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/node/42", entityPath(models.EntityRef{Type: "node", ID: "42"}))
	require.Equal(t, "/node/a%2Fb", entityPath(models.EntityRef{Type: "node", ID: "a/b"}))
}
