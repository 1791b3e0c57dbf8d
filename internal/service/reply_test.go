package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/storage"
	"github.com/stretchr/testify/require"
)

var node42 = models.EntityRef{Type: "node", ID: "42"}

// Без "post comments" отказ выдаётся до любых обращений к хранилищу:
// у моков нет ни одного EXPECT, любой вызов провалит тест.
func TestAuthorizeReply_NoPostPermission_NoStoreCalls(t *testing.T) {
	f := newServiceWithMocks(t)

	for _, parent := range []string{"", "p1"} {
		got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
			Entity: node42, FieldName: "comment", ParentID: parent,
		}, user(models.PermAccessComments, models.PermAccessContent))
		require.NoError(t, err)
		require.False(t, got.Allowed)
		require.Equal(t, models.ReasonNoPostPermission, got.Reason)
		require.Equal(t, MsgNoPostPermission, got.Message)
		require.Equal(t, "/node/42", got.Location.Path)
	}
}

func TestAuthorizeReply_InvalidArgument(t *testing.T) {
	f := newServiceWithMocks(t)

	_, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{Entity: node42}, user(models.PermPostComments))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.AuthorizeReply(context.Background(), ReplyRequest{FieldName: "comment"}, user(models.PermPostComments))
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAuthorizeReply_NotFound(t *testing.T) {
	actor := user(models.PermPostComments)

	t.Run("entity", func(t *testing.T) {
		f := newServiceWithMocks(t)
		f.entities.EXPECT().Entity(gomock.Any(), node42).Return(nil, storage.ErrNotFound)
		_, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{Entity: node42, FieldName: "comment"}, actor)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("field", func(t *testing.T) {
		f := newServiceWithMocks(t)
		f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", flat(10), models.FieldOpen), nil)
		_, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{Entity: node42, FieldName: "other"}, actor)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newServiceWithMocks(t)
		f.entities.EXPECT().Entity(gomock.Any(), node42).Return(nil, errors.New("db down"))
		_, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{Entity: node42, FieldName: "comment"}, actor)
		require.ErrorIs(t, err, ErrInternal)
	})
}

func TestAuthorizeReply_FieldClosed(t *testing.T) {
	for _, status := range []models.FieldStatus{models.FieldClosed, models.FieldHidden} {
		f := newServiceWithMocks(t)
		f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", flat(10), status), nil)

		got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
			Entity: node42, FieldName: "comment", ParentID: "p1",
		}, user(models.PermPostComments, models.PermAccessComments))
		require.NoError(t, err)
		require.False(t, got.Allowed)
		require.Equal(t, models.ReasonFieldClosed, got.Reason)
		require.Equal(t, MsgFieldClosed, got.Message)
	}
}

// Ответ на комментарий без "access comments": родитель не загружается.
func TestAuthorizeReply_ParentWithoutAccessComments(t *testing.T) {
	f := newServiceWithMocks(t)
	f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", flat(10), models.FieldOpen), nil)

	got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
		Entity: node42, FieldName: "comment", ParentID: "p1",
	}, user(models.PermPostComments))
	require.NoError(t, err)
	require.False(t, got.Allowed)
	require.Equal(t, models.ReasonNoViewPermission, got.Reason)
	require.Equal(t, MsgNoViewPermission, got.Message)
}

// Ответ на саму сущность с "post comments", но без "access comments" разрешён.
func TestAuthorizeReply_EntityWithoutAccessComments_Allowed(t *testing.T) {
	f := newServiceWithMocks(t)
	actor := user(models.PermPostComments)
	e := article("42", flat(10), models.FieldOpen)

	f.entities.EXPECT().Entity(gomock.Any(), node42).Return(e, nil)
	f.entities.EXPECT().CanAccess(gomock.Any(), *e, models.ActionView, actor).Return(false, nil)

	got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{Entity: node42, FieldName: "comment"}, actor)
	require.NoError(t, err)
	require.True(t, got.Allowed)
	require.Equal(t, models.ReasonAllowed, got.Reason)
	require.False(t, got.RenderEntity)
	require.Equal(t, &models.Draft{EntityType: "node", EntityID: "42", FieldName: "comment"}, got.Draft)
}

func TestAuthorizeReply_EntityRenderedWithHiddenField(t *testing.T) {
	f := newServiceWithMocks(t)
	actor := user(models.PermPostComments, models.PermAccessContent)
	e := article("42", flat(10), models.FieldOpen)

	f.entities.EXPECT().Entity(gomock.Any(), node42).Return(e, nil)
	f.entities.EXPECT().CanAccess(gomock.Any(), *e, models.ActionView, actor).Return(true, nil)

	got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{Entity: node42, FieldName: "comment"}, actor)
	require.NoError(t, err)
	require.True(t, got.Allowed)
	require.True(t, got.RenderEntity)
	require.True(t, got.HideCommentField)
	// Сама сущность не меняется.
	require.Equal(t, models.FieldOpen, e.Fields["comment"].Status)
}

func TestAuthorizeReply_InvalidParent(t *testing.T) {
	actor := user(models.PermPostComments, models.PermAccessComments, models.PermAccessContent, models.PermAdministerComments)

	foreignField := comment("p1", "42", "", models.Published)
	foreignField.FieldName = "forum"

	cases := map[string]struct {
		parent *models.CommentRef
		err    error
	}{
		"unpublished":  {parent: comment("p1", "42", "", models.Unpublished)},
		"other entity": {parent: comment("p1", "7", "", models.Published)},
		"other field":  {parent: foreignField},
		"missing":      {err: storage.ErrNotFound},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newServiceWithMocks(t)
			f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", flat(10), models.FieldOpen), nil)
			f.entities.EXPECT().Comment(gomock.Any(), "p1").Return(tc.parent, tc.err)

			got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
				Entity: node42, FieldName: "comment", ParentID: "p1",
			}, actor)
			require.NoError(t, err)
			require.False(t, got.Allowed)
			require.Equal(t, models.ReasonInvalidParent, got.Reason)
			require.Equal(t, MsgInvalidParent, got.Message)
			require.Equal(t, "/node/42", got.Location.Path)
		})
	}
}

func TestAuthorizeReply_ValidParent(t *testing.T) {
	f := newServiceWithMocks(t)
	parent := comment("p1", "42", "", models.Published)

	f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", threaded(10), models.FieldOpen), nil)
	f.entities.EXPECT().Comment(gomock.Any(), "p1").Return(parent, nil)

	got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
		Entity: node42, FieldName: "comment", ParentID: "p1",
	}, user(models.PermPostComments, models.PermAccessComments))
	require.NoError(t, err)
	require.True(t, got.Allowed)
	require.Equal(t, parent, got.Parent)
	require.False(t, got.RenderEntity)
	require.Equal(t, "p1", got.Draft.ParentID)
}

func TestAuthorizeReply_ParentStorageFailure(t *testing.T) {
	f := newServiceWithMocks(t)
	f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", flat(10), models.FieldOpen), nil)
	f.entities.EXPECT().Comment(gomock.Any(), "p1").Return(nil, errors.New("db down"))

	_, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
		Entity: node42, FieldName: "comment", ParentID: "p1",
	}, user(models.PermPostComments, models.PermAccessComments))
	require.ErrorIs(t, err, ErrInternal)
}

// Предпросмотр пропускает проверку статуса поля и родителя.
func TestAuthorizeReply_PreviewSkipsChecks(t *testing.T) {
	f := newServiceWithMocks(t)
	f.entities.EXPECT().Entity(gomock.Any(), node42).Return(article("42", flat(10), models.FieldClosed), nil)

	got, err := f.svc.AuthorizeReply(context.Background(), ReplyRequest{
		Entity: node42, FieldName: "comment", ParentID: "p1", Preview: true,
	}, user(models.PermPostComments))
	require.NoError(t, err)
	require.True(t, got.Allowed)
	require.True(t, got.Preview)
	require.Nil(t, got.Parent)
	require.False(t, got.RenderEntity)
}

func TestPostReply_Denied(t *testing.T) {
	f := newServiceWithMocks(t)

	res, err := f.svc.PostReply(context.Background(), PostReplyInput{
		ReplyRequest: ReplyRequest{Entity: node42, FieldName: "comment"},
		Body:         "hi",
	}, user())
	require.NoError(t, err)
	require.Nil(t, res.Comment)
	require.Equal(t, models.ReasonNoPostPermission, res.Decision.Reason)
}

func TestPostReply_BodyValidation(t *testing.T) {
	actor := user(models.PermPostComments)

	for name, body := range map[string]string{
		"empty":    "   ",
		"too long": strings.Repeat("x", 65),
		"bad utf8": string([]byte{0xff, 0xfe}),
	} {
		t.Run(name, func(t *testing.T) {
			f := newServiceWithMocks(t)
			e := article("42", flat(10), models.FieldOpen)
			f.entities.EXPECT().Entity(gomock.Any(), node42).Return(e, nil)
			f.entities.EXPECT().CanAccess(gomock.Any(), *e, models.ActionView, actor).Return(true, nil)

			_, err := f.svc.PostReply(context.Background(), PostReplyInput{
				ReplyRequest: ReplyRequest{Entity: node42, FieldName: "comment"},
				Body:         body,
			}, actor)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestPostReply_StatusByPermission(t *testing.T) {
	cases := []struct {
		name  string
		perms []models.Permission
		want  models.CommentStatus
	}{
		{"needs approval", []models.Permission{models.PermPostComments}, models.Unpublished},
		{"skip approval", []models.Permission{models.PermPostComments, models.PermSkipApproval}, models.Published},
		{"moderator", []models.Permission{models.PermPostComments, models.PermAdministerComments}, models.Published},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newServiceWithMocks(t)
			actor := user(tc.perms...)
			e := article("42", flat(10), models.FieldOpen)

			f.entities.EXPECT().Entity(gomock.Any(), node42).Return(e, nil)
			f.entities.EXPECT().CanAccess(gomock.Any(), *e, models.ActionView, actor).Return(false, nil)
			f.entities.EXPECT().
				CreateComment(gomock.Any(), models.CommentRef{
					EntityType: "node", EntityID: "42", FieldName: "comment",
					Status: tc.want, UserID: actor.ID, Body: "hello",
				}).
				DoAndReturn(func(_ context.Context, c models.CommentRef) (*models.CommentRef, error) {
					c.ID, c.Thread = "new1", "01"
					return &c, nil
				})

			res, err := f.svc.PostReply(context.Background(), PostReplyInput{
				ReplyRequest: ReplyRequest{Entity: node42, FieldName: "comment", Preview: true},
				Body:         "  hello ",
			}, actor)
			require.NoError(t, err)
			require.True(t, res.Decision.Allowed)
			require.False(t, res.Decision.Preview)
			require.Equal(t, "new1", res.Comment.ID)
			require.Equal(t, tc.want, res.Comment.Status)
		})
	}
}

func TestPostReply_StorageErrors(t *testing.T) {
	actor := user(models.PermPostComments)

	for stErr, want := range map[error]error{
		storage.ErrParentNotFound: ErrNotFound,
		storage.ErrConflict:       ErrConflict,
		errors.New("db down"):     ErrInternal,
	} {
		f := newServiceWithMocks(t)
		e := article("42", flat(10), models.FieldOpen)
		f.entities.EXPECT().Entity(gomock.Any(), node42).Return(e, nil)
		f.entities.EXPECT().CanAccess(gomock.Any(), *e, models.ActionView, actor).Return(true, nil)
		f.entities.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Return(nil, stErr)

		_, err := f.svc.PostReply(context.Background(), PostReplyInput{
			ReplyRequest: ReplyRequest{Entity: node42, FieldName: "comment"},
			Body:         "hello",
		}, actor)
		require.ErrorIs(t, err, want)
	}
}
