package handlers

import (
	"time"

	"github.com/pribylovaa/comment-router/internal/models"
)

// CommentDTO — комментарий в JSON-ответах.
type CommentDTO struct {
	ID         string    `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	FieldName  string    `json:"field_name"`
	ParentID   string    `json:"parent_id,omitempty"`
	Thread     string    `json:"thread"`
	Status     string    `json:"status"`
	UserID     string    `json:"user_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func commentFromModel(c *models.CommentRef) *CommentDTO {
	if c == nil {
		return nil
	}

	return &CommentDTO{
		ID:         c.ID,
		EntityType: c.EntityType,
		EntityID:   c.EntityID,
		FieldName:  c.FieldName,
		ParentID:   c.ParentID,
		Thread:     c.Thread,
		Status:     c.Status.String(),
		UserID:     c.UserID.String(),
		Body:       c.Body,
		CreatedAt:  c.CreatedAt,
	}
}

// DraftDTO — заготовка комментария, под которую рисуется форма.
type DraftDTO struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	FieldName  string `json:"field_name"`
	ParentID   string `json:"parent_id,omitempty"`
}

// ReplyFormResponse — ответ на разрешённый запрос формы ответа.
type ReplyFormResponse struct {
	Reason           string      `json:"reason"`
	Preview          bool        `json:"preview"`
	RenderEntity     bool        `json:"render_entity"`
	HideCommentField bool        `json:"hide_comment_field"`
	Draft            *DraftDTO   `json:"draft,omitempty"`
	Parent           *CommentDTO `json:"parent,omitempty"`
}

func replyFormFromModel(d *models.ReplyDecision) ReplyFormResponse {
	out := ReplyFormResponse{
		Reason:           string(d.Reason),
		Preview:          d.Preview,
		RenderEntity:     d.RenderEntity,
		HideCommentField: d.HideCommentField,
		Parent:           commentFromModel(d.Parent),
	}

	if d.Draft != nil {
		out.Draft = &DraftDTO{
			EntityType: d.Draft.EntityType,
			EntityID:   d.Draft.EntityID,
			FieldName:  d.Draft.FieldName,
			ParentID:   d.Draft.ParentID,
		}
	}

	return out
}

// SubmitReplyRequest — тело POST .../submit.
type SubmitReplyRequest struct {
	Body string `json:"body"`
}

// NewCommentsRequest — тело POST /comments/render_new_comments_node_links.
// NodeIDs == nil (поле не передано) отличается от пустого списка.
type NewCommentsRequest struct {
	NodeIDs    []string `json:"node_ids"`
	FieldName  string   `json:"field_name"`
	EntityType string   `json:"entity_type,omitempty"`
}
