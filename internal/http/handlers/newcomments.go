package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/service"
)

// NewCommentsLinks — POST /comments/render_new_comments_node_links.
// Ответ: {"<id>": {"new_comment_count": N, "first_new_comment_link": "..."}}.
func (h *Handlers) NewCommentsLinks(w http.ResponseWriter, r *http.Request) {
	const operation = "new_comments_links"

	var in NewCommentsRequest
	if err := decodeStrict(w, r, &in); err != nil {
		h.fail(w, r, operation, invalidArgument())
		return
	}

	links, err := h.svc.NewCommentsLinks(r.Context(), service.NewCommentsInput{
		EntityType: in.EntityType,
		EntityIDs:  in.NodeIDs,
		FieldName:  in.FieldName,
	}, actor(r))
	if err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, "ok")
	writeJSON(w, http.StatusOK, links)
}

// MarkRead — POST /history/{type}/{id}/read: отметка визита, 204.
func (h *Handlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	const operation = "mark_read"

	ref := models.EntityRef{Type: chi.URLParam(r, "type"), ID: chi.URLParam(r, "id")}
	if err := h.svc.MarkRead(r.Context(), ref, actor(r)); err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, "ok")
	w.WriteHeader(http.StatusNoContent)
}
