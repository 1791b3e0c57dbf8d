package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/comment-router/internal/service"
)

// Permalink — GET /comment/{id}: 302 на страницу сущности с нужным page и якорем комментария.
func (h *Handlers) Permalink(w http.ResponseWriter, r *http.Request) {
	const operation = "permalink"

	id := chi.URLParam(r, "id")
	if id == "" {
		h.fail(w, r, operation, invalidArgument())
		return
	}

	dec, err := h.svc.ResolvePermalink(r.Context(), service.PermalinkInput{
		CommentID: id,
		Query:     r.URL.Query(),
	}, actor(r))
	if err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, string(dec.Reason))
	redirect(w, r, dec.Location, http.StatusFound, "")
}

// Approve — POST /comment/{id}/approve: публикует комментарий и уводит на его пермалинк.
func (h *Handlers) Approve(w http.ResponseWriter, r *http.Request) {
	const operation = "approve"

	id := chi.URLParam(r, "id")
	if id == "" {
		h.fail(w, r, operation, invalidArgument())
		return
	}

	res, err := h.svc.ApproveComment(r.Context(), id, actor(r))
	if err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, "approved")
	redirect(w, r, res.Location, http.StatusSeeOther, res.Message)
}

// LegacyNode — GET /node/{id}/comments: постоянный редирект на форму ответа.
func (h *Handlers) LegacyNode(w http.ResponseWriter, r *http.Request) {
	const operation = "legacy_redirect"

	id := chi.URLParam(r, "id")
	if id == "" {
		h.fail(w, r, operation, invalidArgument())
		return
	}

	loc, err := h.svc.LegacyNodeRedirect(r.Context(), id)
	if err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, "redirect")
	redirect(w, r, *loc, http.StatusMovedPermanently, "")
}
