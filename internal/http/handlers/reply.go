package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pribylovaa/comment-router/internal/models"
	"github.com/pribylovaa/comment-router/internal/service"
)

// replyRequest собирает ReplyRequest из параметров маршрута.
func replyRequest(r *http.Request) service.ReplyRequest {
	return service.ReplyRequest{
		Entity: models.EntityRef{
			Type: chi.URLParam(r, "type"),
			ID:   chi.URLParam(r, "id"),
		},
		FieldName: chi.URLParam(r, "field"),
		ParentID:  chi.URLParam(r, "pid"),
	}
}

// ReplyForm — GET|POST /comment/reply/{type}/{id}/{field}[/{pid}].
// Разрешено — 200 с описанием формы; отказ — 303 на сущность с сообщением в NoticeHeader.
// op=preview (query или форма) — предпросмотр.
func (h *Handlers) ReplyForm(w http.ResponseWriter, r *http.Request) {
	const operation = "authorize_reply"

	req := replyRequest(r)
	req.Preview = strings.EqualFold(strings.TrimSpace(r.FormValue("op")), "preview")

	dec, err := h.svc.AuthorizeReply(r.Context(), req, actor(r))
	if err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, string(dec.Reason))
	if !dec.Allowed {
		redirect(w, r, dec.Location, http.StatusSeeOther, dec.Message)
		return
	}

	writeJSON(w, http.StatusOK, replyFormFromModel(dec))
}

// SubmitReply — POST /comment/reply/{type}/{id}/{field}[/{pid}]/submit.
// Создан — 201 с комментарием; отказ — 303 как у ReplyForm.
func (h *Handlers) SubmitReply(w http.ResponseWriter, r *http.Request) {
	const operation = "post_reply"

	var in SubmitReplyRequest
	if err := decodeStrict(w, r, &in); err != nil {
		h.fail(w, r, operation, invalidArgument())
		return
	}

	res, err := h.svc.PostReply(r.Context(), service.PostReplyInput{
		ReplyRequest: replyRequest(r),
		Body:         in.Body,
	}, actor(r))
	if err != nil {
		h.fail(w, r, operation, err)
		return
	}

	h.metrics.Observe(operation, string(res.Decision.Reason))
	if !res.Decision.Allowed {
		redirect(w, r, res.Decision.Location, http.StatusSeeOther, res.Decision.Message)
		return
	}

	writeJSON(w, http.StatusCreated, commentFromModel(res.Comment))
}
