package models

import (
	"net/url"
	"strconv"
)

// Reason — код причины решения.
type Reason string

const (
	ReasonFound            Reason = "found"
	ReasonAllowed          Reason = "allowed"
	ReasonNoPostPermission Reason = "no_post_permission"
	ReasonFieldClosed      Reason = "field_closed"
	ReasonNoViewPermission Reason = "no_view_permission"
	ReasonInvalidParent    Reason = "invalid_parent"
)

// Location — цель редиректа: путь, query и якорь.
type Location struct {
	Path     string
	Query    url.Values
	Fragment string
}

// String собирает относительный URL.
func (l Location) String() string {
	u := url.URL{Path: l.Path, Fragment: l.Fragment}
	if len(l.Query) > 0 {
		u.RawQuery = l.Query.Encode()
	}

	return u.String()
}

// WithPage возвращает копию Location с выставленным page.
func (l Location) WithPage(page int64) Location {
	q := url.Values{}
	for k, v := range l.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("page", strconv.FormatInt(page, 10))
	l.Query = q

	return l
}

// PageDecision — результат разрешения пермалинка.
// RedirectRequired всегда true: пермалинк не рендерится на месте.
type PageDecision struct {
	Page             int64
	RedirectRequired bool
	Reason           Reason
	Location         Location
}

// ReplyDecision — результат проверки права ответить.
//   - Allowed == false: Location/Message описывают редирект обратно на сущность;
//   - Parent — загруженный родительский комментарий (для показа над формой);
//   - RenderEntity — показывать ли саму сущность над формой (ответ на сущность);
//   - HideCommentField — при показе сущности не рисовать её поле комментариев
//     (иначе получаем рекурсивный вывод формы);
//   - Preview — запрос на предпросмотр, проверки статуса поля и родителя пропущены.
type ReplyDecision struct {
	Allowed          bool
	Reason           Reason
	Message          string
	Location         Location
	Draft            *Draft
	Parent           *CommentRef
	RenderEntity     bool
	HideCommentField bool
	Preview          bool
}

// NewCommentsLink — элемент ответа на пакетный запрос новых комментариев.
type NewCommentsLink struct {
	NewCommentCount     int64  `json:"new_comment_count"`
	FirstNewCommentLink string `json:"first_new_comment_link"`
}
