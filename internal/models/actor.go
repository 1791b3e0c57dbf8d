package models

import (
	"slices"

	"github.com/google/uuid"
)

// Permission — право пользователя.
type Permission string

const (
	PermAccessContent      Permission = "access content"
	PermAccessComments     Permission = "access comments"
	PermPostComments       Permission = "post comments"
	PermSkipApproval       Permission = "skip comment approval"
	PermAdministerComments Permission = "administer comments"
	PermBypassAccess       Permission = "bypass node access"
)

// Action — действие над сущностью, доступ к которому проверяется в EntityStore.CanAccess.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
)

// Actor — пользователь, от имени которого выполняется запрос.
// ID == uuid.Nil означает анонимного пользователя.
type Actor struct {
	ID          uuid.UUID
	Permissions []Permission
}

// Anonymous создаёт анонимного пользователя с заданным набором прав.
func Anonymous(perms ...Permission) Actor {
	return Actor{ID: uuid.Nil, Permissions: perms}
}

// IsAnonymous сообщает, что пользователь не аутентифицирован.
func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

// Has проверяет наличие права.
func (a Actor) Has(p Permission) bool {
	return slices.Contains(a.Permissions, p)
}
