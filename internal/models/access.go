package models

// Allows — правило доступа к сущности, которым пользуется EntityStore.CanAccess.
//   - "bypass node access" открывает всё;
//   - view: опубликованная сущность и право "access content";
//   - update: только "bypass node access".
func (e Entity) Allows(action Action, a Actor) bool {
	if a.Has(PermBypassAccess) {
		return true
	}

	switch action {
	case ActionView:
		return e.Published && a.Has(PermAccessContent)
	default:
		return false
	}
}
