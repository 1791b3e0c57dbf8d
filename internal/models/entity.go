package models

import "sort"

// ThreadingMode — как отображаются ответы.
type ThreadingMode int32

const (
	// Flat — плоский список в хронологическом порядке.
	Flat ThreadingMode = iota
	// Threaded — ответы вложены под родителя.
	Threaded
)

func (m ThreadingMode) String() string {
	if m == Threaded {
		return "threaded"
	}

	return "flat"
}

// SortOrder — порядок выдачи комментариев по умолчанию.
type SortOrder int32

const (
	// OldestFirst — сначала старые.
	OldestFirst SortOrder = iota
	// NewestFirst — сначала новые.
	NewestFirst
)

func (o SortOrder) String() string {
	if o == NewestFirst {
		return "newest_first"
	}

	return "oldest_first"
}

// FieldStatus — открыто ли поле для новых комментариев.
type FieldStatus int32

const (
	// FieldHidden — комментарии скрыты.
	FieldHidden FieldStatus = iota
	// FieldClosed — комментарии видны, новые запрещены.
	FieldClosed
	// FieldOpen — можно комментировать.
	FieldOpen
)

func (s FieldStatus) String() string {
	switch s {
	case FieldOpen:
		return "open"
	case FieldClosed:
		return "closed"
	default:
		return "hidden"
	}
}

// FieldPagingConfig — настройки постраничного вывода поля комментариев.
type FieldPagingConfig struct {
	PerPage int64
	Mode    ThreadingMode
	Sort    SortOrder
}

// CommentField — поле комментариев на сущности.
type CommentField struct {
	Name   string
	Status FieldStatus
	Paging FieldPagingConfig
}

// EntityRef — ссылка на комментируемую сущность (тип + идентификатор).
type EntityRef struct {
	Type string
	ID   string
}

// Entity — снимок комментируемой сущности.
//   - Path — канонический путь страницы сущности ("/node/42");
//   - Published — опубликована ли сама сущность;
//   - Fields — поля комментариев по имени.
type Entity struct {
	Type      string
	ID        string
	Path      string
	Published bool
	Fields    map[string]CommentField
}

// Ref возвращает ссылку на сущность.
func (e Entity) Ref() EntityRef {
	return EntityRef{Type: e.Type, ID: e.ID}
}

// Field возвращает поле комментариев по имени.
func (e Entity) Field(name string) (CommentField, bool) {
	f, ok := e.Fields[name]
	return f, ok
}

// FieldNames возвращает имена полей комментариев в алфавитном порядке.
func (e Entity) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Ordering — параметры, по которым считается порядковый номер комментария.
// IncludeUnpublished выставляется для модераторов: им видны неопубликованные комментарии.
type Ordering struct {
	Mode               ThreadingMode
	Sort               SortOrder
	IncludeUnpublished bool
}
