package grpc

import (
	"fmt"
	"net/url"

	"github.com/pribylovaa/comment-router/internal/models"

	"google.golang.org/protobuf/types/known/structpb"
)

// stringField читает строковое поле; отсутствующее поле — пустая строка.
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}

	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", fmt.Errorf("%s: expected string", key)
	}
}

func boolField(s *structpb.Struct, key string) (bool, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return false, nil
	}

	switch k := v.GetKind().(type) {
	case *structpb.Value_BoolValue:
		return k.BoolValue, nil
	case *structpb.Value_NullValue:
		return false, nil
	default:
		return false, fmt.Errorf("%s: expected bool", key)
	}
}

// stringListField читает список строк. Отсутствующее поле или null — nil (а не пустой список).
func stringListField(s *structpb.Struct, key string) ([]string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}

	switch k := v.GetKind().(type) {
	case *structpb.Value_NullValue:
		return nil, nil
	case *structpb.Value_ListValue:
		out := make([]string, 0, len(k.ListValue.GetValues()))
		for _, item := range k.ListValue.GetValues() {
			str, ok := item.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, fmt.Errorf("%s: expected list of strings", key)
			}
			out = append(out, str.StringValue)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: expected list", key)
	}
}

// queryField читает объект query: значения — строка или список строк.
func queryField(s *structpb.Struct, key string) (url.Values, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}

	obj, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil, fmt.Errorf("%s: expected object", key)
	}

	q := url.Values{}
	for name, val := range obj.StructValue.GetFields() {
		switch k := val.GetKind().(type) {
		case *structpb.Value_StringValue:
			q.Add(name, k.StringValue)
		case *structpb.Value_ListValue:
			for _, item := range k.ListValue.GetValues() {
				str, ok := item.GetKind().(*structpb.Value_StringValue)
				if !ok {
					return nil, fmt.Errorf("%s.%s: expected strings", key, name)
				}
				q.Add(name, str.StringValue)
			}
		default:
			return nil, fmt.Errorf("%s.%s: expected string or list", key, name)
		}
	}

	return q, nil
}

func pageDecisionToStruct(d *models.PageDecision) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"page":              d.Page,
		"redirect_required": d.RedirectRequired,
		"reason":            string(d.Reason),
		"location":          d.Location.String(),
	})
}

func commentToMap(c *models.CommentRef) map[string]any {
	return map[string]any{
		"id":          c.ID,
		"entity_type": c.EntityType,
		"entity_id":   c.EntityID,
		"field_name":  c.FieldName,
		"parent_id":   c.ParentID,
		"thread":      c.Thread,
		"status":      c.Status.String(),
	}
}

func replyDecisionToStruct(d *models.ReplyDecision) (*structpb.Struct, error) {
	m := map[string]any{
		"allowed":            d.Allowed,
		"reason":             string(d.Reason),
		"preview":            d.Preview,
		"render_entity":      d.RenderEntity,
		"hide_comment_field": d.HideCommentField,
	}

	if !d.Allowed {
		m["message"] = d.Message
		m["location"] = d.Location.String()
	}

	if d.Draft != nil {
		m["draft"] = map[string]any{
			"entity_type": d.Draft.EntityType,
			"entity_id":   d.Draft.EntityID,
			"field_name":  d.Draft.FieldName,
			"parent_id":   d.Draft.ParentID,
		}
	}

	if d.Parent != nil {
		m["parent"] = commentToMap(d.Parent)
	}

	return structpb.NewStruct(m)
}

func linksToStruct(links map[string]models.NewCommentsLink) (*structpb.Struct, error) {
	m := make(map[string]any, len(links))
	for id, l := range links {
		m[id] = map[string]any{
			"new_comment_count":      l.NewCommentCount,
			"first_new_comment_link": l.FirstNewCommentLink,
		}
	}

	return structpb.NewStruct(m)
}
