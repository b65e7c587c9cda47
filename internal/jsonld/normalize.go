package jsonld

import "strings"

// NormalizeToStringOrNull flattens a string, number, object or array into a
// single string. Objects contribute their "name" property; array elements are
// normalized individually and joined with sep. It returns nil when nothing
// usable remains.
func NormalizeToStringOrNull(v Value, sep string) *string {
	switch v.Kind {
	case KindString, KindNumber:
		if s, ok := v.Text(); ok {
			return &s
		}
	case KindObject:
		return NormalizeToStringOrNull(v.Get("name"), sep)
	case KindArray:
		parts := make([]string, 0, len(v.Array))
		for _, item := range v.Array {
			if s := NormalizeToStringOrNull(item, sep); s != nil {
				parts = append(parts, *s)
			}
		}
		if len(parts) > 0 {
			joined := strings.Join(parts, sep)
			return &joined
		}
	}
	return nil
}

// NormalizeTypeList returns the @type values of v as a flat list.
func NormalizeTypeList(v Value) []string {
	switch v.Kind {
	case KindString:
		if s, ok := v.Text(); ok {
			return []string{s}
		}
	case KindArray:
		var types []string
		for _, item := range v.Array {
			if s, ok := item.Text(); ok && item.Kind == KindString {
				types = append(types, s)
			}
		}
		return types
	}
	return nil
}

// HasType reports whether the node's @type is or includes typ. Types written
// as full schema.org IRIs match their short name.
func HasType(node Value, typ string) bool {
	for _, t := range NormalizeTypeList(node.Get("@type")) {
		if strings.EqualFold(StripSchemaPrefix(t), typ) {
			return true
		}
	}
	return false
}

// StripSchemaPrefix removes a leading https://schema.org/ or http://schema.org/.
func StripSchemaPrefix(s string) string {
	for _, prefix := range []string{"https://schema.org/", "http://schema.org/"} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}

// FindByType searches one payload for a node of type typ. When the payload
// carries an @graph only the graph is searched; otherwise the top-level node
// is checked. Top-level arrays are searched element by element.
func FindByType(payload Value, typ string) (Value, bool) {
	switch payload.Kind {
	case KindArray:
		for _, item := range payload.Array {
			if found, ok := FindByType(item, typ); ok {
				return found, true
			}
		}
	case KindObject:
		if graph := payload.Get("@graph"); graph.Kind == KindArray {
			for _, item := range graph.Array {
				if HasType(item, typ) {
					return item, true
				}
			}
			return Null, false
		}
		if HasType(payload, typ) {
			return payload, true
		}
	}
	return Null, false
}

// FindFirst returns the first node of type typ across payloads, in document order.
func FindFirst(payloads []Value, typ string) (Value, bool) {
	for _, p := range payloads {
		if found, ok := FindByType(p, typ); ok {
			return found, true
		}
	}
	return Null, false
}
