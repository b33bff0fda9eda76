package opcall

import "time"

// CheckRequestParameterType confirms that a parameter's value shape
// satisfies its declared tag. It performs no I/O and no logging; failures
// are *UnsupportedTypeError or *ValueShapeError.
func CheckRequestParameterType(p Parameter) error {
	d, err := lookup(p.Name, p.Type)
	if err != nil {
		return err
	}

	switch p.Type {
	case TypeEntity, TypeEntityReference:
		if _, ok := entityRefOf(p.Value); !ok {
			return &ValueShapeError{Param: p.Name, Type: p.Type, Value: p.Value}
		}
	case TypeEntityCollection:
		// Every element must be a well-formed entity reference; one
		// malformed element rejects the whole collection.
		if !isEntityRefSlice(p.Value) {
			return &ValueShapeError{Param: p.Name, Type: p.Type, Value: p.Value}
		}
	case TypeDateTime:
		// A concrete time value is required; string encodings fail.
		if !isTime(p.Value) {
			return &ValueShapeError{Param: p.Name, Type: p.Type, Value: p.Value}
		}
	default:
		if !kindMatches(d.Kind, p.Value) {
			return &ValueShapeError{Param: p.Name, Type: p.Type, Value: p.Value}
		}
	}
	return nil
}

// entityRefOf extracts an entity reference from the shapes callers supply:
// EntityRef values, pointers to them, or decoded JSON objects. Both id and
// entityType must be present.
func entityRefOf(v any) (EntityRef, bool) {
	switch ref := v.(type) {
	case EntityRef:
		if ref.ID == "" || ref.EntityType == "" {
			return EntityRef{}, false
		}
		return ref, true
	case *EntityRef:
		if ref == nil {
			return EntityRef{}, false
		}
		return entityRefOf(*ref)
	case map[string]any:
		id, okID := ref["id"].(string)
		entityType, okType := ref["entityType"].(string)
		if !okID || !okType || id == "" || entityType == "" {
			return EntityRef{}, false
		}
		name, _ := ref["name"].(string)
		return EntityRef{ID: id, EntityType: entityType, Name: name}, true
	}
	return EntityRef{}, false
}

func isEntityRefSlice(v any) bool {
	switch list := v.(type) {
	case []EntityRef:
		for _, ref := range list {
			if _, ok := entityRefOf(ref); !ok {
				return false
			}
		}
		return true
	case []map[string]any:
		for _, ref := range list {
			if _, ok := entityRefOf(ref); !ok {
				return false
			}
		}
		return true
	case []any:
		for _, ref := range list {
			if _, ok := entityRefOf(ref); !ok {
				return false
			}
		}
		return true
	}
	return false
}

func isTime(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return true
	case *time.Time:
		return t != nil
	}
	return false
}

func kindMatches(kind ValueKind, v any) bool {
	switch kind {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		return isNumber(v)
	}
	return false
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
