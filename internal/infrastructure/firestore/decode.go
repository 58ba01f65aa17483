package firestore

import "time"

// Stored documents may predate the current schema or carry values written by
// older clients (numbers as strings, missing fields, mixed integer widths).
// These helpers coerce document data into the domain types instead of
// failing reads on a single malformed field.

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func asBool(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

// asIntSlice coerces a Firestore array into []int, dropping non-numeric
// elements. Firestore returns arrays as []interface{} with int64 members.
func asIntSlice(v any) []int {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		switch n := e.(type) {
		case int64:
			out = append(out, int(n))
		case float64:
			out = append(out, int(n))
		case int:
			out = append(out, n)
		}
	}
	return out
}

func asTime(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}

// asStringPtr returns nil for absent or empty values so optional references
// round-trip as absence rather than "".
func asStringPtr(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
