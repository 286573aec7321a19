package property

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrReadOnly signals an update attempt on a type outside the writable set.
	ErrReadOnly = errors.New("property type is read-only")
	// ErrNotNumeric signals a number update whose value does not parse.
	ErrNotNumeric = errors.New("value is not numeric")
)

// UpdatePayload builds the literal shape Notion's page update call expects
// for one property of the declared type. formula, rollup, and people are
// never written by this gateway.
func UpdatePayload(t Type, value any) (map[string]any, error) {
	switch t {
	case TypeTitle:
		return map[string]any{"title": textRuns(value)}, nil
	case TypeRichText:
		return map[string]any{"rich_text": textRuns(value)}, nil
	case TypeNumber:
		n, err := coerceNumber(value)
		if err != nil {
			return nil, err
		}
		return map[string]any{"number": n}, nil
	case TypeCheckbox:
		return map[string]any{"checkbox": coerceBool(value)}, nil
	case TypeSelect:
		return map[string]any{"select": map[string]any{"name": asString(value)}}, nil
	case TypeStatus:
		return map[string]any{"status": map[string]any{"name": asString(value)}}, nil
	case TypeMultiSelect:
		return map[string]any{"multi_select": optionList(value)}, nil
	case TypeDate:
		return map[string]any{"date": map[string]any{"start": asString(value)}}, nil
	case TypeEmail:
		return map[string]any{"email": asString(value)}, nil
	case TypePhoneNumber:
		return map[string]any{"phone_number": asString(value)}, nil
	case TypeURL:
		return map[string]any{"url": asString(value)}, nil
	case TypeFormula, TypeRollup, TypePeople:
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, t)
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrReadOnly, t)
	}
}

func textRuns(value any) []map[string]any {
	return []map[string]any{
		{"text": map[string]any{"content": asString(value)}},
	}
}

// optionList splits a comma-separated string into multi_select options.
// A slice of strings is taken as-is.
func optionList(value any) []map[string]any {
	var names []string
	switch v := value.(type) {
	case []string:
		names = v
	case []any:
		for _, el := range v {
			names = append(names, asString(el))
		}
	default:
		for _, part := range strings.Split(asString(value), ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}
	opts := make([]map[string]any, len(names))
	for i, n := range names {
		opts[i] = map[string]any{"name": n}
	}
	return opts
}

// coerceNumber fails explicitly on non-numeric input, never silently zero.
func coerceNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, value)
	}
}

// coerceBool accepts bool directly, plus the legacy string spellings
// "true", "1", and "yes" (case-insensitive). Anything else is false.
func coerceBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}

func asString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
