// Package tmplcat turns the backend's loosely shaped invitation template
// listing into wedmodel.Template values.
package tmplcat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Property looks up prop in raw under its literal name, then its snake_case
// form, then its camelCase form. The first non-empty value wins; when none
// is found the empty string is returned.
func Property(raw map[string]any, prop string) string {
	for _, key := range []string{prop, ToSnake(prop), ToCamel(prop)} {
		v, ok := raw[key]
		if !ok {
			continue
		}

		if s := stringValue(v); s != "" {
			return s
		}
	}

	return ""
}

// ToSnake converts camelCase to snake_case: "templateName" -> "template_name".
func ToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// ToCamel converts snake_case to camelCase: "template_name" -> "templateName".
func ToCamel(s string) string {
	var b strings.Builder
	upper := false
	for _, r := range s {
		switch {
		case r == '_':
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
