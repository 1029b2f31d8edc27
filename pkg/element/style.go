package element

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Declaration is a single CSS property/value pair of a Style.
type Declaration struct {
	Property string // camelCase or kebab-case property name
	Value    any
}

// Style is an ordered list of style declarations.
// Unlike a map, it keeps the order in which declarations were written.
type Style []Declaration

// Styles builds a Style from alternating property/value pairs.
// A trailing property without a value is ignored.
//
//	Styles("borderStyle", "solid", "borderWidth", "1px")
func Styles(pairs ...any) Style {
	s := make(Style, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		s = append(s, Declaration{Property: fmt.Sprint(pairs[i]), Value: pairs[i+1]})
	}
	return s
}

// String serializes the style as CSS declarations: kebab-cased
// properties, "key: value" pairs joined by "; ".
func (s Style) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s {
		parts = append(parts, Kebab(d.Property)+": "+fmt.Sprint(d.Value))
	}
	return strings.Join(parts, "; ")
}

// StyleOf converts a style value to a Style. Maps are ordered by key.
// The second result is false if v is not a style value.
func StyleOf(v any) (Style, bool) {
	switch x := v.(type) {
	case Style:
		return x, true
	case []Declaration:
		return Style(x), true
	case map[string]string:
		keys := sortedKeys(x)
		s := make(Style, 0, len(keys))
		for _, k := range keys {
			s = append(s, Declaration{Property: k, Value: x[k]})
		}
		return s, true
	case map[string]any:
		keys := sortedKeys(x)
		s := make(Style, 0, len(keys))
		for _, k := range keys {
			s = append(s, Declaration{Property: k, Value: x[k]})
		}
		return s, true
	}
	return nil, false
}

// Kebab converts a camelCase name to kebab-case: every lower-case letter
// followed by an upper-case letter gets a dash in between, and the result
// is lower-cased.
//
//	Kebab("borderColor") == "border-color"
func Kebab(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Classes joins class names, skipping empty ones.
func Classes(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
