package render

import (
	"encoding/json"
	"fmt"

	"github.com/deuce-x/deuce/pkg/element"
)

// ClassificationError is returned when an element matches no slot kind.
type ClassificationError struct {
	Type string // runtime type of the offending value
	Dump string // serialized value
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("unsupported element %s: %s", e.Type, e.Dump)
}

func classificationError(e element.Element) *ClassificationError {
	var v any = e
	typ := "element.Element(" + e.Kind.String() + ")"
	if e.Kind == element.KindUnknown {
		v = e.Value
		typ = fmt.Sprintf("%T", e.Value)
	}
	return &ClassificationError{Type: typ, Dump: dump(v)}
}

// dump serializes v as JSON, falling back to Go syntax for values JSON
// cannot represent (functions, channels, cycles).
func dump(v any) string {
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%#v", v)
}

// ComponentError reports the failure of a Future or Stream producer.
type ComponentError struct {
	Kind element.Kind
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("%s component failed: %v", e.Kind, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
