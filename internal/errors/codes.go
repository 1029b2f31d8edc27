package errors

import (
	stderrors "errors"

	"github.com/deuce-x/deuce/pkg/element"
	"github.com/deuce-x/deuce/pkg/loop"
	"github.com/deuce-x/deuce/pkg/render"
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// Code returns the code of a DeuceError or the registered code of an engine
// error, or "" if err is neither.
func Code(err error) string {
	var (
		deuce          *DeuceError
		classification *render.ClassificationError
		unsupported    *element.UnsupportedComponentError
		component      *render.ComponentError
	)
	switch {
	case As(err, &deuce):
		return deuce.Code
	case As(err, &classification):
		return "D001"
	case As(err, &unsupported):
		return "D002"
	case As(err, &component):
		return "D003"
	case Is(err, loop.ErrClosed):
		return "D004"
	}
	return ""
}
