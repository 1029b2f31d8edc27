// Package errors provides structured, actionable error messages for the
// deuce command line.
//
// Every error has a registered code that maps to a short message and a
// longer explanation. Engine errors from pkg/render, pkg/element and
// pkg/loop are mapped to their codes by FromError.
//
// # Error Codes
//
//   - D001-D099: rendering (unsupported element, failed component)
//   - D100-D199: configuration
//   - D200-D299: to-do stores
//   - D300-D399: command line and inspector
//
// # Usage
//
//	err := errors.New("D101").
//	    WithLocation("deuce.yaml", 4, 3).
//	    WithSuggestion("Indent nested keys with spaces, not tabs").
//	    Wrap(cause)
//
//	fmt.Println(err.Format())
package errors
