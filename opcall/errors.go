package opcall

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("opcall: unsupported parameter type")
	ErrValueShape      = errors.New("opcall: invalid parameter value")
)

// UnsupportedTypeError reports a tag absent from the type table.
type UnsupportedTypeError struct {
	Param string
	Type  ParamType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("opcall: parameter %q declares unsupported type %q", e.Param, e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error { return ErrUnsupportedType }

// ValueShapeError reports a value whose runtime shape does not satisfy its
// declared tag. One template covers every tag's rule.
type ValueShapeError struct {
	Param string
	Type  ParamType
	Value any
}

func (e *ValueShapeError) Error() string {
	return fmt.Sprintf(
		"opcall: parameter %q has an invalid value\n  value: %#v\n  declared type: %s",
		e.Param, e.Value, e.Type,
	)
}

func (e *ValueShapeError) Unwrap() error { return ErrValueShape }
