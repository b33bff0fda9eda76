// Package guid canonicalizes platform record identifiers. Normalization is
// never applied implicitly by the call layer; callers invoke it before
// comparison or transmission.
package guid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrNotString = errors.New("guid: value is not a string")

// Normalize returns the canonical form of a GUID: lowercase, with any
// brace characters stripped. The input must be a string.
func Normalize(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: got %T", ErrNotString, v)
	}
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return strings.ToLower(s), nil
}

// Equal reports whether two GUID strings identify the same record once
// canonicalized.
func Equal(a, b string) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return na == nb
}

// New returns a fresh GUID already in canonical form.
func New() string {
	return uuid.NewString()
}
