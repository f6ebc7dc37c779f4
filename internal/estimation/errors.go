package estimation

import (
	"fmt"
	"strings"
)

// ErrInvalidInput lists every constraint the submitted input violates.
type ErrInvalidInput struct {
	Violations []string
}

func NewErrInvalidInput(violations ...string) *ErrInvalidInput {
	return &ErrInvalidInput{Violations: violations}
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid simulation input: %s", strings.Join(e.Violations, "; "))
}
