package validator

import (
	"fmt"
	"strings"
)

type ErrInvalidForm struct {
	error
	Violations []string
}

func NewErrInvalidForm(violations []string) *ErrInvalidForm {
	return &ErrInvalidForm{
		error:      fmt.Errorf("invalid form: %s", strings.Join(violations, "; ")),
		Violations: violations,
	}
}
