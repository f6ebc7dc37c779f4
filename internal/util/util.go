package util

import (
	"fmt"
)

func Must(err error) {
	if err != nil {
		panic(fmt.Errorf("internal error: %w", err))
	}
}

// ToPtr returns a pointer to a copy of v.
func ToPtr[T any](v T) *T {
	return &v
}
