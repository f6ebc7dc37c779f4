package v1alpha1

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// bindQuery binds the optional form-style query parameter name. It writes a 400 and returns false
// when the value cannot be bound. dest is left nil when the parameter is absent.
func bindQuery[T any](w http.ResponseWriter, r *http.Request, name string, dest **T) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
		return false
	}
	return true
}
