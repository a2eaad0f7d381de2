package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/bizbookhq/bizbook-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

// ParseIDParam extracts a positive numeric URL parameter.
func ParseIDParam(r *http.Request, key string) (uint, error) {
	raw := strings.TrimSpace(chi.URLParam(r, key))
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "url parameter must be a positive id").
			WithDetails(map[string]any{"field": key})
	}
	return uint(value), nil
}

// ParseQueryUint extracts an optional positive numeric query parameter,
// returning nil when absent.
func ParseQueryUint(r *http.Request, key string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a positive id").
			WithDetails(map[string]any{"field": key})
	}
	v := uint(value)
	return &v, nil
}

// QueryString returns the trimmed query value, or nil when absent.
func QueryString(r *http.Request, key string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	return &raw
}
