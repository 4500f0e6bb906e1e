package httpkit

import (
	"net/http"
	"strings"

	"rolegate/internal/modkit/scope"
	perr "rolegate/internal/platform/errors"
	phttp "rolegate/internal/platform/net/http"

	"github.com/google/uuid"
)

// Caller returns the validated caller scope of the request
func Caller(r *http.Request) (scope.Scope, error) {
	return scope.From(r.Context())
}

// MustCaller returns the caller scope or panics
// only use on routes protected by the auth middleware
func MustCaller(r *http.Request) scope.Scope {
	s, err := Caller(r)
	if err != nil {
		panic(err)
	}
	return s
}

// ParamUUID parses a uuid path parameter
// a malformed id cannot name any row so it is reported as not found
func ParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(phttp.Param(r, name))
	if raw == "" {
		return uuid.Nil, perr.FieldValidationf(name, "%s is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, perr.NotFoundf("%s not found", name)
	}
	return id, nil
}
