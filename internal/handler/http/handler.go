// Package http exposes the dashboard REST API.
package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontgo/dashboard/internal/domain"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/middleware"
)

func errUnauthenticated(what string) error {
	return apperrors.Unauthorized(what + " requires an authenticated user")
}

func identityFromRequest(r *http.Request) domain.Identity {
	return domain.Identity{
		ActorID: middleware.ActorIDFromContext(r.Context()),
		Role:    domain.Role(middleware.RoleFromContext(r.Context())),
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func pageParams(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return page, perPage
}
