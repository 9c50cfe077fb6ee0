package controllers

import (
	"net/http"

	"github.com/ferreteriahogar/inventory-backend/api/responses"
	"github.com/ferreteriahogar/inventory-backend/api/validators"
	authsvc "github.com/ferreteriahogar/inventory-backend/internal/auth"
	"github.com/ferreteriahogar/inventory-backend/internal/users"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
	"github.com/ferreteriahogar/inventory-backend/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthStatus answers the unauthenticated liveness probe on the auth surface.
func AuthStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// AuthLogin authenticates credentials. The body keeps the legacy
// {status, token} shape: bad credentials answer 400 with status "error" and a
// null token instead of the standard error envelope.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body.Username, body.Password)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeUnauthorized {
				responses.WriteJSON(w, http.StatusBadRequest, authsvc.LoginResult{Status: "error", Token: nil})
				return
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, result)
	}
}

// AuthBootstrapAdmin seeds the configured default ADMIN account. Calling it
// again once the account exists is a no-op answered with the existing user.
func AuthBootstrapAdmin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		user, created, err := svc.BootstrapAdmin(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, users.FromModel(user))
	}
}
