package http

import (
	"encoding/json"
	"net/http"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/service"
	"github.com/gatehouseauth/gatehouse/pkg/httpx"
	"github.com/gatehouseauth/gatehouse/pkg/slogx"
)

type SignInHandler struct {
	SignInService *service.SignInService
}

type signInRequest struct {
	Config   *domain.FlowConfig `json:"config"`
	Email    any                `json:"email"`
	Password any                `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Sign In Endpoint
//	@Description	Exchange an email (or username, when the flow config allows it) and password for the identity provider's token response
//	@Description	The provider response is passed through unmodified
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signInRequest	true	"Sign-in payload with flow config"
//	@Success		200		{object}	object			"Provider token response (idToken, refreshToken, expiresIn, ...)"
//	@Failure		400		{object}	ErrorResponse	"error, error_description"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/v1/auth/signin [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	tokens, err := h.SignInService.SignIn(ctx, service.SignInInput{
		Config:   req.Config,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if ferr, ok := asFlow(err); ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_argument", ferr.Message)
			return
		}
		log.Error("signin failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to sign in")
		return
	}

	// Token responses must never be cached by intermediaries.
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(tokens)
}
