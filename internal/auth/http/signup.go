package http

import (
	"encoding/json"
	"net/http"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/service"
	"github.com/gatehouseauth/gatehouse/pkg/httpx"
	"github.com/gatehouseauth/gatehouse/pkg/slogx"
)

type SignUpHandler struct {
	SignUpService *service.SignUpService
}

// signUpRequest carries the flow config alongside the credential
// fields. The fields stay untyped here; the service layer owns the
// "must be of type string" distinction.
type signUpRequest struct {
	Config    *domain.FlowConfig `json:"config"`
	Username  any                `json:"username"`
	FirstName any                `json:"firstName"`
	LastName  any                `json:"lastName"`
	Email     any                `json:"email"`
	Password  any                `json:"password"`
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new account from an email and password, plus whatever extra fields the submitted flow config collects (names, username)
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signUpRequest	true	"Registration payload with flow config"
//	@Success		200		{object}	SignUpResponse	"uid, email, displayName, photoUrl"
//	@Failure		400		{object}	ErrorResponse	"error, error_description"
//	@Failure		500		{object}	ErrorResponse	"error, error_description"
//	@Router			/v1/auth/signup [post].
func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	account, err := h.SignUpService.SignUp(ctx, service.SignUpInput{
		Config:    req.Config,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if ferr, ok := asFlow(err); ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_argument", ferr.Message)
			return
		}
		log.Error("signup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to register")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, SignUpResponse{
		UID:         account.UID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		PhotoURL:    account.PhotoURL,
	})
}
