package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatehouseauth/gatehouse/internal/auth/domain"
	"github.com/gatehouseauth/gatehouse/internal/auth/service"
	"github.com/gatehouseauth/gatehouse/pkg/httpx"
	"github.com/gatehouseauth/gatehouse/pkg/slogx"
)

type EditProfileHandler struct {
	ProfileService *service.ProfileService
}

type editProfileRequest struct {
	Config    *domain.FlowConfig `json:"config"`
	Username  any                `json:"username"`
	FirstName any                `json:"firstName"`
	LastName  any                `json:"lastName"`
	Email     any                `json:"email"`
}

// ServeHTTP godoc
//
//	@Summary		Edit Profile Endpoint
//	@Description	Update the signed-in user's email, names and username on both the identity provider record and the profile document
//	@Tags			Profile
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		editProfileRequest		true	"Profile update payload with flow config"
//	@Success		200		{object}	domain.ProfileUpdate	"The fields that were written"
//	@Failure		400		{object}	ErrorResponse			"error, error_description"
//	@Failure		401		{object}	ErrorResponse			"Missing or invalid session token"
//	@Failure		500		{object}	ErrorResponse			"error, error_description"
//	@Router			/v1/profile [put].
func (h *EditProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req editProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	updated, err := h.ProfileService.Edit(ctx, service.EditProfileInput{
		CallerUID: httpx.UserID(ctx),
		Config:    req.Config,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotSignedIn) {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", service.ErrNotSignedIn.Message)
			return
		}
		if ferr, ok := asFlow(err); ok {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_argument", ferr.Message)
			return
		}
		log.Error("profile edit failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to update profile")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, updated)
}
