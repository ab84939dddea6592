package http

import (
	"net/http"

	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

type UserHandler struct {
	service ports.UserService
	logger  logging.Logger
}

func NewUserHandler(service ports.UserService, logger logging.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}

	user, err := h.service.GetByID(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Edit(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}

	var req editUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := validate(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	user, err := h.service.Edit(r.Context(), principal.UserID, domain.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
