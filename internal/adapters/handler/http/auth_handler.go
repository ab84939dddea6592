package http

import (
	"net/http"

	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

type AuthHandler struct {
	authService ports.AuthService
	logger      logging.Logger
}

func NewAuthHandler(authService ports.AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *AuthHandler) credentials(w http.ResponseWriter, r *http.Request) (ports.Credentials, error) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return ports.Credentials{}, err
	}
	if err := validate(req); err != nil {
		return ports.Credentials{}, err
	}
	return ports.Credentials{Email: req.Email, Password: req.Password}, nil
}

// SignUp godoc
// @Summary      Creates an account
// @Description  Stores a new user and returns its first access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	creds, err := h.credentials(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.authService.SignUp(r.Context(), creds)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, token)
}

// SignIn godoc
// @Summary      Signs a user in
// @Description  Exchanges email and password for a 15 minute access token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	creds, err := h.credentials(w, r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	token, err := h.authService.SignIn(r.Context(), creds)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, token)
}
