package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/vncsmyrnk/bookmarks/internal/core/domain"
	"github.com/vncsmyrnk/bookmarks/internal/core/ports"
	"github.com/vncsmyrnk/bookmarks/internal/logging"
)

type BookmarkHandler struct {
	service ports.BookmarkService
	logger  logging.Logger
}

func NewBookmarkHandler(service ports.BookmarkService, logger logging.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		service: service,
		logger:  logger,
	}
}

func bookmarkID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, badRequest("invalid bookmark id")
	}
	return id, nil
}

// Create godoc
// @Summary      Creates a bookmark
// @Description  Stores a bookmark owned by the authenticated user.
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Success      201
// @Failure      400
// @Failure      401
// @Router       /bookmarks [post]
func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}

	var req createBookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := validate(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	bookmark, err := h.service.Create(r.Context(), principal.UserID, domain.BookmarkFields{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookmark)
}

// List godoc
// @Summary      Lists the user's bookmarks
// @Tags         bookmarks
// @Produce      json
// @Success      200
// @Failure      401
// @Router       /bookmarks [get]
func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}

	bookmarks, err := h.service.ListByOwner(r.Context(), principal.UserID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmarks)
}

func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}
	id, err := bookmarkID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	bookmark, err := h.service.GetByID(r.Context(), principal.UserID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

func (h *BookmarkHandler) Edit(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}
	id, err := bookmarkID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req editBookmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if err := validate(req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	bookmark, err := h.service.Update(r.Context(), principal.UserID, id, domain.BookmarkPatch{
		Title:       req.Title,
		Link:        req.Link,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, bookmark)
}

// Delete godoc
// @Summary      Deletes a bookmark
// @Description  Removes the bookmark and returns its last stored state.
// @Tags         bookmarks
// @Produce      json
// @Success      200
// @Failure      401
// @Failure      403
// @Router       /bookmarks/{id} [delete]
func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		writeError(w, r, h.logger, domain.ErrTokenInvalid)
		return
	}
	id, err := bookmarkID(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	removed, err := h.service.Delete(r.Context(), principal.UserID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, removed)
}
