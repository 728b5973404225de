package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/georgemunganga/vendor-api/internal/platform/httpx"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/api/users/register", h.registerUser)
	router.Get("/api/users/{id}", h.getUser)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.RegisterUser(r.Context(), req)
	switch {
	case errors.Is(err, ErrValidation):
		httpx.Fail(w, http.StatusBadRequest, "Please provide a valid email and a password of at least 8 characters")
		return
	case errors.Is(err, ErrEmailTaken):
		httpx.Fail(w, http.StatusConflict, "Email already registered")
		return
	case err != nil:
		h.log.Error("register user", zap.Error(err))
		httpx.Fail(w, http.StatusInternalServerError, "Server error while registering user")
		return
	}

	httpx.OK(w, http.StatusCreated, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Fail(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		h.log.Error("get user", zap.Int64("user_id", id), zap.Error(err))
		httpx.Fail(w, http.StatusInternalServerError, "Server error while fetching user")
		return
	}

	httpx.OK(w, http.StatusOK, user)
}
