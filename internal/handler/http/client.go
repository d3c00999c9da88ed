package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/service"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/httputil"
	"github.com/storefrontgo/dashboard/pkg/validator"
)

// ClientHandler exposes the admin clients panel.
type ClientHandler struct {
	clients *service.ClientService
	log     *slog.Logger
}

// NewClientHandler creates the client handler.
func NewClientHandler(clients *service.ClientService, log *slog.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, log: log}
}

// Routes mounts the client endpoints.
func (h *ClientHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Delete("/{clientID}", h.remove)
}

type createClientRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
}

func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	clients, err := h.clients.List(r.Context(), identity)
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}

	page, perPage := pageParams(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: httputil.Paginate(clients, page, perPage)})
}

func (h *ClientHandler) create(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	var req createClientRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	client, err := h.clients.Create(r.Context(), identity, domain.Client{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: client})
}

func (h *ClientHandler) remove(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	clientID, err := pathID(r, "clientID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("client id must be numeric"), h.log)
		return
	}

	if err := h.clients.Delete(r.Context(), identity, clientID); err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
