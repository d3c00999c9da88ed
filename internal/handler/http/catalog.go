package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/internal/service"
	apperrors "github.com/storefrontgo/dashboard/pkg/errors"
	"github.com/storefrontgo/dashboard/pkg/httputil"
	"github.com/storefrontgo/dashboard/pkg/validator"
)

// ProductLister fetches the catalog for the dashboard product view.
type ProductLister interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// NotificationLister fetches the notification feed.
type NotificationLister interface {
	List(ctx context.Context) ([]domain.Notification, error)
}

// CatalogHandler proxies the product catalog and notification feed, and
// exposes admin catalog management.
type CatalogHandler struct {
	products      ProductLister
	notifications NotificationLister
	manager       *service.CatalogService
	log           *slog.Logger
}

// NewCatalogHandler creates the catalog handler.
func NewCatalogHandler(products ProductLister, notifications NotificationLister, manager *service.CatalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{products: products, notifications: notifications, manager: manager, log: log}
}

type createProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
}

// ListProducts serves the paginated product catalog.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}

	page, perPage := pageParams(r)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: httputil.Paginate(products, page, perPage)})
}

// CreateProduct adds a product to the catalog. Admin only.
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	var req createProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.manager.Create(r.Context(), identity, domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// DeleteProduct removes a product from the catalog. Admin only.
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)

	productID, err := pathID(r, "productID")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be numeric"), h.log)
		return
	}

	if err := h.manager.Delete(r.Context(), identity, productID); err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListNotifications serves the notification feed.
func (h *CatalogHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r)
	if !identity.IsAuthenticated() {
		httputil.WriteError(w, r, errUnauthenticated("notification feed"), h.log)
		return
	}

	notifications, err := h.notifications.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.log)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: notifications})
}
