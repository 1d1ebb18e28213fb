package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/PabloPavan/varejao_api/internal/products"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/go-chi/chi/v5"
)

const (
	msgProductCreated = "Produto criado com sucesso!"
	msgProductUpdated = "Produto atualizado com sucesso!"
	msgProductDeleted = "Produto excluído com sucesso!"
)

type ProductsService interface {
	Create(ctx context.Context, in products.CreateInput) (*products.Product, error)
	List(ctx context.Context) ([]*products.Product, error)
	GetByID(ctx context.Context, id string) (*products.Product, error)
	Update(ctx context.Context, id string, in products.UpdateInput) (*products.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductsHandler struct {
	Service ProductsService
}

// List Products
// @Summary List products
// @Tags products
// @Produce json
// @Success 200 {array} products.Product
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if list == nil {
		list = []*products.Product{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GetByID Product
// @Summary Get product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} products.Product
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *ProductsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create Product
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param body body ProductCreateDTO true "product"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /products [post]
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, r, err)
		return
	}

	p, err := h.Service.Create(r.Context(), req.Input())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(r.Context(), "product created",
		telemetry.LogString("event", "product.created"),
		telemetry.LogString("product.id", p.ID),
	)

	writeJSON(w, http.StatusCreated, ProductResponse{Message: msgProductCreated, Product: p})
}

// Update Product
// @Summary Update product
// @Description Partial update: only the fields present in the body change.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param body body ProductUpdateDTO true "fields to change"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} MessageResponse
// @Failure 404 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [put]
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req ProductUpdateDTO
	if err := decodeJSON(w, r, &req); err != nil {
		writeAppError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeAppError(w, r, err)
		return
	}

	p, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), req.Input())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{Message: msgProductUpdated, Product: p})
}

// Delete Product
// @Summary Delete product
// @Description Succeeds whether or not the product exists.
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} MessageResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeAppError(w, r, err)
		return
	}

	telemetry.LogInfo(r.Context(), "product deleted",
		telemetry.LogString("event", "product.deleted"),
		telemetry.LogString("product.id", id),
	)

	writeMessage(w, http.StatusOK, msgProductDeleted)
}
