package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"inventrack/internal/domain/product"
	"inventrack/internal/infrastructure/http/v1/dto"
)

// ProductService is the product store as seen by the HTTP layer.
type ProductService interface {
	Create(ctx context.Context, in product.CreateInput) (*product.CreateResult, error)
	Get(ctx context.Context, identifier string) (*product.Product, error)
	List(ctx context.Context, filter product.Filter) ([]*product.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Subcategories(ctx context.Context, category string) ([]string, error)
	Update(ctx context.Context, id int64, u product.Update) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// ProductHandler handles product endpoints.
type ProductHandler struct {
	*BaseHandler
	service ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service ProductService) *ProductHandler {
	return &ProductHandler{BaseHandler: base, service: service}
}

// List handles GET /api/products?category=&subcategory=
func (h *ProductHandler) List(c *gin.Context) {
	var q dto.ProductFilter
	if !h.BindQuery(c, &q) {
		return
	}

	items, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProducts(items))
}

// Categories handles GET /api/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	items, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Subcategories handles GET /api/subcategories?category=
func (h *ProductHandler) Subcategories(c *gin.Context) {
	items, err := h.service.Subcategories(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Get handles GET /api/product/:identifier (numeric id or product code).
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromProduct(p))
}

// Create handles POST /api/add
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	res, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.CreateProductResponse{ID: res.ID, ProductCode: res.ProductCode})
}

// Update handles POST /api/update/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	u, err := req.ToUpdate()
	if err != nil {
		h.Error(c, err)
		return
	}

	n, err := h.service.Update(c.Request.Context(), id, u)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.UpdatedResponse{Updated: n})
}

// Delete handles DELETE /api/delete/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	n, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.DeletedResponse{Deleted: n})
}
