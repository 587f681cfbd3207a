package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loftpos/concessions-api/internal/application/service"
	"github.com/loftpos/concessions-api/internal/domain/repository"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/request"
	"github.com/loftpos/concessions-api/internal/presentation/http/dto/response"
	"github.com/loftpos/concessions-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	auditService   *service.AuditService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, auditService *service.AuditService) *ProductHandler {
	return &ProductHandler{productService: productService, auditService: auditService}
}

// Create handles product creation
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		response.BadRequest(c, "Invalid price")
		return
	}
	costPrice := decimal.Zero
	if req.CostPrice != "" {
		costPrice, err = decimal.NewFromString(req.CostPrice)
		if err != nil {
			response.BadRequest(c, "Invalid cost price")
			return
		}
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		Price:             price,
		CostPrice:         costPrice,
		ImageURL:          req.ImageURL,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		CategoryID:        req.CategoryID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "create", "product", product.ID.String(), map[string]interface{}{
		"name":  product.Name,
		"price": product.Price,
	})

	response.Created(c, "Product created successfully", product)
}

// Get handles fetching a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles partial product updates
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		ImageURL:          req.ImageURL,
		IsActive:          req.IsActive,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: req.LowStockThreshold,
		CategoryID:        req.CategoryID,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil {
			response.BadRequest(c, "Invalid price")
			return
		}
		input.Price = &price
	}
	if req.CostPrice != nil {
		costPrice, err := decimal.NewFromString(*req.CostPrice)
		if err != nil {
			response.BadRequest(c, "Invalid cost price")
			return
		}
		input.CostPrice = &costPrice
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "update", "product", id.String(), nil)

	response.OK(c, "Product updated successfully", product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.auditService.Record(c.Request.Context(), GetActor(c), "delete", "product", id.String(), nil)

	response.OK(c, "Product deleted successfully", nil)
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		ActiveOnly: filter.ActiveOnly,
		LowStock:   filter.LowStock,
	}

	if filter.CategoryID != "" {
		catID, err := uuid.Parse(filter.CategoryID)
		if err == nil {
			params.CategoryID = &catID
		}
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// GetLowStock lists products at or below their low stock threshold
func (h *ProductHandler) GetLowStock(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		LowStock: true,
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Low stock products retrieved successfully", result)
}
