package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/api/middleware"
	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/repository"
	"github.com/graniteware/storefront/internal/service"
	"github.com/graniteware/storefront/pkg/errors"
)

// ProductResponse represents a catalog entry
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url,omitempty"`
	CategoryID  int64   `json:"category_id"`
}

// ProductDetailResponse adds the session's cart membership flag
type ProductDetailResponse struct {
	ProductResponse
	ExistsInCart bool `json:"exists_in_cart"`
}

// CategoryResponse represents a browsing category
type CategoryResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

func productResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
	}
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categoryID *int64
		if raw := c.Query("category_id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
				return
			}
			categoryID = &id
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if err != nil || limit < 1 || limit > 100 {
			limit = 50
		}

		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			offset = 0
		}

		products, err := repos.Product.List(c.Request.Context(), categoryID, limit, offset)
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]ProductResponse, len(products))
		for i, p := range products {
			responses[i] = productResponse(p)
		}

		c.JSON(http.StatusOK, gin.H{
			"products": responses,
			"limit":    limit,
			"offset":   offset,
		})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(repos *repository.Repositories, carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		product, err := repos.Product.GetByID(c.Request.Context(), productID)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Error("Failed to get product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		existsInCart := false
		if token, ok := middleware.GetSessionToken(c); ok {
			cart, err := carts.Load(c.Request.Context(), token)
			if err == nil {
				existsInCart = cart.Contains(productID)
			}
		}

		c.JSON(http.StatusOK, ProductDetailResponse{
			ProductResponse: productResponse(product),
			ExistsInCart:    existsInCart,
		})
	}
}

// HandleListCategories handles GET /v1/categories
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := repos.Category.List(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]CategoryResponse, len(categories))
		for i, cat := range categories {
			responses[i] = CategoryResponse{
				ID:           cat.ID,
				Name:         cat.Name,
				DisplayOrder: cat.DisplayOrder,
			}
		}

		c.JSON(http.StatusOK, gin.H{"categories": responses})
	}
}
