package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graniteware/storefront/internal/api/middleware"
	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/service"
	"github.com/graniteware/storefront/pkg/errors"
)

// AddCartItemRequest represents the cart upsert payload
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity"`
}

// CartResponse represents the cart returned after every mutation
type CartResponse struct {
	Entries []CartEntryResponse `json:"entries"`
	State   domain.CartState    `json:"state"`
}

type CartEntryResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// ResolvedLineResponse is one catalog-joined cart line
type ResolvedLineResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  *string `json:"image_url,omitempty"`
	Quantity  int     `json:"quantity"`
}

// SummaryResponse couples the user's profile with the resolved cart
type SummaryResponse struct {
	User  domain.UserProfile     `json:"user"`
	Lines []ResolvedLineResponse `json:"lines"`
}

func cartResponse(cart domain.Cart) CartResponse {
	entries := make([]CartEntryResponse, len(cart.Entries))
	for i, e := range cart.Entries {
		entries[i] = CartEntryResponse{ProductID: e.ProductID, Quantity: e.Quantity}
	}
	return CartResponse{Entries: entries, State: cart.State}
}

func resolvedLines(lines []domain.ResolvedCartLine) []ResolvedLineResponse {
	out := make([]ResolvedLineResponse, len(lines))
	for i, line := range lines {
		out[i] = ResolvedLineResponse{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			ImageURL:  line.Product.ImageURL,
			Quantity:  line.Entry.Quantity,
		}
	}
	return out
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetSessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		lines, err := carts.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.Error("Failed to resolve cart", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"lines": resolvedLines(lines)})
	}
}

// HandleAddCartItem handles POST /v1/cart/items
func HandleAddCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetSessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cart, err := carts.AddOrUpdate(c.Request.Context(), token, req.ProductID, req.Quantity)
		if err != nil {
			if _, ok := err.(*errors.ErrInvalidArgument); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to add cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart))
	}
}

// HandleRemoveCartItem handles DELETE /v1/cart/items/:id
func HandleRemoveCartItem(carts *service.CartService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetSessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
			return
		}

		cart, err := carts.Remove(c.Request.Context(), token, productID)
		if err != nil {
			logger.Error("Failed to remove cart item", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, cartResponse(cart))
	}
}

// HandleCartSummary handles GET /v1/cart/summary
func HandleCartSummary(inquiries *service.InquiryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, userID, ok := sessionAndUser(c)
		if !ok {
			return
		}

		req, err := inquiries.BuildSummary(c.Request.Context(), token, userID)
		if err != nil {
			if _, ok := err.(*errors.ErrUserNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			logger.Error("Failed to build inquiry summary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, SummaryResponse{
			User:  req.User,
			Lines: resolvedLines(req.Lines),
		})
	}
}

// HandleSubmitInquiry handles POST /v1/cart/submit
func HandleSubmitInquiry(inquiries *service.InquiryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, userID, ok := sessionAndUser(c)
		if !ok {
			return
		}

		req, err := inquiries.BuildSummary(c.Request.Context(), token, userID)
		if err != nil {
			if _, ok := err.(*errors.ErrUserNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			logger.Error("Failed to build inquiry summary", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := inquiries.Submit(c.Request.Context(), token, req); err != nil {
			switch err.(type) {
			case *errors.ErrInvalidStateTransition:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case *errors.ErrTemplateUnavailable:
				logger.Error("Inquiry template unavailable", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "inquiry temporarily unavailable"})
			case *errors.ErrNotifierFailure:
				logger.Error("Inquiry delivery failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": "inquiry delivery failed"})
			default:
				logger.Error("Failed to submit inquiry", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "submitted"})
	}
}

// HandleConfirmInquiry handles POST /v1/cart/confirm
func HandleConfirmInquiry(inquiries *service.InquiryService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := middleware.GetSessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := inquiries.Confirm(c.Request.Context(), token); err != nil {
			if _, ok := err.(*errors.ErrInvalidStateTransition); ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to confirm inquiry", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
	}
}

func sessionAndUser(c *gin.Context) (string, uuid.UUID, bool) {
	token, ok := middleware.GetSessionToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", uuid.Nil, false
	}

	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", uuid.Nil, false
	}

	return token, userID, true
}
