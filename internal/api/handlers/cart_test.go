package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/graniteware/storefront/internal/api/middleware"
	"github.com/graniteware/storefront/internal/config"
	"github.com/graniteware/storefront/internal/domain"
	"github.com/graniteware/storefront/internal/service"
	"github.com/graniteware/storefront/internal/session"
	"github.com/graniteware/storefront/pkg/errors"
)

type stubProductRepo struct {
	products map[int64]domain.Product
}

func (s *stubProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: "x"}
}

func (s *stubProductRepo) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := make(map[int64]domain.Product)
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubProductRepo) List(ctx context.Context, categoryID *int64, limit, offset int) ([]*domain.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Create(ctx context.Context, p *domain.Product) error { return nil }
func (s *stubProductRepo) Update(ctx context.Context, p *domain.Product) error { return nil }
func (s *stubProductRepo) Delete(ctx context.Context, id int64) error          { return nil }

type stubUserRepo struct {
	user *domain.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: id.String()}
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, &errors.ErrNotFound{Resource: "user", ID: email}
}

func (s *stubUserRepo) Create(ctx context.Context, u *domain.User) error { return nil }

type recordingNotifier struct {
	sends int
}

func (r *recordingNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	r.sends++
	return nil
}

const cookieName = "storefront_session"

func newTestRouter(t *testing.T) (*gin.Engine, *recordingNotifier) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUserRepo{user: &domain.User{
		ID:           uuid.New(),
		FullName:     "Jane Doe",
		Email:        "jane@example.com",
		Phone:        "+1 555 0100",
		PasswordHash: string(hash),
		IsActive:     true,
	}}

	products := &stubProductRepo{products: map[int64]domain.Product{
		7: {ID: 7, Name: "Granite Mortar", Price: 39.90},
		3: {ID: 3, Name: "Slate Tray", Price: 24.50},
	}}

	templatePath := filepath.Join(t.TempDir(), "inquiry.html")
	require.NoError(t, os.WriteFile(templatePath, []byte("%s %s %s %s"), 0o644))

	logger := zap.NewNop()
	store := session.NewMemoryStore(10 * time.Minute)
	carts := service.NewCartService(store, products, logger)
	notifier := &recordingNotifier{}
	inquiries := service.NewInquiryService(store, users, carts, notifier, config.InquiryConfig{
		StaffEmail:   "staff@example.com",
		Subject:      "New Inquiry",
		TemplatePath: templatePath,
	}, logger)
	auth := service.NewAuthService(users, logger)

	router := gin.New()
	router.Use(middleware.SessionMiddleware(config.SessionConfig{CookieName: cookieName}))

	v1 := router.Group("/v1")
	v1.POST("/auth/login", HandleLogin(auth, store, logger))
	cart := v1.Group("/cart")
	cart.Use(middleware.RequireUser(store, logger))
	cart.GET("", HandleGetCart(carts, logger))
	cart.POST("/items", HandleAddCartItem(carts, logger))
	cart.DELETE("/items/:id", HandleRemoveCartItem(carts, logger))
	cart.GET("/summary", HandleCartSummary(inquiries, logger))
	cart.POST("/submit", HandleSubmitInquiry(inquiries, logger))
	cart.POST("/confirm", HandleConfirmInquiry(inquiries, logger))

	return router, notifier
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine, token string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/v1/auth/login", token, gin.H{
		"email":    "jane@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCartRoutesRequireLogin(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", "anon-token", gin.H{
		"product_id": 7, "quantity": 1,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartFlow(t *testing.T) {
	router, notifier := newTestRouter(t)
	token := uuid.New().String()
	login(t, router, token)

	// Add two products, re-add the first with a new quantity.
	for _, payload := range []gin.H{
		{"product_id": 7, "quantity": 1},
		{"product_id": 3, "quantity": 2},
		{"product_id": 7, "quantity": 5},
	} {
		w := doJSON(t, router, http.MethodPost, "/v1/cart/items", token, payload)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	var cart CartResponse
	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", token, gin.H{"product_id": 3, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Entries, 2)
	assert.Equal(t, int64(7), cart.Entries[0].ProductID)
	assert.Equal(t, 5, cart.Entries[0].Quantity)

	// Summary carries the profile and resolved lines.
	w = doJSON(t, router, http.MethodGet, "/v1/cart/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, "Jane Doe", summary.User.FullName)
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "Granite Mortar", summary.Lines[0].Name)

	// Submit sends exactly one mail and keeps the cart.
	w = doJSON(t, router, http.MethodPost, "/v1/cart/submit", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, notifier.sends)

	w = doJSON(t, router, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view struct {
		Lines []ResolvedLineResponse `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Len(t, view.Lines, 2)

	// Confirm clears the whole session, cart and login binding included.
	w = doJSON(t, router, http.MethodPost, "/v1/cart/confirm", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	login(t, router, token)
	w = doJSON(t, router, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Lines)
}

func TestAddCartItemRejectsBadProductID(t *testing.T) {
	router, _ := newTestRouter(t)
	token := uuid.New().String()
	login(t, router, token)

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", token, gin.H{
		"product_id": -2, "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmBeforeSubmitIsRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	token := uuid.New().String()
	login(t, router, token)

	w := doJSON(t, router, http.MethodPost, "/v1/cart/items", token, gin.H{
		"product_id": 7, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/v1/cart/confirm", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
