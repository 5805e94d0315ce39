package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
	"github.com/minimarketpos/pos_backend/internal/middleware"
	"github.com/minimarketpos/pos_backend/internal/utils"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockLedgerService) GetPurchase(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockLedgerService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSalesResponse), args.Error(1)
}

func (m *MockLedgerService) ListPurchases(ctx context.Context, params dto.ListPurchasesParams) (*dto.ListPurchasesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPurchasesResponse), args.Error(1)
}

func (m *MockLedgerService) PostSale(ctx context.Context, userID string, req dto.PostSaleRequest) (*domain.Sale, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockLedgerService) PostPurchase(ctx context.Context, userID string, req dto.PostPurchaseRequest) (*domain.Purchase, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockLedgerService) VoidSale(ctx context.Context, userID string, saleID string, reason string) error {
	args := m.Called(ctx, userID, saleID, reason)
	return args.Error(0)
}

func (m *MockLedgerService) VoidPurchase(ctx context.Context, userID string, purchaseID string, reason string) error {
	args := m.Called(ctx, userID, purchaseID, reason)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Test Suite ---
type LedgerHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockLedgerService *MockLedgerService
	jwtSecret         string
	cashierID         string
	adminID           string
}

func (s *LedgerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.cashierID = uuid.NewString()
	s.adminID = uuid.NewString()

	s.mockLedgerService = new(MockLedgerService)

	s.router = gin.New()
	v1 := s.router.Group("/api/v1", middleware.AuthMiddleware(s.jwtSecret))
	registerLedgerRoutes(v1, s.mockLedgerService, middleware.RequireRole(domain.RoleAdmin))
}

// tokenFor mints a short-lived access token for the given identity.
func (s *LedgerHandlerTestSuite) tokenFor(userID string, role domain.UserRole) string {
	token, err := utils.GenerateJWT(userID, string(role), s.jwtSecret, time.Hour, "pos-test")
	s.Require().NoError(err)
	return token
}

func (s *LedgerHandlerTestSuite) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *LedgerHandlerTestSuite) TestPostSale_Success() {
	saleID := uuid.NewString()
	sale := &domain.Sale{
		SaleID:   saleID,
		UserID:   s.cashierID,
		SaleDate: time.Now().UTC(),
		Total:    decimal.RequireFromString("15.00"),
		State:    domain.StateActive,
	}
	s.mockLedgerService.On("PostSale", mock.Anything, s.cashierID, mock.AnythingOfType("dto.PostSaleRequest")).
		Return(sale, nil).Once()

	body := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{{ProductID: uuid.NewString(), Quantity: 3}},
	}
	w := s.doJSON(http.MethodPost, "/api/v1/sales", s.tokenFor(s.cashierID, domain.RoleCashier), body)

	s.Equal(http.StatusCreated, w.Code)
	var resp dto.SaleResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(saleID, resp.SaleID)
	s.Equal("ACTIVE", resp.State)
	s.mockLedgerService.AssertExpectations(s.T())
}

func (s *LedgerHandlerTestSuite) TestPostSale_InsufficientStock() {
	productID := uuid.NewString()
	stockErr := &apperrors.InsufficientStockError{
		ProductID:   productID,
		ProductName: "Milk 1L",
		Available:   2,
		Requested:   5,
	}
	s.mockLedgerService.On("PostSale", mock.Anything, s.cashierID, mock.AnythingOfType("dto.PostSaleRequest")).
		Return(nil, stockErr).Once()

	body := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{{ProductID: productID, Quantity: 5}},
	}
	w := s.doJSON(http.MethodPost, "/api/v1/sales", s.tokenFor(s.cashierID, domain.RoleCashier), body)

	s.Equal(http.StatusConflict, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(productID, resp["productID"])
	s.Equal(float64(2), resp["available"])
	s.Equal(float64(5), resp["requested"])
}

func (s *LedgerHandlerTestSuite) TestPostSale_ProductDeletedMidPosting() {
	// The product existed at price-lookup time but was gone when the
	// repository locked the rows, so the error carries ErrNotFound
	// rather than the service's pre-check sentinel.
	productID := uuid.NewString()
	s.mockLedgerService.On("PostSale", mock.Anything, s.cashierID, mock.AnythingOfType("dto.PostSaleRequest")).
		Return(nil, fmt.Errorf("lock products: %w", apperrors.ErrNotFound)).Once()

	body := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{{ProductID: productID, Quantity: 1}},
	}
	w := s.doJSON(http.MethodPost, "/api/v1/sales", s.tokenFor(s.cashierID, domain.RoleCashier), body)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *LedgerHandlerTestSuite) TestPostSale_NoToken() {
	body := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	}
	w := s.doJSON(http.MethodPost, "/api/v1/sales", "", body)

	s.Equal(http.StatusUnauthorized, w.Code)
	s.mockLedgerService.AssertNotCalled(s.T(), "PostSale", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerHandlerTestSuite) TestVoidSale_CashierForbidden() {
	saleID := uuid.NewString()
	body := dto.VoidTransactionRequest{Reason: "wrong items"}
	w := s.doJSON(http.MethodPost, "/api/v1/sales/"+saleID+"/void", s.tokenFor(s.cashierID, domain.RoleCashier), body)

	s.Equal(http.StatusForbidden, w.Code)
	s.mockLedgerService.AssertNotCalled(s.T(), "VoidSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerHandlerTestSuite) TestVoidSale_AdminSuccess() {
	saleID := uuid.NewString()
	s.mockLedgerService.On("VoidSale", mock.Anything, s.adminID, saleID, "wrong items").Return(nil).Once()

	body := dto.VoidTransactionRequest{Reason: "wrong items"}
	w := s.doJSON(http.MethodPost, "/api/v1/sales/"+saleID+"/void", s.tokenFor(s.adminID, domain.RoleAdmin), body)

	s.Equal(http.StatusNoContent, w.Code)
	s.mockLedgerService.AssertExpectations(s.T())
}

func (s *LedgerHandlerTestSuite) TestVoidSale_AlreadyVoided() {
	saleID := uuid.NewString()
	s.mockLedgerService.On("VoidSale", mock.Anything, s.adminID, saleID, "duplicate").
		Return(apperrors.ErrAlreadyVoided).Once()

	body := dto.VoidTransactionRequest{Reason: "duplicate"}
	w := s.doJSON(http.MethodPost, "/api/v1/sales/"+saleID+"/void", s.tokenFor(s.adminID, domain.RoleAdmin), body)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *LedgerHandlerTestSuite) TestVoidSale_MissingReason() {
	saleID := uuid.NewString()
	w := s.doJSON(http.MethodPost, "/api/v1/sales/"+saleID+"/void", s.tokenFor(s.adminID, domain.RoleAdmin), map[string]string{})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockLedgerService.AssertNotCalled(s.T(), "VoidSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerHandlerTestSuite) TestPostPurchase_CashierForbidden() {
	body := dto.PostPurchaseRequest{
		SupplierID: uuid.NewString(),
		Lines:      []dto.PostLineRequest{{ProductID: uuid.NewString(), Quantity: 10}},
	}
	w := s.doJSON(http.MethodPost, "/api/v1/purchases", s.tokenFor(s.cashierID, domain.RoleCashier), body)

	s.Equal(http.StatusForbidden, w.Code)
	s.mockLedgerService.AssertNotCalled(s.T(), "PostPurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerHandlerTestSuite) TestGetSale_NotFound() {
	saleID := uuid.NewString()
	s.mockLedgerService.On("GetSale", mock.Anything, saleID).Return(nil, apperrors.ErrNotFound).Once()

	w := s.doJSON(http.MethodGet, "/api/v1/sales/"+saleID, s.tokenFor(s.cashierID, domain.RoleCashier), nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *LedgerHandlerTestSuite) TestListSales_InvalidToken() {
	s.mockLedgerService.On("ListSales", mock.Anything, mock.AnythingOfType("dto.ListSalesParams")).
		Return(nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", nil)).Once()

	w := s.doJSON(http.MethodGet, "/api/v1/sales?nextToken=garbage", s.tokenFor(s.cashierID, domain.RoleCashier), nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

func TestLedgerHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
