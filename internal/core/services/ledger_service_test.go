package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
	portsrepo "github.com/minimarketpos/pos_backend/internal/core/ports/repositories"
	portssvc "github.com/minimarketpos/pos_backend/internal/core/ports/services"
	"github.com/minimarketpos/pos_backend/internal/core/services"
	"github.com/minimarketpos/pos_backend/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) SaveSale(ctx context.Context, sale domain.Sale, lines []domain.SaleLine) error {
	args := m.Called(ctx, sale, lines)
	return args.Error(0)
}

func (m *MockLedgerRepository) VoidSale(ctx context.Context, saleID string, reason string, voidedBy string, voidedAt time.Time) error {
	args := m.Called(ctx, saleID, reason, voidedBy, voidedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockLedgerRepository) FindSaleLines(ctx context.Context, saleID string) ([]domain.SaleLine, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleLine), args.Error(1)
}

func (m *MockLedgerRepository) ListSales(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeVoided)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Sale), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) SavePurchase(ctx context.Context, purchase domain.Purchase, lines []domain.PurchaseLine) error {
	args := m.Called(ctx, purchase, lines)
	return args.Error(0)
}

func (m *MockLedgerRepository) VoidPurchase(ctx context.Context, purchaseID string, reason string, voidedBy string, voidedAt time.Time) error {
	args := m.Called(ctx, purchaseID, reason, voidedBy, voidedAt)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockLedgerRepository) FindPurchaseLines(ctx context.Context, purchaseID string) ([]domain.PurchaseLine, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseLine), args.Error(1)
}

func (m *MockLedgerRepository) ListPurchases(ctx context.Context, limit int, nextToken *string, includeVoided bool) ([]domain.Purchase, *string, error) {
	args := m.Called(ctx, limit, nextToken, includeVoided)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Purchase), returnedNextToken, args.Error(2)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductByBarcode(ctx context.Context, barcode string) (*domain.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int64, updatedBy string) error {
	args := m.Called(ctx, tx, deltas, updatedBy)
	return args.Error(0)
}

// --- Mock SupplierRepository ---
type MockSupplierRepository struct {
	mock.Mock
}

var _ portsrepo.SupplierRepositoryFacade = (*MockSupplierRepository)(nil)

func (m *MockSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) UpdateSupplier(ctx context.Context, supplier domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) DeleteSupplier(ctx context.Context, supplierID string) error {
	args := m.Called(ctx, supplierID)
	return args.Error(0)
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo   *MockLedgerRepository
	mockProductRepo  *MockProductRepository
	mockSupplierRepo *MockSupplierRepository
	service          portssvc.LedgerSvcFacade

	userID   string
	productA domain.Product
	productB domain.Product
	productC domain.Product
	supplier domain.Supplier
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockLedgerRepo = new(MockLedgerRepository)
	s.mockProductRepo = new(MockProductRepository)
	s.mockSupplierRepo = new(MockSupplierRepository)
	s.service = services.NewLedgerService(s.mockLedgerRepo, s.mockProductRepo, s.mockSupplierRepo, nil)

	s.userID = uuid.NewString()
	s.productA = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Milk 1L",
		SalePrice: decimal.RequireFromString("5.00"),
		Stock:     10,
	}
	s.productB = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Bread",
		SalePrice: decimal.RequireFromString("2.50"),
		Stock:     2,
	}
	s.productC = domain.Product{
		ProductID:     uuid.NewString(),
		Name:          "Eggs dozen",
		PurchasePrice: decimal.RequireFromString("1.50"),
		Stock:         0,
	}
	s.supplier = domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       "Central Wholesale",
	}
}

func (s *LedgerServiceTestSuite) TestPostSale_Success() {
	ctx := context.Background()
	req := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{
			{ProductID: s.productA.ProductID, Quantity: 3},
		},
	}

	s.mockProductRepo.On("FindProductsByIDs", ctx, []string{s.productA.ProductID}).
		Return(map[string]domain.Product{s.productA.ProductID: s.productA}, nil).Once()
	s.mockLedgerRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleLine")).
		Return(nil).Once()

	sale, err := s.service.PostSale(ctx, s.userID, req)

	s.Require().NoError(err)
	s.Require().NotNil(sale)
	s.NotEmpty(sale.SaleID)
	s.Equal(s.userID, sale.UserID)
	s.Equal(domain.StateActive, sale.State)
	s.True(sale.Total.Equal(decimal.RequireFromString("15.00")), "total was %s", sale.Total)
	s.Require().Len(sale.Lines, 1)
	s.Equal(int64(3), sale.Lines[0].Quantity)
	s.True(sale.Lines[0].UnitPrice.Equal(s.productA.SalePrice))
	s.True(sale.Lines[0].Subtotal.Equal(decimal.RequireFromString("15.00")))

	s.mockProductRepo.AssertExpectations(s.T())
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostSale_PriceOverride() {
	ctx := context.Background()
	override := decimal.RequireFromString("4.25")
	req := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{
			{ProductID: s.productA.ProductID, Quantity: 2, UnitPrice: &override},
		},
	}

	s.mockProductRepo.On("FindProductsByIDs", ctx, []string{s.productA.ProductID}).
		Return(map[string]domain.Product{s.productA.ProductID: s.productA}, nil).Once()
	s.mockLedgerRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleLine")).
		Return(nil).Once()

	sale, err := s.service.PostSale(ctx, s.userID, req)

	s.Require().NoError(err)
	s.True(sale.Total.Equal(decimal.RequireFromString("8.50")), "total was %s", sale.Total)
	s.True(sale.Lines[0].UnitPrice.Equal(override))
}

func (s *LedgerServiceTestSuite) TestPostSale_InsufficientStock() {
	ctx := context.Background()
	req := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{
			{ProductID: s.productB.ProductID, Quantity: 5},
		},
	}

	stockErr := &apperrors.InsufficientStockError{
		ProductID:   s.productB.ProductID,
		ProductName: s.productB.Name,
		Available:   2,
		Requested:   5,
	}

	s.mockProductRepo.On("FindProductsByIDs", ctx, []string{s.productB.ProductID}).
		Return(map[string]domain.Product{s.productB.ProductID: s.productB}, nil).Once()
	s.mockLedgerRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("[]domain.SaleLine")).
		Return(stockErr).Once()

	sale, err := s.service.PostSale(ctx, s.userID, req)

	s.Require().Error(err)
	s.Nil(sale)
	var insufficientErr *apperrors.InsufficientStockError
	s.Require().ErrorAs(err, &insufficientErr)
	s.Equal(int64(2), insufficientErr.Available)
	s.Equal(int64(5), insufficientErr.Requested)
	s.Contains(insufficientErr.Error(), s.productB.Name)
}

func (s *LedgerServiceTestSuite) TestPostSale_UnknownProduct() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.PostSaleRequest{
		Lines: []dto.PostLineRequest{
			{ProductID: missingID, Quantity: 1},
		},
	}

	s.mockProductRepo.On("FindProductsByIDs", ctx, []string{missingID}).
		Return(map[string]domain.Product{}, nil).Once()

	_, err := s.service.PostSale(ctx, s.userID, req)

	s.Require().Error(err)
	s.ErrorIs(err, services.ErrProductNotFound)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SaveSale", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestPostSale_NoLines() {
	_, err := s.service.PostSale(context.Background(), s.userID, dto.PostSaleRequest{})
	s.Require().Error(err)
	s.ErrorIs(err, services.ErrNoLines)
}

func (s *LedgerServiceTestSuite) TestPostPurchase_Success() {
	ctx := context.Background()
	req := dto.PostPurchaseRequest{
		SupplierID: s.supplier.SupplierID,
		Lines: []dto.PostLineRequest{
			{ProductID: s.productC.ProductID, Quantity: 20},
		},
	}

	s.mockSupplierRepo.On("FindSupplierByID", ctx, s.supplier.SupplierID).
		Return(&s.supplier, nil).Once()
	s.mockProductRepo.On("FindProductsByIDs", ctx, []string{s.productC.ProductID}).
		Return(map[string]domain.Product{s.productC.ProductID: s.productC}, nil).Once()
	s.mockLedgerRepo.On("SavePurchase", ctx, mock.AnythingOfType("domain.Purchase"), mock.AnythingOfType("[]domain.PurchaseLine")).
		Return(nil).Once()

	purchase, err := s.service.PostPurchase(ctx, s.userID, req)

	s.Require().NoError(err)
	s.Require().NotNil(purchase)
	s.Equal(s.supplier.SupplierID, purchase.SupplierID)
	s.Equal(domain.StateActive, purchase.State)
	s.True(purchase.Total.Equal(decimal.RequireFromString("30.00")), "total was %s", purchase.Total)
	s.Require().Len(purchase.Lines, 1)
	s.True(purchase.Lines[0].UnitPrice.Equal(s.productC.PurchasePrice))

	s.mockSupplierRepo.AssertExpectations(s.T())
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestPostPurchase_UnknownSupplier() {
	ctx := context.Background()
	req := dto.PostPurchaseRequest{
		SupplierID: uuid.NewString(),
		Lines: []dto.PostLineRequest{
			{ProductID: s.productC.ProductID, Quantity: 1},
		},
	}

	s.mockSupplierRepo.On("FindSupplierByID", ctx, req.SupplierID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.PostPurchase(ctx, s.userID, req)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "SavePurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestVoidSale_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()

	s.mockLedgerRepo.On("VoidSale", ctx, saleID, "customer returned goods", s.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	s.mockLedgerRepo.On("FindSaleLines", ctx, saleID).
		Return([]domain.SaleLine{{ProductID: s.productA.ProductID, Quantity: 3}}, nil).Once()

	err := s.service.VoidSale(ctx, s.userID, saleID, "customer returned goods")

	s.Require().NoError(err)
	s.mockLedgerRepo.AssertExpectations(s.T())
}

func (s *LedgerServiceTestSuite) TestVoidSale_AlreadyVoided() {
	ctx := context.Background()
	saleID := uuid.NewString()

	s.mockLedgerRepo.On("VoidSale", ctx, saleID, "dup", s.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrAlreadyVoided).Once()

	err := s.service.VoidSale(ctx, s.userID, saleID, "dup")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyVoided)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *LedgerServiceTestSuite) TestVoidSale_EmptyReason() {
	err := s.service.VoidSale(context.Background(), s.userID, uuid.NewString(), "")
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockLedgerRepo.AssertNotCalled(s.T(), "VoidSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *LedgerServiceTestSuite) TestVoidPurchase_AlreadyVoided() {
	ctx := context.Background()
	purchaseID := uuid.NewString()

	s.mockLedgerRepo.On("VoidPurchase", ctx, purchaseID, "wrong delivery", s.userID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrAlreadyVoided).Once()

	err := s.service.VoidPurchase(ctx, s.userID, purchaseID, "wrong delivery")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrAlreadyVoided)
}

func (s *LedgerServiceTestSuite) TestGetSale_AttachesLines() {
	ctx := context.Background()
	saleID := uuid.NewString()
	header := &domain.Sale{SaleID: saleID, State: domain.StateActive}
	lines := []domain.SaleLine{
		{LineID: uuid.NewString(), SaleID: saleID, ProductID: s.productA.ProductID, Quantity: 1},
	}

	s.mockLedgerRepo.On("FindSaleByID", ctx, saleID).Return(header, nil).Once()
	s.mockLedgerRepo.On("FindSaleLines", ctx, saleID).Return(lines, nil).Once()

	sale, err := s.service.GetSale(ctx, saleID)

	s.Require().NoError(err)
	s.Require().Len(sale.Lines, 1)
	s.Equal(lines[0].LineID, sale.Lines[0].LineID)
}

func (s *LedgerServiceTestSuite) TestListSales_PassesPagination() {
	ctx := context.Background()
	token := "cursor"
	params := dto.ListSalesParams{Limit: 5, NextToken: &token, IncludeVoided: true}

	s.mockLedgerRepo.On("ListSales", ctx, 5, &token, true).
		Return([]domain.Sale{{SaleID: uuid.NewString()}}, "next-cursor", nil).Once()

	resp, err := s.service.ListSales(ctx, params)

	s.Require().NoError(err)
	s.Require().Len(resp.Sales, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next-cursor", *resp.NextToken)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
