package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minimarketpos/pos_backend/internal/apperrors"
	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

func TestSaleLineDeltas(t *testing.T) {
	lines := []domain.SaleLine{
		{ProductID: "prod_a", Quantity: 2},
		{ProductID: "prod_b", Quantity: 1},
		{ProductID: "prod_a", Quantity: 3},
	}

	t.Run("posting sums repeated products", func(t *testing.T) {
		deltas := domain.SaleLineDeltas(lines, -1)
		assert.Equal(t, map[string]int64{"prod_a": -5, "prod_b": -1}, deltas)
	})

	t.Run("voiding is the exact inverse", func(t *testing.T) {
		deltas := domain.SaleLineDeltas(lines, 1)
		assert.Equal(t, map[string]int64{"prod_a": 5, "prod_b": 1}, deltas)
	})
}

func TestPurchaseLineDeltas(t *testing.T) {
	lines := []domain.PurchaseLine{
		{ProductID: "prod_c", Quantity: 20},
		{ProductID: "prod_c", Quantity: 5},
		{ProductID: "prod_d", Quantity: 1},
	}

	assert.Equal(t, map[string]int64{"prod_c": 25, "prod_d": 1},
		domain.PurchaseLineDeltas(lines, 1))
	assert.Equal(t, map[string]int64{"prod_c": -25, "prod_d": -1},
		domain.PurchaseLineDeltas(lines, -1))
}

func TestCheckStockSufficiency(t *testing.T) {
	products := map[string]domain.Product{
		"prod_a": {ProductID: "prod_a", Name: "Milk 1L", Stock: 10},
		"prod_b": {ProductID: "prod_b", Name: "Bread", Stock: 2},
	}

	tests := []struct {
		name    string
		deltas  map[string]int64
		wantErr bool
	}{
		{
			name:    "enough stock",
			deltas:  map[string]int64{"prod_a": -3},
			wantErr: false,
		},
		{
			name:    "taking exactly the available stock passes",
			deltas:  map[string]int64{"prod_b": -2},
			wantErr: false,
		},
		{
			name:    "one unit short",
			deltas:  map[string]int64{"prod_b": -3},
			wantErr: true,
		},
		{
			name:    "combined demand exceeds stock though each line alone fits",
			deltas:  domain.SaleLineDeltas([]domain.SaleLine{{ProductID: "prod_a", Quantity: 6}, {ProductID: "prod_a", Quantity: 6}}, -1),
			wantErr: true,
		},
		{
			name:    "positive deltas never fail",
			deltas:  map[string]int64{"prod_b": 100},
			wantErr: false,
		},
		{
			name:    "zero delta passes",
			deltas:  map[string]int64{"prod_b": 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.CheckStockSufficiency(products, tt.deltas)
			if tt.wantErr {
				var stockErr *apperrors.InsufficientStockError
				require.ErrorAs(t, err, &stockErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckStockSufficiency_ErrorDetails(t *testing.T) {
	products := map[string]domain.Product{
		"prod_b": {ProductID: "prod_b", Name: "Bread", Stock: 2},
	}

	err := domain.CheckStockSufficiency(products, map[string]int64{"prod_b": -5})

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "prod_b", stockErr.ProductID)
	assert.Equal(t, "Bread", stockErr.ProductName)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(5), stockErr.Requested)
	assert.Contains(t, err.Error(), "Bread")
}

func TestCheckStockSufficiency_PurchaseVoidGuard(t *testing.T) {
	// Delivered 20 units of which 18 were sold on; removing the intake
	// again would drive stock negative.
	products := map[string]domain.Product{
		"prod_c": {ProductID: "prod_c", Name: "Eggs dozen", Stock: 2},
	}
	deltas := domain.PurchaseLineDeltas([]domain.PurchaseLine{{ProductID: "prod_c", Quantity: 20}}, -1)

	err := domain.CheckStockSufficiency(products, deltas)

	var stockErr *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(20), stockErr.Requested)
}

func TestTransactionState_EnsureVoidable(t *testing.T) {
	assert.NoError(t, domain.StateActive.EnsureVoidable())

	err := domain.StateVoided.EnsureVoidable()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyVoided)
	// A rejected void is a state conflict, not a missing resource
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Error(t, domain.TransactionState("").EnsureVoidable())
}
