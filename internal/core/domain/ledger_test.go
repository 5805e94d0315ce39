package domain_test

import (
	"testing"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubtotalOf(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int64
		unitPrice decimal.Decimal
		want      decimal.Decimal
	}{
		{
			name:      "whole units",
			quantity:  3,
			unitPrice: decimal.NewFromFloat(5.00),
			want:      decimal.NewFromFloat(15.00),
		},
		{
			name:      "fractional price",
			quantity:  20,
			unitPrice: decimal.NewFromFloat(1.50),
			want:      decimal.NewFromFloat(30.00),
		},
		{
			name:      "single unit",
			quantity:  1,
			unitPrice: decimal.NewFromFloat(0.99),
			want:      decimal.NewFromFloat(0.99),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.SubtotalOf(tt.quantity, tt.unitPrice)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestSaleLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.SaleLine
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid line",
			line: domain.SaleLine{
				LineID:    "line_123",
				SaleID:    "sale_123",
				ProductID: "prod_123",
				Quantity:  3,
				UnitPrice: decimal.NewFromFloat(5.00),
				Subtotal:  decimal.NewFromFloat(15.00),
			},
			wantErr: false,
		},
		{
			name: "missing product",
			line: domain.SaleLine{
				Quantity:  3,
				UnitPrice: decimal.NewFromFloat(5.00),
				Subtotal:  decimal.NewFromFloat(15.00),
			},
			wantErr: true,
			errMsg:  "product ID is required",
		},
		{
			name: "zero quantity",
			line: domain.SaleLine{
				ProductID: "prod_123",
				Quantity:  0,
				UnitPrice: decimal.NewFromFloat(5.00),
			},
			wantErr: true,
			errMsg:  "quantity must be positive",
		},
		{
			name: "negative unit price",
			line: domain.SaleLine{
				ProductID: "prod_123",
				Quantity:  1,
				UnitPrice: decimal.NewFromFloat(-1.00),
			},
			wantErr: true,
			errMsg:  "unit price must not be negative",
		},
		{
			name: "subtotal mismatch",
			line: domain.SaleLine{
				ProductID: "prod_123",
				Quantity:  2,
				UnitPrice: decimal.NewFromFloat(5.00),
				Subtotal:  decimal.NewFromFloat(11.00),
			},
			wantErr: true,
			errMsg:  "subtotal must equal quantity times unit price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, domain.RoleAdmin.IsValid())
	assert.True(t, domain.RoleCashier.IsValid())
	assert.False(t, domain.UserRole("MANAGER").IsValid())
	assert.False(t, domain.UserRole("").IsValid())
}
