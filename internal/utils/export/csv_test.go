package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSalesReportCSV(t *testing.T) {
	rows := []domain.SalesReportRow{
		{
			Day:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Transactions: 12,
			UnitsSold:    40,
			Revenue:      decimal.NewFromFloat(153.50),
		},
		{
			Day:          time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			Transactions: 3,
			UnitsSold:    7,
			Revenue:      decimal.NewFromFloat(21.00),
		},
	}

	var buf bytes.Buffer
	err := WriteSalesReportCSV(&buf, rows)
	require.NoError(t, err)

	expected := "day,transactions,units_sold,revenue\n" +
		"2024-06-01,12,40,153.5\n" +
		"2024-06-02,3,7,21\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteSalesReportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSalesReportCSV(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "day,transactions,units_sold,revenue\n", buf.String())
}

func TestWriteTopProductsCSV(t *testing.T) {
	rows := []domain.TopProductRow{
		{
			ProductID: "prod-1",
			Name:      "Instant Noodles, \"Spicy\"",
			UnitsSold: 90,
			Revenue:   decimal.NewFromFloat(45.00),
		},
	}

	var buf bytes.Buffer
	err := WriteTopProductsCSV(&buf, rows)
	require.NoError(t, err)

	// Names containing quotes must be escaped per CSV rules.
	expected := "product_id,name,units_sold,revenue\n" +
		"prod-1,\"Instant Noodles, \"\"Spicy\"\"\",90,45\n"
	assert.Equal(t, expected, buf.String())
}
