package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/minimarketpos/pos_backend/internal/core/domain"
)

const dayFormat = "2006-01-02"

// WriteSalesReportCSV renders the per-day sales report rows as CSV.
// The first record is a header row.
func WriteSalesReportCSV(w io.Writer, rows []domain.SalesReportRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"day", "transactions", "units_sold", "revenue"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Day.Format(dayFormat),
			fmt.Sprintf("%d", row.Transactions),
			fmt.Sprintf("%d", row.UnitsSold),
			row.Revenue.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", record[0], err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTopProductsCSV renders the top products ranking as CSV.
func WriteTopProductsCSV(w io.Writer, rows []domain.TopProductRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"product_id", "name", "units_sold", "revenue"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.ProductID,
			row.Name,
			fmt.Sprintf("%d", row.UnitsSold),
			row.Revenue.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", row.ProductID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
