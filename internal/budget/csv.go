package budget

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// WriteCSV renders a summary as CSV with the header
// Category,Budget,Spent,Remain and one row per category. Commas inside
// category names are replaced with spaces so downstream consumers that
// split naively don't mangle rows.
func WriteCSV(w io.Writer, summary Summary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Category", "Budget", "Spent", "Remain"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range summary.Rows {
		name := strings.ReplaceAll(row.Name, ",", " ")
		record := []string{name, row.Budget.String(), row.Spent.String(), row.Remain.String()}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %q: %w", row.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
