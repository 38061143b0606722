package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/ray-remotestate/tableside/models"
)

var csvHeader = []string{"date", "order_id", "table_number", "status", "total"}

// WriteCSV renders the downloadable tabular report for the given orders.
func WriteCSV(w io.Writer, orders []models.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range orders {
		record := []string{
			o.CreatedAt.Format(time.RFC3339),
			o.ID.String(),
			o.TableNumber,
			string(o.Status),
			fmt.Sprintf("%.2f", o.Total),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
