package pricing

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"warehouse-pricing/internal/model"
)

// WriteTraceCSV writes one row per simulation step. This is the primary
// artifact for "what happened" in a rollout.
func WriteTraceCSV(path string, actions []model.PricingAction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"step",
		"product_id",
		"product_name",
		"old_price",
		"new_price",
		"change_pct",
		"reward",
		"profit_component",
		"competitive_component",
		"stability_component",
		"inventory_component",
		"timestamp",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, a := range actions {
		row := []string{
			strconv.Itoa(a.Step),
			strconv.Itoa(a.ProductID),
			a.ProductName,
			fmtFloat(a.OldPrice),
			fmtFloat(a.NewPrice),
			fmtFloat(a.PriceChangePct()),
			fmtFloat(a.Reward),
			fmtFloat(a.ProfitComponent),
			fmtFloat(a.CompetitiveComponent),
			fmtFloat(a.StabilityComponent),
			fmtFloat(a.InventoryComponent),
			fmtTime(a.Timestamp),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
