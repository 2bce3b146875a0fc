package pricing

import (
	"sort"

	"alhaja/internal/domain"
)

// Ranked is one row of the portfolio ROI ranking.
type Ranked struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     int     `json:"price"`
	UnitCost  int     `json:"unit_cost"`
	Profit    int     `json:"profit"`
	ROI       float64 `json:"roi"`
	Margin    float64 `json:"margin"`
}

// RankByROI scores every product with a positive unit cost and sorts
// descending by roi. Products without a unit cost are excluded rather than
// scored as zero. The sort is stable so equal rois keep catalog order.
func RankByROI(products []domain.Product) []Ranked {
	out := make([]Ranked, 0, len(products))
	for _, p := range products {
		if p.UnitCost <= 0 {
			continue
		}
		profit := p.Price - p.UnitCost
		out = append(out, Ranked{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			UnitCost:  p.UnitCost,
			Profit:    profit,
			ROI:       roi(profit, p.UnitCost),
			Margin:    margin(profit, p.Price),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ROI > out[j].ROI })
	return out
}
