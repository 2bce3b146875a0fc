package pricing

import "math"

// Mode selects how the calculator derives a sale price.
type Mode string

const (
	// ModeMarkup derives the price from cost times a chosen multiplier.
	ModeMarkup Mode = "markup"
	// ModeTarget takes a user-chosen price and reports the achieved markup.
	ModeTarget Mode = "target"
)

// MarkupPresets are the multipliers the UI offers as quick picks.
var MarkupPresets = []float64{1.5, 2, 2.5, 3, 4, 5}

// Result is the derived profitability read-out for one calculator run.
// Percentages are kept as float64 and only rounded at presentation time.
type Result struct {
	Mode          Mode    `json:"mode"`
	TotalCost     int     `json:"total_cost"`
	Price         int     `json:"price"`
	GrossProfit   int     `json:"gross_profit"`
	MarginPercent float64 `json:"margin_percent"`
	ROI           float64 `json:"roi"`
	// ImpliedMarkup is only meaningful in target mode.
	ImpliedMarkup float64 `json:"implied_markup,omitempty"`
}

// Markup computes the suggested price for a cost at the given multiplier.
// Division by zero is guarded everywhere: a zero price yields margin 0 and a
// zero cost yields roi 0, never an error.
func Markup(totalCost int, multiplier float64) Result {
	price := int(math.Round(float64(totalCost) * multiplier))
	r := Result{Mode: ModeMarkup, TotalCost: totalCost, Price: price}
	r.GrossProfit = price - totalCost
	r.MarginPercent = margin(r.GrossProfit, price)
	r.ROI = roi(r.GrossProfit, totalCost)
	return r
}

// Target evaluates a user-chosen price against the cost, including the
// implied markup actually achieved.
func Target(totalCost, targetPrice int) Result {
	r := Result{Mode: ModeTarget, TotalCost: totalCost, Price: targetPrice}
	r.GrossProfit = targetPrice - totalCost
	r.MarginPercent = margin(r.GrossProfit, targetPrice)
	r.ROI = roi(r.GrossProfit, totalCost)
	if totalCost > 0 {
		r.ImpliedMarkup = float64(targetPrice) / float64(totalCost)
	}
	return r
}

func margin(profit, price int) float64 {
	if price == 0 {
		return 0
	}
	return float64(profit) / float64(price) * 100
}

func roi(profit, cost int) float64 {
	if cost == 0 {
		return 0
	}
	return float64(profit) / float64(cost) * 100
}
