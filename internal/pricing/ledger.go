package pricing

import "github.com/google/uuid"

// Fixed cost line ids. These exist on every ledger and cannot be removed.
const (
	LineMaterial  = "material"
	LineGems      = "gems"
	LineLabor     = "labor"
	LinePackaging = "packaging"
	LineShipping  = "shipping"
)

var fixedLines = []string{LineMaterial, LineGems, LineLabor, LinePackaging, LineShipping}

// CostLine is one named cost item in a calculator session. Values are whole
// pesos and never negative; negative input is clamped to 0 at entry.
type CostLine struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Ledger holds the fixed cost lines plus any user-added lines for one
// calculator session. It is never persisted.
type Ledger struct {
	Fixed  []CostLine `json:"fixed"`
	Custom []CostLine `json:"custom"`
}

// NewLedger returns a ledger with all fixed lines present and zeroed.
func NewLedger() *Ledger {
	l := &Ledger{Fixed: make([]CostLine, 0, len(fixedLines))}
	for _, id := range fixedLines {
		l.Fixed = append(l.Fixed, CostLine{ID: id, Label: id, Value: 0})
	}
	return l
}

// Set assigns a value to the line with the given id, clamping negatives to 0.
// Unknown ids are ignored.
func (l *Ledger) Set(id string, value int) {
	if value < 0 {
		value = 0
	}
	for i := range l.Fixed {
		if l.Fixed[i].ID == id {
			l.Fixed[i].Value = value
			return
		}
	}
	for i := range l.Custom {
		if l.Custom[i].ID == id {
			l.Custom[i].Value = value
			return
		}
	}
}

// Rename sets the label of a custom line. Fixed line labels are not editable.
func (l *Ledger) Rename(id, label string) {
	for i := range l.Custom {
		if l.Custom[i].ID == id {
			l.Custom[i].Label = label
			return
		}
	}
}

// AddCustom appends a new user line with a default label and value 0 and
// returns it.
func (l *Ledger) AddCustom() CostLine {
	line := CostLine{ID: uuid.NewString(), Label: "Otro", Value: 0}
	l.Custom = append(l.Custom, line)
	return line
}

// Remove deletes a custom line by id. Fixed lines cannot be removed.
func (l *Ledger) Remove(id string) {
	for i := range l.Custom {
		if l.Custom[i].ID == id {
			l.Custom = append(l.Custom[:i], l.Custom[i+1:]...)
			return
		}
	}
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	out := &Ledger{Fixed: make([]CostLine, len(l.Fixed))}
	copy(out.Fixed, l.Fixed)
	if len(l.Custom) > 0 {
		out.Custom = make([]CostLine, len(l.Custom))
		copy(out.Custom, l.Custom)
	}
	return out
}

// Reset zeroes all fixed lines and drops every custom line.
func (l *Ledger) Reset() {
	for i := range l.Fixed {
		l.Fixed[i].Value = 0
	}
	l.Custom = nil
}

// Total sums every line on the ledger.
func (l *Ledger) Total() int {
	total := 0
	for _, line := range l.Fixed {
		total += line.Value
	}
	for _, line := range l.Custom {
		total += line.Value
	}
	return total
}
