package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"alhaja/internal/pricing"
	"alhaja/internal/repos"
)

// CalcSession is one open calculator: a cost ledger plus the selected mode
// and its input. Sessions live in memory only and are never persisted. The
// service hands out detached copies; the live session is only touched under
// the service lock.
type CalcSession struct {
	ID          string          `json:"id"`
	Ledger      *pricing.Ledger `json:"ledger"`
	Mode        pricing.Mode    `json:"mode"`
	Multiplier  float64         `json:"multiplier"`
	TargetPrice int             `json:"target_price"`
	ProductID   string          `json:"product_id,omitempty"`
}

// Evaluate runs the calculator over the session's current state.
func (c CalcSession) Evaluate() pricing.Result {
	total := c.Ledger.Total()
	if c.Mode == pricing.ModeTarget {
		return pricing.Target(total, c.TargetPrice)
	}
	return pricing.Markup(total, c.Multiplier)
}

// snapshot is a copy with its own ledger, safe to read and marshal outside
// the lock.
func (c *CalcSession) snapshot() CalcSession {
	out := *c
	out.Ledger = c.Ledger.Clone()
	return out
}

// CalcService keeps the open calculator sessions. Every read and write of a
// session happens under the service lock; callers only ever see snapshots.
type CalcService struct {
	Products *repos.ProductRepo

	mu       sync.Mutex
	sessions map[string]*CalcSession
}

func NewCalcService(products *repos.ProductRepo) *CalcService {
	return &CalcService{Products: products, sessions: make(map[string]*CalcSession)}
}

// Open starts a fresh session in markup mode with the default multiplier.
func (s *CalcService) Open() CalcSession {
	sess := &CalcSession{
		ID:         uuid.NewString(),
		Ledger:     pricing.NewLedger(),
		Mode:       pricing.ModeMarkup,
		Multiplier: 2,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	snap := sess.snapshot()
	s.mu.Unlock()
	return snap
}

// Get returns a snapshot of an open session.
func (s *CalcService) Get(id string) (CalcSession, error) {
	return s.locked(id, func(*CalcSession) {})
}

// Close drops a session.
func (s *CalcService) Close(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// locked runs fn on the live session under the lock and returns the
// resulting snapshot.
func (s *CalcService) locked(id string, fn func(*CalcSession)) (CalcSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return CalcSession{}, fmt.Errorf("calculator session %s not found", id)
	}
	fn(sess)
	return sess.snapshot(), nil
}

// SetLine assigns a value to a ledger line, and a label when one is given
// (labels only stick on custom lines).
func (s *CalcService) SetLine(id, lineID, label string, value int) (CalcSession, error) {
	return s.locked(id, func(sess *CalcSession) {
		sess.Ledger.Set(lineID, value)
		if label != "" {
			sess.Ledger.Rename(lineID, label)
		}
	})
}

// AddLine appends a custom ledger line and returns it with the snapshot.
func (s *CalcService) AddLine(id string) (pricing.CostLine, CalcSession, error) {
	var line pricing.CostLine
	snap, err := s.locked(id, func(sess *CalcSession) { line = sess.Ledger.AddCustom() })
	return line, snap, err
}

// RemoveLine deletes a custom ledger line.
func (s *CalcService) RemoveLine(id, lineID string) (CalcSession, error) {
	return s.locked(id, func(sess *CalcSession) { sess.Ledger.Remove(lineID) })
}

// SetMarkup switches the session to markup mode. Non-positive multipliers
// fall back to 1x.
func (s *CalcService) SetMarkup(id string, multiplier float64) (CalcSession, error) {
	if multiplier <= 0 {
		multiplier = 1
	}
	return s.locked(id, func(sess *CalcSession) {
		sess.Mode = pricing.ModeMarkup
		sess.Multiplier = multiplier
	})
}

// SetTarget switches the session to target mode with the chosen price.
func (s *CalcService) SetTarget(id string, targetPrice int) (CalcSession, error) {
	if targetPrice < 0 {
		targetPrice = 0
	}
	return s.locked(id, func(sess *CalcSession) {
		sess.Mode = pricing.ModeTarget
		sess.TargetPrice = targetPrice
	})
}

// SeedFromProduct loads a product into the session: material cost becomes
// the product's unit cost, every other line is zeroed, and the session
// switches to target mode at the product's current price. This is how "what
// markup am I actually getting" analysis starts from real inventory data.
func (s *CalcService) SeedFromProduct(sessionID, productID string) (CalcSession, error) {
	if _, err := s.Get(sessionID); err != nil {
		return CalcSession{}, err
	}
	p, err := s.Products.Get(productID)
	if err != nil {
		return CalcSession{}, fmt.Errorf("gateway: %w", err)
	}
	return s.locked(sessionID, func(sess *CalcSession) {
		sess.Ledger.Reset()
		sess.Ledger.Set(pricing.LineMaterial, p.UnitCost)
		sess.Mode = pricing.ModeTarget
		sess.TargetPrice = p.Price
		sess.ProductID = p.ID
	})
}
