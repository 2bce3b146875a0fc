package catalog_test

import (
	"sync/atomic"
	"testing"
	"time"

	"alhaja/internal/catalog"
	"alhaja/internal/domain"
)

func fixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Anillo Sol", Description: "oro 18k", Price: 120000,
			Status: domain.StatusInStock, Category: "anillos", Collection: "sol", Badge: "Nuevo", CreatedAt: "2026-01-04T10:00:00Z"},
		{ID: "p2", Name: "Aretes Luna", Description: "plata 950", Price: 45000,
			Status: domain.StatusSoldOut, Category: "aretes", Collection: "luna", CreatedAt: "2026-01-03T10:00:00Z"},
		{ID: "p3", Name: "Dije Estrella", Description: "con circon", Price: 45000,
			Status: domain.StatusMadeToOrder, Category: "dijes", Collection: "luna", CreatedAt: "2026-01-02T10:00:00Z"},
		{ID: "p4", Name: "Collar Aurora", Description: "oro laminado", Price: 350000,
			Status: domain.StatusInStock, Category: "collares", Collection: "sol", CreatedAt: "2026-01-01T10:00:00Z"},
	}
}

func ids(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestPublicViewHidesSoldOut(t *testing.T) {
	got := catalog.View(fixture(), catalog.Spec{Audience: catalog.AudiencePublic})
	for _, p := range got {
		if p.Status == domain.StatusSoldOut {
			t.Fatalf("sold-out product leaked into public view: %s", p.ID)
		}
	}
	// even when the filter explicitly asks for sold-out
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudiencePublic, Status: domain.StatusSoldOut})
	if len(got) != 0 {
		t.Fatalf("public view must never return sold-out, got %v", ids(got))
	}
	// the back office sees everything
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin})
	if len(got) != 4 {
		t.Fatalf("admin view must see all 4, got %d", len(got))
	}
}

func TestSearchIsCaseInsensitiveOverNameAndDescription(t *testing.T) {
	got := catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Query: "LUNA"})
	if len(got) != 1 || got[0].ID != "p2" {
		t.Fatalf("want p2 by name, got %v", ids(got))
	}
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Query: "oro"})
	if len(got) != 2 {
		t.Fatalf("want p1 and p4 by description, got %v", ids(got))
	}
	// empty query matches everything
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Query: "   "})
	if len(got) != 4 {
		t.Fatalf("blank query must match all, got %v", ids(got))
	}
}

func TestPriceRangeSentinel(t *testing.T) {
	// sentinel max: no upper bound, p4 at 350000 must match
	got := catalog.View(fixture(), catalog.Spec{
		Audience: catalog.AudienceAdmin, MinPrice: 100000, MaxPrice: catalog.MaxPriceOpen,
	})
	if len(got) != 2 {
		t.Fatalf("want p1 and p4, got %v", ids(got))
	}
	// a real ceiling excludes it
	got = catalog.View(fixture(), catalog.Spec{
		Audience: catalog.AudienceAdmin, MinPrice: 100000, MaxPrice: 200000,
	})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("want only p1, got %v", ids(got))
	}
}

func TestExactMatchFilters(t *testing.T) {
	got := catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Collection: "luna"})
	if len(got) != 2 {
		t.Fatalf("want p2 and p3, got %v", ids(got))
	}
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Category: "anillos", Collection: "sol"})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("AND combination broken, got %v", ids(got))
	}
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Badge: "Nuevo"})
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("badge filter broken, got %v", ids(got))
	}
}

func TestSortStableOnPriceTies(t *testing.T) {
	got := catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Sort: catalog.SortPriceAsc})
	// p2 and p3 share price 45000; p2 comes first in the input
	if got[0].ID != "p2" || got[1].ID != "p3" {
		t.Fatalf("tie order not preserved under price_asc: %v", ids(got))
	}
	got = catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin, Sort: catalog.SortPriceDesc})
	if got[len(got)-2].ID != "p2" || got[len(got)-1].ID != "p3" {
		t.Fatalf("tie order not preserved under price_desc: %v", ids(got))
	}
}

func TestSortNewestDefault(t *testing.T) {
	got := catalog.View(fixture(), catalog.Spec{Audience: catalog.AudienceAdmin})
	if got[0].ID != "p1" || got[3].ID != "p4" {
		t.Fatalf("default sort must be newest first, got %v", ids(got))
	}
}

func TestBackOfficeSortKeys(t *testing.T) {
	ps := fixture()
	ps[0].Stock = 5
	ps[1].Stock = 1
	ps[2].Stock = 3
	ps[3].Stock = 0

	catalog.Sort(ps, catalog.SortStockAsc)
	if ps[0].ID != "p4" || ps[3].ID != "p1" {
		t.Fatalf("stock_asc broken: %v", ids(ps))
	}
	catalog.Sort(ps, catalog.SortNameAsc)
	if ps[0].Name != "Anillo Sol" {
		t.Fatalf("name_asc broken: %v", ids(ps))
	}
	catalog.Sort(ps, catalog.SortCategory)
	if ps[0].Category != "anillos" {
		t.Fatalf("category sort broken: %v", ids(ps))
	}
}

func TestDebouncerSupersedesPendingRun(t *testing.T) {
	var ran int32
	var last int32
	d := catalog.NewDebouncer(20 * time.Millisecond)
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Do(func() {
			atomic.AddInt32(&ran, 1)
			atomic.StoreInt32(&last, n)
		})
	}
	time.Sleep(80 * time.Millisecond)
	if got := atomic.LoadInt32(&ran); got != 1 {
		t.Fatalf("want exactly one run, got %d", got)
	}
	if got := atomic.LoadInt32(&last); got != 5 {
		t.Fatalf("want the last callback to win, got %d", got)
	}
}

func TestDebouncedResultEqualsDirectApplication(t *testing.T) {
	spec := catalog.Spec{Audience: catalog.AudiencePublic, Query: "anillo"}
	direct := catalog.View(fixture(), spec)

	var debounced []domain.Product
	done := make(chan struct{})
	d := catalog.NewDebouncer(10 * time.Millisecond)
	d.Do(func() {
		debounced = catalog.View(fixture(), spec)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced run never fired")
	}
	if len(direct) != len(debounced) {
		t.Fatalf("debounce changed the settled result: %v vs %v", ids(direct), ids(debounced))
	}
	for i := range direct {
		if direct[i].ID != debounced[i].ID {
			t.Fatalf("debounce changed the settled result: %v vs %v", ids(direct), ids(debounced))
		}
	}
}

func TestDebouncerRescheduleKeepsFullQuietPeriod(t *testing.T) {
	d := catalog.NewDebouncer(30 * time.Millisecond)
	done := make(chan time.Time, 1)
	d.Do(func() {})
	// wait until the first timer is firing, then reschedule right into the
	// race window: the stale firing must not run the fresh callback early
	time.Sleep(30 * time.Millisecond)
	start := time.Now()
	d.Do(func() { done <- time.Now() })
	select {
	case at := <-done:
		if elapsed := at.Sub(start); elapsed < 25*time.Millisecond {
			t.Fatalf("rescheduled callback ran after %v, before its quiet period", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("rescheduled callback never ran")
	}
}

func TestDebouncerStopAndFlush(t *testing.T) {
	var ran int32
	d := catalog.NewDebouncer(10 * time.Millisecond)
	d.Do(func() { atomic.AddInt32(&ran, 1) })
	d.Stop()
	time.Sleep(30 * time.Millisecond)
	if atomic.LoadInt32(&ran) != 0 {
		t.Fatal("Stop must cancel the pending run")
	}

	d.Do(func() { atomic.AddInt32(&ran, 1) })
	d.Flush()
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("Flush must run the pending callback immediately")
	}
	time.Sleep(30 * time.Millisecond)
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("flushed callback must not run twice")
	}
}
