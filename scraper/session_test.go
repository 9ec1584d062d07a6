package scraper

import "testing"

func TestStats_ReportsConfiguredCapacity(t *testing.T) {
	s := &Session{maxPages: 4}
	s.activePages.Store(2)

	got := s.Stats()
	if got.MaxPages != 4 {
		t.Errorf("MaxPages = %d, want 4", got.MaxPages)
	}
	if got.ActivePages != 2 {
		t.Errorf("ActivePages = %d, want 2", got.ActivePages)
	}
}
