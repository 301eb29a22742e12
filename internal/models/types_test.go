package models

import "testing"

func TestBestMargin(t *testing.T) {
	m := MatchSummary{
		Rounds: []RoundResult{
			{PlayerScore: 100, OpponentScore: 90, Won: true},
			{PlayerScore: 50, OpponentScore: 300, Won: false},
			{PlayerScore: 210, OpponentScore: 110, Won: true},
		},
	}
	if got := m.BestMargin(); got != 100 {
		t.Errorf("best margin = %v, want 100 (lost rounds never count)", got)
	}
	if got := (MatchSummary{}).BestMargin(); got != 0 {
		t.Errorf("empty match margin = %v, want 0", got)
	}
}

func TestCatalogSlice(t *testing.T) {
	c := &Catalog{Records: make([]WeaponRecord, 5)}
	if got := len(c.Slice(0, 3)); got != 3 {
		t.Errorf("slice len = %d, want 3", got)
	}
	if got := len(c.Slice(3, 10)); got != 2 {
		t.Errorf("clamped slice len = %d, want 2", got)
	}
	if c.Slice(4, 2) != nil {
		t.Error("inverted range must yield nil")
	}
}
