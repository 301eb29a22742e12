package game

import (
	"math"
	"testing"

	"github.com/firesync/firesync/internal/models"
)

func TestScoreFormula(t *testing.T) {
	cases := []struct {
		name string
		w    models.WeaponRecord
		want float64
	}{
		{
			name: "rifle-like",
			w:    models.WeaponRecord{Name: "AK-47", Damage: 36, FireRate: 600, Magazine: 30, Range: 24.4, Falloff: 38, Recoil: 39.5},
			want: (36*600 + 30*24.4) / (38 + 39.5),
		},
		{
			name: "pistol-like",
			w:    models.WeaponRecord{Name: "Glock-18", Damage: 30, FireRate: 400, Magazine: 20, Range: 14.2, Falloff: 47, Recoil: 26},
			want: (30*400 + 20*14.2) / (47 + 26),
		},
		{
			name: "no-magazine-contribution",
			w:    models.WeaponRecord{Name: "knife", Damage: 50, FireRate: 2, Magazine: 0, Range: 1, Falloff: 1, Recoil: 1},
			want: 50,
		},
	}
	for _, tc := range cases {
		got, err := Score(tc.w)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: score = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestScoreZeroDenominator(t *testing.T) {
	w := models.WeaponRecord{Name: "broken", Damage: 10, FireRate: 100, Falloff: 0, Recoil: 0}
	if _, err := Score(w); err == nil {
		t.Fatal("expected error for falloff+recoil == 0")
	}
}

func TestResolveDuel(t *testing.T) {
	c := &models.Catalog{
		Records: []models.WeaponRecord{{Name: "low"}, {Name: "high"}, {Name: "twin"}},
		Scores:  []float64{1.0, 2.0, 1.0},
	}

	if res := ResolveDuel(c, 1, 0); !res.Won {
		t.Errorf("higher score should win, got loss (%.1f vs %.1f)", res.PlayerScore, res.OpponentScore)
	}
	if res := ResolveDuel(c, 0, 1); res.Won {
		t.Error("lower score should lose")
	}
	// Equal scores are a loss for the player.
	if res := ResolveDuel(c, 0, 2); res.Won {
		t.Error("tie should count as a loss")
	}
	// Self-duel (opponent drew the same weapon) is also a tie, also a loss.
	if res := ResolveDuel(c, 1, 1); res.Won {
		t.Error("duel against the same weapon should count as a loss")
	}
}
