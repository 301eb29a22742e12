package models

import "time"

// ========================= Domain Models =========================
// Minimal shapes for gameplay. The catalogue file is mapped into this.

// MaxWeapons is the catalogue capacity; the loader stops consuming input
// once this many records have been read.
const MaxWeapons = 34

// WeaponRecord is one line of the catalogue file. A weapon's identity is its
// position in the catalogue; records are immutable once loaded.
type WeaponRecord struct {
	Name     string  `json:"name"`
	Price    int     `json:"price"`
	Damage   int     `json:"damage"`
	FireRate float64 `json:"fire_rate"`
	Magazine int     `json:"magazine"`
	Falloff  int     `json:"falloff"`
	Range    float64 `json:"range"`
	Recoil   float64 `json:"recoil"`
}

// Catalog is the loaded weapon table plus the balance score cache. Scores is
// parallel to Records and filled exactly once by the loader.
type Catalog struct {
	Records []WeaponRecord `json:"records"`
	Scores  []float64      `json:"scores"`
}

func (c *Catalog) Len() int { return len(c.Records) }

// Slice returns the records in [start, end), clamped to the loaded count.
func (c *Catalog) Slice(start, end int) []WeaponRecord {
	if start < 0 {
		start = 0
	}
	if end > len(c.Records) {
		end = len(c.Records)
	}
	if start >= end {
		return nil
	}
	return c.Records[start:end]
}

// RoundState is the mutable per-session economy state. Budget is in whole
// dollars; Round runs 1..5.
type RoundState struct {
	Round  int `json:"round"`
	Budget int `json:"budget"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// RoundResult records one resolved round for reporting.
type RoundResult struct {
	Round         int     `json:"round"`
	PlayerIndex   int     `json:"player_index"`
	PlayerName    string  `json:"player_name"`
	PlayerScore   float64 `json:"player_score"`
	OpponentIndex int     `json:"opponent_index"`
	OpponentName  string  `json:"opponent_name"`
	OpponentScore float64 `json:"opponent_score"`
	Price         int     `json:"price"`
	Budget        int     `json:"budget"` // budget remaining after the purchase
	Won           bool    `json:"won"`
}

// MatchSummary is a finished 5-round game, shaped for the matches endpoint
// and the history store.
type MatchSummary struct {
	ID          string        `json:"id,omitempty"`
	Team        string        `json:"team,omitempty"`
	Wins        int           `json:"wins"`
	Losses      int           `json:"losses"`
	FinalBudget int           `json:"final_budget"`
	Rounds      []RoundResult `json:"rounds,omitempty"`
	Played      time.Time     `json:"played,omitempty"`
}

// BestMargin is the player's widest winning score gap across a match.
// Zero when no round was won.
func (m MatchSummary) BestMargin() float64 {
	best := 0.0
	for _, r := range m.Rounds {
		if !r.Won {
			continue
		}
		if d := r.PlayerScore - r.OpponentScore; d > best {
			best = d
		}
	}
	return best
}
