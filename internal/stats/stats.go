package stats

import (
	"sync"
	"time"

	"github.com/firesync/firesync/internal/models"
)

// DailyBest is the widest winning score margin seen today, with the weapons
// involved. In-memory only; the date key rolls over in UTC.
type DailyBest struct {
	Date     string  `json:"date"`
	Margin   float64 `json:"margin"`
	Weapon   string  `json:"weapon,omitempty"`
	Opponent string  `json:"opponent,omitempty"`
	Team     string  `json:"team,omitempty"`
	Matches  int     `json:"matches"`
}

var (
	statsMu sync.Mutex
	daily   = make(map[string]*DailyBest)
)

func dateKey() string { return time.Now().UTC().Format("2006-01-02") }

// RecordMatch folds a finished match into today's stats: bumps the match
// count and keeps the best winning margin with its round context.
func RecordMatch(m models.MatchSummary) {
	statsMu.Lock()
	defer statsMu.Unlock()
	key := dateKey()
	cur := daily[key]
	if cur == nil {
		cur = &DailyBest{Date: key}
		daily[key] = cur
	}
	cur.Matches++
	for _, r := range m.Rounds {
		if !r.Won {
			continue
		}
		if d := r.PlayerScore - r.OpponentScore; d > cur.Margin {
			cur.Margin = d
			cur.Weapon = r.PlayerName
			cur.Opponent = r.OpponentName
			cur.Team = m.Team
		}
	}
}

// Today returns a copy of today's stats; the zero value when no match has
// been recorded yet.
func Today() DailyBest {
	statsMu.Lock()
	defer statsMu.Unlock()
	if cur, ok := daily[dateKey()]; ok {
		return *cur
	}
	return DailyBest{Date: dateKey()}
}
