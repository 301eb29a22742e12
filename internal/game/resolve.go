package game

import (
	"fmt"

	"github.com/firesync/firesync/internal/models"
)

// DuelResult captures the outcome of one round's score comparison and a
// human-readable log trail.
type DuelResult struct {
	Logs          []string `json:"logs"`
	PlayerScore   float64  `json:"player_score"`
	OpponentScore float64  `json:"opponent_score"`
	Won           bool     `json:"won"`
}

// ResolveDuel compares the cached balance scores of the player's and the
// opponent's catalogue indices. Strictly greater wins; a tie is a loss.
func ResolveDuel(c *models.Catalog, playerIdx, opponentIdx int) DuelResult {
	ps := c.Scores[playerIdx]
	os := c.Scores[opponentIdx]
	res := DuelResult{
		PlayerScore:   ps,
		OpponentScore: os,
		Won:           ps > os,
	}
	res.Logs = append(res.Logs,
		fmt.Sprintf("Your Weapon is %s", c.Records[playerIdx].Name),
		fmt.Sprintf("Enemy Weapon is %s", c.Records[opponentIdx].Name),
	)
	if res.Won {
		res.Logs = append(res.Logs, "You win")
	} else {
		res.Logs = append(res.Logs, "You lose")
	}
	return res
}
