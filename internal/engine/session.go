package engine

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/firesync/firesync/internal/config"
	"github.com/firesync/firesync/internal/game"
	"github.com/firesync/firesync/internal/models"
)

// ValidationError reports a selection outside the offered range. Selections
// are 1-based from the player's point of view.
type ValidationError struct {
	Choice int
	Max    int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("selection %d out of range 1..%d", e.Choice, e.Max)
}

// ValidateChoice bound-checks a 1-based selection against a tier of the
// given size.
func ValidateChoice(choice, size int) error {
	if choice < 1 || choice > size {
		return &ValidationError{Choice: choice, Max: size}
	}
	return nil
}

// ErrInputClosed is returned when the input stream ends while the session
// still expects a selection.
var ErrInputClosed = fmt.Errorf("engine: input closed")

// Session drives one 5-round game. In/Out carry all prompts and results;
// RNG feeds the opponent draw unless Draw overrides it. Sleep paces the
// outcome reveal and can be stubbed out in tests.
type Session struct {
	Catalog *models.Catalog
	Config  config.Config
	Out     io.Writer
	RNG     *rand.Rand

	// Draw returns the opponent's catalogue index for a tier. Nil means a
	// uniform draw from RNG.
	Draw func(tier config.RoundSpec) int
	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)

	in    *bufio.Scanner
	state models.RoundState
}

// NewSession wires a session over the given catalogue and tuning. The input
// reader is consumed one whitespace-delimited token per prompt, matching the
// original's scanf behaviour.
func NewSession(cat *models.Catalog, cfg config.Config, in io.Reader, out io.Writer) *Session {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Session{
		Catalog: cat,
		Config:  cfg,
		Out:     out,
		RNG:     NewRNG(),
		Sleep:   time.Sleep,
		in:      sc,
	}
}

func (s *Session) draw(tier config.RoundSpec) int {
	if s.Draw != nil {
		return s.Draw(tier)
	}
	return DrawOpponent(s.RNG, tier)
}

// readInt consumes tokens until one parses as an integer. Garbage tokens are
// rejected with a message rather than aborting the process.
func (s *Session) readInt() (int, error) {
	for s.in.Scan() {
		var n int
		if _, err := fmt.Sscanf(s.in.Text(), "%d", &n); err == nil {
			return n, nil
		}
		fmt.Fprintf(s.Out, "Please enter a number: ")
	}
	if err := s.in.Err(); err != nil {
		return 0, err
	}
	return 0, ErrInputClosed
}

// promptChoice re-prompts until the selection is inside 1..size.
func (s *Session) promptChoice(prompt string, size int) (int, error) {
	for {
		fmt.Fprint(s.Out, prompt)
		n, err := s.readInt()
		if err != nil {
			return 0, err
		}
		if err := ValidateChoice(n, size); err != nil {
			fmt.Fprintf(s.Out, "Invalid selection, pick 1-%d\n", size)
			continue
		}
		return n, nil
	}
}

// Run plays the whole game: team pick, five rounds, final tally. It returns
// the finished match summary for reporting.
func (s *Session) Run() (models.MatchSummary, error) {
	fmt.Fprintln(s.Out, "Welcome to FireSync")
	fmt.Fprintln(s.Out, "1) T:")
	fmt.Fprintln(s.Out, "2) CT:")
	team, err := s.promptChoice("Please select your team: ", 2)
	if err != nil {
		return models.MatchSummary{}, err
	}
	summary := models.MatchSummary{Team: teamName(team), Played: time.Now()}

	s.state = models.RoundState{}
	for i, tier := range s.Config.Rounds {
		s.state.Round = i + 1
		res, err := s.playRound(tier)
		if err != nil {
			return models.MatchSummary{}, err
		}
		summary.Rounds = append(summary.Rounds, res)
	}
	summary.Wins = s.state.Wins
	summary.Losses = s.state.Losses
	summary.FinalBudget = s.state.Budget
	fmt.Fprintf(s.Out, "Final Score : %d %d\n", s.state.Wins, s.state.Losses)
	return summary, nil
}

func teamName(choice int) string {
	if choice == 1 {
		return "T"
	}
	return "CT"
}

// playRound runs one budget/choice/draw/resolve cycle against the tier for
// the current round number.
func (s *Session) playRound(tier config.RoundSpec) (models.RoundResult, error) {
	// Round 1 assigns the opening budget; later rounds accrue on top of
	// whatever survived the previous purchase.
	if s.state.Round == 1 {
		s.state.Budget = s.Config.StartingBudget
	} else {
		s.state.Budget += tier.Increment
	}
	fmt.Fprintf(s.Out, "Your Balance (Round %d): $%d\n", s.state.Round, s.state.Budget)

	for k, rec := range s.Catalog.Slice(tier.Start, tier.End) {
		fmt.Fprintf(s.Out, "%d) %s $%d\n", k+1, rec.Name, rec.Price)
	}

	choice, err := s.promptChoice("Please Select your weapon: ", tier.Size())
	if err != nil {
		return models.RoundResult{}, err
	}
	playerIdx := tier.Start + choice - 1

	// Affordability gate. Round 1 never gates (the original deducts
	// blindly). Rounds 2-5 reject an unaffordable pick exactly once, then
	// charge whatever the second pick is — even if it is still
	// unaffordable. Kept deliberately to match the source's
	// single-retry-then-accept behaviour.
	if s.state.Round > 1 && s.state.Budget < s.Catalog.Records[playerIdx].Price {
		fmt.Fprintln(s.Out, "Your money isn't enough")
		choice, err = s.promptChoice("Please Select your weapon: ", tier.Size())
		if err != nil {
			return models.RoundResult{}, err
		}
		playerIdx = tier.Start + choice - 1
	}
	s.state.Budget -= s.Catalog.Records[playerIdx].Price

	opponentIdx := s.draw(tier)

	if s.Sleep != nil && s.Config.RevealDelay() > 0 {
		s.Sleep(s.Config.RevealDelay())
	}
	duel := game.ResolveDuel(s.Catalog, playerIdx, opponentIdx)
	for _, line := range duel.Logs {
		fmt.Fprintln(s.Out, line)
	}
	if duel.Won {
		s.state.Wins++
	} else {
		s.state.Losses++
	}
	fmt.Fprintf(s.Out, "Score Table : %d %d\n", s.state.Wins, s.state.Losses)

	return models.RoundResult{
		Round:         s.state.Round,
		PlayerIndex:   playerIdx,
		PlayerName:    s.Catalog.Records[playerIdx].Name,
		PlayerScore:   duel.PlayerScore,
		OpponentIndex: opponentIdx,
		OpponentName:  s.Catalog.Records[opponentIdx].Name,
		OpponentScore: duel.OpponentScore,
		Price:         s.Catalog.Records[playerIdx].Price,
		Budget:        s.state.Budget,
		Won:           duel.Won,
	}, nil
}
