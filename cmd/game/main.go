package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/firesync/firesync/internal/api"
	"github.com/firesync/firesync/internal/catalog"
	"github.com/firesync/firesync/internal/config"
	"github.com/firesync/firesync/internal/engine"
	"github.com/firesync/firesync/internal/models"
)

// ========================= Config (env-configurable) =========================
// Defaults can be overridden via environment variables:
//   CASE_FILE        catalogue file (default: case.txt)
//   FIRESYNC_CONFIG  tuning file (default: firesync.yaml; missing = defaults)
//   DATA_API_BASE    when set, the catalogue is fetched from the data API and
//                    finished matches are reported back to it

var (
	caseFile    string
	configFile  string
	dataAPIBase string
	apiClient   *api.Client
)

// Build metadata injected via -ldflags at build time
var (
	buildVersion = "dev"
	buildTime    = ""
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func init() {
	caseFile = getenv("CASE_FILE", "case.txt")
	configFile = getenv("FIRESYNC_CONFIG", "firesync.yaml")
	dataAPIBase = os.Getenv("DATA_API_BASE")
	if dataAPIBase != "" {
		apiClient = api.NewClient(dataAPIBase)
	}
}

func loadCatalog() (*models.Catalog, error) {
	if apiClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return apiClient.FetchCatalog(ctx)
	}
	return catalog.Load(caseFile)
}

func main() {
	log.Printf("firesync game %s %s", buildVersion, buildTime)
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cat, err := loadCatalog()
	if err != nil {
		log.Fatalf("load catalogue: %v", err)
	}
	if err := cfg.CheckCatalog(cat); err != nil {
		log.Fatalf("check catalogue: %v", err)
	}
	gameMenu(cat, cfg, os.Stdin, os.Stdout)
}

// gameMenu loops the main menu until Exit. All input is read one
// whitespace-delimited token at a time; junk and out-of-range choices
// re-prompt rather than falling through.
func gameMenu(cat *models.Catalog, cfg config.Config, in io.Reader, out io.Writer) {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Menu")
		fmt.Fprintln(out, "--------")
		fmt.Fprintln(out, " 1. Play")
		fmt.Fprintln(out, " 2. Options")
		fmt.Fprintln(out, " 3. Help")
		fmt.Fprintln(out, " 4. About")
		fmt.Fprintln(out, " 5. Exit")
		fmt.Fprintln(out)
		fmt.Fprint(out, "Your Choice : ")

		choice, ok := readMenuChoice(sc, out)
		if !ok {
			return
		}
		switch choice {
		case 1:
			play(cat, cfg, sc, out)
		case 2, 3:
			fmt.Fprintln(out, "Options and Help not implemented yet.")
		case 4:
			renderCatalog(out, cat)
		case 5:
			return
		}
	}
}

// readMenuChoice returns the next valid menu number, re-prompting on junk
// or out-of-range input. ok is false once input is exhausted.
func readMenuChoice(sc *bufio.Scanner, out io.Writer) (int, bool) {
	for sc.Scan() {
		var n int
		if _, err := fmt.Sscanf(sc.Text(), "%d", &n); err != nil || n < 1 || n > 5 {
			fmt.Fprint(out, "Pick 1-5 : ")
			continue
		}
		return n, true
	}
	return 0, false
}

// play runs one session and, when a data API is configured, reports the
// finished match to it.
func play(cat *models.Catalog, cfg config.Config, sc *bufio.Scanner, out io.Writer) {
	sess := engine.NewSession(cat, cfg, scannerReader{sc}, out)
	summary, err := sess.Run()
	if err != nil {
		fmt.Fprintf(out, "Game aborted: %v\n", err)
		return
	}
	if best := summary.BestMargin(); best > 0 {
		fmt.Fprintf(out, "Best winning margin this game: %.3f\n", best)
	}
	if apiClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiClient.ReportMatch(ctx, summary); err != nil {
		log.Printf("report match: %v", err)
		return
	}
	if best, err := apiClient.FetchDailyStats(ctx); err == nil && best.Matches > 0 {
		fmt.Fprintf(out, "Today's best margin: %.3f (%s over %s)\n", best.Margin, best.Weapon, best.Opponent)
	}
}

// scannerReader lets the session share the menu's word scanner, so tokens
// are not lost between the menu and the round prompts.
type scannerReader struct{ sc *bufio.Scanner }

func (s scannerReader) Read(p []byte) (int, error) {
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return 0, err
		}
		return 0, io.EOF
	}
	token := s.sc.Text() + "\n"
	n := copy(p, token)
	return n, nil
}
