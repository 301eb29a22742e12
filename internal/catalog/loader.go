package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/firesync/firesync/internal/game"
	"github.com/firesync/firesync/internal/models"
)

// LoadError is any failure to turn the catalogue source into a usable
// catalogue: unreadable source, malformed line, or an unscorable record.
// Line is 0 when the failure is not tied to a specific line.
type LoadError struct {
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("catalog: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("catalog: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the catalogue file at path. It fails fast: on any error the
// returned catalogue is nil.
func Load(path string) (*models.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads whitespace-delimited weapon records, one per line:
//
//	name price damage fireRate magazine falloff range recoil
//
// Blank lines are skipped. Reading stops after models.MaxWeapons records
// even if more input follows; fewer records is accepted. Balance scores are
// computed for every record before the catalogue is returned.
func Parse(r io.Reader) (*models.Catalog, error) {
	c := &models.Catalog{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() && c.Len() < models.MaxWeapons {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := parseRecord(text)
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		score, err := game.Score(rec)
		if err != nil {
			return nil, &LoadError{Line: line, Err: err}
		}
		c.Records = append(c.Records, rec)
		c.Scores = append(c.Scores, score)
	}
	if err := sc.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}
	return c, nil
}

func parseRecord(line string) (models.WeaponRecord, error) {
	var rec models.WeaponRecord
	fields := strings.Fields(line)
	if len(fields) != 8 {
		return rec, fmt.Errorf("expected 8 fields, got %d", len(fields))
	}
	rec.Name = fields[0]
	var err error
	if rec.Price, err = strconv.Atoi(fields[1]); err != nil {
		return rec, fmt.Errorf("price %q: %w", fields[1], err)
	}
	if rec.Damage, err = strconv.Atoi(fields[2]); err != nil {
		return rec, fmt.Errorf("damage %q: %w", fields[2], err)
	}
	if rec.FireRate, err = strconv.ParseFloat(fields[3], 64); err != nil {
		return rec, fmt.Errorf("fire rate %q: %w", fields[3], err)
	}
	if rec.Magazine, err = strconv.Atoi(fields[4]); err != nil {
		return rec, fmt.Errorf("magazine %q: %w", fields[4], err)
	}
	if rec.Falloff, err = strconv.Atoi(fields[5]); err != nil {
		return rec, fmt.Errorf("falloff %q: %w", fields[5], err)
	}
	if rec.Range, err = strconv.ParseFloat(fields[6], 64); err != nil {
		return rec, fmt.Errorf("range %q: %w", fields[6], err)
	}
	if rec.Recoil, err = strconv.ParseFloat(fields[7], 64); err != nil {
		return rec, fmt.Errorf("recoil %q: %w", fields[7], err)
	}
	return rec, nil
}
