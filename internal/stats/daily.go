package stats

// This file contains helpers around daily stats. It complements stats.go.

// ResetDaily clears the in-memory daily map.
// Intended for tests and dev convenience.
func ResetDaily() {
	statsMu.Lock()
	defer statsMu.Unlock()
	for k := range daily {
		delete(daily, k)
	}
}
