package main

import (
	"net/http"

	"github.com/firesync/firesync/internal/stats"
)

// handleDailyStats serves today's best winning margin.
func handleDailyStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, stats.Today())
}
