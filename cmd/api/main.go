package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/firesync/firesync/internal/catalog"
	"github.com/firesync/firesync/internal/config"
	"github.com/firesync/firesync/internal/models"
	"github.com/firesync/firesync/internal/stats"
	"github.com/firesync/firesync/internal/store"
)

// server bundles the immutable catalogue/tuning with the mutable match log.
type server struct {
	catalog *models.Catalog
	cfg     config.Config
	repo    *store.Repository // nil when persistence is off

	matchMu sync.Mutex
	matches []models.MatchSummary // newest last; in-memory fallback/log
}

const maxMemoryMatches = 200

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(code),
		"message": msg,
		"status":  code,
	})
}

// simple CORS for GET/POST/OPTIONS
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func generateMatchID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, 6)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))]
	}
	return fmt.Sprintf("match_%d_%s", time.Now().Unix(), b)
}

func (s *server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/weapons", s.handleWeapons).Methods(http.MethodGet)
	r.HandleFunc("/api/weapons/{index}", s.handleWeapon).Methods(http.MethodGet)
	r.HandleFunc("/api/tiers", s.handleTiers).Methods(http.MethodGet)
	r.HandleFunc("/api/tiers/{round}/weapons", s.handleTierWeapons).Methods(http.MethodGet)
	r.HandleFunc("/api/matches", s.handleMatchPost).Methods(http.MethodPost)
	r.HandleFunc("/api/matches", s.handleMatchList).Methods(http.MethodGet)
	r.HandleFunc("/api/stats/daily", handleDailyStats).Methods(http.MethodGet)
	return r
}

func (s *server) handleWeapons(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.catalog)
}

func (s *server) handleWeapon(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || idx < 0 || idx >= s.catalog.Len() {
		writeError(w, http.StatusNotFound, "unknown weapon index: "+mux.Vars(r)["index"])
		return
	}
	writeJSON(w, map[string]any{
		"index":  idx,
		"record": s.catalog.Records[idx],
		"score":  s.catalog.Scores[idx],
	})
}

func (s *server) handleTiers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.cfg.Rounds)
}

func (s *server) handleTierWeapons(w http.ResponseWriter, r *http.Request) {
	round, err := strconv.Atoi(mux.Vars(r)["round"])
	if err != nil || round < 1 || round > len(s.cfg.Rounds) {
		writeError(w, http.StatusNotFound, "unknown round: "+mux.Vars(r)["round"])
		return
	}
	tier := s.cfg.Rounds[round-1]
	writeJSON(w, map[string]any{
		"round":   round,
		"tier":    tier,
		"weapons": s.catalog.Slice(tier.Start, tier.End),
		"scores":  s.catalog.Scores[tier.Start:min(tier.End, s.catalog.Len())],
	})
}

func (s *server) handleMatchPost(w http.ResponseWriter, r *http.Request) {
	var m models.MatchSummary
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if m.Wins+m.Losses == 0 && len(m.Rounds) == 0 {
		writeError(w, http.StatusBadRequest, "empty match")
		return
	}
	if m.ID == "" {
		m.ID = generateMatchID()
	}
	if m.Played.IsZero() {
		m.Played = time.Now()
	}

	stats.RecordMatch(m)

	s.matchMu.Lock()
	s.matches = append(s.matches, m)
	if len(s.matches) > maxMemoryMatches {
		s.matches = s.matches[len(s.matches)-maxMemoryMatches:]
	}
	s.matchMu.Unlock()

	if s.repo != nil {
		if err := s.repo.Save(r.Context(), m); err != nil {
			log.Printf("match store: save %s: %v", m.ID, err)
		}
	}
	writeJSON(w, map[string]string{"status": "ok", "id": m.ID})
}

func (s *server) handleMatchList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > maxMemoryMatches {
		limit = 20
	}
	if s.repo != nil {
		recs, err := s.repo.Recent(r.Context(), limit)
		if err == nil {
			writeJSON(w, recs)
			return
		}
		log.Printf("match store: recent: %v", err)
	}
	s.matchMu.Lock()
	defer s.matchMu.Unlock()
	n := len(s.matches)
	if limit > n {
		limit = n
	}
	out := make([]models.MatchSummary, limit)
	for i := 0; i < limit; i++ {
		out[i] = s.matches[n-1-i]
	}
	writeJSON(w, out)
}

func main() {
	cfg, err := config.Load(getenv("FIRESYNC_CONFIG", "firesync.yaml"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cat, err := catalog.Load(getenv("CASE_FILE", "case.txt"))
	if err != nil {
		log.Fatalf("load catalogue: %v", err)
	}
	if err := cfg.CheckCatalog(cat); err != nil {
		log.Fatalf("check catalogue: %v", err)
	}

	repo, err := store.OpenFromEnv()
	if err != nil {
		log.Fatalf("open match store: %v", err)
	}
	if repo != nil {
		defer repo.Close()
	}

	s := &server{catalog: cat, cfg: cfg, repo: repo}

	// Prefer Cloud Run's PORT env var when present
	port := os.Getenv("PORT")
	if port == "" {
		port = getenv("API_PORT", "8080")
	}
	addr := ":" + port
	log.Printf("FireSync data API listening on %s (%d weapons)", addr, cat.Len())
	log.Fatal(http.ListenAndServe(addr, withCORS(s.router())))
}
