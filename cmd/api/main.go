// Command api serves the market search pipeline over HTTP for frontends
// that want JSON instead of the CLI's formatted text.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/OldEphraim/polymarket-market-finder/db"
	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
	"github.com/OldEphraim/polymarket-market-finder/utils/config"
	"github.com/OldEphraim/polymarket-market-finder/utils/market"
)

type APIServer struct {
	gamma  *clients.GammaAPI
	store  *db.Store
	cfg    *config.Config
	apiKey string
	log    *slog.Logger
}

type SearchResponse struct {
	Query    string               `json:"query"`
	Variants []string             `json:"variants"`
	Events   []clients.GammaEvent `json:"events"`
}

// --------- helpers ---------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func (s *APIServer) parseLimit(r *http.Request) int {
	limit := atoiDefault(r.URL.Query().Get("limit"), s.cfg.DefaultLimit)
	if limit < 1 || limit > 100 {
		limit = s.cfg.DefaultLimit
	}
	return limit
}

func safeKeyEq(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

// authenticate enforces X-API-Key when a key is configured. Without one the
// server is open, which is fine for local use.
func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	if s.apiKey == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if !safeKeyEq(r.Header.Get("X-API-Key"), s.apiKey) {
			writeErr(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

// --------- handlers ---------

func (s *APIServer) getSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeErr(w, http.StatusBadRequest, "missing q parameter")
		return
	}
	limit := s.parseLimit(r)

	// Exact slug guess first, matching the CLI's behavior
	if event, err := s.gamma.GetEventBySlug(market.Slugify(query)); err == nil {
		writeJSON(w, http.StatusOK, SearchResponse{
			Query:    query,
			Variants: []string{market.Slugify(query)},
			Events:   []clients.GammaEvent{*event},
		})
		return
	}

	events, err := s.gamma.ListOpenEvents(s.cfg.BulkFetchLimit)
	if err != nil {
		s.log.Error("bulk listing failed", "err", err)
		writeErr(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}

	variants := market.Expand(query)
	matches := market.MatchEvents(variants, events)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		matches = []clients.GammaEvent{}
	}

	if s.store != nil {
		if err := s.store.RecordSearch(r.Context(), query, variants, len(matches)); err != nil {
			s.log.Warn("failed to record search", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Query: query, Variants: variants, Events: matches})
}

func (s *APIServer) getTrending(w http.ResponseWriter, r *http.Request) {
	events, err := s.gamma.ListTrendingEvents(s.parseLimit(r))
	if err != nil {
		s.log.Error("trending fetch failed", "err", err)
		writeErr(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *APIServer) getFeatured(w http.ResponseWriter, r *http.Request) {
	limit := s.parseLimit(r)
	events, err := s.gamma.ListFeaturedEvents(limit)
	if err == nil && len(events) == 0 {
		events, err = s.gamma.ListEventsByVolume(limit)
	}
	if err != nil {
		s.log.Error("featured fetch failed", "err", err)
		writeErr(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *APIServer) getEvent(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	event, err := s.gamma.GetEventBySlug(slug)
	if errors.Is(err, clients.ErrEventNotFound) {
		writeErr(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		s.log.Error("event fetch failed", "slug", slug, "err", err)
		writeErr(w, http.StatusBadGateway, "upstream fetch failed")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (s *APIServer) getHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeErr(w, http.StatusNotImplemented, "history requires a database")
		return
	}
	records, err := s.store.RecentSearches(r.Context(), s.parseLimit(r))
	if err != nil {
		s.log.Error("history query failed", "err", err)
		writeErr(w, http.StatusInternalServerError, "query failed")
		return
	}
	if records == nil {
		records = []db.SearchRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	loader := config.NewLoader()
	cfg, err := loader.Load("finder.json")
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	loader.LoadFromEnv(cfg)

	server := &APIServer{
		gamma:  clients.NewGammaAPIWithBase(cfg.BaseURL),
		cfg:    cfg,
		apiKey: os.Getenv("API_KEY"),
		log:    logger,
	}
	if server.apiKey == "" {
		logger.Warn("API_KEY not set, endpoints are unauthenticated")
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database unavailable, history disabled", "err", err)
		} else {
			defer store.Close()
			server.store = store
		}
	}

	r := mux.NewRouter()

	// Public
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Protected
	r.HandleFunc("/api/search", server.authenticate(server.getSearch)).Methods("GET")
	r.HandleFunc("/api/trending", server.authenticate(server.getTrending)).Methods("GET")
	r.HandleFunc("/api/featured", server.authenticate(server.getFeatured)).Methods("GET")
	r.HandleFunc("/api/events/{slug}", server.authenticate(server.getEvent)).Methods("GET")
	r.HandleFunc("/api/history", server.authenticate(server.getHistory)).Methods("GET")

	// CORS + logging + recover
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-API-Key"}),
	)
	h := handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, cors(r)))

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("api starting", "port", port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("api stopped", "err", err)
	}
}
