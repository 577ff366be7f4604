package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vyvo/airports/backend/pkg/airports"
	"github.com/vyvo/airports/backend/pkg/audit"
	"github.com/vyvo/airports/backend/pkg/events"
	"github.com/vyvo/airports/backend/pkg/openapi"
	"github.com/vyvo/airports/backend/pkg/telemetry"
)

const (
	maxBodyBytes       = 1 << 20
	defaultAuditLimit  = 50
	sideChannelTimeout = 3 * time.Second
)

// Logger is satisfied by *slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type server struct {
	store          airports.Repository
	publisher      *events.Publisher
	journal        *audit.PostgresJournal
	logger         Logger
	requestTimeout time.Duration
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func newServer(store airports.Repository, logger Logger) *server {
	return &server{store: store, logger: logger, requestTimeout: 60 * time.Second}
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&accessLogFormatter{logger: s.logger}))
	r.Use(middleware.Recoverer)
	r.Use(timeoutMiddleware(s.requestTimeout))

	r.Get("/healthz", healthzHandler)
	r.Get("/openapi.json", handleOpenAPIJSON)
	r.Get("/openapi.yaml", handleOpenAPIYAML)

	r.Route("/airports", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Put("/", s.handleReplace)
		r.Patch("/", s.handlePatch)
		r.Delete("/{airportID}", s.handleDelete)
	})

	r.Get("/events", s.handleEvents)
	r.Get("/audit", s.handleAudit)

	return r
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	_, span := telemetry.StartSpan(r.Context(), "airports.list", "")
	defer span.End()

	limit := -1
	if raw, ok := r.URL.Query()["limit"]; ok && len(raw) > 0 {
		parsed, err := airports.ParseLimit(raw[0])
		if err != nil {
			respondValidation(w, err)
			return
		}
		limit = parsed
	}

	respondJSON(w, s.store.List(limit), http.StatusOK)
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	airport, err := airports.DecodeAirport(body)
	if err != nil {
		respondValidation(w, err)
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "airports.create", airport.AirportID)
	defer span.End()

	if err := s.store.Create(airport); err != nil {
		if errors.Is(err, airports.ErrConflict) {
			respondJSON(w, detailResponse{Detail: fmt.Sprintf("Airport_ID %s exist in database.", airport.AirportID)}, http.StatusFound)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.notify(ctx, events.TypeCreated, airport.AirportID, &airport)
	respondJSON(w, messageResponse{Message: fmt.Sprintf("Successfully created airport: %s", airport.AirportID)}, http.StatusOK)
}

func (s *server) handleReplace(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	airport, err := airports.DecodeAirport(body)
	if err != nil {
		respondValidation(w, err)
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "airports.replace", airport.AirportID)
	defer span.End()

	if created := s.store.Put(airport); created {
		s.logger.Info("replace created airport", "airportID", airport.AirportID)
	}

	s.notify(ctx, events.TypeReplaced, airport.AirportID, &airport)
	respondJSON(w, messageResponse{Message: fmt.Sprintf("Successfully updated airport: %s", airport.AirportID)}, http.StatusOK)
}

func (s *server) handlePatch(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	patch, err := airports.DecodePatch(body)
	if err != nil {
		respondValidation(w, err)
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "airports.patch", patch.AirportID)
	defer span.End()

	updated, err := s.store.Patch(patch)
	if err != nil {
		if errors.Is(err, airports.ErrNotFound) {
			respondNotFound(w, patch.AirportID)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.notify(ctx, events.TypePatched, patch.AirportID, &updated)
	respondJSON(w, messageResponse{Message: fmt.Sprintf("Successfully updated specific data of the airport: %s", patch.AirportID)}, http.StatusOK)
}

func (s *server) handleDelete(w http.ResponseWriter, r *http.Request) {
	airportID := chi.URLParam(r, "airportID")

	ctx, span := telemetry.StartSpan(r.Context(), "airports.delete", airportID)
	defer span.End()

	if _, err := s.store.Delete(airportID); err != nil {
		if errors.Is(err, airports.ErrNotFound) {
			respondNotFound(w, airportID)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.notify(ctx, events.TypeDeleted, airportID, nil)
	respondJSON(w, messageResponse{Message: fmt.Sprintf("Successfully deleted airport: %s", airportID)}, http.StatusOK)
}

func (s *server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.publisher == nil {
		respondError(w, http.StatusNotFound, "event history is not configured")
		return
	}
	limit, ok := s.queryLimit(w, r, defaultAuditLimit)
	if !ok {
		return
	}
	recent, err := s.publisher.Recent(r.Context(), int64(limit))
	if err != nil {
		respondError(w, http.StatusBadGateway, fmt.Sprintf("failed to read events: %v", err))
		return
	}
	respondJSON(w, recent, http.StatusOK)
}

func (s *server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		respondError(w, http.StatusNotFound, "audit journal is not configured")
		return
	}
	limit, ok := s.queryLimit(w, r, defaultAuditLimit)
	if !ok {
		return
	}
	entries, err := s.journal.List(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list audit entries: %v", err))
		return
	}
	respondJSON(w, entries, http.StatusOK)
}

func (s *server) queryLimit(w http.ResponseWriter, r *http.Request, fallback int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback, true
	}
	limit, err := airports.ParseLimit(raw)
	if err != nil {
		respondValidation(w, err)
		return 0, false
	}
	return limit, true
}

// notify fans a successful mutation out to the configured side channels.
// Failures are logged and never surface to the caller.
func (s *server) notify(ctx context.Context, typ events.Type, airportID string, airport *airports.Airport) {
	if s.publisher == nil && s.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, sideChannelTimeout)
	defer cancel()

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewEvent(typ, airportID, airport)); err != nil {
			s.logger.Error("publish event failed", "airportID", airportID, "error", err)
		}
	}
	if s.journal != nil {
		var payload any
		if airport != nil {
			payload = airport
		}
		entry, err := audit.NewEntry(string(typ), airportID, payload)
		if err != nil {
			s.logger.Error("build audit entry failed", "airportID", airportID, "error", err)
			return
		}
		if err := s.journal.Record(ctx, entry); err != nil {
			s.logger.Error("record audit entry failed", "airportID", airportID, "error", err)
		}
	}
}

func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func handleOpenAPIJSON(w http.ResponseWriter, r *http.Request) {
	payload, err := openapi.Spec().JSON()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func handleOpenAPIYAML(w http.ResponseWriter, r *http.Request) {
	payload, err := openapi.Spec().YAML()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		respondError(w, http.StatusBadRequest, "failed to read body")
		return nil, false
	}
	return body, true
}

func respondValidation(w http.ResponseWriter, err error) {
	var verr *airports.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, verr, http.StatusUnprocessableEntity)
		return
	}
	respondError(w, http.StatusBadRequest, err.Error())
}

func respondNotFound(w http.ResponseWriter, airportID string) {
	respondJSON(w, detailResponse{Detail: fmt.Sprintf("Airport_ID %s not found.", airportID)}, http.StatusNotFound)
}

func respondJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, detailResponse{Detail: message}, status)
}
