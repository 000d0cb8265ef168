package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"vehicle-expense-control/internal/archive"
	"vehicle-expense-control/internal/models"
	"vehicle-expense-control/internal/query"
	"vehicle-expense-control/internal/store"
)

// Server represents the API server
type Server struct {
	fuel   *store.FuelStore
	wash   *store.WashStore
	router *mux.Router
}

// NewServer creates a new API server over the two record stores
func NewServer(fuel *store.FuelStore, wash *store.WashStore) *Server {
	s := &Server{
		fuel:   fuel,
		wash:   wash,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Fuel endpoints
	s.router.HandleFunc("/api/v1/fuel", s.handleListFuel).Methods("GET")
	s.router.HandleFunc("/api/v1/fuel", s.handleCreateFuel).Methods("POST")
	s.router.HandleFunc("/api/v1/fuel/summary", s.handleFuelSummary).Methods("GET")
	s.router.HandleFunc("/api/v1/fuel/{id}", s.handleDeleteFuel).Methods("DELETE")

	// Wash endpoints
	s.router.HandleFunc("/api/v1/wash", s.handleListWash).Methods("GET")
	s.router.HandleFunc("/api/v1/wash", s.handleCreateWash).Methods("POST")
	s.router.HandleFunc("/api/v1/wash/summary", s.handleWashSummary).Methods("GET")
	s.router.HandleFunc("/api/v1/wash/{id}", s.handleDeleteWash).Methods("DELETE")

	// Import/export endpoints
	s.router.HandleFunc("/api/v1/export", s.handleExport).Methods("GET")
	s.router.HandleFunc("/api/v1/import", s.handleImport).Methods("POST")

	// Stats endpoint
	s.router.HandleFunc("/api/v1/stats", s.handleStats).Methods("GET")

	// Add middleware
	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)
}

// Router returns the configured router
func (s *Server) Router() *mux.Router {
	return s.router
}

// Middleware
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Response helpers
type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *meta       `json:"meta,omitempty"`
}

type meta struct {
	Total   int    `json:"total,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiResponse{Success: false, Error: message})
}

func respondWithMeta(w http.ResponseWriter, data interface{}, m *meta) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(apiResponse{Success: true, Data: data, Meta: m})
}

// Handlers
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleListFuel(w http.ResponseWriter, r *http.Request) {
	records := query.FilterFuel(s.fuel.List(), r.URL.Query().Get("q"))
	respondWithMeta(w, records, &meta{Total: len(records)})
}

func (s *Server) handleCreateFuel(w http.ResponseWriter, r *http.Request) {
	var draft models.FuelDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rec, err := s.fuel.Add(draft)
	if err != nil {
		var rej *store.RejectionError
		if errors.As(err, &rej) {
			respondError(w, http.StatusBadRequest, rej.Reason)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleDeleteFuel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.fuel.Remove(id) {
		respondError(w, http.StatusNotFound, "fuel record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"removed": id})
}

func (s *Server) handleFuelSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, query.SummarizeFuel(s.fuel.List()))
}

func (s *Server) handleListWash(w http.ResponseWriter, r *http.Request) {
	records := query.FilterWash(s.wash.List(), r.URL.Query().Get("q"))
	respondWithMeta(w, records, &meta{Total: len(records)})
}

func (s *Server) handleCreateWash(w http.ResponseWriter, r *http.Request) {
	var draft models.WashDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	rec, err := s.wash.Add(draft)
	if err != nil {
		var rej *store.RejectionError
		if errors.As(err, &rej) {
			respondError(w, http.StatusBadRequest, rej.Reason)
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleDeleteWash(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.wash.Remove(id) {
		respondError(w, http.StatusNotFound, "wash record not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"removed": id})
}

func (s *Server) handleWashSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, query.SummarizeWash(s.wash.List()))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	doc := archive.Export(s.fuel.List(), s.wash.List(), now)

	data, err := archive.Encode(doc)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+archive.Filename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	doc, err := archive.Parse(data)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := archive.Apply(doc, s.fuel, s.wash); err != nil {
		if errors.Is(err, archive.ErrNoRecognizedLists) {
			// valid JSON but nothing to import; stores untouched
			respondWithMeta(w, map[string]int{
				"fuelRecords": len(s.fuel.List()),
				"washRecords": len(s.wash.List()),
			}, &meta{Warning: err.Error()})
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{
		"fuelRecords": len(s.fuel.List()),
		"washRecords": len(s.wash.List()),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"fuel": query.SummarizeFuel(s.fuel.List()),
		"wash": query.SummarizeWash(s.wash.List()),
	})
}
