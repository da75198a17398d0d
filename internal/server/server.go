// Package server exposes the content pipeline over HTTP for the marketing
// site's backend and for manual verification: generate an itinerary, inspect
// per-day extraction flags, and download preview/PDF renditions.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"deep-travel-collections/internal/destination"
	"deep-travel-collections/internal/extract"
	"deep-travel-collections/internal/generator"
	"deep-travel-collections/internal/itinerary"
	"deep-travel-collections/internal/metrics"
	"deep-travel-collections/internal/render"
	"deep-travel-collections/internal/storage"
)

// Server wires the itinerary service and its collaborators to HTTP handlers.
type Server struct {
	svc      *itinerary.Service
	repo     *destination.Repository
	store    *storage.ItineraryStore
	dataPath string
}

// New creates a new Server.
func New(svc *itinerary.Service, repo *destination.Repository, store *storage.ItineraryStore, dataPath string) *Server {
	return &Server{svc: svc, repo: repo, store: store, dataPath: dataPath}
}

// RegisterHandlers registers all routes on the given mux.
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/destinations", s.handleListDestinations)
	mux.HandleFunc("POST /api/destinations/{id}/itinerary", s.handleGenerate)
	mux.HandleFunc("GET /api/destinations/{id}/itinerary", s.handleLatest)
	mux.HandleFunc("GET /api/destinations/{id}/itinerary/report", s.handleReport)
	mux.HandleFunc("GET /api/destinations/{id}/itinerary/preview", s.handlePreview)
	mux.HandleFunc("GET /api/destinations/{id}/itinerary.pdf", s.handlePDF)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Snapshot(s.dataPath))
}

func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	destinations, err := s.repo.List(r.Context())
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to list destinations")
		return
	}
	writeJSON(w, http.StatusOK, destinations)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	dest, ok := s.lookupDestination(w, r)
	if !ok {
		return
	}

	var explicitType generator.Type
	if typeParam := r.URL.Query().Get("type"); typeParam != "" {
		t, err := generator.ParseType(typeParam)
		if err != nil {
			httpError(w, http.StatusBadRequest, "unknown generator type: "+typeParam)
			return
		}
		explicitType = t
	}

	it, err := s.svc.Generate(r.Context(), *dest, explicitType)
	if err != nil {
		log.Printf("server: generation failed for %s: %v", dest.Name, err)
		httpError(w, http.StatusBadGateway, "itinerary generation failed")
		return
	}

	if err := s.store.Save(it); err != nil {
		log.Printf("server: failed to persist itinerary for %s: %v", dest.Name, err)
	}

	writeJSON(w, http.StatusOK, it)
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	it, ok := s.loadLatest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// handleReport returns the per-day presence flags for the latest stored
// itinerary. Extraction is recomputed from the markdown on every call; the
// report is derived data, never persisted.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	it, ok := s.loadLatest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, extract.Reports(extract.Days(it.Markdown)))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	it, ok := s.loadLatest(w, r)
	if !ok {
		return
	}
	html, err := render.HTML(it)
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to render preview")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	it, ok := s.loadLatest(w, r)
	if !ok {
		return
	}
	pdfBytes, err := render.PDF(it)
	if err != nil {
		log.Printf("server: PDF render failed for %s: %v", it.DestinationName, err)
		httpError(w, http.StatusInternalServerError, "failed to render PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Write(pdfBytes)
}

func (s *Server) lookupDestination(w http.ResponseWriter, r *http.Request) (*destination.Destination, bool) {
	dest, err := s.repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to load destination")
		return nil, false
	}
	if dest == nil {
		httpError(w, http.StatusNotFound, "destination not found")
		return nil, false
	}
	return dest, true
}

func (s *Server) loadLatest(w http.ResponseWriter, r *http.Request) (*itinerary.Itinerary, bool) {
	it, err := s.store.LoadLatest(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusInternalServerError, "failed to load itinerary")
		return nil, false
	}
	if it == nil {
		httpError(w, http.StatusNotFound, "no itinerary generated for destination")
		return nil, false
	}
	return it, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: failed to encode response: %v", err)
	}
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
