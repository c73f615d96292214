package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/crimson-sun/practicematch/internal/engine/classifier"
	"github.com/crimson-sun/practicematch/internal/engine/tagger"
	"github.com/crimson-sun/practicematch/internal/imagery"
	"github.com/crimson-sun/practicematch/internal/model"
)

type matchRequest struct {
	Labels []string `json:"labels"`
}

type matchResponse struct {
	Area      string             `json:"area,omitempty"`
	Matched   bool               `json:"matched"`
	Score     int                `json:"score"`
	HeroImage string             `json:"hero_image"`
	Labels    []string           `json:"labels,omitempty"`
	Threshold int                `json:"threshold,omitempty"`
	Ranking   []classifier.Score `json:"ranking,omitempty"`
}

type areaResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Priority  int               `json:"priority"`
	HeroImage string            `json:"hero_image"`
	Images    *imagery.ImageSet `json:"images,omitempty"`
}

type tagsRequest struct {
	Posts []tagger.Post `json:"posts"`
}

type tagsResponse struct {
	Posts []tagger.Tagging `json:"posts"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ex := s.engine.Explain(req.Labels)
	resp := matchResponse{
		Area:      ex.Area,
		Matched:   ex.Matched,
		Score:     ex.Score,
		HeroImage: imagery.HeroImage(ex.Area),
	}
	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain {
		resp.Labels = ex.Labels
		resp.Threshold = ex.Threshold
		resp.Ranking = ex.Ranking
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAreas(w http.ResponseWriter, r *http.Request) {
	areas := s.engine.Catalog().Areas()
	resp := make([]areaResponse, 0, len(areas))
	for _, a := range areas {
		resp = append(resp, toAreaResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	a, ok := s.engine.Catalog().Lookup(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown practice area %q", id))
		return
	}
	resp := toAreaResponse(a)
	if set, ok := imagery.Lookup(a.ID); ok {
		resp.Images = &set
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	var req tagsRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	resp := tagsResponse{Posts: make([]tagger.Tagging, 0, len(req.Posts))}
	for _, p := range req.Posts {
		resp.Posts = append(resp.Posts, s.tagger.Tag(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"areas":  s.engine.Catalog().Len(),
	})
}

func toAreaResponse(a model.Area) areaResponse {
	return areaResponse{
		ID:        a.ID,
		Name:      a.Name,
		Priority:  a.Priority,
		HeroImage: imagery.HeroImage(a.ID),
	}
}

// decode reads a single JSON object from the request body.
func decode(w http.ResponseWriter, r *http.Request, dest any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
