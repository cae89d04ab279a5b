package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/tansu/internal/models"
	"github.com/hyperjump/tansu/internal/storage"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("chat request", zap.String("message", req.Message))
	response := s.interp.Process(r.Context(), req.Message)
	s.respondJSON(w, http.StatusOK, models.ChatResponse{Response: response})
}

func (s *Server) handleCreateShirt(w http.ResponseWriter, r *http.Request) {
	var input models.ShirtInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("create shirt request",
		zap.String("color", input.Color), zap.String("size", input.Size))
	shirt, err := s.inventory.CreateShirt(r.Context(), input)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, shirt)
}

func (s *Server) handleListShirts(w http.ResponseWriter, r *http.Request) {
	shirts, err := s.inventory.ListShirts(r.Context())
	if err != nil {
		s.logger.Error("list shirts failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"shirts": shirts,
		"total":  len(shirts),
	})
}

func (s *Server) handleGetShirt(w http.ResponseWriter, r *http.Request) {
	id, ok := s.shirtID(w, r)
	if !ok {
		return
	}
	shirt, err := s.inventory.GetShirt(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "shirt not found")
			return
		}
		s.logger.Error("get shirt failed", zap.Int64("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, shirt)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := s.shirtID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Status == "" {
		s.respondError(w, http.StatusBadRequest, "status is required")
		return
	}
	s.logger.Debug("update status request",
		zap.Int64("id", id), zap.String("status", body.Status))
	shirt, err := s.inventory.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "shirt not found")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, shirt)
}

func (s *Server) handleDeleteShirt(w http.ResponseWriter, r *http.Request) {
	id, ok := s.shirtID(w, r)
	if !ok {
		return
	}
	s.logger.Debug("delete shirt request", zap.Int64("id", id))
	if err := s.inventory.DeleteShirt(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "shirt not found")
			return
		}
		s.logger.Error("delete shirt failed", zap.Int64("id", id), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	s.logger.Debug("search request", zap.String("query", query), zap.Int("limit", limit))
	results, err := s.inventory.SearchShirts(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"results": results,
		"total":   len(results),
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.inventory.Statistics(r.Context())
	if err != nil {
		s.logger.Error("statistics failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleKnowledgeReload(w http.ResponseWriter, r *http.Request) {
	entries := s.knowledge.Reload()
	s.logger.Info("knowledge reloaded", zap.Int("entries", entries))
	s.respondJSON(w, http.StatusOK, map[string]int{"entries": entries})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	count, err := s.inventory.CountShirts(r.Context())
	if err != nil {
		s.logger.Error("status: count shirts failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"shirts":            count,
		"knowledge_entries": len(s.knowledge.Entries()),
	}
	configInfo := map[string]interface{}{
		"database_path":    s.config.Storage.DatabasePath,
		"bleve_index_path": s.config.Storage.BleveIndexPath,
		"images_dir":       s.config.Storage.ImagesDir,
		"knowledge_path":   s.config.Knowledge.Path,
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.BleveIndexPath,
		s.config.Storage.ImagesDir,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = configInfo
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) shirtID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		s.respondError(w, http.StatusBadRequest, "invalid shirt id")
		return 0, false
	}
	return id, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
