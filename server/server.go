// Package server 暴露推荐引擎的 HTTP API。
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shopkit/rex/core"
	"github.com/shopkit/rex/engine"
	"github.com/shopkit/rex/pkg/logging"
)

const historyPageSize = 10 // /api/user-history 返回的条数上限

// Server 持有推荐编排器并提供路由。
type Server struct {
	rec *engine.Recommender
	log *zap.SugaredLogger
}

// New 构造 Server。log 可为 nil。
func New(rec *engine.Recommender, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{rec: rec, log: log}
}

// Router 组装 chi 路由。
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleProducts)
		r.Post("/interact", s.handleInteract)
		r.Get("/recommendations/{user_id}", s.handleRecommendations)
		r.Get("/user-history/{user_id}", s.handleUserHistory)
	})
	return r
}

// logRequests 以结构化日志记录每个请求。
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Infow("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.rec.Catalog().GetAllProducts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, products)
}

type interactRequest struct {
	UserID    string `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Type      string `json:"type"`
}

func (s *Server) handleInteract(w http.ResponseWriter, r *http.Request) {
	var req interactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" || req.ProductID == 0 {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and product_id are required"})
		return
	}

	if err := s.rec.RecordInteraction(r.Context(), req.UserID, req.ProductID, req.Type); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	recs, err := s.rec.Recommend(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if recs == nil {
		recs = []core.Recommendation{}
	}
	s.writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleUserHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	limit := historyPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	history, err := s.rec.UserHistory(r.Context(), userID, limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if history == nil {
		history = []engine.HistoryEntry{}
	}
	s.writeJSON(w, http.StatusOK, history)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorw("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsNotFound(err) {
		status = http.StatusNotFound
	} else if core.IsInvalidInput(err) {
		status = http.StatusBadRequest
	}
	s.log.Errorw("request failed", "err", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
