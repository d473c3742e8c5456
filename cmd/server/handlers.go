package main

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/go-chi/cors"
    "github.com/sirupsen/logrus"

    "marketdata/internal/provider"
)

const minQueryLen = 2

// marketService is the subset of marketdata.Service the API exposes.
type marketService interface {
    GetCurrentPrice(ctx context.Context, symbol string) (provider.Quote, bool)
    SearchSymbols(ctx context.Context, query string) []provider.SearchResult
    GetTrendingAssets(ctx context.Context) []provider.TrendingEntry
    Invalidate(ctx context.Context, symbol string)
}

type searchResponse struct {
    Query   string                  `json:"query"`
    Results []provider.SearchResult `json:"results"`
}

type trendingResponse struct {
    Assets []provider.TrendingEntry `json:"assets"`
}

type errorResponse struct {
    Error   string `json:"error"`
    Message string `json:"message"`
}

type handlers struct {
    svc marketService
}

func newRouter(svc marketService, timeout time.Duration) http.Handler {
    h := &handlers{svc: svc}

    r := chi.NewRouter()
    r.Use(middleware.RequestID)
    r.Use(middleware.RealIP)
    r.Use(requestLogger)
    r.Use(middleware.Recoverer)
    r.Use(middleware.Compress(5, "application/json"))
    r.Use(middleware.Timeout(timeout))
    r.Use(cors.Handler(cors.Options{
        AllowedOrigins: []string{"*"},
        AllowedMethods: []string{"GET", "DELETE", "OPTIONS"},
        AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
        ExposedHeaders: []string{"X-Request-ID"},
        MaxAge:         300,
    }))

    r.Get("/healthz", h.health)
    r.Route("/api/v1/market", func(r chi.Router) {
        r.Get("/price/{symbol}", h.price)
        r.Delete("/price/{symbol}", h.invalidate)
        r.Get("/search", h.search)
        r.Get("/trending", h.trending)
    })
    return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
    writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) price(w http.ResponseWriter, r *http.Request) {
    symbol := provider.CanonicalSymbol(chi.URLParam(r, "symbol"))
    q, ok := h.svc.GetCurrentPrice(r.Context(), symbol)
    if !ok {
        writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("no price data found for symbol %q", symbol))
        return
    }
    writeJSON(w, http.StatusOK, q)
}

func (h *handlers) invalidate(w http.ResponseWriter, r *http.Request) {
    h.svc.Invalidate(r.Context(), chi.URLParam(r, "symbol"))
    w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
    q := strings.TrimSpace(r.URL.Query().Get("query"))
    if len([]rune(q)) < minQueryLen {
        writeError(w, http.StatusBadRequest, "invalid_query", fmt.Sprintf("query must be at least %d characters", minQueryLen))
        return
    }
    writeJSON(w, http.StatusOK, searchResponse{Query: q, Results: h.svc.SearchSymbols(r.Context(), q)})
}

func (h *handlers) trending(w http.ResponseWriter, r *http.Request) {
    assets := h.svc.GetTrendingAssets(r.Context())
    if assets == nil {
        assets = []provider.TrendingEntry{}
    }
    writeJSON(w, http.StatusOK, trendingResponse{Assets: assets})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    if err := enc.Encode(v); err != nil {
        logrus.WithField("err", err).Warn("write response failed")
    }
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
    writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

// requestLogger logs one line per request through logrus.
func requestLogger(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()
        ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
        next.ServeHTTP(ww, r)
        logrus.WithFields(logrus.Fields{
            "method":     r.Method,
            "path":       r.URL.Path,
            "status":     ww.Status(),
            "bytes":      ww.BytesWritten(),
            "duration":   time.Since(start).String(),
            "request_id": middleware.GetReqID(r.Context()),
        }).Info("request")
    })
}
