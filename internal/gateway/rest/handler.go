package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/syntrixbase/docgate/internal/ctxkeys"
	"github.com/syntrixbase/docgate/internal/metrics"
	"github.com/syntrixbase/docgate/internal/store"
)

var (
	observePoolStatus = metrics.ObservePoolStatus
	observeOperation  = metrics.ObserveOperation
)

// DocumentStore is the part of the store connection the handlers borrow for
// a request. It cannot close or replace the connection.
type DocumentStore interface {
	InsertMany(ctx context.Context, docs []bson.Raw) (*store.InsertResult, error)
	Find(ctx context.Context, filter bson.Raw, opts store.QueryOptions) ([]bson.M, error)
	PoolStatus(ctx context.Context) (store.PoolStatus, error)
	Ping(ctx context.Context) error
}

type Handler struct {
	store       DocumentStore
	logger      *slog.Logger
	maxBodySize int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithMaxBodySize caps the size of request bodies.
func WithMaxBodySize(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

const defaultMaxBodySize = 48 << 20

func NewHandler(s DocumentStore, opts ...HandlerOption) *Handler {
	if s == nil {
		panic("DocumentStore cannot be nil")
	}

	h := &Handler{
		store:       s,
		logger:      slog.Default(),
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "rest")
	return h
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /insert", maxBodySize(h.handleInsert, h.maxBodySize))
	mux.HandleFunc("POST /find", maxBodySize(h.handleFind, h.maxBodySize))
	mux.HandleFunc("GET /find", h.handleFindQuery)
	mux.HandleFunc("GET /health", h.handleHealth)
}

// APIError represents a structured error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const ErrCodeInternalError = "INTERNAL_ERROR"

var errEmptyBody = errors.New("request body is empty")

// writeError writes a structured JSON error response
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIError{Code: code, Message: message}); err != nil {
		slog.Warn("Failed to encode error response", "error", err)
	}
}

// writeInternalError logs err and answers with a bare 500. The caller never
// sees why the request failed.
func (h *Handler) writeInternalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(op+": failed",
		"error", err,
		"request_id", ctxkeys.RequestID(r.Context()),
	)
	writeError(w, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Failed to encode JSON response", "error", err)
	}
}

// maxBodySize wraps a handler with request body size limiting
func maxBodySize(next http.HandlerFunc, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next(w, r)
	}
}

// decodeExtJSON reads the request body as relaxed Extended JSON. Unlike
// encoding/json this keeps document key order, which sort specifications
// depend on, and accepts literals such as {"$oid": ...}.
func decodeExtJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errEmptyBody
	}
	if err := bson.UnmarshalExtJSON(body, false, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// reportPoolStatus logs and records the store's connection counts after an
// operation has been answered. Nothing it does can reach the response:
// errors and panics end here.
func (h *Handler) reportPoolStatus(ctx context.Context, op string) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Warn(op+": pool status report panicked", "panic", rec)
		}
	}()

	status, err := h.store.PoolStatus(ctx)
	if err != nil {
		h.logger.Warn(op+": pool status unavailable",
			"error", err,
			"request_id", ctxkeys.RequestID(ctx),
		)
		return
	}

	observePoolStatus(status.Current, status.Available)
	h.logger.Info(op+": connections",
		"current", status.Current,
		"available", status.Available,
		"request_id", ctxkeys.RequestID(ctx),
	)
}
