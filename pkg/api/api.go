// Package api exposes identifier generation and decoding over HTTP.
//
//	GET /v1/euid?count=N&extension=E  creates N monotonic identifiers
//	GET /v1/euid/{id}                 decodes an identifier
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/outofforest/euid"
	"github.com/outofforest/euid/pkg/idgen"
	"github.com/outofforest/euid/pkg/parse"
	"github.com/outofforest/logger"
)

// MaxCount is the largest number of identifiers created by a single request.
const MaxCount = 1000

// Created is the response of the create endpoint.
type Created struct {
	IDs []string `json:"ids"`
}

// Decoded is the response of the decode endpoint.
type Decoded struct {
	ID        string    `json:"id"`
	Decimal   string    `json:"decimal"`
	UUID      string    `json:"uuid"`
	Timestamp uint64    `json:"timestamp"`
	Time      time.Time `json:"time"`
	Extension *uint16   `json:"extension,omitempty"`
	Version   uint8     `json:"version"`
}

// Config configures the handler.
type Config struct {
	Generator *euid.Generator
	// Extension is used when request does not specify one.
	Extension uint16
	Checksum  bool
}

// NewHandler returns the HTTP handler of the API.
func NewHandler(cfg Config) http.Handler {
	h := &handler{cfg: cfg}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/euid", h.create)
	mux.HandleFunc("GET /v1/euid/{id}", h.decode)
	return mux
}

type handler struct {
	cfg Config
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	count := 1
	if v := r.URL.Query().Get("count"); v != "" {
		var err error
		count, err = strconv.Atoi(v)
		if err != nil || count < 1 || count > MaxCount {
			writeError(w, r, http.StatusBadRequest, errors.Errorf("count must be in range [1, %d]", MaxCount))
			return
		}
	}

	extension := h.cfg.Extension
	if v := r.URL.Query().Get("extension"); v != "" {
		var err error
		if extension, err = parse.ParseExtension(v); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
	}

	seq := idgen.NewSequence(h.cfg.Generator, extension)
	resp := Created{IDs: make([]string, 0, count)}
	for range count {
		id, err := seq.Next(r.Context())
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		resp.IDs = append(resp.IDs, id.Encode(h.cfg.Checksum))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request) {
	id, err := euid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	resp := Decoded{
		ID:        id.String(),
		Decimal:   id.Big().String(),
		UUID:      id.UUID().String(),
		Timestamp: id.Timestamp(),
		Time:      id.Time(h.cfg.Generator.Epoch()),
		Version:   id.Version(),
	}
	if ext, ok := id.Extension(); ok {
		resp.Extension = &ext
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logger.Get(r.Context()).Debug("Request failed", zap.Error(err))
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get(r.Context()).Error("Writing response failed", zap.Error(err),
			zap.String("response", fmt.Sprintf("%T", v)))
	}
}
