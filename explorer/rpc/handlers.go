package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Cogwheel-Validator/spectra-explorer/explorer/query"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/resolver"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/service"
	"github.com/Cogwheel-Validator/spectra-explorer/explorer/views"
)

// Explorer loads the detail views
type Explorer interface {
	Block(ctx context.Context, height int64) (*views.BlockView, error)
	Transaction(ctx context.Context, hash string) (*views.TransactionView, error)
	Address(ctx context.Context, address string, page, limit int) (*views.AddressView, error)
}

// DashboardSource publishes the polled dashboard
type DashboardSource interface {
	Snapshot() (*service.Snapshot, error)
}

var (
	_ Explorer        = (*service.Explorer)(nil)
	_ DashboardSource = (*service.Poller)(nil)
)

type handlers struct {
	explorer  Explorer
	dashboard DashboardSource
}

type errorResponse struct {
	Error string `json:"error"`
}

// searchResponse points the client to the view matching the query
type searchResponse struct {
	views.SearchResult
	Path string `json:"path"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.Debug().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeUpstreamError answers 404 when the API did not know the entity, 502 otherwise
func writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		return
	}
	if query.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	Logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream request failed")
	writeError(w, http.StatusBadGateway, err.Error())
}

func (h *handlers) ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.dashboard.Snapshot(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *handlers) dashboardView(w http.ResponseWriter, r *http.Request) {
	snap, err := h.dashboard.Snapshot()
	if errors.Is(err, service.ErrNotLoaded) {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *handlers) blockView(w http.ResponseWriter, r *http.Request) {
	height, err := strconv.ParseInt(chi.URLParam(r, "height"), 10, 64)
	if err != nil || height <= 0 {
		writeError(w, http.StatusBadRequest, "height must be a positive integer")
		return
	}
	view, err := h.explorer.Block(r.Context(), height)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) transactionView(w http.ResponseWriter, r *http.Request) {
	result := views.ClassifySearch(chi.URLParam(r, "hash"))
	if result.Kind != views.SearchTransaction {
		writeError(w, http.StatusBadRequest, "hash must be 64 hex characters")
		return
	}
	view, err := h.explorer.Transaction(r.Context(), result.Query)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) addressView(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	if !resolver.IsAccountAddress(address) {
		writeError(w, http.StatusBadRequest, "invalid account address")
		return
	}
	page, ok := intParam(r, "page", 1)
	if !ok || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, ok := intParam(r, "limit", service.DefaultTxsLimit)
	if !ok || limit < 1 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	view, err := h.explorer.Address(r.Context(), address, page, limit)
	if err != nil {
		writeUpstreamError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *handlers) search(w http.ResponseWriter, r *http.Request) {
	result := views.ClassifySearch(r.URL.Query().Get("q"))
	resp := searchResponse{SearchResult: result}
	switch result.Kind {
	case views.SearchBlock:
		resp.Path = "/api/blocks/" + result.Query
	case views.SearchTransaction:
		resp.Path = "/api/txs/" + result.Query
	case views.SearchAddress:
		resp.Path = "/api/address/" + result.Query
	default:
		writeError(w, http.StatusNotFound, "no block, transaction or address matches the query")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// intParam reads an optional integer query parameter
func intParam(r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}
