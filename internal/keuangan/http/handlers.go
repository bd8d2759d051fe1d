// Package http exposes the keuangan service over the dashboard REST API:
// the admin and wali laporan endpoints, the expenditure mutations and the
// rate-limited export downloads.
package http

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/observability"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/platform/httpx"
)

// headerUserID carries the authenticated account ID set by the auth proxy.
const headerUserID = "X-User-ID"

// Handler wires the keuangan endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *keuangan.Service
	metrics   *observability.Metrics
	rateLimit func(http.Handler) http.Handler
}

// NewHandler constructs the keuangan handler. Export downloads are limited
// per authenticated user, falling back to the client IP. metrics may be nil.
func NewHandler(logger *slog.Logger, service *keuangan.Service, metrics *observability.Metrics) *Handler {
	limiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		if user := strings.TrimSpace(r.Header.Get(headerUserID)); user != "" {
			return "user:" + user, nil
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
	return &Handler{
		logger:    logger,
		service:   service,
		metrics:   metrics,
		rateLimit: limiter,
	}
}

// MountRoutes registers the admin and wali route trees.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/keuangan", h.handleLaporanAdmin)
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit)
			r.Get("/keuangan/export.xlsx", h.exportHandler(formatXLSX, false))
			r.Get("/keuangan/export.csv", h.exportHandler(formatCSV, false))
			r.Get("/keuangan/export.doc", h.exportHandler(formatDoc, false))
		})
		r.Post("/pemakaian", h.handleCreatePemakaian)
		r.Put("/pemakaian/{id}", h.handleUpdatePemakaian)
		r.Delete("/pemakaian/{id}", h.handleDeletePemakaian)
		r.Post("/rekap/generate", h.handleGenerateRekap)
	})
	r.Route("/api/wali", func(r chi.Router) {
		r.Get("/keuangan", h.handleLaporanWali)
		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit)
			r.Get("/keuangan/export.xlsx", h.exportHandler(formatXLSX, true))
			r.Get("/keuangan/export.csv", h.exportHandler(formatCSV, true))
			r.Get("/keuangan/export.doc", h.exportHandler(formatDoc, true))
		})
	})
}

// parseSelection reads the tahun/bulan query parameters. Empty values are
// resolved by the service (current year default, month reset).
func parseSelection(r *http.Request) keuangan.PeriodeFilter {
	q := r.URL.Query()
	return keuangan.PeriodeFilter{
		Tahun: strings.TrimSpace(q.Get("tahun")),
		Bulan: strings.TrimSpace(q.Get("bulan")),
	}
}

// userID extracts the authenticated account ID from the proxy header.
func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(headerUserID))
}

func (h *Handler) handleLaporanAdmin(w http.ResponseWriter, r *http.Request) {
	lap, err := h.service.BuildLaporan(r.Context(), parseSelection(r), "")
	if err != nil {
		h.logger.Error("muat laporan admin", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, FromLaporan(lap))
}

func (h *Handler) handleLaporanWali(w http.ResponseWriter, r *http.Request) {
	wali := userID(r)
	if wali == "" {
		httpx.RespondError(w, fmt.Errorf("header %s kosong: %w", headerUserID, httpx.ErrUnauthorized))
		return
	}
	lap, err := h.service.BuildLaporan(r.Context(), parseSelection(r), wali)
	if err != nil {
		h.logger.Error("muat laporan wali", slog.String("wali_id", wali), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, FromLaporan(lap))
}

func (h *Handler) handleCreatePemakaian(w http.ResponseWriter, r *http.Request) {
	var input keuangan.PemakaianInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	created, err := h.service.CreatePemakaian(r.Context(), input)
	if err != nil {
		h.logger.Error("buat pemakaian", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdatePemakaian(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var input keuangan.PemakaianInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.RespondError(w, err)
		return
	}
	updated, err := h.service.UpdatePemakaian(r.Context(), id, input)
	if err != nil {
		h.logger.Error("ubah pemakaian", slog.String("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeletePemakaian(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeletePemakaian(r.Context(), id); err != nil {
		h.logger.Error("hapus pemakaian", slog.String("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "terhapus"})
}

func (h *Handler) handleGenerateRekap(w http.ResponseWriter, r *http.Request) {
	if err := h.service.GenerateRekap(r.Context()); err != nil {
		h.logger.Error("generate rekap", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "rekap diperbarui"})
}
