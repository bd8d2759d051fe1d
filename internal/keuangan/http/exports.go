package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan/export"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/platform/httpx"
)

type exportFormat struct {
	ext         string
	contentType string
	write       func(http.ResponseWriter, export.Report) error
}

var (
	formatXLSX = exportFormat{
		ext:         "xlsx",
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		write: func(w http.ResponseWriter, rep export.Report) error {
			return export.WriteWorkbook(w, rep)
		},
	}
	formatCSV = exportFormat{
		ext:         "csv",
		contentType: "text/csv; charset=utf-8",
		write: func(w http.ResponseWriter, rep export.Report) error {
			return export.WriteCSV(w, rep)
		},
	}
	formatDoc = exportFormat{
		ext:         "doc",
		contentType: "application/msword",
		write: func(w http.ResponseWriter, rep export.Report) error {
			return export.WriteDoc(w, rep)
		},
	}
)

// exportHandler builds a download handler for one format. Wali downloads
// carry the same ownership scoping as the wali laporan view.
func (h *Handler) exportHandler(format exportFormat, wali bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var waliID string
		if wali {
			waliID = userID(r)
			if waliID == "" {
				httpx.RespondError(w, fmt.Errorf("header %s kosong: %w", headerUserID, httpx.ErrUnauthorized))
				return
			}
		}
		lap, err := h.service.BuildLaporan(r.Context(), parseSelection(r), waliID)
		if err != nil {
			h.logger.Error("muat laporan export", slog.String("format", format.ext), slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		rep := export.NewReport(lap, h.service.Informasi(r.Context()), time.Now())

		w.Header().Set("Content-Type", format.contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename(format.ext)))
		if err := format.write(w, rep); err != nil {
			// Headers are already out; log and stop mid-stream.
			h.logger.Error("tulis export", slog.String("format", format.ext), slog.Any("error", err))
			return
		}
		h.metrics.CountExport(format.ext)
		h.logger.Info("export laporan",
			slog.String("format", format.ext),
			slog.String("periode", rep.PeriodeKey),
			slog.Bool("wali", wali),
		)
	}
}
