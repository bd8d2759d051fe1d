// Package export renders a period-scoped finance report into the three
// supported encodings: xlsx workbook, delimited text and a printable Word
// document.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
)

// Report bundles everything the encoders need: the filtered collections,
// the aggregate summary, the letterhead metadata and the resolved period
// label. Collections are the currently displayed rows; per-table totals in
// the document encoding are recomputed from them, not taken from Ringkasan.
type Report struct {
	Info         keuangan.InformasiTPQ
	PeriodeLabel string
	PeriodeKey   string
	DicetakPada  time.Time
	Ringkasan    keuangan.Ringkasan
	Rekap        []keuangan.RekapPeriode
	Pemakaian    []keuangan.Pemakaian
	Donasi       []keuangan.Donasi
	Syahriah     []keuangan.Syahriah
}

// NewReport projects a derived Laporan plus letterhead metadata into the
// encoder input.
func NewReport(lap keuangan.Laporan, info keuangan.InformasiTPQ, now time.Time) Report {
	if info.NamaTPQ == "" {
		info = keuangan.DefaultInformasiTPQ()
	}
	return Report{
		Info:         info,
		PeriodeLabel: lap.Selection.Label(),
		PeriodeKey:   lap.Selection.ExportKey(),
		DicetakPada:  now,
		Ringkasan:    lap.Ringkasan,
		Rekap:        lap.Rekap,
		Pemakaian:    lap.Pemakaian,
		Donasi:       lap.Donasi,
		Syahriah:     lap.Syahriah,
	}
}

// Filename builds the download name for the given extension, embedding the
// institution name, the period key and the print date.
func (r Report) Filename(ext string) string {
	nama := strings.Join(strings.Fields(r.Info.NamaTPQ), "_")
	if nama == "" {
		nama = "TPQ"
	}
	return fmt.Sprintf("Laporan_Keuangan_%s_%s_%s.%s", nama, r.PeriodeKey, r.DicetakPada.Format("2006-01-02"), ext)
}

// judulInstansi is the institution line repeated on section headers.
func (r Report) judulInstansi() string {
	if r.Info.Tempat != "" {
		return r.Info.NamaTPQ + " " + r.Info.Tempat
	}
	return r.Info.NamaTPQ
}

func formatNominal(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func fallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
