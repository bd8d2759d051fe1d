package keuangan

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var namaBulan = map[string]string{
	"01": "Januari",
	"02": "Februari",
	"03": "Maret",
	"04": "April",
	"05": "Mei",
	"06": "Juni",
	"07": "Juli",
	"08": "Agustus",
	"09": "September",
	"10": "Oktober",
	"11": "November",
	"12": "Desember",
}

var namaBulanSingkat = [...]string{
	"Jan", "Feb", "Mar", "Apr", "Mei", "Jun",
	"Jul", "Agu", "Sep", "Okt", "Nov", "Des",
}

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah renders a currency amount with Indonesian digit grouping,
// e.g. 1234567 -> "Rp 1.234.567".
func FormatRupiah(v float64) string {
	if v < 0 {
		return printer.Sprintf("-Rp %v", number.Decimal(-v, number.MaxFractionDigits(0)))
	}
	return printer.Sprintf("Rp %v", number.Decimal(v, number.MaxFractionDigits(0)))
}

// FormatRupiahSingkat abbreviates amounts at or above the given threshold
// (triliun/miliar/juta), e.g. 1500000000 -> "Rp 1,5M". Amounts below the
// threshold render in full.
func FormatRupiahSingkat(v float64, threshold float64) string {
	if threshold <= 0 {
		threshold = 1e9
	}
	if math.Abs(v) < threshold {
		return FormatRupiah(v)
	}
	units := []struct {
		value  float64
		symbol string
	}{
		{1e12, "T"},
		{1e9, "M"},
		{1e6, "Jt"},
	}
	for _, unit := range units {
		if math.Abs(v) >= unit.value {
			formatted := strconv.FormatFloat(v/unit.value, 'f', 1, 64)
			formatted = strings.TrimSuffix(formatted, ".0")
			formatted = strings.ReplaceAll(formatted, ".", ",")
			return "Rp " + formatted + unit.symbol
		}
	}
	return FormatRupiah(v)
}

// FormatPeriode renders a "YYYY-MM" key as "<Bulan> <YYYY>". Unparseable
// input is returned unchanged; display formatting is best-effort.
func FormatPeriode(periode string) string {
	tahun, bulan := splitPeriode(periode)
	nama, ok := namaBulan[bulan]
	if !ok || len(tahun) != 4 {
		return periode
	}
	return nama + " " + tahun
}

// NamaBulan returns the Indonesian month name for an "MM" value, or the
// input unchanged when unknown.
func NamaBulan(bulan string) string {
	if nama, ok := namaBulan[bulan]; ok {
		return nama
	}
	return bulan
}

// FormatTanggal renders a date as "2 Mar 2024".
func FormatTanggal(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), namaBulanSingkat[t.Month()-1], t.Year())
}

// FormatWaktu renders a timestamp as "2 Mar 2024 15:04".
func FormatWaktu(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d %02d:%02d", t.Day(), namaBulanSingkat[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// FormatTanggalPanjang renders a date as "2 Maret 2024" for letterheads and
// signature blocks.
func FormatTanggalPanjang(t time.Time) string {
	bulan := fmt.Sprintf("%02d", int(t.Month()))
	return fmt.Sprintf("%d %s %d", t.Day(), namaBulan[bulan], t.Year())
}

// Label renders the human-readable description of the selection used in
// report headers.
func (f PeriodeFilter) Label() string {
	switch {
	case f.SemuaTahun() && f.SemuaBulan():
		return "Semua Periode"
	case f.SemuaBulan():
		return "Tahun " + f.Tahun
	case f.SemuaTahun():
		return "Bulan " + NamaBulan(f.Bulan) + " (Semua Tahun)"
	default:
		return FormatPeriode(f.Tahun + "-" + f.Bulan)
	}
}

// ExportKey renders the selection fragment embedded in export filenames.
func (f PeriodeFilter) ExportKey() string {
	switch {
	case f.SemuaTahun() && f.SemuaBulan():
		return "Semua_Periode"
	case f.SemuaBulan():
		return f.Tahun
	case f.SemuaTahun():
		return Semua + "-" + f.Bulan
	default:
		return f.Tahun + "-" + f.Bulan
	}
}

// StatusLabel maps a syahriah status to its display label.
func StatusLabel(status string) string {
	if status == StatusLunas {
		return "Lunas"
	}
	return "Belum Bayar"
}
