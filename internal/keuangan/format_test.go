package keuangan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "Rp 1.234.567", FormatRupiah(1234567))
	assert.Equal(t, "-Rp 50.000", FormatRupiah(-50000))
}

func TestFormatRupiahSingkat(t *testing.T) {
	assert.Equal(t, "Rp 1,5M", FormatRupiahSingkat(1_500_000_000, 0))
	assert.Equal(t, "Rp 2T", FormatRupiahSingkat(2_000_000_000_000, 0))
	assert.Equal(t, "Rp 2,5Jt", FormatRupiahSingkat(2_500_000, 1e6))
	assert.Equal(t, "Rp 500.000", FormatRupiahSingkat(500_000, 1e6))
}

func TestFormatPeriode(t *testing.T) {
	assert.Equal(t, "Maret 2024", FormatPeriode("2024-03"))
	assert.Equal(t, "Desember 2023", FormatPeriode("2023-12"))
	assert.Equal(t, "2024-13", FormatPeriode("2024-13"))
	assert.Equal(t, "acak", FormatPeriode("acak"))
}

func TestFormatTanggal(t *testing.T) {
	assert.Equal(t, "2 Mar 2024", FormatTanggal(time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", FormatTanggal(time.Time{}))
}

func TestFormatWaktu(t *testing.T) {
	assert.Equal(t, "2 Mar 2024 15:04", FormatWaktu(time.Date(2024, time.March, 2, 15, 4, 0, 0, time.UTC)))
}

func TestFormatTanggalPanjang(t *testing.T) {
	assert.Equal(t, "17 Agustus 2024", FormatTanggalPanjang(time.Date(2024, time.August, 17, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodeFilterLabel(t *testing.T) {
	assert.Equal(t, "Semua Periode", PeriodeFilter{Tahun: Semua, Bulan: Semua}.Label())
	assert.Equal(t, "Tahun 2024", PeriodeFilter{Tahun: "2024", Bulan: Semua}.Label())
	assert.Equal(t, "Bulan Maret (Semua Tahun)", PeriodeFilter{Tahun: Semua, Bulan: "03"}.Label())
	assert.Equal(t, "Maret 2024", PeriodeFilter{Tahun: "2024", Bulan: "03"}.Label())
}

func TestPeriodeFilterExportKey(t *testing.T) {
	assert.Equal(t, "Semua_Periode", PeriodeFilter{Tahun: Semua, Bulan: Semua}.ExportKey())
	assert.Equal(t, "2024", PeriodeFilter{Tahun: "2024", Bulan: Semua}.ExportKey())
	assert.Equal(t, "semua-03", PeriodeFilter{Tahun: Semua, Bulan: "03"}.ExportKey())
	assert.Equal(t, "2024-03", PeriodeFilter{Tahun: "2024", Bulan: "03"}.ExportKey())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Lunas", StatusLabel(StatusLunas))
	assert.Equal(t, "Belum Bayar", StatusLabel(StatusBelumBayar))
	assert.Equal(t, "Belum Bayar", StatusLabel(""))
}
