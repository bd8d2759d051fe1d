package keuangan

import (
	"fmt"
	"time"
)

// matchPeriodeKey applies the selection to a "YYYY-MM" string key. The four
// selection states collapse to prefix/suffix/exact matching.
func matchPeriodeKey(periode string, sel PeriodeFilter) bool {
	tahun, bulan := splitPeriode(periode)
	switch {
	case sel.SemuaTahun() && sel.SemuaBulan():
		return true
	case sel.SemuaBulan():
		return tahun == sel.Tahun
	case sel.SemuaTahun():
		return bulan == sel.Bulan
	default:
		return tahun == sel.Tahun && bulan == sel.Bulan
	}
}

// matchTanggal applies the selection to a timestamp by calendar year/month
// equality.
func matchTanggal(t time.Time, sel PeriodeFilter) bool {
	tahun := fmt.Sprintf("%04d", t.Year())
	bulan := fmt.Sprintf("%02d", int(t.Month()))
	switch {
	case sel.SemuaTahun() && sel.SemuaBulan():
		return true
	case sel.SemuaBulan():
		return tahun == sel.Tahun
	case sel.SemuaTahun():
		return bulan == sel.Bulan
	default:
		return tahun == sel.Tahun && bulan == sel.Bulan
	}
}

// FilterRekap narrows rekap rows to the selection by their periode key.
// An unrestricted selection returns the input slice unmodified.
func FilterRekap(rows []RekapPeriode, sel PeriodeFilter) []RekapPeriode {
	if sel.SemuaTahun() && sel.SemuaBulan() {
		return rows
	}
	out := make([]RekapPeriode, 0, len(rows))
	for _, row := range rows {
		if matchPeriodeKey(row.Periode, sel) {
			out = append(out, row)
		}
	}
	return out
}

// FilterPemakaian narrows expenditures to the selection by their effective
// transaction date (falling back to the creation timestamp).
func FilterPemakaian(rows []Pemakaian, sel PeriodeFilter) []Pemakaian {
	if sel.SemuaTahun() && sel.SemuaBulan() {
		return rows
	}
	out := make([]Pemakaian, 0, len(rows))
	for _, row := range rows {
		if matchTanggal(row.TanggalEfektif(), sel) {
			out = append(out, row)
		}
	}
	return out
}

// FilterDonasi narrows donations to the selection by their recorded-at
// timestamp.
func FilterDonasi(rows []Donasi, sel PeriodeFilter) []Donasi {
	if sel.SemuaTahun() && sel.SemuaBulan() {
		return rows
	}
	out := make([]Donasi, 0, len(rows))
	for _, row := range rows {
		if matchTanggal(row.WaktuCatat, sel) {
			out = append(out, row)
		}
	}
	return out
}

// FilterSyahriah narrows tuition rows to the selection by their bulan key.
func FilterSyahriah(rows []Syahriah, sel PeriodeFilter) []Syahriah {
	if sel.SemuaTahun() && sel.SemuaBulan() {
		return rows
	}
	out := make([]Syahriah, 0, len(rows))
	for _, row := range rows {
		if matchPeriodeKey(row.Bulan, sel) {
			out = append(out, row)
		}
	}
	return out
}

// MilikWali restricts tuition rows to those owned by the given guardian.
// This is a capability-scoping rule, independent of the period filter, and
// composes with it: the wali view applies the period filter first and this
// predicate second. Rows without a resolvable guardian never match.
func MilikWali(rows []Syahriah, waliID string) []Syahriah {
	if waliID == "" {
		return nil
	}
	out := make([]Syahriah, 0, len(rows))
	for _, row := range rows {
		if row.WaliID() == waliID {
			out = append(out, row)
		}
	}
	return out
}
