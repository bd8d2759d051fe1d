package keuangan

import (
	"sort"
	"strings"
	"time"
)

// splitPeriode breaks a "YYYY-MM" key into its year and month parts. The
// month part is empty when the key has no dash.
func splitPeriode(periode string) (tahun, bulan string) {
	tahun, bulan, _ = strings.Cut(periode, "-")
	return tahun, bulan
}

// AvailableYears returns the distinct years present in the rekap collection,
// sorted descending so the most recent year comes first.
func AvailableYears(rekap []RekapPeriode) []string {
	seen := make(map[string]struct{}, len(rekap))
	years := make([]string, 0, len(rekap))
	for _, item := range rekap {
		tahun, _ := splitPeriode(item.Periode)
		if tahun == "" {
			continue
		}
		if _, ok := seen[tahun]; ok {
			continue
		}
		seen[tahun] = struct{}{}
		years = append(years, tahun)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// AvailableMonths returns the distinct months present in the rekap
// collection, sorted ascending. When tahun selects a specific year only
// periods of that year contribute.
func AvailableMonths(rekap []RekapPeriode, tahun string) []string {
	seen := make(map[string]struct{}, 12)
	months := make([]string, 0, 12)
	for _, item := range rekap {
		itemTahun, itemBulan := splitPeriode(item.Periode)
		if itemBulan == "" {
			continue
		}
		if tahun != Semua && tahun != "" && itemTahun != tahun {
			continue
		}
		if _, ok := seen[itemBulan]; ok {
			continue
		}
		seen[itemBulan] = struct{}{}
		months = append(months, itemBulan)
	}
	sort.Strings(months)
	return months
}

// NormalizeSelection resets the month selection to Semua when it is absent
// from the months available for the current year scope. Must be re-applied
// whenever the year selection or the underlying collection changes.
func NormalizeSelection(sel PeriodeFilter, availableMonths []string) PeriodeFilter {
	if sel.Tahun == "" {
		sel.Tahun = Semua
	}
	if sel.Bulan == "" {
		sel.Bulan = Semua
	}
	if sel.Bulan == Semua {
		return sel
	}
	for _, bulan := range availableMonths {
		if bulan == sel.Bulan {
			return sel
		}
	}
	sel.Bulan = Semua
	return sel
}

// DefaultSelection picks the initial selection for a view: the current year
// when the data contains it, otherwise the most recent year, with the month
// unrestricted. An empty collection yields an all-periods selection.
func DefaultSelection(rekap []RekapPeriode, now time.Time) PeriodeFilter {
	years := AvailableYears(rekap)
	if len(years) == 0 {
		return PeriodeFilter{Tahun: Semua, Bulan: Semua}
	}
	current := now.Format("2006")
	for _, tahun := range years {
		if tahun == current {
			return PeriodeFilter{Tahun: current, Bulan: Semua}
		}
	}
	return PeriodeFilter{Tahun: years[0], Bulan: Semua}
}
