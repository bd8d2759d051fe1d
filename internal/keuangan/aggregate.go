package keuangan

// terbaru returns the rekap row with the greatest periode key. Collections
// from the Finance API arrive sorted descending, but the scan keeps the
// result independent of row order.
func terbaru(rows []RekapPeriode) (RekapPeriode, bool) {
	if len(rows) == 0 {
		return RekapPeriode{}, false
	}
	latest := rows[0]
	for _, row := range rows[1:] {
		if row.Periode > latest.Periode {
			latest = row
		}
	}
	return latest, true
}

// Ringkas reduces the period-filtered rekap rows to one summary. Income and
// expense totals are sums over the filtered rows in every policy. Ending
// balances are cumulative state and are never summed:
//
//   - all periods: balances come from the most recent period of the
//     unfiltered collection;
//   - a specific year or month: balances come from the most recent period of
//     the filtered rows.
//
// An empty filtered set yields an all-zero summary. The reduction is pure;
// calling it twice with the same inputs returns identical values.
func Ringkas(filtered, semua []RekapPeriode, sel PeriodeFilter) Ringkasan {
	var r Ringkasan
	if len(filtered) == 0 {
		return r
	}

	for _, row := range filtered {
		r.PemasukanSyahriah += row.PemasukanSyahriah
		r.PemasukanDonasi += row.PemasukanDonasi
		r.PengeluaranSyahriah += row.PengeluaranSyahriah
		r.PengeluaranDonasi += row.PengeluaranDonasi
		r.TotalPemasukan += row.PemasukanTotal
		r.TotalPengeluaran += row.PengeluaranTotal
	}

	saldoSource := filtered
	if sel.SemuaTahun() && sel.SemuaBulan() {
		saldoSource = semua
	}
	if latest, ok := terbaru(saldoSource); ok {
		r.SaldoAkhir = latest.SaldoAkhirTotal
		r.SaldoSyahriah = latest.SaldoAkhirSyahriah
		r.SaldoDonasi = latest.SaldoAkhirDonasi
	}
	return r
}
