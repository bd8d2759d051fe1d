package keuangan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func tgl(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
}

func TestFilterRekapDecisionTable(t *testing.T) {
	rekap := rekapFixture("2023-03", "2024-03", "2024-07")

	cases := []struct {
		name string
		sel  PeriodeFilter
		want []string
	}{
		{"semua", PeriodeFilter{Tahun: Semua, Bulan: Semua}, []string{"2023-03", "2024-03", "2024-07"}},
		{"tahun saja", PeriodeFilter{Tahun: "2024", Bulan: Semua}, []string{"2024-03", "2024-07"}},
		{"bulan saja", PeriodeFilter{Tahun: Semua, Bulan: "03"}, []string{"2023-03", "2024-03"}},
		{"tahun dan bulan", PeriodeFilter{Tahun: "2024", Bulan: "03"}, []string{"2024-03"}},
		{"tidak ada yang cocok", PeriodeFilter{Tahun: "2020", Bulan: "01"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterRekap(rekap, tc.sel)
			keys := make([]string, 0, len(got))
			for _, row := range got {
				keys = append(keys, row.Periode)
			}
			assert.Equal(t, tc.want, keys)
		})
	}
}

func TestUnrestrictedSelectionIsIdentityForAllCollections(t *testing.T) {
	sel := PeriodeFilter{Tahun: Semua, Bulan: Semua}

	rekap := rekapFixture("2024-01", "2024-02")
	assert.Equal(t, rekap, FilterRekap(rekap, sel))

	pemakaian := []Pemakaian{{ID: "a", CreatedAt: tgl(2024, time.March, 1)}, {ID: "b", CreatedAt: tgl(2023, time.May, 2)}}
	assert.Equal(t, pemakaian, FilterPemakaian(pemakaian, sel))

	donasi := []Donasi{{ID: "a", WaktuCatat: tgl(2024, time.March, 1)}, {ID: "b"}}
	assert.Equal(t, donasi, FilterDonasi(donasi, sel))

	syahriah := []Syahriah{{ID: "a", Bulan: "2024-03"}, {ID: "b", Bulan: "2023-05"}}
	assert.Equal(t, syahriah, FilterSyahriah(syahriah, sel))
}

func TestFilterPemakaianUsesEffectiveDate(t *testing.T) {
	maret := tgl(2024, time.March, 5)
	rows := []Pemakaian{
		{ID: "a", Tanggal: &maret, CreatedAt: tgl(2024, time.July, 1)},
		{ID: "b", CreatedAt: tgl(2024, time.March, 20)},
		{ID: "c", CreatedAt: tgl(2023, time.March, 20)},
	}

	got := FilterPemakaian(rows, PeriodeFilter{Tahun: "2024", Bulan: "03"})

	ids := make([]string, 0, len(got))
	for _, row := range got {
		ids = append(ids, row.ID)
	}
	// "a" matches on its explicit date, "b" on its creation fallback.
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestFilterDonasiByRecordedAt(t *testing.T) {
	rows := []Donasi{
		{ID: "a", WaktuCatat: tgl(2024, time.March, 1)},
		{ID: "b", WaktuCatat: tgl(2023, time.March, 1)},
	}

	got := FilterDonasi(rows, PeriodeFilter{Tahun: Semua, Bulan: "03"})
	assert.Len(t, got, 2)

	got = FilterDonasi(rows, PeriodeFilter{Tahun: "2023", Bulan: Semua})
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilterSyahriahByBulanKey(t *testing.T) {
	rows := []Syahriah{
		{ID: "a", Bulan: "2024-03"},
		{ID: "b", Bulan: "2024-04"},
		{ID: "c", Bulan: "2023-03"},
	}

	got := FilterSyahriah(rows, PeriodeFilter{Tahun: "2024", Bulan: "03"})

	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestMilikWaliComposesAfterDateFilter(t *testing.T) {
	wali := &Pengguna{ID: "wali-1"}
	lain := &Pengguna{ID: "wali-2"}
	rows := []Syahriah{
		{ID: "a", Bulan: "2024-03", Santri: &Santri{Wali: wali}},
		{ID: "b", Bulan: "2024-03", Santri: &Santri{Wali: lain}},
		{ID: "c", Bulan: "2024-04", Santri: &Santri{Wali: wali}},
		{ID: "d", Bulan: "2024-03"},
	}

	filtered := FilterSyahriah(rows, PeriodeFilter{Tahun: "2024", Bulan: "03"})
	got := MilikWali(filtered, "wali-1")

	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestMilikWaliEmptyIDMatchesNothing(t *testing.T) {
	rows := []Syahriah{{ID: "a", Santri: &Santri{Wali: &Pengguna{ID: "wali-1"}}}}

	assert.Empty(t, MilikWali(rows, ""))
}

func TestMilikWaliSkipsRowsWithoutGuardian(t *testing.T) {
	rows := []Syahriah{
		{ID: "a"},
		{ID: "b", Santri: &Santri{}},
		{ID: "c", Santri: &Santri{Wali: &Pengguna{ID: "wali-1"}}},
	}

	got := MilikWali(rows, "wali-1")

	assert.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}
