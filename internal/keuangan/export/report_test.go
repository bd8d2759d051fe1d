package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
)

func testReport() Report {
	lap := keuangan.Laporan{
		Selection: keuangan.PeriodeFilter{Tahun: "2024", Bulan: "03"},
		Ringkasan: keuangan.Ringkasan{
			TotalPemasukan:   800,
			TotalPengeluaran: 300,
			SaldoAkhir:       1300,
			SaldoSyahriah:    900,
			SaldoDonasi:      400,
		},
		Rekap: []keuangan.RekapPeriode{
			{
				Periode:           "2024-03",
				PemasukanSyahriah: 500,
				PemasukanDonasi:   300,
				PemasukanTotal:    800,
				PengeluaranTotal:  300,
				SaldoAkhirTotal:   1300,
			},
		},
		Pemakaian: []keuangan.Pemakaian{
			{
				ID:              "pk-1",
				Judul:           "Beli spidol",
				Deskripsi:       "Spidol papan tulis",
				Tipe:            keuangan.TipeOperasional,
				NominalSyahriah: 200,
				NominalDonasi:   100,
				NominalTotal:    300,
				CreatedAt:       time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC),
			},
		},
		Syahriah: []keuangan.Syahriah{
			{
				ID:         "sy-1",
				Bulan:      "2024-03",
				Nominal:    500,
				Status:     keuangan.StatusLunas,
				WaktuCatat: time.Date(2024, time.March, 3, 8, 0, 0, 0, time.UTC),
				Santri:     &keuangan.Santri{NamaLengkap: "Ahmad", Wali: &keuangan.Pengguna{ID: "wl-1", NamaLengkap: "Budi"}},
			},
		},
	}
	info := keuangan.InformasiTPQ{NamaTPQ: "TPQ Asy-Syafi'i", Tempat: "Campakoah", Alamat: "Jalan Uji 1"}
	return NewReport(lap, info, time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC))
}

func TestFilenameEmbedsInstitutionPeriodAndDate(t *testing.T) {
	r := testReport()

	assert.Equal(t, "Laporan_Keuangan_TPQ_Asy-Syafi'i_2024-03_2024-04-01.xlsx", r.Filename("xlsx"))
	assert.Equal(t, "Laporan_Keuangan_TPQ_Asy-Syafi'i_2024-03_2024-04-01.csv", r.Filename("csv"))
}

func TestFilenameUnderscoresSpacedNames(t *testing.T) {
	r := testReport()
	r.Info.NamaTPQ = "TPQ Nurul Huda"

	assert.Equal(t, "Laporan_Keuangan_TPQ_Nurul_Huda_2024-03_2024-04-01.doc", r.Filename("doc"))
}

func TestNewReportDefaultsMissingMetadata(t *testing.T) {
	r := NewReport(keuangan.Laporan{}, keuangan.InformasiTPQ{}, time.Now())

	assert.Equal(t, keuangan.DefaultInformasiTPQ().NamaTPQ, r.Info.NamaTPQ)
}

func TestNewReportCarriesPeriodLabel(t *testing.T) {
	r := testReport()

	assert.Equal(t, "Maret 2024", r.PeriodeLabel)
	assert.Equal(t, "2024-03", r.PeriodeKey)
}
