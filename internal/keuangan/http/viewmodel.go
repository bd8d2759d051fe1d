package http

import (
	"time"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
)

// LaporanVM is the JSON shape of the laporan endpoints. Collection rows are
// flattened so the dashboard never has to walk nested relations.
type LaporanVM struct {
	Periode       keuangan.PeriodeFilter  `json:"periode"`
	TahunTersedia []string                `json:"tahun_tersedia"`
	BulanTersedia []string                `json:"bulan_tersedia"`
	Ringkasan     keuangan.Ringkasan      `json:"ringkasan"`
	Rekap         []keuangan.RekapPeriode `json:"rekap"`
	Pemakaian     []PemakaianVM           `json:"pemakaian"`
	Donasi        []DonasiVM              `json:"donasi"`
	Syahriah      []SyahriahVM            `json:"syahriah"`
}

// PemakaianVM flattens one expenditure row.
type PemakaianVM struct {
	ID              string    `json:"id_pemakaian"`
	Judul           string    `json:"judul_pemakaian"`
	Deskripsi       string    `json:"deskripsi"`
	Tipe            string    `json:"tipe_pemakaian"`
	NominalSyahriah float64   `json:"nominal_syahriah"`
	NominalDonasi   float64   `json:"nominal_donasi"`
	NominalTotal    float64   `json:"nominal_total"`
	Tanggal         time.Time `json:"tanggal_pemakaian"`
	Keterangan      string    `json:"keterangan,omitempty"`
	NamaPengaju     string    `json:"nama_pengaju"`
}

// DonasiVM flattens one donation row.
type DonasiVM struct {
	ID          string    `json:"id_donasi"`
	NamaDonatur string    `json:"nama_donatur"`
	NoTelp      string    `json:"no_telp,omitempty"`
	Nominal     float64   `json:"nominal"`
	WaktuCatat  time.Time `json:"waktu_catat"`
	NamaAdmin   string    `json:"nama_admin"`
}

// SyahriahVM flattens one tuition row.
type SyahriahVM struct {
	ID         string    `json:"id_syahriah"`
	NamaSantri string    `json:"nama_santri"`
	NamaWali   string    `json:"nama_wali"`
	Bulan      string    `json:"bulan"`
	Nominal    float64   `json:"nominal"`
	Status     string    `json:"status"`
	Lunas      bool      `json:"lunas"`
	WaktuCatat time.Time `json:"waktu_catat"`
	NamaAdmin  string    `json:"nama_admin"`
}

// FromLaporan builds the response view model from a composed laporan.
func FromLaporan(lap keuangan.Laporan) LaporanVM {
	vm := LaporanVM{
		Periode:       lap.Selection,
		TahunTersedia: lap.TahunTersedia,
		BulanTersedia: lap.BulanTersedia,
		Ringkasan:     lap.Ringkasan,
		Rekap:         lap.Rekap,
		Pemakaian:     make([]PemakaianVM, 0, len(lap.Pemakaian)),
		Donasi:        make([]DonasiVM, 0, len(lap.Donasi)),
		Syahriah:      make([]SyahriahVM, 0, len(lap.Syahriah)),
	}
	if vm.Rekap == nil {
		vm.Rekap = []keuangan.RekapPeriode{}
	}
	if vm.TahunTersedia == nil {
		vm.TahunTersedia = []string{}
	}
	if vm.BulanTersedia == nil {
		vm.BulanTersedia = []string{}
	}
	for _, p := range lap.Pemakaian {
		vm.Pemakaian = append(vm.Pemakaian, PemakaianVM{
			ID:              p.ID,
			Judul:           p.Judul,
			Deskripsi:       p.Deskripsi,
			Tipe:            p.Tipe,
			NominalSyahriah: p.NominalSyahriah,
			NominalDonasi:   p.NominalDonasi,
			NominalTotal:    p.NominalTotal,
			Tanggal:         p.TanggalEfektif(),
			Keterangan:      p.Keterangan,
			NamaPengaju:     p.NamaPengaju(),
		})
	}
	for _, d := range lap.Donasi {
		vm.Donasi = append(vm.Donasi, DonasiVM{
			ID:          d.ID,
			NamaDonatur: d.NamaDonatur,
			NoTelp:      d.NoTelp,
			Nominal:     d.Nominal,
			WaktuCatat:  d.WaktuCatat,
			NamaAdmin:   d.NamaAdmin(),
		})
	}
	for _, s := range lap.Syahriah {
		vm.Syahriah = append(vm.Syahriah, SyahriahVM{
			ID:         s.ID,
			NamaSantri: s.NamaSantri(),
			NamaWali:   s.NamaWali(),
			Bulan:      s.Bulan,
			Nominal:    s.Nominal,
			Status:     s.Status,
			Lunas:      s.Lunas(),
			WaktuCatat: s.WaktuCatat,
			NamaAdmin:  s.NamaAdmin(),
		})
	}
	return vm
}
