// Package keuangan implements the period-scoped financial reporting core:
// the period index, the four collection filters and the summary aggregator
// that back both the admin and the wali finance views.
package keuangan

import "time"

// Sentinel value for an unrestricted year or month selection.
const Semua = "semua"

// Expenditure types accepted by the Finance API.
const (
	TipeOperasional = "operasional"
	TipeInvestasi   = "investasi"
	TipeLainnya     = "lainnya"
)

// Syahriah payment statuses.
const (
	StatusLunas      = "lunas"
	StatusBelumBayar = "belum_bayar"
)

// RekapPeriode is one calendar month's aggregated income/expense/balance
// snapshot as delivered by the Finance API, keyed by "YYYY-MM".
type RekapPeriode struct {
	Periode             string    `json:"periode"`
	PemasukanSyahriah   float64   `json:"pemasukan_syahriah"`
	PemasukanDonasi     float64   `json:"pemasukan_donasi"`
	PemasukanTotal      float64   `json:"pemasukan_total"`
	PengeluaranSyahriah float64   `json:"pengeluaran_syahriah"`
	PengeluaranDonasi   float64   `json:"pengeluaran_donasi"`
	PengeluaranTotal    float64   `json:"pengeluaran_total"`
	SaldoAkhirSyahriah  float64   `json:"saldo_akhir_syahriah"`
	SaldoAkhirDonasi    float64   `json:"saldo_akhir_donasi"`
	SaldoAkhirTotal     float64   `json:"saldo_akhir_total"`
	TerakhirUpdate      time.Time `json:"terakhir_update"`
}

// Pengguna is the minimal account shape embedded in finance records.
type Pengguna struct {
	ID          string `json:"id"`
	NamaLengkap string `json:"nama_lengkap"`
	Email       string `json:"email,omitempty"`
	NoTelp      string `json:"no_telp,omitempty"`
}

// Santri identifies a student together with their guardian account.
type Santri struct {
	ID          string    `json:"id_santri"`
	NamaLengkap string    `json:"nama_lengkap"`
	Wali        *Pengguna `json:"wali,omitempty"`
}

// Pemakaian is a single spending transaction drawn from tuition and/or
// donation funds.
type Pemakaian struct {
	ID              string     `json:"id_pemakaian"`
	Judul           string     `json:"judul_pemakaian"`
	Deskripsi       string     `json:"deskripsi"`
	Tipe            string     `json:"tipe_pemakaian"`
	NominalSyahriah float64    `json:"nominal_syahriah"`
	NominalDonasi   float64    `json:"nominal_donasi"`
	NominalTotal    float64    `json:"nominal_total"`
	Tanggal         *time.Time `json:"tanggal_pemakaian,omitempty"`
	Keterangan      string     `json:"keterangan,omitempty"`
	Pengaju         *Pengguna  `json:"pengaju,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// TanggalEfektif resolves the transaction date, falling back to the creation
// timestamp when no explicit date was recorded.
func (p Pemakaian) TanggalEfektif() time.Time {
	if p.Tanggal != nil && !p.Tanggal.IsZero() {
		return *p.Tanggal
	}
	return p.CreatedAt
}

// NamaPengaju resolves the requester display name, defaulting to "Admin".
func (p Pemakaian) NamaPengaju() string {
	if p.Pengaju != nil && p.Pengaju.NamaLengkap != "" {
		return p.Pengaju.NamaLengkap
	}
	return "Admin"
}

// Donasi is one inbound ad hoc contribution.
type Donasi struct {
	ID          string    `json:"id_donasi"`
	NamaDonatur string    `json:"nama_donatur"`
	NoTelp      string    `json:"no_telp,omitempty"`
	Nominal     float64   `json:"nominal"`
	WaktuCatat  time.Time `json:"waktu_catat"`
	Admin       *Pengguna `json:"admin,omitempty"`
}

// NamaAdmin resolves the recording admin display name, defaulting to "Admin".
func (d Donasi) NamaAdmin() string {
	if d.Admin != nil && d.Admin.NamaLengkap != "" {
		return d.Admin.NamaLengkap
	}
	return "Admin"
}

// Syahriah is one santri-month tuition obligation, keyed by "YYYY-MM".
type Syahriah struct {
	ID         string    `json:"id_syahriah"`
	Santri     *Santri   `json:"santri,omitempty"`
	Bulan      string    `json:"bulan"`
	Nominal    float64   `json:"nominal"`
	Status     string    `json:"status"`
	WaktuCatat time.Time `json:"waktu_catat"`
	Admin      *Pengguna `json:"admin,omitempty"`
}

// Lunas reports whether the obligation has been paid.
func (s Syahriah) Lunas() bool {
	return s.Status == StatusLunas
}

// WaliID resolves the owning guardian's account ID through the nested santri
// record. Empty when the santri or wali relation is missing.
func (s Syahriah) WaliID() string {
	if s.Santri == nil || s.Santri.Wali == nil {
		return ""
	}
	return s.Santri.Wali.ID
}

// NamaSantri resolves the student display name, defaulting to "N/A".
func (s Syahriah) NamaSantri() string {
	if s.Santri != nil && s.Santri.NamaLengkap != "" {
		return s.Santri.NamaLengkap
	}
	return "N/A"
}

// NamaWali resolves the guardian display name, defaulting to "-".
func (s Syahriah) NamaWali() string {
	if s.Santri != nil && s.Santri.Wali != nil && s.Santri.Wali.NamaLengkap != "" {
		return s.Santri.Wali.NamaLengkap
	}
	return "-"
}

// EmailWali resolves the guardian email, defaulting to "-".
func (s Syahriah) EmailWali() string {
	if s.Santri != nil && s.Santri.Wali != nil && s.Santri.Wali.Email != "" {
		return s.Santri.Wali.Email
	}
	return "-"
}

// TelpWali resolves the guardian phone number, defaulting to "-".
func (s Syahriah) TelpWali() string {
	if s.Santri != nil && s.Santri.Wali != nil && s.Santri.Wali.NoTelp != "" {
		return s.Santri.Wali.NoTelp
	}
	return "-"
}

// NamaAdmin resolves the recording admin display name, defaulting to "Admin".
func (s Syahriah) NamaAdmin() string {
	if s.Admin != nil && s.Admin.NamaLengkap != "" {
		return s.Admin.NamaLengkap
	}
	return "Admin"
}

// PeriodeFilter is the active year/month selection driving every filter
// function and the aggregator. Both fields hold either a concrete value
// ("2024", "03") or Semua.
type PeriodeFilter struct {
	Tahun string `json:"tahun"`
	Bulan string `json:"bulan"`
}

// SemuaTahun reports whether the year selection is unrestricted.
func (f PeriodeFilter) SemuaTahun() bool { return f.Tahun == Semua || f.Tahun == "" }

// SemuaBulan reports whether the month selection is unrestricted.
func (f PeriodeFilter) SemuaBulan() bool { return f.Bulan == Semua || f.Bulan == "" }

// Ringkasan holds the aggregate summary for the active selection. Totals are
// sums over the filtered rekap rows; the saldo fields carry balances from the
// most recent relevant period, never sums.
type Ringkasan struct {
	TotalPemasukan      float64 `json:"total_pemasukan"`
	TotalPengeluaran    float64 `json:"total_pengeluaran"`
	PemasukanSyahriah   float64 `json:"pemasukan_syahriah"`
	PemasukanDonasi     float64 `json:"pemasukan_donasi"`
	PengeluaranSyahriah float64 `json:"pengeluaran_syahriah"`
	PengeluaranDonasi   float64 `json:"pengeluaran_donasi"`
	SaldoAkhir          float64 `json:"saldo_akhir"`
	SaldoSyahriah       float64 `json:"saldo_syahriah"`
	SaldoDonasi         float64 `json:"saldo_donasi"`
}

// InformasiTPQ is the institution metadata used for report letterheads.
type InformasiTPQ struct {
	NamaTPQ        string `json:"nama_tpq"`
	Tempat         string `json:"tempat,omitempty"`
	Alamat         string `json:"alamat,omitempty"`
	NoTelp         string `json:"no_telp,omitempty"`
	Email          string `json:"email,omitempty"`
	HariJamBelajar string `json:"hari_jam_belajar,omitempty"`
}

// DefaultInformasiTPQ returns the letterhead fallback used when the
// informasi-tpq fetch fails. Exports must never be blocked by missing
// metadata.
func DefaultInformasiTPQ() InformasiTPQ {
	return InformasiTPQ{
		NamaTPQ: "TPQ Asy-Syafi'i",
		Tempat:  "Campakoah",
		Alamat:  "Jl. Raya Sangkanayu - Pengalusan KM 1 Campakoah RT 03 RW 01 Kec. Mrebet - Purbalingga",
		NoTelp:  "085643955667",
		Email:   "tpqasysyafiicampakoah@gmail.com",
	}
}
