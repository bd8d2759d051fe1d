package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
)

// rekapTotals carries the per-column sums appended under each rekap table.
// These are always recomputed from the rendered rows, on purpose distinct
// from the Ringkasan balances.
type rekapTotals struct {
	PemasukanSyahriah   float64
	PengeluaranSyahriah float64
	SaldoSyahriah       float64
	PemasukanDonasi     float64
	PengeluaranDonasi   float64
	SaldoDonasi         float64
	PemasukanTotal      float64
	PengeluaranTotal    float64
	SaldoTotal          float64
}

func sumRekap(rows []keuangan.RekapPeriode) rekapTotals {
	var t rekapTotals
	for _, row := range rows {
		t.PemasukanSyahriah += row.PemasukanSyahriah
		t.PengeluaranSyahriah += row.PengeluaranSyahriah
		t.SaldoSyahriah += row.SaldoAkhirSyahriah
		t.PemasukanDonasi += row.PemasukanDonasi
		t.PengeluaranDonasi += row.PengeluaranDonasi
		t.SaldoDonasi += row.SaldoAkhirDonasi
		t.PemasukanTotal += row.PemasukanTotal
		t.PengeluaranTotal += row.PengeluaranTotal
		t.SaldoTotal += row.SaldoAkhirTotal
	}
	return t
}

type pemakaianTotals struct {
	Syahriah float64
	Donasi   float64
	Total    float64
}

func sumPemakaian(rows []keuangan.Pemakaian) pemakaianTotals {
	var t pemakaianTotals
	for _, row := range rows {
		t.Syahriah += row.NominalSyahriah
		t.Donasi += row.NominalDonasi
		t.Total += row.NominalTotal
	}
	return t
}

func sumDonasi(rows []keuangan.Donasi) float64 {
	var total float64
	for _, row := range rows {
		total += row.Nominal
	}
	return total
}

func sumSyahriah(rows []keuangan.Syahriah) float64 {
	var total float64
	for _, row := range rows {
		total += row.Nominal
	}
	return total
}

type docData struct {
	Report
	TanggalCetak    string
	TotalRekap      rekapTotals
	TotalPemakaian  pemakaianTotals
	TotalDonasi     float64
	TotalSyahriah   float64
	JumlahRekap     int
	JumlahPemakaian int
	JumlahDonasi    int
	JumlahSyahriah  int
}

var docTemplate = template.Must(template.New("laporan").Funcs(template.FuncMap{
	"rupiah":   keuangan.FormatRupiah,
	"periode":  keuangan.FormatPeriode,
	"waktu":    keuangan.FormatWaktu,
	"tanggal":  keuangan.FormatTanggal,
	"status":   keuangan.StatusLabel,
	"fallback": fallback,
	"inc":      func(i int) int { return i + 1 },
}).Parse(docHTML))

// WriteDoc renders the report as a printable HTML document served with a
// Word content type: letterhead, summary block, itemized tables with
// computed totals rows and a signature block.
func WriteDoc(w io.Writer, r Report) error {
	data := docData{
		Report:          r,
		TanggalCetak:    keuangan.FormatTanggalPanjang(r.DicetakPada),
		TotalRekap:      sumRekap(r.Rekap),
		TotalPemakaian:  sumPemakaian(r.Pemakaian),
		TotalDonasi:     sumDonasi(r.Donasi),
		TotalSyahriah:   sumSyahriah(r.Syahriah),
		JumlahRekap:     len(r.Rekap),
		JumlahPemakaian: len(r.Pemakaian),
		JumlahDonasi:    len(r.Donasi),
		JumlahSyahriah:  len(r.Syahriah),
	}
	if err := docTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("export: render document: %w", err)
	}
	return nil
}

const docHTML = `<html>
<head>
<meta charset="utf-8">
<title>Laporan Keuangan - {{.Info.NamaTPQ}}</title>
<style>
@page { margin: 2cm; size: A4; }
body { font-family: 'Times New Roman', Times, serif; margin: 0; padding: 0; line-height: 1.6; font-size: 12pt; color: #000; }
.kop-surat { border-bottom: 3px double #000; padding-bottom: 10px; margin-bottom: 20px; text-align: center; }
.nama-tpq { font-size: 16pt; font-weight: bold; margin: 5px 0; text-transform: uppercase; }
.alamat-tpq { font-size: 11pt; margin: 2px 0; }
.kontak-tpq { font-size: 10pt; margin: 2px 0; }
.judul-laporan { text-align: center; margin: 25px 0; font-size: 14pt; font-weight: bold; text-decoration: underline; }
.periode-info { text-align: center; margin: 15px 0; font-size: 11pt; }
table { width: 100%; border-collapse: collapse; margin: 15px 0; font-size: 10pt; }
th, td { border: 1px solid #000; padding: 6px; text-align: left; vertical-align: top; }
th { background-color: #f0f0f0; font-weight: bold; text-align: center; }
.summary-section { background: #f9f9f9; padding: 15px; border: 1px solid #000; margin: 20px 0; }
.section-title { margin: 25px 0 10px 0; font-size: 12pt; font-weight: bold; border-bottom: 1px solid #000; padding-bottom: 5px; }
.sub-section-title { margin: 15px 0 8px 0; font-size: 11pt; font-weight: bold; color: #333; }
.currency { font-family: 'Courier New', monospace; font-weight: bold; }
.positive { color: #006400; }
.negative { color: #8b0000; }
.total-row { font-weight: bold; background-color: #f5f5f5; }
.footer { margin-top: 40px; text-align: right; font-size: 10pt; }
.ttd { margin-top: 60px; text-align: center; }
.ttd-space { height: 60px; }
.ttd-name { font-weight: bold; text-decoration: underline; }
.ttd-position { font-size: 10pt; }
</style>
</head>
<body>
<div class="kop-surat">
  <div class="nama-tpq">{{.Info.NamaTPQ}}{{with .Info.Tempat}} {{.}}{{end}}</div>
  <div class="alamat-tpq">{{fallback .Info.Alamat}}</div>
  <div class="kontak-tpq">Telp: {{fallback .Info.NoTelp}} | Email: {{fallback .Info.Email}}</div>
</div>

<div class="judul-laporan">LAPORAN KEUANGAN</div>
<div class="periode-info">
  Periode: <strong>{{.PeriodeLabel}}</strong><br>
  Tanggal Cetak: {{.TanggalCetak}}
</div>

<div class="section-title">RINGKASAN KEUANGAN</div>
<div class="summary-section">
  <table>
    <tr><td>Total Pemasukan</td><td class="currency positive">{{rupiah .Ringkasan.TotalPemasukan}}</td></tr>
    <tr><td>Total Pengeluaran</td><td class="currency negative">{{rupiah .Ringkasan.TotalPengeluaran}}</td></tr>
    <tr><td>Saldo Akhir</td><td class="currency">{{rupiah .Ringkasan.SaldoAkhir}}</td></tr>
    <tr><td>Saldo Donasi</td><td class="currency positive">{{rupiah .Ringkasan.SaldoDonasi}}</td></tr>
    <tr><td>Saldo Syahriah</td><td class="currency positive">{{rupiah .Ringkasan.SaldoSyahriah}}</td></tr>
  </table>
</div>

{{if .Rekap}}
<div class="section-title">REKAP KEUANGAN PER PERIODE</div>

<div class="sub-section-title">A. REKAP SYAHRIYAH</div>
<table>
  <thead><tr><th>No</th><th>Periode</th><th>Pemasukan</th><th>Pengeluaran</th><th>Saldo</th><th>Update Terakhir</th></tr></thead>
  <tbody>
  {{range $i, $item := .Rekap}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{periode $item.Periode}}</td>
      <td class="currency positive">{{rupiah $item.PemasukanSyahriah}}</td>
      <td class="currency negative">{{rupiah $item.PengeluaranSyahriah}}</td>
      <td class="currency">{{rupiah $item.SaldoAkhirSyahriah}}</td>
      <td>{{waktu $item.TerakhirUpdate}}</td>
    </tr>
  {{end}}
    <tr class="total-row">
      <td colspan="2">TOTAL SYAHRIYAH:</td>
      <td class="currency positive">{{rupiah .TotalRekap.PemasukanSyahriah}}</td>
      <td class="currency negative">{{rupiah .TotalRekap.PengeluaranSyahriah}}</td>
      <td class="currency">{{rupiah .TotalRekap.SaldoSyahriah}}</td>
      <td>-</td>
    </tr>
  </tbody>
</table>

<div class="sub-section-title">B. REKAP DONASI</div>
<table>
  <thead><tr><th>No</th><th>Periode</th><th>Pemasukan</th><th>Pengeluaran</th><th>Saldo</th><th>Update Terakhir</th></tr></thead>
  <tbody>
  {{range $i, $item := .Rekap}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{periode $item.Periode}}</td>
      <td class="currency positive">{{rupiah $item.PemasukanDonasi}}</td>
      <td class="currency negative">{{rupiah $item.PengeluaranDonasi}}</td>
      <td class="currency">{{rupiah $item.SaldoAkhirDonasi}}</td>
      <td>{{waktu $item.TerakhirUpdate}}</td>
    </tr>
  {{end}}
    <tr class="total-row">
      <td colspan="2">TOTAL DONASI:</td>
      <td class="currency positive">{{rupiah .TotalRekap.PemasukanDonasi}}</td>
      <td class="currency negative">{{rupiah .TotalRekap.PengeluaranDonasi}}</td>
      <td class="currency">{{rupiah .TotalRekap.SaldoDonasi}}</td>
      <td>-</td>
    </tr>
  </tbody>
</table>

<div class="sub-section-title">C. RINGKASAN TOTAL KESELURUHAN</div>
<table>
  <thead><tr><th>No</th><th>Periode</th><th>Pemasukan Total</th><th>Pengeluaran Total</th><th>Saldo Akhir</th><th>Update Terakhir</th></tr></thead>
  <tbody>
  {{range $i, $item := .Rekap}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{periode $item.Periode}}</td>
      <td class="currency positive">{{rupiah $item.PemasukanTotal}}</td>
      <td class="currency negative">{{rupiah $item.PengeluaranTotal}}</td>
      <td class="currency">{{rupiah $item.SaldoAkhirTotal}}</td>
      <td>{{waktu $item.TerakhirUpdate}}</td>
    </tr>
  {{end}}
    <tr class="total-row">
      <td colspan="2">TOTAL KESELURUHAN:</td>
      <td class="currency positive">{{rupiah .TotalRekap.PemasukanTotal}}</td>
      <td class="currency negative">{{rupiah .TotalRekap.PengeluaranTotal}}</td>
      <td class="currency">{{rupiah .TotalRekap.SaldoTotal}}</td>
      <td>-</td>
    </tr>
  </tbody>
</table>
{{end}}

{{if .Pemakaian}}
<div class="section-title">DATA PENGELUARAN</div>
<table>
  <thead><tr><th>No</th><th>Tanggal</th><th>Keterangan</th><th>Tipe</th><th>Syahriah</th><th>Donasi</th><th>Nominal</th><th>Diajukan Oleh</th></tr></thead>
  <tbody>
  {{range $i, $item := .Pemakaian}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{tanggal $item.TanggalEfektif}}</td>
      <td><strong>{{$item.Judul}}</strong><br><small>{{$item.Deskripsi}}</small>{{with $item.Keterangan}}<br><small><em>Catatan: {{.}}</em></small>{{end}}</td>
      <td>{{$item.Tipe}}</td>
      <td class="currency">{{rupiah $item.NominalSyahriah}}</td>
      <td class="currency">{{rupiah $item.NominalDonasi}}</td>
      <td class="currency negative">{{rupiah $item.NominalTotal}}</td>
      <td>{{$item.NamaPengaju}}</td>
    </tr>
  {{end}}
    <tr class="total-row">
      <td colspan="4">TOTAL PENGELUARAN:</td>
      <td class="currency">{{rupiah .TotalPemakaian.Syahriah}}</td>
      <td class="currency">{{rupiah .TotalPemakaian.Donasi}}</td>
      <td class="currency negative">{{rupiah .TotalPemakaian.Total}}</td>
      <td>-</td>
    </tr>
  </tbody>
</table>
{{end}}

{{if .Donasi}}
<div class="section-title">DATA PEMASUKAN DONASI</div>
<table>
  <thead><tr><th>No</th><th>Tanggal</th><th>Nama Donatur</th><th>Kontak</th><th>Nominal</th><th>Dicatat Oleh</th></tr></thead>
  <tbody>
  {{range $i, $item := .Donasi}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{waktu $item.WaktuCatat}}</td>
      <td>{{$item.NamaDonatur}}</td>
      <td>{{fallback $item.NoTelp}}</td>
      <td class="currency positive">{{rupiah $item.Nominal}}</td>
      <td>{{$item.NamaAdmin}}</td>
    </tr>
  {{end}}
    <tr class="total-row">
      <td colspan="4">TOTAL DONASI:</td>
      <td class="currency positive">{{rupiah .TotalDonasi}}</td>
      <td>-</td>
    </tr>
  </tbody>
</table>
{{end}}

{{if .Syahriah}}
<div class="section-title">DATA PEMASUKAN SYAHRIYAH</div>
<table>
  <thead><tr><th>No</th><th>Nama Santri</th><th>Wali</th><th>Bulan</th><th>Nominal</th><th>Status</th><th>Tanggal Bayar</th><th>Dicatat Oleh</th></tr></thead>
  <tbody>
  {{range $i, $item := .Syahriah}}
    <tr>
      <td>{{inc $i}}</td>
      <td>{{$item.NamaSantri}}</td>
      <td>{{$item.NamaWali}}</td>
      <td>{{periode $item.Bulan}}</td>
      <td class="currency positive">{{rupiah $item.Nominal}}</td>
      <td>{{status $item.Status}}</td>
      <td>{{if $item.Lunas}}{{waktu $item.WaktuCatat}}{{else}}-{{end}}</td>
      <td>{{$item.NamaAdmin}}</td>
    </tr>
  {{end}}
    <tr class="total-row">
      <td colspan="4">TOTAL SYAHRIYAH:</td>
      <td class="currency positive">{{rupiah .TotalSyahriah}}</td>
      <td colspan="3">-</td>
    </tr>
  </tbody>
</table>
{{end}}

<div class="footer">
  <div class="ttd">
    <div>Purbalingga, {{.TanggalCetak}}</div>
    <div class="ttd-space"></div>
    <div class="ttd-name">Bendahara TPQ</div>
    <div class="ttd-position">{{.Info.NamaTPQ}}</div>
  </div>
</div>

<div style="margin-top: 30px; padding-top: 10px; border-top: 1px solid #ccc; font-size: 9pt; color: #666; text-align: center;">
  <p>Dokumen ini dihasilkan secara otomatis oleh Sistem Keuangan {{.Info.NamaTPQ}}</p>
  <p>Total Data: {{.JumlahRekap}} rekap, {{.JumlahPemakaian}} pengeluaran, {{.JumlahDonasi}} donasi, {{.JumlahSyahriah}} syahriah</p>
</div>
</body>
</html>
`
