package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

// csvStreamer mixes free-form header lines with properly quoted CSV rows on
// one buffered writer. Sections for empty collections are omitted entirely.
type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeLine(line string) error {
	if s == nil || s.buf == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	// Rows still sitting in the csv.Writer must land in buf first, or the
	// raw line would jump ahead of them.
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return nil
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

// WriteCSV renders the report as sectioned delimited text: a metadata header
// block, the summary section, then one section per non-empty collection.
func WriteCSV(w io.Writer, r Report) error {
	streamer := newCSVStreamer(w)

	header := []string{
		"LAPORAN KEUANGAN - " + strings.ToUpper(r.Info.NamaTPQ),
		"Nama TPQ: " + r.Info.NamaTPQ,
		"Alamat: " + fallback(r.Info.Alamat),
		"No. Telepon: " + fallback(r.Info.NoTelp),
		"Email: " + fallback(r.Info.Email),
		"Hari & Jam Belajar: " + fallback(r.Info.HariJamBelajar),
		"",
		"Periode: " + r.PeriodeLabel,
		"Tanggal Export: " + keuangan.FormatTanggalPanjang(r.DicetakPada),
		"",
	}
	for _, line := range header {
		if err := streamer.writeLine(line); err != nil {
			return err
		}
	}

	if err := streamer.writeLine("SUMMARY KEUANGAN"); err != nil {
		return err
	}
	summaryRows := [][]string{
		{"Kategori", "Nilai"},
		{"Total Pemasukan", formatNominal(r.Ringkasan.TotalPemasukan)},
		{"Total Pengeluaran", formatNominal(r.Ringkasan.TotalPengeluaran)},
		{"Saldo Akhir", formatNominal(r.Ringkasan.SaldoAkhir)},
		{"Saldo Donasi", formatNominal(r.Ringkasan.SaldoDonasi)},
		{"Saldo Syahriah", formatNominal(r.Ringkasan.SaldoSyahriah)},
	}
	for _, row := range summaryRows {
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	if err := streamer.writeLine(""); err != nil {
		return err
	}

	if len(r.Rekap) > 0 {
		if err := streamer.writeLine("REKAP KEUANGAN"); err != nil {
			return err
		}
		if err := streamer.writeRow([]string{
			"Periode", "Pemasukan Syahriah", "Pengeluaran Syahriah", "Saldo Akhir Syahriah",
			"Pemasukan Donasi", "Pengeluaran Donasi", "Saldo Akhir Donasi",
			"Pemasukan Total", "Pengeluaran Total", "Saldo Akhir Total", "Update Terakhir",
		}); err != nil {
			return err
		}
		for _, item := range r.Rekap {
			if err := streamer.writeRow([]string{
				keuangan.FormatPeriode(item.Periode),
				formatNominal(item.PemasukanSyahriah),
				formatNominal(item.PengeluaranSyahriah),
				formatNominal(item.SaldoAkhirSyahriah),
				formatNominal(item.PemasukanDonasi),
				formatNominal(item.PengeluaranDonasi),
				formatNominal(item.SaldoAkhirDonasi),
				formatNominal(item.PemasukanTotal),
				formatNominal(item.PengeluaranTotal),
				formatNominal(item.SaldoAkhirTotal),
				keuangan.FormatWaktu(item.TerakhirUpdate),
			}); err != nil {
				return err
			}
		}
		if err := streamer.writeLine(""); err != nil {
			return err
		}
	}

	if len(r.Pemakaian) > 0 {
		if err := streamer.writeLine("DATA PENGELUARAN"); err != nil {
			return err
		}
		if err := streamer.writeRow([]string{
			"Tanggal", "Judul Pengeluaran", "Deskripsi", "Tipe Pengeluaran",
			"Nominal Syahriah", "Nominal Donasi", "Nominal Total", "Keterangan", "Diajukan Oleh",
		}); err != nil {
			return err
		}
		for _, item := range r.Pemakaian {
			if err := streamer.writeRow([]string{
				keuangan.FormatTanggal(item.TanggalEfektif()),
				item.Judul,
				item.Deskripsi,
				item.Tipe,
				formatNominal(item.NominalSyahriah),
				formatNominal(item.NominalDonasi),
				formatNominal(item.NominalTotal),
				fallback(item.Keterangan),
				item.NamaPengaju(),
			}); err != nil {
				return err
			}
		}
		if err := streamer.writeLine(""); err != nil {
			return err
		}
	}

	if len(r.Donasi) > 0 {
		if err := streamer.writeLine("DATA PEMASUKAN DONASI"); err != nil {
			return err
		}
		if err := streamer.writeRow([]string{"Tanggal", "Nama Donatur", "No. Telepon", "Nominal", "Dicatat Oleh"}); err != nil {
			return err
		}
		for _, item := range r.Donasi {
			if err := streamer.writeRow([]string{
				keuangan.FormatWaktu(item.WaktuCatat),
				item.NamaDonatur,
				fallback(item.NoTelp),
				formatNominal(item.Nominal),
				item.NamaAdmin(),
			}); err != nil {
				return err
			}
		}
		if err := streamer.writeLine(""); err != nil {
			return err
		}
	}

	if len(r.Syahriah) > 0 {
		if err := streamer.writeLine("DATA PEMASUKAN SYAHRIYAH"); err != nil {
			return err
		}
		if err := streamer.writeRow([]string{
			"Nama Santri", "Wali", "Email Wali", "No. Telepon Wali", "Bulan",
			"Nominal", "Status", "Tanggal Bayar", "Dicatat Oleh",
		}); err != nil {
			return err
		}
		for _, item := range r.Syahriah {
			tanggalBayar := "-"
			if item.Lunas() {
				tanggalBayar = keuangan.FormatWaktu(item.WaktuCatat)
			}
			if err := streamer.writeRow([]string{
				item.NamaSantri(),
				item.NamaWali(),
				item.EmailWali(),
				item.TelpWali(),
				keuangan.FormatPeriode(item.Bulan),
				formatNominal(item.Nominal),
				keuangan.StatusLabel(item.Status),
				tanggalBayar,
				item.NamaAdmin(),
			}); err != nil {
				return err
			}
		}
	}

	return streamer.Close()
}
