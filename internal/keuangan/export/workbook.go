package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
)

// sheet header block: section title, institution line, period line, blank.
const sheetDataStart = 5

// WriteWorkbook renders the report as a multi-sheet xlsx workbook: a summary
// sheet with the letterhead and totals, then one sheet per non-empty
// collection. Empty collections get no sheet at all.
func WriteWorkbook(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	const ringkasan = "Ringkasan"
	if err := f.SetSheetName("Sheet1", ringkasan); err != nil {
		return fmt.Errorf("export: rename summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"LAPORAN KEUANGAN"},
		{r.judulInstansi()},
		{},
		{"PERIODE LAPORAN:"},
		{"Periode: " + r.PeriodeLabel},
		{"Tanggal Export: " + keuangan.FormatTanggalPanjang(r.DicetakPada)},
		{},
		{"RINGKASAN KEUANGAN"},
		{"Kategori", "Nominal"},
		{"Total Pemasukan", r.Ringkasan.TotalPemasukan},
		{"Total Pengeluaran", r.Ringkasan.TotalPengeluaran},
		{"Saldo Akhir", r.Ringkasan.SaldoAkhir},
		{"Saldo Donasi", r.Ringkasan.SaldoDonasi},
		{"Saldo Syahriah", r.Ringkasan.SaldoSyahriah},
	}
	if err := writeRows(f, ringkasan, 1, summaryRows); err != nil {
		return err
	}
	for _, span := range []struct{ from, to string }{
		{"A1", "E1"},
		{"A2", "E2"},
		{"A5", "E5"},
	} {
		if err := f.MergeCell(ringkasan, span.from, span.to); err != nil {
			return fmt.Errorf("export: merge letterhead: %w", err)
		}
	}

	if len(r.Rekap) > 0 {
		rows := make([][]interface{}, 0, len(r.Rekap)+1)
		rows = append(rows, []interface{}{
			"Periode", "Pemasukan Syahriah", "Pengeluaran Syahriah", "Saldo Akhir Syahriah",
			"Pemasukan Donasi", "Pengeluaran Donasi", "Saldo Akhir Donasi",
			"Pemasukan Total", "Pengeluaran Total", "Saldo Akhir Total", "Update Terakhir",
		})
		for _, item := range r.Rekap {
			rows = append(rows, []interface{}{
				keuangan.FormatPeriode(item.Periode),
				item.PemasukanSyahriah, item.PengeluaranSyahriah, item.SaldoAkhirSyahriah,
				item.PemasukanDonasi, item.PengeluaranDonasi, item.SaldoAkhirDonasi,
				item.PemasukanTotal, item.PengeluaranTotal, item.SaldoAkhirTotal,
				keuangan.FormatWaktu(item.TerakhirUpdate),
			})
		}
		if err := addCollectionSheet(f, "Rekap Keuangan", "REKAP KEUANGAN PER PERIODE", r, rows); err != nil {
			return err
		}
	}

	if len(r.Pemakaian) > 0 {
		rows := make([][]interface{}, 0, len(r.Pemakaian)+1)
		rows = append(rows, []interface{}{
			"Tanggal", "Judul Pengeluaran", "Deskripsi", "Tipe Pengeluaran",
			"Nominal Syahriah", "Nominal Donasi", "Nominal Total", "Keterangan", "Diajukan Oleh",
		})
		for _, item := range r.Pemakaian {
			rows = append(rows, []interface{}{
				keuangan.FormatTanggal(item.TanggalEfektif()),
				item.Judul,
				item.Deskripsi,
				item.Tipe,
				item.NominalSyahriah,
				item.NominalDonasi,
				item.NominalTotal,
				fallback(item.Keterangan),
				item.NamaPengaju(),
			})
		}
		if err := addCollectionSheet(f, "Pengeluaran", "DATA PENGELUARAN", r, rows); err != nil {
			return err
		}
	}

	if len(r.Donasi) > 0 {
		rows := make([][]interface{}, 0, len(r.Donasi)+1)
		rows = append(rows, []interface{}{"Tanggal", "Nama Donatur", "No. Telepon", "Nominal", "Dicatat Oleh"})
		for _, item := range r.Donasi {
			rows = append(rows, []interface{}{
				keuangan.FormatWaktu(item.WaktuCatat),
				item.NamaDonatur,
				fallback(item.NoTelp),
				item.Nominal,
				item.NamaAdmin(),
			})
		}
		if err := addCollectionSheet(f, "Pemasukan Donasi", "DATA PEMASUKAN DONASI", r, rows); err != nil {
			return err
		}
	}

	if len(r.Syahriah) > 0 {
		rows := make([][]interface{}, 0, len(r.Syahriah)+1)
		rows = append(rows, []interface{}{
			"Nama Santri", "Wali", "Email Wali", "No. Telepon Wali", "Bulan",
			"Nominal", "Status", "Tanggal Bayar", "Dicatat Oleh",
		})
		for _, item := range r.Syahriah {
			tanggalBayar := "-"
			if item.Lunas() {
				tanggalBayar = keuangan.FormatWaktu(item.WaktuCatat)
			}
			rows = append(rows, []interface{}{
				item.NamaSantri(),
				item.NamaWali(),
				item.EmailWali(),
				item.TelpWali(),
				keuangan.FormatPeriode(item.Bulan),
				item.Nominal,
				keuangan.StatusLabel(item.Status),
				tanggalBayar,
				item.NamaAdmin(),
			})
		}
		if err := addCollectionSheet(f, "Pemasukan Syahriah", "DATA PEMASUKAN SYAHRIYAH", r, rows); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

// addCollectionSheet creates one sheet with the repeated header block
// followed by the tabular rows (labels first).
func addCollectionSheet(f *excelize.File, name, title string, r Report, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("export: new sheet %s: %w", name, err)
	}
	header := [][]interface{}{
		{title},
		{r.judulInstansi()},
		{"Periode: " + r.PeriodeLabel},
		{},
	}
	if err := writeRows(f, name, 1, header); err != nil {
		return err
	}
	return writeRows(f, name, sheetDataStart, rows)
}

func writeRows(f *excelize.File, sheet string, startRow int, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, startRow+i)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("export: write row %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
