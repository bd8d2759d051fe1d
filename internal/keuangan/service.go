package keuangan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/observability"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/platform/httpx"
)

// fetchLimit caps each collection fetch, mirroring the dashboard views.
const fetchLimit = 100

// metadataCacheKey stores the serialized informasi-tpq payload.
const metadataCacheKey = "keuangan:informasi_tpq"

// FinanceAPI abstracts the external Finance API consumed by the reporting
// pipeline.
type FinanceAPI interface {
	ListRekap(ctx context.Context, limit int) ([]RekapPeriode, error)
	ListPemakaian(ctx context.Context, limit int) ([]Pemakaian, error)
	ListDonasi(ctx context.Context, limit int) ([]Donasi, error)
	ListSyahriah(ctx context.Context, limit int) ([]Syahriah, error)
	InformasiTPQ(ctx context.Context) (InformasiTPQ, error)
	CreatePemakaian(ctx context.Context, input PemakaianInput) (Pemakaian, error)
	UpdatePemakaian(ctx context.Context, id string, input PemakaianInput) (Pemakaian, error)
	DeletePemakaian(ctx context.Context, id string) error
	GenerateRekap(ctx context.Context) error
}

// MetadataCache is a best-effort store for the institution metadata used in
// report letterheads. Implementations must tolerate failures silently.
type MetadataCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Dataset bundles the four raw collections fetched from the Finance API.
type Dataset struct {
	Rekap     []RekapPeriode
	Pemakaian []Pemakaian
	Donasi    []Donasi
	Syahriah  []Syahriah
}

// FetchError reports which collection fetch failed during the fan-out.
type FetchError struct {
	Koleksi string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("gagal memuat data %s: %v", e.Koleksi, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Laporan is the fully derived view for one selection: period options, the
// normalized selection, the filtered collections and the aggregate summary.
type Laporan struct {
	Selection     PeriodeFilter
	TahunTersedia []string
	BulanTersedia []string
	Ringkasan     Ringkasan
	Rekap         []RekapPeriode
	Pemakaian     []Pemakaian
	Donasi        []Donasi
	Syahriah      []Syahriah
}

// PemakaianInput is the create/update payload for an expenditure. The date
// is optional; the Finance API falls back to the creation timestamp.
type PemakaianInput struct {
	Judul           string  `json:"judul_pemakaian" validate:"required"`
	Deskripsi       string  `json:"deskripsi" validate:"required"`
	NominalSyahriah float64 `json:"nominal_syahriah" validate:"gte=0"`
	NominalDonasi   float64 `json:"nominal_donasi" validate:"gte=0"`
	NominalTotal    float64 `json:"nominal_total" validate:"gt=0"`
	Tipe            string  `json:"tipe_pemakaian" validate:"required,oneof=operasional investasi lainnya"`
	Tanggal         string  `json:"tanggal_pemakaian,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Keterangan      string  `json:"keterangan,omitempty"`
}

// Service orchestrates the reporting pipeline against the Finance API.
type Service struct {
	logger   *slog.Logger
	api      FinanceAPI
	cache    MetadataCache
	cacheTTL time.Duration
	metrics  *observability.Metrics
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs the reporting service. cache may be nil; metadata is
// then fetched on every export. metrics may be nil in tests.
func NewService(logger *slog.Logger, api FinanceAPI, cache MetadataCache, cacheTTL time.Duration, metrics *observability.Metrics) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Service{
		logger:   logger,
		api:      api,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// LoadDataset fetches all four collections concurrently. The join is
// all-or-nothing: any failed fetch aborts the load with a FetchError naming
// the collection, never a partial dataset.
func (s *Service) LoadDataset(ctx context.Context) (Dataset, error) {
	var ds Dataset
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.api.ListRekap(ctx, fetchLimit)
		if err != nil {
			s.metrics.CountFetch("rekap", "error")
			return &FetchError{Koleksi: "rekap", Err: err}
		}
		s.metrics.CountFetch("rekap", "ok")
		ds.Rekap = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.api.ListPemakaian(ctx, fetchLimit)
		if err != nil {
			s.metrics.CountFetch("pemakaian", "error")
			return &FetchError{Koleksi: "pemakaian", Err: err}
		}
		s.metrics.CountFetch("pemakaian", "ok")
		ds.Pemakaian = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.api.ListDonasi(ctx, fetchLimit)
		if err != nil {
			s.metrics.CountFetch("donasi", "error")
			return &FetchError{Koleksi: "donasi", Err: err}
		}
		s.metrics.CountFetch("donasi", "ok")
		ds.Donasi = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.api.ListSyahriah(ctx, fetchLimit)
		if err != nil {
			s.metrics.CountFetch("syahriah", "error")
			return &FetchError{Koleksi: "syahriah", Err: err}
		}
		s.metrics.CountFetch("syahriah", "ok")
		ds.Syahriah = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// BuildLaporan loads the dataset and runs the full pipeline for the given
// selection. An empty year selects the default (current year when present).
// A non-empty waliID additionally restricts tuition rows to that guardian's
// students.
func (s *Service) BuildLaporan(ctx context.Context, sel PeriodeFilter, waliID string) (Laporan, error) {
	ds, err := s.LoadDataset(ctx)
	if err != nil {
		return Laporan{}, err
	}
	return s.buildLaporan(ds, sel, waliID), nil
}

func (s *Service) buildLaporan(ds Dataset, sel PeriodeFilter, waliID string) Laporan {
	if sel.Tahun == "" {
		sel.Tahun = DefaultSelection(ds.Rekap, s.now()).Tahun
	}
	months := AvailableMonths(ds.Rekap, sel.Tahun)
	sel = NormalizeSelection(sel, months)

	syahriah := FilterSyahriah(ds.Syahriah, sel)
	if waliID != "" {
		syahriah = MilikWali(syahriah, waliID)
	}
	rekap := FilterRekap(ds.Rekap, sel)

	return Laporan{
		Selection:     sel,
		TahunTersedia: AvailableYears(ds.Rekap),
		BulanTersedia: months,
		Ringkasan:     Ringkas(rekap, ds.Rekap, sel),
		Rekap:         rekap,
		Pemakaian:     FilterPemakaian(ds.Pemakaian, sel),
		Donasi:        FilterDonasi(ds.Donasi, sel),
		Syahriah:      syahriah,
	}
}

// Informasi resolves the institution metadata for letterheads. The lookup is
// best-effort: cache first, then the Finance API, then hard-coded defaults.
// It never fails, so exports are never blocked on metadata.
func (s *Service) Informasi(ctx context.Context) InformasiTPQ {
	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, metadataCacheKey); ok {
			var info InformasiTPQ
			if err := json.Unmarshal([]byte(raw), &info); err == nil && info.NamaTPQ != "" {
				return info
			}
		}
	}
	info, err := s.api.InformasiTPQ(ctx)
	if err != nil || info.NamaTPQ == "" {
		if err != nil {
			s.logger.Warn("informasi tpq fallback", slog.Any("error", err))
		}
		return DefaultInformasiTPQ()
	}
	if s.cache != nil {
		if raw, err := json.Marshal(info); err == nil {
			s.cache.Set(ctx, metadataCacheKey, string(raw), s.cacheTTL)
		}
	}
	return info
}

// ValidatePemakaian runs the pre-flight checks for an expenditure payload:
// struct-level rules plus the total/source consistency check with a ±0.01
// tolerance. Violations fail fast before any network dispatch.
func (s *Service) ValidatePemakaian(input PemakaianInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: data pemakaian tidak lengkap: %v", httpx.ErrValidation, err)
	}
	if math.Abs((input.NominalSyahriah+input.NominalDonasi)-input.NominalTotal) > 0.01 {
		return fmt.Errorf("%w: total pengeluaran tidak sesuai dengan jumlah nominal syahriah dan donasi", httpx.ErrValidation)
	}
	return nil
}

// CreatePemakaian validates and forwards an expenditure creation.
func (s *Service) CreatePemakaian(ctx context.Context, input PemakaianInput) (Pemakaian, error) {
	if err := s.ValidatePemakaian(input); err != nil {
		return Pemakaian{}, err
	}
	return s.api.CreatePemakaian(ctx, input)
}

// UpdatePemakaian validates and forwards an expenditure update.
func (s *Service) UpdatePemakaian(ctx context.Context, id string, input PemakaianInput) (Pemakaian, error) {
	if id == "" {
		return Pemakaian{}, fmt.Errorf("%w: id pemakaian wajib diisi", httpx.ErrValidation)
	}
	if err := s.ValidatePemakaian(input); err != nil {
		return Pemakaian{}, err
	}
	return s.api.UpdatePemakaian(ctx, id, input)
}

// DeletePemakaian forwards an expenditure deletion.
func (s *Service) DeletePemakaian(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id pemakaian wajib diisi", httpx.ErrValidation)
	}
	return s.api.DeletePemakaian(ctx, id)
}

// GenerateRekap triggers a server-side rebuild of the ledger period
// summaries. Idempotent from this side; callers re-fetch afterwards.
func (s *Service) GenerateRekap(ctx context.Context) error {
	return s.api.GenerateRekap(ctx)
}
