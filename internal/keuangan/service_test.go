package keuangan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/observability"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/platform/httpx"
)

// ============================================================================
// MOCK FINANCE API
// ============================================================================

type mockFinanceAPI struct {
	rekap     []RekapPeriode
	pemakaian []Pemakaian
	donasi    []Donasi
	syahriah  []Syahriah
	info      InformasiTPQ

	rekapErr     error
	pemakaianErr error
	donasiErr    error
	syahriahErr  error
	infoErr      error

	infoCalls int
	created   []PemakaianInput
	updated   map[string]PemakaianInput
	deleted   []string
	generated int
}

func newMockFinanceAPI() *mockFinanceAPI {
	return &mockFinanceAPI{updated: make(map[string]PemakaianInput)}
}

func (m *mockFinanceAPI) ListRekap(ctx context.Context, limit int) ([]RekapPeriode, error) {
	return m.rekap, m.rekapErr
}

func (m *mockFinanceAPI) ListPemakaian(ctx context.Context, limit int) ([]Pemakaian, error) {
	return m.pemakaian, m.pemakaianErr
}

func (m *mockFinanceAPI) ListDonasi(ctx context.Context, limit int) ([]Donasi, error) {
	return m.donasi, m.donasiErr
}

func (m *mockFinanceAPI) ListSyahriah(ctx context.Context, limit int) ([]Syahriah, error) {
	return m.syahriah, m.syahriahErr
}

func (m *mockFinanceAPI) InformasiTPQ(ctx context.Context) (InformasiTPQ, error) {
	m.infoCalls++
	return m.info, m.infoErr
}

func (m *mockFinanceAPI) CreatePemakaian(ctx context.Context, input PemakaianInput) (Pemakaian, error) {
	m.created = append(m.created, input)
	return Pemakaian{ID: "pk-baru", Judul: input.Judul}, nil
}

func (m *mockFinanceAPI) UpdatePemakaian(ctx context.Context, id string, input PemakaianInput) (Pemakaian, error) {
	m.updated[id] = input
	return Pemakaian{ID: id, Judul: input.Judul}, nil
}

func (m *mockFinanceAPI) DeletePemakaian(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockFinanceAPI) GenerateRekap(ctx context.Context) error {
	m.generated++
	return nil
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func newTestService(api FinanceAPI, cache MetadataCache) *Service {
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), api, cache, time.Minute, nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

// ============================================================================
// DATASET LOADING
// ============================================================================

func TestLoadDatasetAllCollections(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = rekapFixture("2024-01")
	api.pemakaian = []Pemakaian{{ID: "pk-1"}}
	api.donasi = []Donasi{{ID: "dn-1"}}
	api.syahriah = []Syahriah{{ID: "sy-1"}}

	ds, err := newTestService(api, nil).LoadDataset(context.Background())

	require.NoError(t, err)
	assert.Len(t, ds.Rekap, 1)
	assert.Len(t, ds.Pemakaian, 1)
	assert.Len(t, ds.Donasi, 1)
	assert.Len(t, ds.Syahriah, 1)
}

func TestLoadDatasetFailureNamesCollection(t *testing.T) {
	api := newMockFinanceAPI()
	api.donasiErr = errors.New("timeout")

	_, err := newTestService(api, nil).LoadDataset(context.Background())

	require.Error(t, err)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "donasi", fetchErr.Koleksi)
	assert.Contains(t, err.Error(), "gagal memuat data donasi")
}

func TestLoadDatasetIsAllOrNothing(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = rekapFixture("2024-01")
	api.syahriahErr = errors.New("boom")

	ds, err := newTestService(api, nil).LoadDataset(context.Background())

	require.Error(t, err)
	assert.Equal(t, Dataset{}, ds)
}

func TestLoadDatasetUpstreamErrorMapsTo502(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekapErr = httpx.ErrUpstream

	_, err := newTestService(api, nil).LoadDataset(context.Background())

	assert.ErrorIs(t, err, httpx.ErrUpstream)
}

func TestLoadDatasetCountsFetchOutcomes(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = rekapFixture("2024-01")
	api.donasiErr = errors.New("timeout")

	metrics := observability.NewMetrics()
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), api, nil, time.Minute, metrics)

	_, err := svc.LoadDataset(context.Background())
	require.Error(t, err)
	_, err = svc.LoadDataset(context.Background())
	require.Error(t, err)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `tpq_finance_api_fetch_total{hasil="error",koleksi="donasi"} 2`)
	assert.Contains(t, body, `tpq_finance_api_fetch_total{hasil="ok",koleksi="rekap"} 2`)
	assert.Contains(t, body, `tpq_finance_api_fetch_total{hasil="ok",koleksi="pemakaian"} 2`)
	assert.Contains(t, body, `tpq_finance_api_fetch_total{hasil="ok",koleksi="syahriah"} 2`)
}

// ============================================================================
// LAPORAN PIPELINE
// ============================================================================

func TestBuildLaporanDefaultsToCurrentYear(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = rekapFixture("2023-05", "2024-03")

	lap, err := newTestService(api, nil).BuildLaporan(context.Background(), PeriodeFilter{}, "")

	require.NoError(t, err)
	assert.Equal(t, "2024", lap.Selection.Tahun)
	assert.Equal(t, Semua, lap.Selection.Bulan)
}

func TestBuildLaporanResetsMonthAbsentFromYear(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = rekapFixture("2023-07", "2024-03")

	lap, err := newTestService(api, nil).BuildLaporan(context.Background(), PeriodeFilter{Tahun: "2024", Bulan: "07"}, "")

	require.NoError(t, err)
	assert.Equal(t, Semua, lap.Selection.Bulan)
	assert.Len(t, lap.Rekap, 1)
}

func TestBuildLaporanWaliScopesSyahriah(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = rekapFixture("2024-03")
	api.syahriah = []Syahriah{
		{ID: "a", Bulan: "2024-03", Santri: &Santri{Wali: &Pengguna{ID: "wali-1"}}},
		{ID: "b", Bulan: "2024-03", Santri: &Santri{Wali: &Pengguna{ID: "wali-2"}}},
	}

	lap, err := newTestService(api, nil).BuildLaporan(context.Background(), PeriodeFilter{Tahun: "2024"}, "wali-1")

	require.NoError(t, err)
	require.Len(t, lap.Syahriah, 1)
	assert.Equal(t, "a", lap.Syahriah[0].ID)
}

func TestBuildLaporanSummaryMatchesFilteredRows(t *testing.T) {
	api := newMockFinanceAPI()
	api.rekap = []RekapPeriode{
		{Periode: "2024-01", PemasukanTotal: 500, PengeluaranTotal: 100, SaldoAkhirTotal: 400},
		{Periode: "2024-02", PemasukanTotal: 300, PengeluaranTotal: 200, SaldoAkhirTotal: 1300},
		{Periode: "2023-12", PemasukanTotal: 999, PengeluaranTotal: 999, SaldoAkhirTotal: 999},
	}

	lap, err := newTestService(api, nil).BuildLaporan(context.Background(), PeriodeFilter{Tahun: "2024"}, "")

	require.NoError(t, err)
	assert.Equal(t, 800.0, lap.Ringkasan.TotalPemasukan)
	assert.Equal(t, 300.0, lap.Ringkasan.TotalPengeluaran)
	assert.Equal(t, 1300.0, lap.Ringkasan.SaldoAkhir)
}

// ============================================================================
// INSTITUTION METADATA
// ============================================================================

func TestInformasiCachesAPIResult(t *testing.T) {
	api := newMockFinanceAPI()
	api.info = InformasiTPQ{NamaTPQ: "TPQ Uji", Alamat: "Jalan Uji 1"}
	cache := newMemoryCache()
	svc := newTestService(api, cache)

	first := svc.Informasi(context.Background())
	second := svc.Informasi(context.Background())

	assert.Equal(t, "TPQ Uji", first.NamaTPQ)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.infoCalls)
}

func TestInformasiFallsBackToDefaults(t *testing.T) {
	api := newMockFinanceAPI()
	api.infoErr = errors.New("tidak tersedia")

	info := newTestService(api, nil).Informasi(context.Background())

	assert.Equal(t, DefaultInformasiTPQ(), info)
}

// ============================================================================
// EXPENDITURE VALIDATION
// ============================================================================

func validInput() PemakaianInput {
	return PemakaianInput{
		Judul:           "Beli spidol",
		Deskripsi:       "Spidol papan tulis",
		NominalSyahriah: 30,
		NominalDonasi:   20,
		NominalTotal:    50,
		Tipe:            TipeOperasional,
	}
}

func TestValidatePemakaianAccepts(t *testing.T) {
	svc := newTestService(newMockFinanceAPI(), nil)

	assert.NoError(t, svc.ValidatePemakaian(validInput()))
}

func TestValidatePemakaianTotalMismatch(t *testing.T) {
	svc := newTestService(newMockFinanceAPI(), nil)
	input := validInput()
	input.NominalTotal = 49

	err := svc.ValidatePemakaian(input)

	require.Error(t, err)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestValidatePemakaianTolerance(t *testing.T) {
	svc := newTestService(newMockFinanceAPI(), nil)
	input := validInput()
	input.NominalTotal = 50.005

	assert.NoError(t, svc.ValidatePemakaian(input))
}

func TestValidatePemakaianRejectsUnknownTipe(t *testing.T) {
	svc := newTestService(newMockFinanceAPI(), nil)
	input := validInput()
	input.Tipe = "hiburan"

	assert.ErrorIs(t, svc.ValidatePemakaian(input), httpx.ErrValidation)
}

func TestValidatePemakaianRejectsBadDate(t *testing.T) {
	svc := newTestService(newMockFinanceAPI(), nil)
	input := validInput()
	input.Tanggal = "03-2024-15"

	assert.ErrorIs(t, svc.ValidatePemakaian(input), httpx.ErrValidation)
}

func TestCreatePemakaianForwardsValidPayload(t *testing.T) {
	api := newMockFinanceAPI()
	svc := newTestService(api, nil)

	created, err := svc.CreatePemakaian(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, "pk-baru", created.ID)
	assert.Len(t, api.created, 1)
}

func TestCreatePemakaianRejectsBeforeDispatch(t *testing.T) {
	api := newMockFinanceAPI()
	svc := newTestService(api, nil)
	input := validInput()
	input.Judul = ""

	_, err := svc.CreatePemakaian(context.Background(), input)

	require.Error(t, err)
	assert.Empty(t, api.created)
}

func TestUpdatePemakaianRequiresID(t *testing.T) {
	svc := newTestService(newMockFinanceAPI(), nil)

	_, err := svc.UpdatePemakaian(context.Background(), "", validInput())

	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeletePemakaian(t *testing.T) {
	api := newMockFinanceAPI()
	svc := newTestService(api, nil)

	require.NoError(t, svc.DeletePemakaian(context.Background(), "pk-1"))
	assert.Equal(t, []string{"pk-1"}, api.deleted)
}

func TestGenerateRekap(t *testing.T) {
	api := newMockFinanceAPI()
	svc := newTestService(api, nil)

	require.NoError(t, svc.GenerateRekap(context.Background()))
	assert.Equal(t, 1, api.generated)
}
