package httpd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kimdaedan/exhibition-backend/internal/config"
	"github.com/kimdaedan/exhibition-backend/internal/database"
	"github.com/kimdaedan/exhibition-backend/internal/models"
	"github.com/kimdaedan/exhibition-backend/internal/repository"
	"github.com/kimdaedan/exhibition-backend/internal/service"
	"github.com/kimdaedan/exhibition-backend/internal/service/integration"
	"github.com/kimdaedan/exhibition-backend/internal/service/storage"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	router      http.Handler
	accountRepo repository.AccountRepository
	fs          afero.Fs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithPinger(t, stubPinger{})
}

func newTestServerWithPinger(t *testing.T, pinger Pinger) *testServer {
	t.Helper()

	dbCfg := config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "exhibition.db"),
	}
	db, err := database.Open(dbCfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := database.NewMigrator(dbCfg)
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	logger := zerolog.Nop()
	fs := afero.NewMemMapFs()

	karyaRepo := repository.NewKaryaRepository(db, dbCfg.Driver, logger)
	accountRepo := repository.NewAccountRepository(db, dbCfg.Driver, logger)

	uploadService := service.NewUploadService(storage.NewLocalStorageFs(fs), logger)
	karyaService := service.NewKaryaService(karyaRepo, uploadService, integration.NewNoopClient(), logger, service.KaryaConfig{})
	authService := service.NewAuthService(accountRepo, service.NewPasswordHasher(bcrypt.MinCost), logger)
	showcaseService := service.NewShowcaseService(karyaRepo, service.ShowcaseConfig{
		Landing: models.LandingPage{
			Title:           "Selamat Datang di Pameran Virtual",
			Subtitle:        "Jelajahi inovasi dan kreativitas dari Politeknik Negeri Batam.",
			BackgroundImage: "/background.jpg",
		},
		ImagePrefix:  "/uploads",
		DefaultImage: "/exhibitions/default.jpg",
		LinkPrefix:   "/gallery",
	})

	h := NewHandler(karyaService, authService, showcaseService, uploadService, pinger, logger, Config{
		ServiceName:   "exhibition-backend",
		UploadsPrefix: "/uploads",
	})

	router := chi.NewRouter()
	h.RegisterRoutes(router)

	return &testServer{router: router, accountRepo: accountRepo, fs: fs}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req)
}

type formFile struct {
	name    string
	content string
}

func multipartRequest(t *testing.T, fields map[string]string, file *formFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		part, err := mw.CreateFormFile("file", file.name)
		require.NoError(t, err)
		_, err = io.WriteString(part, file.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/karya", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var errPing = errors.New("connection refused")
