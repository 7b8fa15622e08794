package httpserver

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/softstep/shop/internal/events"
	"github.com/softstep/shop/internal/models"
	"github.com/softstep/shop/internal/repo"
	"github.com/softstep/shop/internal/service"
	"github.com/softstep/shop/internal/storage"
)

type testEnv struct {
	E     *echo.Echo
	Repo  *repo.GormRepo
	P     *ProductHTTP
	O     *OrderHTTP
	U     *UserHTTP
	Users *service.AccountService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to connect to in-memory db")
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.User{}),
		"failed to migrate tables")

	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	r := &repo.GormRepo{DB: db}
	producer := &events.Producer{}

	catalogSvc := &service.CatalogService{Repo: r, Images: images, Producer: producer}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}
	accountSvc := &service.AccountService{Repo: r, JWTSecret: []byte("test-jwt-secret"), Producer: producer}

	return &testEnv{
		E:     echo.New(),
		Repo:  r,
		P:     &ProductHTTP{Svc: catalogSvc},
		O:     &OrderHTTP{Svc: orderSvc},
		U:     &UserHTTP{Svc: accountSvc},
		Users: accountSvc,
	}
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func jsonRequest(t *testing.T, env *testEnv, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}

func formRequest(t *testing.T, env *testEnv, method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	return env.E.NewContext(req, rec), rec
}
