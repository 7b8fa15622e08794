package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/softstep/shop/internal/events"
	"github.com/softstep/shop/internal/models"
	"github.com/softstep/shop/internal/repo"
	"github.com/softstep/shop/internal/storage"
)

func initTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to connect to in-memory db")

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.User{}),
		"failed to migrate tables")

	return &repo.GormRepo{DB: db}
}

func newTestCatalogService(t *testing.T, r *repo.GormRepo) *CatalogService {
	t.Helper()

	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)

	return &CatalogService{Repo: r, Images: images, Producer: &events.Producer{}}
}

type recordingNotifier struct {
	counts []int64
}

func (n *recordingNotifier) BroadcastPendingCount(count int64) {
	n.counts = append(n.counts, count)
}

func newTestOrderService(t *testing.T, r *repo.GormRepo) (*OrderService, *recordingNotifier) {
	t.Helper()

	notifier := &recordingNotifier{}
	return &OrderService{Repo: r, Notifier: notifier, Producer: &events.Producer{}}, notifier
}

func newTestAccountService(r *repo.GormRepo, secret []byte) *AccountService {
	return &AccountService{Repo: r, JWTSecret: secret, Producer: &events.Producer{}}
}
