package user_repo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/robiulsunnyemon/eron/internal/entity"
	"github.com/robiulsunnyemon/eron/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestState(t *testing.T) (*state.AppState, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entity.User{}))
	require.NoError(t, db.Exec("DELETE FROM users").Error)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return &state.AppState{DB: db, Redis: rdb}, mr
}

func TestFindByID(t *testing.T) {
	st, _ := newTestState(t)
	repo := NewUserRepo(st)
	ctx := context.Background()

	require.NoError(t, st.DB.Create(&entity.User{ID: "u1", FirstName: "Alice", Coins: 10}).Error)

	user, appErr := repo.FindByID(ctx, "u1")
	require.Nil(t, appErr)
	assert.Equal(t, "Alice", user.FirstName)

	_, appErr = repo.FindByID(ctx, "ghost")
	require.NotNil(t, appErr)
	assert.True(t, appErr.IsNotFound())
}

func TestGetProfileCached(t *testing.T) {
	st, mr := newTestState(t)
	repo := NewUserRepo(st)
	ctx := context.Background()

	require.NoError(t, st.DB.Create(&entity.User{ID: "u1", FirstName: "Alice"}).Error)

	// first read fills the cache
	user, appErr := repo.GetProfileCached(ctx, "u1")
	require.Nil(t, appErr)
	assert.Equal(t, "Alice", user.FirstName)
	assert.True(t, mr.Exists("profile:u1"))

	// a stale cache entry wins over the row until it expires
	require.NoError(t, st.DB.Model(&entity.User{}).Where("id = ?", "u1").Update("first_name", "Alicia").Error)

	user, appErr = repo.GetProfileCached(ctx, "u1")
	require.Nil(t, appErr)
	assert.Equal(t, "Alice", user.FirstName)

	mr.FastForward(profileCacheTTL * 2)

	user, appErr = repo.GetProfileCached(ctx, "u1")
	require.Nil(t, appErr)
	assert.Equal(t, "Alicia", user.FirstName)
}

func TestSetOnlineAndListOnline(t *testing.T) {
	st, _ := newTestState(t)
	repo := NewUserRepo(st)
	ctx := context.Background()

	require.NoError(t, st.DB.Create(&entity.User{ID: "u1"}).Error)
	require.NoError(t, st.DB.Create(&entity.User{ID: "u2"}).Error)

	require.Nil(t, repo.SetOnline(ctx, "u1", true))

	online, appErr := repo.ListOnline(ctx)
	require.Nil(t, appErr)
	require.Len(t, online, 1)
	assert.Equal(t, "u1", online[0].ID)

	require.Nil(t, repo.SetOnline(ctx, "u1", false))

	online, appErr = repo.ListOnline(ctx)
	require.Nil(t, appErr)
	assert.Empty(t, online)
}

func TestIncTotalLike(t *testing.T) {
	st, _ := newTestState(t)
	repo := NewUserRepo(st)
	ctx := context.Background()

	require.NoError(t, st.DB.Create(&entity.User{ID: "host"}).Error)

	require.Nil(t, repo.IncTotalLike(ctx, "host"))
	require.Nil(t, repo.IncTotalLike(ctx, "host"))

	var user entity.User
	require.NoError(t, st.DB.First(&user, "id = ?", "host").Error)
	assert.Equal(t, int64(2), user.TotalLike)
}
