package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendance-system/internal/dto"
	"attendance-system/internal/entities"
	"attendance-system/pkg/config"
	apperrors "attendance-system/pkg/errors"
	"attendance-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func int64Ptr(v int64) *int64 { return &v }

type fakeUserRepo struct {
	users        map[int64]*entities.User
	roleCounts   map[string]int64
	deletedIDs   []int64
	lastUpdated  *entities.User
	failNextFind error
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users:      make(map[int64]*entities.User),
		roleCounts: make(map[string]int64),
	}
	for _, u := range users {
		r.users[u.UserID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, schoolID *int64) ([]entities.User, error) {
	out := make([]entities.User, 0)
	for _, u := range r.users {
		if schoolID != nil {
			if u.SchoolID == nil || *u.SchoolID != *schoolID {
				continue
			}
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*entities.User, error) {
	if r.failNextFind != nil {
		err := r.failNextFind
		r.failNextFind = nil
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, schoolID int64, username string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.SchoolID != nil && *u.SchoolID == schoolID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) (int64, error) {
	id := int64(len(r.users) + 1)
	cp := *user
	cp.UserID = id
	r.users[id] = &cp
	return id, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *entities.User) error {
	if _, ok := r.users[user.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	cp := *user
	r.users[user.UserID] = &cp
	r.lastUpdated = &cp
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

func (r *fakeUserRepo) CountByRoleName(ctx context.Context, roleName string) (int64, error) {
	return r.roleCounts[roleName], nil
}

type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (c *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		c.values[key] = v
	case []byte:
		c.values[key] = string(v)
	default:
		return errors.New("unsupported cache value type")
	}
	return nil
}

func (c *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	n := int64(0)
	if v, ok := c.values[key]; ok {
		for _, ch := range v {
			n = n*10 + int64(ch-'0')
		}
	}
	n++
	c.values[key] = itoa(n)
	return n, nil
}

func (c *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	buf := make([]byte, 0, 8)
	for n > 0 {
		buf = append([]byte{byte('0' + n%10)}, buf...)
		n /= 10
	}
	return string(buf)
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		MaxLoginAttempts: 3,
		LockoutDuration:  time.Minute,
		PageCacheTTL:     time.Minute,
	}
}

func testUser(t *testing.T, password string) *entities.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return &entities.User{
		UserID:       1,
		Username:     "principal",
		PasswordHash: hash,
		Fullname:     "Test Principal",
		Role:         "admin",
		SchoolID:     int64Ptr(10),
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo(testUser(t, "secret123"))
	svc := NewAuthService(repo, newFakeCacheRepo(), zap.NewNop(), testAuthConfig())

	user, err := svc.Login(context.Background(), dto.LoginDTO{
		SchoolID: 10,
		Username: "principal",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "admin", user.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo(testUser(t, "secret123"))
	svc := NewAuthService(repo, newFakeCacheRepo(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		SchoolID: 10,
		Username: "principal",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// Unknown usernames produce the same error as wrong passwords.
func TestLoginUnknownUser(t *testing.T) {
	repo := newFakeUserRepo(testUser(t, "secret123"))
	svc := NewAuthService(repo, newFakeCacheRepo(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		SchoolID: 10,
		Username: "nobody",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginWrongSchool(t *testing.T) {
	repo := newFakeUserRepo(testUser(t, "secret123"))
	svc := NewAuthService(repo, newFakeCacheRepo(), zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		SchoolID: 99,
		Username: "principal",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	repo := newFakeUserRepo(testUser(t, "secret123"))
	cache := newFakeCacheRepo()
	cfg := testAuthConfig()
	svc := NewAuthService(repo, cache, zap.NewNop(), cfg)

	bad := dto.LoginDTO{SchoolID: 10, Username: "principal", Password: "wrong"}
	for i := 0; i < cfg.MaxLoginAttempts; i++ {
		_, err := svc.Login(context.Background(), bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}

	// further attempts are refused even with the right password
	_, err := svc.Login(context.Background(), dto.LoginDTO{
		SchoolID: 10, Username: "principal", Password: "secret123",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestLoginSuccessResetsCounter(t *testing.T) {
	repo := newFakeUserRepo(testUser(t, "secret123"))
	cache := newFakeCacheRepo()
	svc := NewAuthService(repo, cache, zap.NewNop(), testAuthConfig())

	bad := dto.LoginDTO{SchoolID: 10, Username: "principal", Password: "wrong"}
	good := dto.LoginDTO{SchoolID: 10, Username: "principal", Password: "secret123"}

	_, err := svc.Login(context.Background(), bad)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), good)
	require.NoError(t, err)

	// counter is gone; repeated failures start from scratch
	_, hit := cache.values["login_attempts:10:principal"]
	assert.False(t, hit)
}
