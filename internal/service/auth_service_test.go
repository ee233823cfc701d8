package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/Nishantvidhuri/storebackend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory UserStore
type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = f.nextID
	f.nextID++
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserStore) FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindOtherUserByEmailOrUsername(ctx context.Context, email, username string, excludeID int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == excludeID {
			continue
		}
		if u.Email == email || u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *u
	f.users[u.ID] = &stored
	return nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

func newTestAuthService() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthService(store, []byte("test-secret"), time.Hour), store
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Username: "nishant",
		Email:    "nishant@example.com",
		Phone:    "+919999999999",
		Password: "s3cret99",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	token, user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret99", user.PasswordHash)

	token, user, err = svc.Login(context.Background(), "nishant@example.com", "s3cret99")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "nishant", user.Username)

	_, _, err = svc.Login(context.Background(), "nishant@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUniqueness(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	dup := registerReq()
	dup.Username = "someone-else"
	_, _, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrEmailRegistered)

	dup = registerReq()
	dup.Email = "other@example.com"
	_, _, err = svc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestParseTokenRoundTrip(t *testing.T) {
	svc, store := newTestAuthService()

	token, user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	ident, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, ident.UserID)
	assert.Equal(t, user.Email, ident.Email)
	assert.False(t, ident.IsAdmin)

	_, err = svc.ParseToken("not-a-token")
	assert.Error(t, err)

	// token signed under a different secret is rejected
	other := NewAuthService(store, []byte("other-secret"), time.Hour)
	foreign, _, err := other.Register(context.Background(), &RegisterRequest{
		Username: "mallory", Email: "mallory@example.com", Phone: "1", Password: "s3cret99",
	})
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, []byte("test-secret"), -time.Minute)

	token, _, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestAuthService()

	_, user, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	phone := "+918888888888"
	addr := models.ShippingAddress{Area: "Sector 15", City: "Gurgaon", State: "Haryana", Pincode: "122001"}
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileRequest{
		Phone:   &phone,
		Address: &addr,
	})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Gurgaon", updated.Address.City)
	// untouched fields are kept
	assert.Equal(t, "nishant", updated.Username)

	// taken username is rejected
	_, other, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "taken", Email: "taken@example.com", Phone: "1", Password: "s3cret99",
	})
	require.NoError(t, err)
	_ = other

	taken := "taken"
	_, err = svc.UpdateProfile(context.Background(), user.ID, &UpdateProfileRequest{Username: &taken})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestDeleteUserGuardsSelf(t *testing.T) {
	svc, _ := newTestAuthService()

	_, admin, err := svc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	_, victim, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "victim", Email: "victim@example.com", Phone: "1", Password: "s3cret99",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), admin.ID, admin.ID), ErrSelfDelete)
	require.NoError(t, svc.DeleteUser(context.Background(), admin.ID, victim.ID))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), admin.ID, victim.ID), ErrUserNotFound)
}
