package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swapnest/internal/entity"
)

type fakeUserStore struct {
	byID    map[int]*entity.User
	byEmail map[string]*entity.User
	nextID  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[int]*entity.User{}, byEmail: map[string]*entity.User{}}
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, entity.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	f.nextID++
	user.ID = f.nextID
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) DeleteUser(ctx context.Context, id int) error {
	u, ok := f.byID[id]
	if !ok {
		return entity.ErrNotFound
	}
	delete(f.byEmail, u.Email)
	delete(f.byID, id)
	return nil
}

func TestRegisterSetsDefaultsAndHashesPassword(t *testing.T) {
	t.Setenv("ENV", "test")
	store := newFakeUserStore()
	svc := NewAuthService(store, nil, "test-secret")

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "dina",
		Email:    "dina@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, "1000", user.Balance.String())
	assert.NotEqual(t, "hunter22", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), nil, "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{Username: "dina"})
	var ve *entity.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "dina", Email: "not-an-email", Password: "x"})
	assert.ErrorAs(t, err, &ve)
}

func TestLoginRoundTrip(t *testing.T) {
	t.Setenv("ENV", "test")
	store := newFakeUserStore()
	svc := NewAuthService(store, nil, "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "dina", Email: "dina@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, pair, err := svc.Login(context.Background(), "dina@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "dina", user.Username)
	require.NotEmpty(t, pair.AccessToken)

	claims, err := svc.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("ENV", "test")
	store := newFakeUserStore()
	svc := NewAuthService(store, nil, "test-secret")

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "dina", Email: "dina@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "dina@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	t.Setenv("ENV", "test")
	store := newFakeUserStore()
	svc := NewAuthService(store, nil, "test-secret")

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "dina", Email: "dina@example.com", Password: "hunter22"})
	require.NoError(t, err)

	stored := store.byID[user.ID]
	stored.IsActive = false

	_, _, err = svc.Login(context.Background(), "dina@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	t.Setenv("ENV", "test")
	store := newFakeUserStore()
	issuer := NewAuthService(store, nil, "secret-a")
	verifier := NewAuthService(store, nil, "secret-b")

	_, err := issuer.Register(context.Background(), RegisterInput{
		Username: "dina", Email: "dina@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, pair, err := issuer.Login(context.Background(), "dina@example.com", "hunter22")
	require.NoError(t, err)

	_, err = verifier.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	t.Setenv("ENV", "test")
	store := newFakeUserStore()
	svc := NewAuthService(store, nil, "test-secret")

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "dina", Email: "dina@example.com", Password: "hunter22",
		ContactDetails: "+62 811 000"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), user.ID, UpdateProfileInput{
		Username: "dina-r"})
	require.NoError(t, err)
	assert.Equal(t, "dina-r", updated.Username)
	assert.Equal(t, "dina@example.com", updated.Email)
	assert.Equal(t, "+62 811 000", updated.ContactDetails)
}
