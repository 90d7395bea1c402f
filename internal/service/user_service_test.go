package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"swapnest/internal/entity"
)

func TestAdminCreateUserDefaults(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	user, err := svc.CreateUser(context.Background(), AdminUserInput{
		Username: "dina",
		Email:    "dina@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.Balance.Equal(decimal.NewFromInt(1000)))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")))
}

func TestAdminCreateUserWithRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	inactive := false

	user, err := svc.CreateUser(context.Background(), AdminUserInput{
		Username: "mod",
		Email:    "mod@example.com",
		Password: "hunter22",
		Role:     entity.RoleAdmin,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.False(t, user.IsActive)
}

func TestAdminCreateUserValidation(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	var ve *entity.ValidationError

	_, err := svc.CreateUser(context.Background(), AdminUserInput{Username: "dina"})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.CreateUser(context.Background(), AdminUserInput{
		Username: "dina",
		Email:    "dina@example.com",
		Password: "hunter22",
		Role:     "Superuser",
	})
	assert.ErrorAs(t, err, &ve)
}
