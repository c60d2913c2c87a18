package service

import (
	"testing"

	"go-market-orders/internal/model"
	"go-market-orders/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(&RegisterRequest{
		Email:    "vendor@market.local",
		Password: "s3cret-pass",
		FullName: "Market Vendor",
		Role:     model.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSeller, user.Role)

	resp, err := env.auth.Login("vendor@market.local", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleSeller, claims.Role)
}

func TestRegister_DefaultsToSeller(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.auth.Register(&RegisterRequest{
		Email:    "someone@market.local",
		Password: "s3cret-pass",
		FullName: "Someone",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSeller, user.Role)
}

func TestRegister_AdminNotSelfAssignable(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(&RegisterRequest{
		Email:    "sneaky@market.local",
		Password: "s3cret-pass",
		FullName: "Sneaky",
		Role:     model.RoleAdmin,
	})
	require.Error(t, err) // rejected by payload validation before the role gate
}

func TestRegister_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	req := &RegisterRequest{
		Email:    "dup@market.local",
		Password: "s3cret-pass",
		FullName: "Dup",
		Role:     model.RoleBuyer,
	}
	_, err := env.auth.Register(req)
	require.NoError(t, err)

	_, err = env.auth.Register(req)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Failures(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(&RegisterRequest{
		Email:    "buyer@market.local",
		Password: "s3cret-pass",
		FullName: "Buyer",
		Role:     model.RoleBuyer,
	})
	require.NoError(t, err)

	_, err = env.auth.Login("buyer@market.local", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.Login("nobody@market.local", "s3cret-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
