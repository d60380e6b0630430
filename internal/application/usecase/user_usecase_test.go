package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

func TestUserUsecase_ProfileAndStoreSettings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uc := NewUserUsecase(env.store.Users(), time.Second)
	us := env.signIn(t, "u1", "alice@example.com")

	u, err := uc.UpdateProfile(ctx, us, ProfileInput{Name: ptr(" Alice Doe "), Phone: ptr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", u.Name)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "Alice Doe", us.Identity().Name)

	_, err = uc.UpdateProfile(ctx, us, ProfileInput{Name: ptr("  ")})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = uc.UpdateStoreSettings(ctx, us, ProfileInput{Address: ptr("1 Market St")})
	assert.ErrorIs(t, err, common.ErrForbidden)

	shop := env.signIn(t, "shop-1", "shop@example.com")
	s, err := uc.UpdateStoreSettings(ctx, shop, ProfileInput{Address: ptr("1 Market St")})
	require.NoError(t, err)
	require.NotNil(t, s.Address)
	assert.Equal(t, "1 Market St", *s.Address)
}
