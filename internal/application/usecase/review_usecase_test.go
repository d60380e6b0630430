package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

func TestReviewUsecase_RecomputesRating(t *testing.T) {
	env := newTestEnv(t)
	env.putProduct("a", "10", "", 5)
	ctx := context.Background()
	uc := NewReviewUsecase(env.store.Reviews(), env.store.Products(), time.Second)

	alice := env.signIn(t, "u1", "alice@example.com")
	bob := env.signIn(t, "u2", "bob@example.com")

	_, err := uc.Create(ctx, alice, ReviewInput{ProductID: "a", Rating: 5, Comment: "great"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, bob, ReviewInput{ProductID: "a", Rating: 4})
	require.NoError(t, err)

	p, err := env.store.Products().GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, 2, p.ReviewCount)

	_, err = uc.Create(ctx, alice, ReviewInput{ProductID: "a", Rating: 6})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = uc.Create(ctx, nil, ReviewInput{ProductID: "a", Rating: 3})
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
