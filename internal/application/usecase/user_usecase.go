// internal/application/usecase/user_usecase.go
package usecase

import (
	"context"
	"log"
	"time"

	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// UserUsecase edits the Identity row: the profile for everyone and the
// store settings (same row) for retailers.
type UserUsecase struct {
	users   userdom.Repository
	timeout time.Duration
}

func NewUserUsecase(users userdom.Repository, timeout time.Duration) *UserUsecase {
	return &UserUsecase{users: users, timeout: timeout}
}

type ProfileInput struct {
	Name    *string
	Phone   *string
	Address *string
}

func (uc *UserUsecase) GetProfile(ctx context.Context, us *UserSession) (userdom.User, error) {
	if us == nil || us.Identity() == nil {
		return userdom.User{}, ErrSignInRequired
	}
	return *us.Identity(), nil
}

// UpdateProfile persists the patch and refreshes the cached Identity.
func (uc *UserUsecase) UpdateProfile(ctx context.Context, us *UserSession, in ProfileInput) (userdom.User, error) {
	if us == nil || us.Identity() == nil {
		return userdom.User{}, ErrSignInRequired
	}
	return uc.update(ctx, us, in)
}

// UpdateStoreSettings is UpdateProfile restricted to retailers.
func (uc *UserUsecase) UpdateStoreSettings(ctx context.Context, us *UserSession, in ProfileInput) (userdom.User, error) {
	if us == nil {
		return userdom.User{}, ErrSignInRequired
	}
	if err := requireRetailer(us.Identity()); err != nil {
		return userdom.User{}, err
	}
	return uc.update(ctx, us, in)
}

func (uc *UserUsecase) update(ctx context.Context, us *UserSession, in ProfileInput) (userdom.User, error) {
	id := us.Identity().ID
	patch, err := userdom.Patch{Name: in.Name, Phone: in.Phone, Address: in.Address}.Normalize()
	if err != nil {
		return userdom.User{}, err
	}
	patch.UpdatedAt = time.Now()

	cctx, cancel := withTimeout(ctx, uc.timeout)
	defer cancel()

	u, err := uc.users.Update(cctx, id, patch)
	if err != nil {
		log.Printf("[user_uc] update failed uid=%s err=%v", id, err)
		return userdom.User{}, err
	}
	us.Store.SetIdentity(u)
	return u, nil
}
