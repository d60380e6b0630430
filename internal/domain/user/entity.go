// internal/domain/user/entity.go
package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/UDAY2232/LackLink/internal/domain/common"
)

// Role is the marketplace role of an Identity.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleRetailer Role = "retailer"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleRetailer
}

// ParseRole normalizes s. Empty means customer.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RoleCustomer, nil
	}
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// User is the domain profile (Identity) tied 1:1 to an authenticated principal.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Errors
var (
	ErrNotFound    = fmt.Errorf("user: %w", common.ErrNotFound)
	ErrConflict    = fmt.Errorf("user: %w", common.ErrConflict)
	ErrInvalidID   = common.NewValidationError("id", "user id is required")
	ErrInvalidName = common.NewValidationError("name", "name must not be empty")
	ErrInvalidRole = common.NewValidationError("role", "role must be customer or retailer")
)

// Policy
var MaxNameLength = 100

// NewDefault builds the Identity provisioned on first sign-in.
// name defaults to the local part of the email, role defaults to customer.
func NewDefault(id, email, name string, role Role, now time.Time) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrInvalidID
	}
	email = strings.TrimSpace(email)

	name = strings.TrimSpace(name)
	if name == "" {
		name = NameFromEmail(email)
	}
	if role == "" {
		role = RoleCustomer
	}
	if !role.Valid() {
		return User{}, ErrInvalidRole
	}

	return User{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

// NameFromEmail returns the part before "@".
func NameFromEmail(email string) string {
	email = strings.TrimSpace(email)
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

func (u User) IsRetailer() bool { return u.Role == RoleRetailer }

// Patch is a partial update of the profile / store settings.
type Patch struct {
	Name      *string
	Phone     *string
	Address   *string
	UpdatedAt time.Time
}

// Normalize trims fields and validates name. Empty phone/address mean "clear".
func (p Patch) Normalize() (Patch, error) {
	if p.Name != nil {
		n := strings.TrimSpace(*p.Name)
		if n == "" || len([]rune(n)) > MaxNameLength {
			return Patch{}, ErrInvalidName
		}
		p.Name = &n
	}
	if p.Phone != nil {
		v := strings.TrimSpace(*p.Phone)
		p.Phone = &v
	}
	if p.Address != nil {
		v := strings.TrimSpace(*p.Address)
		p.Address = &v
	}
	return p, nil
}

// ApplyTo mutates u in place. Used by stores that read-modify-write.
func (p Patch) ApplyTo(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = emptyToNil(*p.Phone)
	}
	if p.Address != nil {
		u.Address = emptyToNil(*p.Address)
	}
	if !p.UpdatedAt.IsZero() {
		u.UpdatedAt = p.UpdatedAt.UTC()
	}
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// UsersTableDDL defines the PostgreSQL DDL for users.
const UsersTableDDL = `
CREATE TABLE IF NOT EXISTS users (
  id          TEXT        PRIMARY KEY,
  email       TEXT        NOT NULL,
  name        TEXT        NOT NULL,
  role        TEXT        NOT NULL DEFAULT 'customer' CHECK (role IN ('customer','retailer')),
  phone       TEXT,
  address     TEXT,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`
