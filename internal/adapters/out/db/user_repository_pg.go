package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	userdom "github.com/UDAY2232/LackLink/internal/domain/user"
)

// PostgreSQL implementation of user.Repository
type UserRepositoryPG struct {
	DB *sql.DB
}

func NewUserRepositoryPG(db *sql.DB) *UserRepositoryPG {
	return &UserRepositoryPG{DB: db}
}

const userColumns = `id, email, name, role, phone, address, created_at, updated_at`

func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, strings.TrimSpace(id))
	u, err := scanUser(row)
	if err != nil {
		return userdom.User{}, dbcommon.Classify("users.get", err, userdom.ErrNotFound, nil)
	}
	return u, nil
}

func (r *UserRepositoryPG) Create(ctx context.Context, u userdom.User) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	const q = `
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns
	row := run.QueryRowContext(ctx, q,
		u.ID, u.Email, u.Name, string(u.Role),
		dbcommon.ToDBText(u.Phone), dbcommon.ToDBText(u.Address),
		u.CreatedAt, u.UpdatedAt,
	)
	out, err := scanUser(row)
	if err != nil {
		return userdom.User{}, dbcommon.Classify("users.create", err, nil, userdom.ErrConflict)
	}
	return out, nil
}

func (r *UserRepositoryPG) Update(ctx context.Context, id string, patch userdom.Patch) (userdom.User, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	sets := []string{}
	args := []any{}
	if patch.Name != nil {
		dbcommon.AppendCond(&sets, &args, "name = $%d", *patch.Name)
	}
	if patch.Phone != nil {
		dbcommon.AppendCond(&sets, &args, "phone = $%d", dbcommon.ToDBText(patch.Phone))
	}
	if patch.Address != nil {
		dbcommon.AppendCond(&sets, &args, "address = $%d", dbcommon.ToDBText(patch.Address))
	}
	if !patch.UpdatedAt.IsZero() {
		dbcommon.AppendCond(&sets, &args, "updated_at = $%d", patch.UpdatedAt.UTC())
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, strings.TrimSpace(id))
	q := `UPDATE users SET ` + strings.Join(sets, ", ") +
		` WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + userColumns
	u, err := scanUser(run.QueryRowContext(ctx, q, args...))
	if err != nil {
		return userdom.User{}, dbcommon.Classify("users.update", err, userdom.ErrNotFound, nil)
	}
	return u, nil
}

func (r *UserRepositoryPG) ListByIDs(ctx context.Context, ids []string) ([]userdom.User, error) {
	if len(ids) == 0 {
		return []userdom.User{}, nil
	}
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, dbcommon.Classify("users.list", err, nil, nil)
	}
	defer rows.Close()

	out := make([]userdom.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbcommon.Classify("users.list", err, nil, nil)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify("users.list", err, nil, nil)
	}
	return out, nil
}

func scanUser(s dbcommon.RowScanner) (userdom.User, error) {
	var (
		u       userdom.User
		role    string
		phone   sql.NullString
		address sql.NullString
	)
	if err := s.Scan(&u.ID, &u.Email, &u.Name, &role, &phone, &address, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return userdom.User{}, err
	}
	u.Role = userdom.Role(role)
	u.Phone = dbcommon.FromNullString(phone)
	u.Address = dbcommon.FromNullString(address)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
