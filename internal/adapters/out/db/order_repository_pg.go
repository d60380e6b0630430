package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	dbcommon "github.com/UDAY2232/LackLink/internal/adapters/out/db/common"
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	paymentdom "github.com/UDAY2232/LackLink/internal/domain/payment"
)

// PostgreSQL implementation of order.Repository
type OrderRepositoryPG struct {
	DB *sql.DB
}

func NewOrderRepositoryPG(db *sql.DB) *OrderRepositoryPG {
	return &OrderRepositoryPG{DB: db}
}

const orderColumns = `
  id, user_id, total_amount, status, shipping_address, payment_method, payment_status,
  items, workflow_state, stock_applied, failure_reason, created_at, updated_at`

// ========================
// RepositoryPort impl
// ========================

func (r *OrderRepositoryPG) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)

	addr, err := json.Marshal(o.ShippingAddress)
	if err != nil {
		return orderdom.Order{}, err
	}
	items, err := json.Marshal(o.Items)
	if err != nil {
		return orderdom.Order{}, err
	}

	q := `INSERT INTO orders (` + orderColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + orderColumns
	row := run.QueryRowContext(ctx, q,
		o.ID, o.UserID, o.TotalAmount, string(o.Status), addr,
		string(o.PaymentMethod), string(o.PaymentStatus), items,
		string(o.WorkflowState), o.StockApplied, o.FailureReason,
		o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	)
	out, err := scanOrder(row)
	if err != nil {
		return orderdom.Order{}, dbcommon.Classify("orders.create", err, nil, orderdom.ErrConflict)
	}
	return out, nil
}

func (r *OrderRepositoryPG) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	o, err := scanOrder(run.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, strings.TrimSpace(id)))
	if err != nil {
		return orderdom.Order{}, dbcommon.Classify("orders.get", err, orderdom.ErrNotFound, nil)
	}
	return o, nil
}

func (r *OrderRepositoryPG) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	return r.query(ctx, "orders.list_by_user", `WHERE user_id = $1`, strings.TrimSpace(userID))
}

func (r *OrderRepositoryPG) ListByIDs(ctx context.Context, ids []string) ([]orderdom.Order, error) {
	if len(ids) == 0 {
		return []orderdom.Order{}, nil
	}
	return r.query(ctx, "orders.list_by_ids", `WHERE id = ANY($1)`, pq.Array(ids))
}

func (r *OrderRepositoryPG) ListByWorkflowStates(ctx context.Context, states []orderdom.WorkflowState) ([]orderdom.Order, error) {
	if len(states) == 0 {
		return []orderdom.Order{}, nil
	}
	ss := make([]string, 0, len(states))
	for _, s := range states {
		ss = append(ss, string(s))
	}
	return r.query(ctx, "orders.list_by_workflow", `WHERE workflow_state = ANY($1)`, pq.Array(ss))
}

func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, id string, status orderdom.Status) (orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	row := run.QueryRowContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+orderColumns,
		strings.TrimSpace(id), string(status), time.Now().UTC(),
	)
	o, err := scanOrder(row)
	if err != nil {
		return orderdom.Order{}, dbcommon.Classify("orders.update_status", err, orderdom.ErrNotFound, nil)
	}
	return o, nil
}

func (r *OrderRepositoryPG) UpdateProgress(ctx context.Context, id string, p orderdom.Progress) error {
	run := dbcommon.GetRunner(ctx, r.DB)

	sets := []string{}
	args := []any{}
	dbcommon.AppendCond(&sets, &args, "workflow_state = $%d", string(p.State))
	dbcommon.AppendCond(&sets, &args, "stock_applied = $%d", p.StockApplied)
	if p.Status != nil {
		dbcommon.AppendCond(&sets, &args, "status = $%d", string(*p.Status))
	}
	if p.PaymentStatus != nil {
		dbcommon.AppendCond(&sets, &args, "payment_status = $%d", string(*p.PaymentStatus))
	}
	if p.FailureReason != "" {
		dbcommon.AppendCond(&sets, &args, "failure_reason = $%d", p.FailureReason)
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	dbcommon.AppendCond(&sets, &args, "updated_at = $%d", updatedAt.UTC())

	args = append(args, strings.TrimSpace(id))
	q := fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	res, err := run.ExecContext(ctx, q, args...)
	if err != nil {
		return dbcommon.Classify("orders.update_progress", err, nil, nil)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return orderdom.ErrNotFound
	}
	return nil
}

// ========================
// helpers
// ========================

func (r *OrderRepositoryPG) query(ctx context.Context, op, where string, args ...any) ([]orderdom.Order, error) {
	run := dbcommon.GetRunner(ctx, r.DB)
	rows, err := run.QueryContext(ctx, `SELECT `+orderColumns+` FROM orders `+where+` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, dbcommon.Classify(op, err, nil, nil)
	}
	defer rows.Close()

	out := make([]orderdom.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, dbcommon.Classify(op, err, nil, nil)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, dbcommon.Classify(op, err, nil, nil)
	}
	return out, nil
}

func scanOrder(s dbcommon.RowScanner) (orderdom.Order, error) {
	var (
		o                                  orderdom.Order
		status, method, payStatus, wfState string
		addrRaw, itemsRaw                  []byte
	)
	if err := s.Scan(
		&o.ID, &o.UserID, &o.TotalAmount, &status, &addrRaw, &method, &payStatus,
		&itemsRaw, &wfState, &o.StockApplied, &o.FailureReason, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return orderdom.Order{}, err
	}
	o.Status = orderdom.Status(status)
	o.PaymentMethod = paymentdom.Method(method)
	o.PaymentStatus = paymentdom.Status(payStatus)
	o.WorkflowState = orderdom.WorkflowState(wfState)

	if len(addrRaw) > 0 {
		if err := json.Unmarshal(addrRaw, &o.ShippingAddress); err != nil {
			return orderdom.Order{}, fmt.Errorf("orders: decode shipping_address: %w", err)
		}
	}
	if len(itemsRaw) > 0 {
		if err := json.Unmarshal(itemsRaw, &o.Items); err != nil {
			return orderdom.Order{}, fmt.Errorf("orders: decode items: %w", err)
		}
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	return o, nil
}
