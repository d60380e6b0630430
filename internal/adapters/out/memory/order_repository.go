package memory

import (
	"context"
	"sort"
	"time"

	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
)

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; ok {
		return orderdom.Order{}, orderdom.ErrConflict
	}
	o.Items = append([]orderdom.Line(nil), o.Items...)
	r.s.orders[o.ID] = o
	return o, nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *orderRepo) ListByUser(_ context.Context, userID string) ([]orderdom.Order, error) {
	return r.collect(func(o orderdom.Order) bool { return o.UserID == userID }), nil
}

func (r *orderRepo) ListByIDs(_ context.Context, ids []string) ([]orderdom.Order, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return r.collect(func(o orderdom.Order) bool {
		_, ok := want[o.ID]
		return ok
	}), nil
}

func (r *orderRepo) ListByWorkflowStates(_ context.Context, states []orderdom.WorkflowState) ([]orderdom.Order, error) {
	return r.collect(func(o orderdom.Order) bool {
		for _, st := range states {
			if o.WorkflowState == st {
				return true
			}
		}
		return false
	}), nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id string, status orderdom.Status) (orderdom.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.s.orders[id] = o
	return o, nil
}

func (r *orderRepo) UpdateProgress(_ context.Context, id string, p orderdom.Progress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return orderdom.ErrNotFound
	}
	p.ApplyTo(&o)
	r.s.orders[id] = o
	return nil
}

// collect returns matching orders newest first.
func (r *orderRepo) collect(keep func(orderdom.Order) bool) []orderdom.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]orderdom.Order, 0)
	for _, o := range r.s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type orderItemRepo struct{ s *Store }

func (r *orderItemRepo) CreateBatch(_ context.Context, items []orderitemdom.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range items {
		if _, exists := r.s.orderItems[it.ID]; exists {
			continue
		}
		r.s.orderItems[it.ID] = it
	}
	return nil
}

func (r *orderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]orderitemdom.OrderItem, error) {
	return r.ListByOrders(ctx, []string{orderID})
}

func (r *orderItemRepo) ListByOrders(_ context.Context, orderIDs []string) ([]orderitemdom.OrderItem, error) {
	want := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		want[id] = struct{}{}
	}
	return r.collect(func(it orderitemdom.OrderItem) bool {
		_, ok := want[it.OrderID]
		return ok
	}), nil
}

func (r *orderItemRepo) ListByProducts(_ context.Context, productIDs []string) ([]orderitemdom.OrderItem, error) {
	want := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		want[id] = struct{}{}
	}
	return r.collect(func(it orderitemdom.OrderItem) bool {
		_, ok := want[it.ProductID]
		return ok
	}), nil
}

func (r *orderItemRepo) collect(keep func(orderitemdom.OrderItem) bool) []orderitemdom.OrderItem {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]orderitemdom.OrderItem, 0)
	for _, it := range r.s.orderItems {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
