// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"

	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	paymentdom "github.com/UDAY2232/LackLink/internal/domain/payment"
	shipdom "github.com/UDAY2232/LackLink/internal/domain/shippingAddress"
)

// OrderRepositoryFS implements order.Repository.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(colOrders)
}

type addressDoc struct {
	Name         string `firestore:"name"`
	Phone        string `firestore:"phone"`
	AddressLine1 string `firestore:"address_line_1"`
	AddressLine2 string `firestore:"address_line_2"`
	City         string `firestore:"city"`
	State        string `firestore:"state"`
	PostalCode   string `firestore:"postal_code"`
	Country      string `firestore:"country"`
}

type lineDoc struct {
	ProductID   string `firestore:"product_id"`
	ProductName string `firestore:"product_name"`
	Quantity    int    `firestore:"quantity"`
	Price       string `firestore:"price"`
}

type orderDoc struct {
	UserID          string     `firestore:"user_id"`
	TotalAmount     string     `firestore:"total_amount"`
	Status          string     `firestore:"status"`
	ShippingAddress addressDoc `firestore:"shipping_address"`
	PaymentMethod   string     `firestore:"payment_method"`
	PaymentStatus   string     `firestore:"payment_status"`
	Items           []lineDoc  `firestore:"items"`
	WorkflowState   string     `firestore:"workflow_state"`
	StockApplied    int        `firestore:"stock_applied"`
	FailureReason   string     `firestore:"failure_reason"`
	CreatedAt       time.Time  `firestore:"created_at"`
	UpdatedAt       time.Time  `firestore:"updated_at"`
}

func orderDocFromDomain(o orderdom.Order) orderDoc {
	lines := make([]lineDoc, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, lineDoc{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       decimalToString(l.Price),
		})
	}
	a := o.ShippingAddress
	return orderDoc{
		UserID:      o.UserID,
		TotalAmount: decimalToString(o.TotalAmount),
		Status:      string(o.Status),
		ShippingAddress: addressDoc{
			Name:         a.Name,
			Phone:        a.Phone,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		},
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		Items:         lines,
		WorkflowState: string(o.WorkflowState),
		StockApplied:  o.StockApplied,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
}

func decodeOrder(snap *firestore.DocumentSnapshot) (orderdom.Order, error) {
	var d orderDoc
	if err := snap.DataTo(&d); err != nil {
		return orderdom.Order{}, err
	}
	lines := make([]orderdom.Line, 0, len(d.Items))
	for _, l := range d.Items {
		lines = append(lines, orderdom.Line{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       parseDecimal(l.Price),
		})
	}
	a := d.ShippingAddress
	return orderdom.Order{
		ID:          snap.Ref.ID,
		UserID:      d.UserID,
		TotalAmount: parseDecimal(d.TotalAmount),
		Status:      orderdom.Status(d.Status),
		ShippingAddress: shipdom.Address{
			Name:         a.Name,
			Phone:        a.Phone,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		},
		PaymentMethod: paymentdom.Method(d.PaymentMethod),
		PaymentStatus: paymentdom.Status(d.PaymentStatus),
		Items:         lines,
		WorkflowState: orderdom.WorkflowState(d.WorkflowState),
		StockApplied:  d.StockApplied,
		FailureReason: d.FailureReason,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}, nil
}

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if _, err := r.col().Doc(o.ID).Create(ctx, orderDocFromDomain(o)); err != nil {
		return orderdom.Order{}, classify("orders.create", err, nil, orderdom.ErrConflict)
	}
	return o, nil
}

func (r *OrderRepositoryFS) GetByID(ctx context.Context, id string) (orderdom.Order, error) {
	snap, err := r.col().Doc(strings.TrimSpace(id)).Get(ctx)
	if err != nil {
		return orderdom.Order{}, classify("orders.get", err, orderdom.ErrNotFound, nil)
	}
	return decodeOrder(snap)
}

func (r *OrderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	q := r.col().Where("user_id", "==", strings.TrimSpace(userID))
	os, err := decodeAll(q.Documents(ctx), decodeOrder)
	if err != nil {
		return nil, classify("orders.list_by_user", err, nil, nil)
	}
	sortOrdersNewestFirst(os)
	return os, nil
}

func (r *OrderRepositoryFS) ListByIDs(ctx context.Context, ids []string) ([]orderdom.Order, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []orderdom.Order{}, nil
	}
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.col().Doc(id))
	}
	snaps, err := r.Client.GetAll(ctx, refs)
	if err != nil {
		return nil, classify("orders.list_by_ids", err, nil, nil)
	}
	out := make([]orderdom.Order, 0, len(snaps))
	for _, snap := range snaps {
		if snap == nil || !snap.Exists() {
			continue
		}
		o, err := decodeOrder(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	sortOrdersNewestFirst(out)
	return out, nil
}

func (r *OrderRepositoryFS) UpdateStatus(ctx context.Context, id string, status orderdom.Status) (orderdom.Order, error) {
	ref := r.col().Doc(strings.TrimSpace(id))
	var out orderdom.Order
	err := r.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		o, err := decodeOrder(snap)
		if err != nil {
			return err
		}
		o.Status = status
		o.UpdatedAt = time.Now().UTC()
		out = o
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(status)},
			{Path: "updated_at", Value: o.UpdatedAt},
		})
	})
	if err != nil {
		return orderdom.Order{}, classify("orders.update_status", err, orderdom.ErrNotFound, nil)
	}
	return out, nil
}

func (r *OrderRepositoryFS) UpdateProgress(ctx context.Context, id string, p orderdom.Progress) error {
	at := p.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}
	ups := []firestore.Update{
		{Path: "workflow_state", Value: string(p.State)},
		{Path: "stock_applied", Value: p.StockApplied},
		{Path: "updated_at", Value: at.UTC()},
	}
	if p.Status != nil {
		ups = append(ups, firestore.Update{Path: "status", Value: string(*p.Status)})
	}
	if p.PaymentStatus != nil {
		ups = append(ups, firestore.Update{Path: "payment_status", Value: string(*p.PaymentStatus)})
	}
	if p.FailureReason != "" {
		ups = append(ups, firestore.Update{Path: "failure_reason", Value: p.FailureReason})
	}
	_, err := r.col().Doc(strings.TrimSpace(id)).Update(ctx, ups)
	return classify("orders.update_progress", err, orderdom.ErrNotFound, nil)
}

func (r *OrderRepositoryFS) ListByWorkflowStates(ctx context.Context, states []orderdom.WorkflowState) ([]orderdom.Order, error) {
	vals := make([]string, 0, len(states))
	for _, s := range states {
		vals = append(vals, string(s))
	}
	os, err := queryIn(ctx, r.col().Query, "workflow_state", vals, decodeOrder)
	if err != nil {
		return nil, classify("orders.list_by_workflow", err, nil, nil)
	}
	sortOrdersNewestFirst(os)
	return os, nil
}

func sortOrdersNewestFirst(os []orderdom.Order) {
	sort.SliceStable(os, func(i, j int) bool {
		if os[i].CreatedAt.Equal(os[j].CreatedAt) {
			return os[i].ID > os[j].ID
		}
		return os[i].CreatedAt.After(os[j].CreatedAt)
	})
}
