// internal/application/query/mall/dto/order_dto.go
package dto

import (
	orderdom "github.com/UDAY2232/LackLink/internal/domain/order"
	orderitemdom "github.com/UDAY2232/LackLink/internal/domain/orderItem"
	productdom "github.com/UDAY2232/LackLink/internal/domain/product"
)

type OrderItemDTO struct {
	orderitemdom.OrderItem

	// Product is the current product row; nil when it is gone.
	Product *productdom.Product `json:"product,omitempty"`
}

// OrderDTO is one entry of the customer order history.
type OrderDTO struct {
	orderdom.Order

	OrderItems []OrderItemDTO `json:"order_items"`
}
