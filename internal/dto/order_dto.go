package dto

import (
	"time"

	"github.com/dommaster/backend/internal/models"
)

type CreateOrderRequest struct {
	ServiceItemID uint   `json:"service_item_id"`
	Quantity      int    `json:"quantity"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Note          string `json:"note"`
}

type OrderItemResponse struct {
	ID            uint   `json:"id"`
	ServiceItemID uint   `json:"service_item_id"`
	ServiceName   string `json:"service_name"`
	Quantity      int    `json:"quantity"`
	Price         int64  `json:"price"`
	Total         int64  `json:"total"`
}

type OrderResponse struct {
	ID        uint                `json:"id"`
	Status    string              `json:"status"`
	Phone     string              `json:"phone"`
	Address   string              `json:"address"`
	Note      string              `json:"note"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
	Total     int64               `json:"total"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID,
		Status:    o.Status.String(),
		Phone:     o.Phone,
		Address:   o.Address,
		Note:      o.Note,
		CreatedAt: o.CreatedAt,
		Items:     make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:            item.ID,
			ServiceItemID: item.ServiceItemID,
			ServiceName:   item.ServiceItem.Name,
			Quantity:      item.Quantity,
			Price:         item.Price,
			Total:         item.Total(),
		})
		resp.Total += item.Total()
	}
	return resp
}

func NewOrderListResponse(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
