package models

import "time"

// OrderStatus values are ordered; transitions only move forward.
// Cancelled is absorbing and reachable from Draft, New and InProgress.
type OrderStatus int

const (
	StatusDraft      OrderStatus = 0
	StatusNew        OrderStatus = 1
	StatusInProgress OrderStatus = 2
	StatusCompleted  OrderStatus = 3
	StatusCancelled  OrderStatus = 4
)

func (s OrderStatus) String() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusNew:
		return "New"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	}
	return "Unknown"
}

// Terminal reports whether no transition leaves this status.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Order is a booking request. UserID is immutable after creation and
// the only field that ever changes afterwards is Status.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	User      User        `json:"-"`
	Phone     string      `gorm:"size:20;not null" json:"phone"`
	Address   string      `gorm:"size:255;not null" json:"address"`
	Note      string      `gorm:"type:text" json:"note"`
	Status    OrderStatus `gorm:"not null;default:1" json:"status"`
	CreatedAt time.Time   `json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem is one line within an order. Price is the unit price
// captured when the order was placed; later catalog edits must never
// change it.
type OrderItem struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderID       uint        `gorm:"not null;index" json:"order_id"`
	ServiceItemID uint        `gorm:"not null" json:"service_item_id"`
	ServiceItem   ServiceItem `json:"service"`
	Quantity      int         `gorm:"not null;default:1" json:"quantity"`
	Price         int64       `gorm:"not null" json:"price"`
}

// Total is the line total in whole currency units.
func (i OrderItem) Total() int64 { return i.Price * int64(i.Quantity) }
