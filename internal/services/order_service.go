package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dommaster/backend/internal/apperr"
	"github.com/dommaster/backend/internal/models"
	"gorm.io/gorm"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type CreateOrderInput struct {
	ServiceItemID uint
	Quantity      int
	Phone         string
	Address       string
	Note          string
}

// Create places an order in status New with a single line item. The
// unit price is captured from the catalog at this moment and never
// updated afterwards.
func (s *OrderService) Create(userID uint, in CreateOrderInput) (*models.Order, error) {
	if in.Quantity < 1 {
		return nil, apperr.Validation("quantity must be at least 1")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return nil, apperr.Validation("phone is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		return nil, apperr.Validation("address is required")
	}

	// Existence only: an inactive service can still be ordered, e.g.
	// from a link the user kept around.
	var svc models.ServiceItem
	if err := s.db.First(&svc, in.ServiceItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, fmt.Errorf("lookup service: %w", err)
	}

	order := models.Order{
		UserID:  userID,
		Phone:   in.Phone,
		Address: in.Address,
		Note:    in.Note,
		Status:  models.StatusNew,
		Items: []models.OrderItem{
			{
				ServiceItemID: svc.ID,
				Quantity:      in.Quantity,
				Price:         svc.MinPrice,
			},
		},
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

// ListForUser returns the user's orders newest-first, with line items
// and the services they reference.
func (s *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.
		Preload("Items.ServiceItem").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Cancel transitions an order to Cancelled. Cancelling an order that is
// already Completed or Cancelled is a silent no-op. The status write is
// a single conditional UPDATE so two concurrent cancels both land in
// Cancelled without a lost update.
func (s *OrderService) Cancel(userID, orderID uint) error {
	var order models.Order
	if err := s.db.Select("id", "user_id", "status").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		return fmt.Errorf("lookup order: %w", err)
	}

	// Ownership before state: a non-owner learns nothing about the
	// order's status.
	if order.UserID != userID {
		return apperr.Forbidden("cannot cancel another user's order")
	}

	res := s.db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, []models.OrderStatus{models.StatusNew, models.StatusInProgress}).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		return fmt.Errorf("cancel order: %w", res.Error)
	}
	// Zero rows means the order was already terminal; that is success.
	return nil
}
