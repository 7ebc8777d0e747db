package models

// ServiceItem is a catalog offering. Inactive items stay referenced by
// historical order items but are hidden from non-admin reads.
type ServiceItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	MinPrice    int64  `gorm:"not null" json:"min_price"`
	Category    string `gorm:"size:100" json:"category"`
	Icon        string `gorm:"size:50" json:"icon"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	OrderItems []OrderItem `gorm:"foreignKey:ServiceItemID" json:"-"`
}
