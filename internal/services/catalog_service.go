package services

import (
	"errors"
	"fmt"

	"github.com/dommaster/backend/internal/apperr"
	"github.com/dommaster/backend/internal/models"
	"gorm.io/gorm"
)

// visibleTo is the catalog visibility policy: non-admin callers never
// see inactive items. Every read entry point goes through this one
// scope so the filter cannot drift between call sites.
func visibleTo(role models.Role) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if role.IsAdmin() {
			return db
		}
		return db.Where("active = ?", true)
	}
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// List returns catalog items visible to role. sort accepts "priceAsc"
// and "priceDesc"; anything else keeps insertion order.
func (s *CatalogService) List(role models.Role, sort string) ([]models.ServiceItem, error) {
	q := s.db.Scopes(visibleTo(role))

	switch sort {
	case "priceAsc":
		q = q.Order("min_price ASC")
	case "priceDesc":
		q = q.Order("min_price DESC")
	}

	var items []models.ServiceItem
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

// Get fetches a single item subject to the same visibility policy: an
// inactive item requested by a non-admin behaves as if it does not
// exist.
func (s *CatalogService) Get(role models.Role, id uint) (*models.ServiceItem, error) {
	var item models.ServiceItem
	err := s.db.Scopes(visibleTo(role)).First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, fmt.Errorf("lookup service: %w", err)
	}
	return &item, nil
}

func (s *CatalogService) Create(item *models.ServiceItem) error {
	if err := validateServiceItem(item); err != nil {
		return err
	}
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("create service: %w", err)
	}
	return nil
}

func (s *CatalogService) Update(id uint, item *models.ServiceItem) (*models.ServiceItem, error) {
	if err := validateServiceItem(item); err != nil {
		return nil, err
	}

	var existing models.ServiceItem
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("service not found")
		}
		return nil, fmt.Errorf("lookup service: %w", err)
	}

	existing.Name = item.Name
	existing.Description = item.Description
	existing.MinPrice = item.MinPrice
	existing.Category = item.Category
	existing.Icon = item.Icon
	existing.Active = item.Active

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return &existing, nil
}

func (s *CatalogService) Delete(id uint) error {
	res := s.db.Delete(&models.ServiceItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete service: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}

func validateServiceItem(item *models.ServiceItem) error {
	if item.Name == "" {
		return apperr.Validation("name is required")
	}
	if item.MinPrice < 0 {
		return apperr.Validation("minimum price cannot be negative")
	}
	return nil
}
