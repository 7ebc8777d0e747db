package dto

import "github.com/dommaster/backend/internal/models"

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MinPrice    int64  `json:"min_price"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Active      bool   `json:"active"`
}

func (r ServiceRequest) ToModel() models.ServiceItem {
	return models.ServiceItem{
		Name:        r.Name,
		Description: r.Description,
		MinPrice:    r.MinPrice,
		Category:    r.Category,
		Icon:        r.Icon,
		Active:      r.Active,
	}
}

type ServiceResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MinPrice    int64  `json:"min_price"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Active      bool   `json:"active"`
}

func NewServiceResponse(s *models.ServiceItem) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		MinPrice:    s.MinPrice,
		Category:    s.Category,
		Icon:        s.Icon,
		Active:      s.Active,
	}
}

func NewServiceListResponse(items []models.ServiceItem) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(items))
	for i := range items {
		out = append(out, NewServiceResponse(&items[i]))
	}
	return out
}
