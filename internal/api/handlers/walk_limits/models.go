package walk_limits

import (
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/service/walklimits/models"
)

// UpsertWalkLimitRequest HTTP request model.
// maxWalks: null снимает лимит на дату, 0 закрывает дату для прогулок
type UpsertWalkLimitRequest struct {
	MaxWalks *int `json:"maxWalks" validate:"omitempty,min=0,max=50"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpsertWalkLimitRequest) ToServiceRequest(date time.Time) *models.UpsertRequest {
	return &models.UpsertRequest{
		Date:     date,
		MaxWalks: r.MaxWalks,
	}
}
