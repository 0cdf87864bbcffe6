package models

import (
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// UpsertRequest запрос на установку лимита прогулок на дату.
// MaxWalks == nil снимает лимит на эту дату
type UpsertRequest struct {
	Date     time.Time `json:"date"`
	MaxWalks *int      `json:"maxWalks"`
}

// WalkLimitResponse состояние лимита на дату.
// Exists == false - действует лимит по умолчанию, Unlimited - лимит снят
type WalkLimitResponse struct {
	Date           string     `json:"date"`
	Exists         bool       `json:"exists"`
	Unlimited      bool       `json:"unlimited"`
	MaxWalks       *int       `json:"maxWalks,omitempty"`
	DefaultWalkCap int        `json:"defaultWalkCap"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// WalkLimitListResponse список переопределений за период
type WalkLimitListResponse struct {
	Overrides []WalkLimitResponse `json:"overrides"`
}

// FromDomainOverride конвертирует domain модель в DTO
func FromDomainOverride(o *domain.WalkLimitOverride, defaultCap int) *WalkLimitResponse {
	resp := &WalkLimitResponse{
		Date:           o.Date.Format(domain.DateFormat),
		Exists:         true,
		Unlimited:      o.IsUnlimited(),
		MaxWalks:       o.MaxWalks,
		DefaultWalkCap: defaultCap,
	}
	if !o.UpdatedAt.IsZero() {
		updated := o.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// DefaultResponse ответ для даты без переопределения
func DefaultResponse(date time.Time, defaultCap int) *WalkLimitResponse {
	return &WalkLimitResponse{
		Date:           date.Format(domain.DateFormat),
		DefaultWalkCap: defaultCap,
	}
}
