package domain

import "time"

// WalkLimitOverride переопределение лимита прогулок на конкретную дату.
// MaxWalks == nil означает "без ограничений", отсутствие строки - "лимит по умолчанию"
type WalkLimitOverride struct {
	Date      time.Time
	MaxWalks  *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUnlimited returns true if the override lifts the cap for the date
func (o *WalkLimitOverride) IsUnlimited() bool {
	return o.MaxWalks == nil
}
