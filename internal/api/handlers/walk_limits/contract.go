package walk_limits

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/service/walklimits/models"
)

type WalkLimitService interface {
	Get(ctx context.Context, date time.Time) (*models.WalkLimitResponse, error)
	List(ctx context.Context, from, to time.Time) (*models.WalkLimitListResponse, error)
	Upsert(ctx context.Context, req *models.UpsertRequest) (*models.WalkLimitResponse, error)
	Delete(ctx context.Context, date time.Time) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
