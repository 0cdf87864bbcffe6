package walklimit

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

const tableName = "walk_limit_overrides"

var columns = []string{"date", "max_walks", "created_at", "updated_at"}

// overrideRow строка таблицы walk_limit_overrides, заполняется через sqlx.StructScan
type overrideRow struct {
	Date      time.Time     `db:"date"`
	MaxWalks  sql.NullInt64 `db:"max_walks"`
	CreatedAt sql.NullTime  `db:"created_at"`
	UpdatedAt sql.NullTime  `db:"updated_at"`
}

func (r overrideRow) toDomain() *domain.WalkLimitOverride {
	o := &domain.WalkLimitOverride{
		Date:      domain.DateOnly(r.Date),
		CreatedAt: r.CreatedAt.Time,
		UpdatedAt: r.UpdatedAt.Time,
	}
	if r.MaxWalks.Valid {
		v := int(r.MaxWalks.Int64)
		o.MaxWalks = &v
	}
	return o
}
