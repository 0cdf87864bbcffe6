package walklimits

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	walkLimitRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/walklimit"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/walklimits/models"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
	"github.com/m04kA/SMC-WalkBookingService/pkg/ptr"
)

type memoryRepo struct {
	rows map[string]*domain.WalkLimitOverride
	err  error
}

func key(d time.Time) string { return d.Format(domain.DateFormat) }

func (m *memoryRepo) GetByDate(_ context.Context, date time.Time) (*domain.WalkLimitOverride, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.rows[key(date)]
	if !ok {
		return nil, walkLimitRepo.ErrOverrideNotFound
	}
	return o, nil
}

func (m *memoryRepo) ListRange(_ context.Context, from, to time.Time) ([]*domain.WalkLimitOverride, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.WalkLimitOverride, 0)
	for d := domain.DateOnly(from); !d.After(domain.DateOnly(to)); d = d.AddDate(0, 0, 1) {
		if o, ok := m.rows[key(d)]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryRepo) Upsert(_ context.Context, o *domain.WalkLimitOverride) (*domain.WalkLimitOverride, error) {
	if m.err != nil {
		return nil, m.err
	}
	o.UpdatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.rows[key(o.Date)] = o
	return o, nil
}

func (m *memoryRepo) Delete(_ context.Context, date time.Time) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.rows[key(date)]; !ok {
		return walkLimitRepo.ErrOverrideNotFound
	}
	delete(m.rows, key(date))
	return nil
}

var day = time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

func newService() (*Service, *memoryRepo) {
	repo := &memoryRepo{rows: map[string]*domain.WalkLimitOverride{}}
	return NewService(repo, 4, logger.NewWriter(io.Discard, "error")), repo
}

func TestGet_DistinguishesAbsentAndUnlimited(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	absent, err := svc.Get(ctx, day)
	require.NoError(t, err)
	assert.False(t, absent.Exists)
	assert.False(t, absent.Unlimited)
	assert.Equal(t, 4, absent.DefaultWalkCap)

	_, err = svc.Upsert(ctx, &models.UpsertRequest{Date: day, MaxWalks: nil})
	require.NoError(t, err)

	unlimited, err := svc.Get(ctx, day)
	require.NoError(t, err)
	assert.True(t, unlimited.Exists)
	assert.True(t, unlimited.Unlimited)
	assert.Nil(t, unlimited.MaxWalks)

	_, err = svc.Upsert(ctx, &models.UpsertRequest{Date: day, MaxWalks: ptr.Ptr(0)})
	require.NoError(t, err)

	zero, err := svc.Get(ctx, day)
	require.NoError(t, err)
	assert.True(t, zero.Exists)
	assert.False(t, zero.Unlimited)
	require.NotNil(t, zero.MaxWalks)
	assert.Equal(t, 0, *zero.MaxWalks)
}

func TestUpsert_Validation(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Upsert(context.Background(), &models.UpsertRequest{Date: day, MaxWalks: ptr.Ptr(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), &models.UpsertRequest{Date: day, MaxWalks: ptr.Ptr(domain.MaxWalkCap + 1)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(context.Background(), &models.UpsertRequest{MaxWalks: ptr.Ptr(2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Empty(t, repo.rows)
}

func TestDelete(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, day), ErrOverrideNotFound)

	_, err := svc.Upsert(ctx, &models.UpsertRequest{Date: day, MaxWalks: ptr.Ptr(6)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, day))

	resp, err := svc.Get(ctx, day)
	require.NoError(t, err)
	assert.False(t, resp.Exists)
}

func TestList(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	for i, limit := range []int{2, 3} {
		_, err := svc.Upsert(ctx, &models.UpsertRequest{Date: day.AddDate(0, 0, i*2), MaxWalks: ptr.Ptr(limit)})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, day, day.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, resp.Overrides, 2)
	assert.Equal(t, "2025-06-14", resp.Overrides[1].Date)

	_, err = svc.List(ctx, day, day.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, day, day.AddDate(2, 0, 0))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRepositoryFailure(t *testing.T) {
	svc, repo := newService()
	repo.err = errors.New("timeout")

	_, err := svc.Get(context.Background(), day)
	assert.ErrorIs(t, err, ErrInternal)

	err = svc.Delete(context.Background(), day)
	assert.ErrorIs(t, err, ErrInternal)
}
