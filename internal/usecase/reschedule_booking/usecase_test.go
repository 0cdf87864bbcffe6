package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WalkBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/admission"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
	"github.com/m04kA/SMC-WalkBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-WalkBookingService/pkg/types"
)

type fakeRepo struct {
	bookings    map[int64]*domain.Booking
	getErr      error
	rescheduled []int64
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) Reschedule(_ context.Context, id int64, date time.Time, start, end time.Time) error {
	r.rescheduled = append(r.rescheduled, id)
	b := r.bookings[id]
	b.Date, b.EndDate, b.Start, b.End = date, date, start, end
	return nil
}

type fakeAdmitter struct {
	decision *domain.AdmissionDecision
	err      error
	got      []admission.AdmissionRequest
}

func (a *fakeAdmitter) Admit(_ context.Context, req admission.AdmissionRequest) (*domain.AdmissionDecision, error) {
	a.got = append(a.got, req)
	if a.err != nil {
		return nil, a.err
	}
	if a.decision == nil {
		return domain.Admit(), nil
	}
	return a.decision, nil
}

type passTx struct{ commitErr error }

func (p passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return p.commitErr
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func setup(t *testing.T) (*fakeRepo, *fakeAdmitter, *time.Location, func(tx passTx) *UseCase) {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	day := time.Date(2025, 6, 12, 0, 0, 0, 0, loc)
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID: 1, OwnerID: 42, ServiceType: domain.ServiceSoloWalk, BookingType: domain.BookingSingle,
			Status: domain.StatusConfirmed, Date: day, EndDate: day,
			Start: day.Add(10 * time.Hour), End: day.Add(10*time.Hour + 30*time.Minute),
		},
		2: {
			ID: 2, OwnerID: 42, ServiceType: domain.ServiceSoloWalk, BookingType: domain.BookingSingle,
			Status: domain.StatusCancelled, Date: day, EndDate: day,
			Start: day.Add(12 * time.Hour), End: day.Add(12*time.Hour + 30*time.Minute),
		},
		3: {
			ID: 3, OwnerID: 42, ServiceType: domain.ServiceSitting, BookingType: domain.BookingMultiDay,
			Status: domain.StatusConfirmed, Date: day, EndDate: day.AddDate(0, 0, 2),
			Start: day.Add(9 * time.Hour), End: day.AddDate(0, 0, 2).Add(20 * time.Hour),
		},
	}}
	admitter := &fakeAdmitter{}

	schedule := domain.Schedule{
		Location:         loc,
		WorkdayStart:     types.MustTimeString("09:00"),
		WorkdayEnd:       types.MustTimeString("20:00"),
		MinBookingNotice: time.Hour,
	}
	now := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	build := func(tx passTx) *UseCase {
		return NewUseCase(schedule, repo, admitter, tx, logger.NewWriter(io.Discard, "error")).
			WithTimeProvider(fixedClock{now: now})
	}
	return repo, admitter, loc, build
}

func request(loc *time.Location, id int64, start, end string) *Request {
	return &Request{
		BookingID: id,
		OwnerID:   42,
		Date:      time.Date(2025, 6, 13, 0, 0, 0, 0, loc),
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func TestExecute_Success(t *testing.T) {
	repo, admitter, loc, build := setup(t)

	resp, err := build(passTx{}).Execute(context.Background(), request(loc, 1, "14:00", "14:30"))
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.rescheduled)
	assert.True(t, time.Date(2025, 6, 13, 14, 0, 0, 0, loc).Equal(resp.Booking.Start))
	assert.True(t, domain.SameDate(resp.Booking.Date, resp.Booking.Start))

	require.Len(t, admitter.got, 1)
	got := admitter.got[0]
	require.NotNil(t, got.ExcludeBookingID)
	assert.Equal(t, int64(1), *got.ExcludeBookingID)
	assert.True(t, got.EnforceWalkCap)
	assert.Equal(t, domain.ServiceSoloWalk, got.ServiceType)
}

func TestExecute_AdminSkipsWalkCapAndHours(t *testing.T) {
	repo, admitter, loc, build := setup(t)

	req := request(loc, 1, "21:00", "21:30")
	req.Admin = true
	req.OwnerID = 0

	_, err := build(passTx{}).Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, repo.rescheduled)
	require.Len(t, admitter.got, 1)
	assert.False(t, admitter.got[0].EnforceWalkCap)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(repo *fakeRepo, admitter *fakeAdmitter, req *Request)
		tx      passTx
		wantErr error
	}{
		{
			name:    "not found",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) { req.BookingID = 99 },
			wantErr: ErrBookingNotFound,
		},
		{
			name:    "someone else's booking",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) { req.OwnerID = 7 },
			wantErr: ErrAccessDenied,
		},
		{
			name:    "cancelled booking",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) { req.BookingID = 2 },
			wantErr: ErrCannotReschedule,
		},
		{
			name:    "sitting",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) { req.BookingID = 3 },
			wantErr: ErrCannotReschedule,
		},
		{
			name: "walk limit",
			prepare: func(_ *fakeRepo, a *fakeAdmitter, _ *Request) {
				a.decision = domain.Reject(domain.ReasonWalkLimitReached)
			},
			wantErr: ErrWalkLimitReached,
		},
		{
			name: "slot taken",
			prepare: func(_ *fakeRepo, a *fakeAdmitter, _ *Request) {
				a.decision = domain.Reject(domain.ReasonSlotTaken)
			},
			wantErr: ErrSlotTaken,
		},
		{
			name:    "admission lookup failure",
			prepare: func(_ *fakeRepo, a *fakeAdmitter, _ *Request) { a.err = errors.New("db down") },
			wantErr: ErrInternal,
		},
		{
			name:    "repository failure",
			prepare: func(r *fakeRepo, _ *fakeAdmitter, _ *Request) { r.getErr = errors.New("db down") },
			wantErr: ErrInternal,
		},
		{
			name:    "outside working hours",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) { req.EndTime = types.MustTimeString("20:30") },
			wantErr: ErrOutsideWorkingHours,
		},
		{
			name: "past date",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) {
				req.Date = req.Date.AddDate(0, -1, 0)
			},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "inverted range",
			prepare: func(_ *fakeRepo, _ *fakeAdmitter, req *Request) { req.StartTime = types.MustTimeString("15:00") },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "serialization failure",
			prepare: func(*fakeRepo, *fakeAdmitter, *Request) {},
			tx:      passTx{commitErr: fmt.Errorf("%w: 40001", txmanager.ErrSerializationFailure)},
			wantErr: ErrConcurrentBooking,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, admitter, loc, build := setup(t)
			req := request(loc, 1, "14:00", "14:30")
			tt.prepare(repo, admitter, req)

			_, err := build(tt.tx).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
