package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/excursion-booking/internal/domain"
	"github.com/m04kA/excursion-booking/pkg/logger"
)

type memoryStore struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	blocked   map[string]struct{}
	locked    []time.Time
	nextID    int64
	createErr error
	countErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blocked: make(map[string]struct{})}
}

func (s *memoryStore) LockDate(_ context.Context, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = append(s.locked, date)
	return nil
}

func (s *memoryStore) CountActiveOnDate(_ context.Context, date time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	count := 0
	for _, b := range s.bookings {
		if b.ExcursionDate.Equal(date) && b.IsActive() {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	booking.ID = s.nextID
	booking.CreatedAt = time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

func (s *memoryStore) Exists(_ context.Context, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blocked[domain.DateKey(date)]
	return ok, nil
}

// serialTxManager выполняет транзакции по одной, как advisory-блокировка для одной даты
type serialTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *serialTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return fn(ctx)
}

type admissionCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *admissionCounter) IncAdmission(result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[result]++
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc      *UseCase
	store   *memoryStore
	tx      *serialTxManager
	metrics *admissionCounter
}

// 2 июня 2026 - вторник
func newFixture(schedule domain.Schedule) *fixture {
	f := &fixture{
		store:   newMemoryStore(),
		tx:      &serialTxManager{},
		metrics: &admissionCounter{},
	}
	f.uc = NewUseCase(f.store, f.store, f.tx, f.metrics, schedule, time.UTC, logger.NewNop()).
		WithTimeProvider(fixedTime{now: time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)})
	return f
}

func validRequest(date string) *Request {
	return &Request{
		RequesterName:     "Иванова Мария",
		InstitutionName:   "Школа №5",
		GroupLabel:        "10А",
		ExcursionDate:     date,
		ContactPhone:      "+79001234567",
		ParticipantsCount: 20,
	}
}

func TestExecuteCapacity(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, validRequest("2026-06-03"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, first.Status)
	assert.Equal(t, domain.NewDate(2026, 6, 3), first.ExcursionDate)
	assert.Equal(t, 1, first.RemainingSlots)

	second, err := f.uc.Execute(ctx, validRequest("2026-06-03"))
	require.NoError(t, err)
	assert.Equal(t, 0, second.RemainingSlots)

	_, err = f.uc.Execute(ctx, validRequest("2026-06-03"))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.ErrorIs(t, err, ErrRejected)

	assert.Len(t, f.store.bookings, 2)
	assert.Equal(t, 2, f.metrics.counts[resultAdmitted])
	assert.Equal(t, 1, f.metrics.counts[resultRejectedCapacity])

	// Другая дата не затронута
	_, err = f.uc.Execute(ctx, validRequest("2026-06-04"))
	require.NoError(t, err)
}

func TestExecuteCancelledBookingsFreeCapacity(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, validRequest("2026-06-03"))
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, validRequest("2026-06-03"))
	require.NoError(t, err)

	f.store.bookings[0].Status = domain.StatusCancelled

	resp, err := f.uc.Execute(ctx, validRequest("2026-06-03"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
}

func TestExecuteConcurrentAdmissionsRespectCapacity(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), validRequest("2026-06-03"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
			} else if errors.Is(err, ErrCapacityExceeded) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, admitted)
	assert.Equal(t, 8, rejected)
	assert.Len(t, f.store.locked, 10)
}

func TestExecuteClosedWeekday(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Monday, time.Friday))

	// 5 июня - пятница, мест свободно
	_, err := f.uc.Execute(context.Background(), validRequest("2026-06-05"))
	assert.ErrorIs(t, err, ErrClosedWeekday)

	// Суббота при таком расписании открыта
	_, err = f.uc.Execute(context.Background(), validRequest("2026-06-06"))
	require.NoError(t, err)

	assert.Equal(t, 1, f.metrics.counts[resultRejectedWeekday])
}

func TestExecuteWeekendWithDefaultSchedule(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, domain.DefaultClosedWeekdays...))

	_, err := f.uc.Execute(context.Background(), validRequest("2026-06-07"))
	assert.ErrorIs(t, err, ErrClosedWeekday)
	assert.Zero(t, f.tx.calls)
}

func TestExecuteBlockedDate(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))
	f.store.blocked["2026-06-03"] = struct{}{}

	_, err := f.uc.Execute(context.Background(), validRequest("2026-06-03"))
	assert.ErrorIs(t, err, ErrBlockedDate)
	assert.Empty(t, f.store.bookings)

	delete(f.store.blocked, "2026-06-03")
	_, err = f.uc.Execute(context.Background(), validRequest("2026-06-03"))
	require.NoError(t, err)
}

func TestExecutePastDate(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	_, err := f.uc.Execute(context.Background(), validRequest("2026-06-01"))
	assert.ErrorIs(t, err, ErrPastDate)

	// Сегодняшняя дата допустима
	_, err = f.uc.Execute(context.Background(), validRequest("2026-06-02"))
	require.NoError(t, err)
}

func TestExecuteMalformedDate(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	for _, raw := range []string{"03.06.2026", "2026-02-30", "tomorrow", "2026-6-3"} {
		_, err := f.uc.Execute(context.Background(), validRequest(raw))
		assert.ErrorIs(t, err, ErrMalformedDate, raw)
		assert.ErrorIs(t, err, ErrInvalidInput, raw)
	}
}

func TestExecuteMissingFields(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"requester", func(r *Request) { r.RequesterName = "" }},
		{"institution blank", func(r *Request) { r.InstitutionName = "   " }},
		{"group", func(r *Request) { r.GroupLabel = "" }},
		{"date", func(r *Request) { r.ExcursionDate = "" }},
		{"phone", func(r *Request) { r.ContactPhone = "" }},
		{"participants zero", func(r *Request) { r.ParticipantsCount = 0 }},
		{"participants negative", func(r *Request) { r.ParticipantsCount = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest("2026-06-03")
			tt.modify(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrMissingField)
		})
	}

	assert.Empty(t, f.store.bookings)
	assert.Equal(t, len(tests), f.metrics.counts[resultInvalid])
}

func TestExecuteMissingFieldCheckedFirst(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	req := validRequest("not-a-date")
	req.ContactPhone = ""
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestExecuteFieldTooLong(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	req := validRequest("2026-06-03")
	req.GroupLabel = "слишком длинное название класса"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrFieldOutOfRange)
}

func TestExecuteOptionalFieldsNormalized(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))

	profile := "  "
	notes := " нужен экскурсовод на английском "
	req := validRequest("2026-06-03")
	req.GroupProfile = &profile
	req.Notes = &notes

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, resp.GroupProfile)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "нужен экскурсовод на английском", *resp.Notes)
}

func TestExecuteStorageFailure(t *testing.T) {
	f := newFixture(domain.NewSchedule(2, time.Saturday, time.Sunday))
	f.store.countErr = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), validRequest("2026-06-03"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1, f.metrics.counts[resultError])

	f.store.countErr = nil
	f.store.createErr = errors.New("disk full")
	_, err = f.uc.Execute(context.Background(), validRequest("2026-06-03"))
	assert.ErrorIs(t, err, ErrInternal)
}
