package get_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// UseCase use case для получения календаря доступности на месяц
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	txManager    TransactionManager
	schedule     domain.Schedule
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	txManager TransactionManager,
	schedule domain.Schedule,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		txManager:    txManager,
		schedule:     schedule,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Сегодня в часовом поясе сервиса
	today := domain.DateOf(uc.timeProvider.Now().In(uc.location))

	// 2. Нулевые значения означают текущий месяц
	year, month := req.Year, req.Month
	if year == 0 {
		year = today.Year()
	}
	if month == 0 {
		month = int(today.Month())
	}

	if err := validateMonth(year, month); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	ref := domain.MonthRef{Year: year, Month: time.Month(month)}
	from, to := ref.FirstDay(), ref.LastDay()

	// 3. Счётчики и блокировки читаем из одного снимка
	var (
		counts  map[string]int
		blocked map[string]struct{}
	)
	err := uc.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		counts, err = uc.bookingRepo.CountActiveByDateRange(ctx, from, to)
		if err != nil {
			return fmt.Errorf("count bookings: %v", err)
		}

		blocked, err = uc.blockedRepo.ListDates(ctx, from, to)
		if err != nil {
			return fmt.Errorf("list blocked dates: %v", err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GetCalendar: failed to read %04d-%02d: %v", year, month, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 4. Строим сетку
	calendar, err := BuildCalendar(year, ref.Month, today, counts, blocked, uc.schedule)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetCalendar: built %04d-%02d, bookings on %d dates, %d blocked",
		year, month, len(counts), len(blocked))

	return &Response{
		Calendar: calendar,
		Today:    today,
		Capacity: uc.schedule.Capacity,
	}, nil
}
