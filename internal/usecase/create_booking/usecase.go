package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// Исходы приёма заявки для метрик
const (
	resultAdmitted         = "admitted"
	resultInvalid          = "invalid"
	resultRejectedPast     = "rejected_past"
	resultRejectedWeekday  = "rejected_closed_weekday"
	resultRejectedBlocked  = "rejected_blocked"
	resultRejectedCapacity = "rejected_capacity"
	resultError            = "error"
)

// UseCase use case для приёма заявки на экскурсию
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	txManager    TransactionManager
	metrics      MetricsCollector
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
	metrics MetricsCollector,
	schedule domain.Schedule,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		txManager:    txManager,
		metrics:      metrics,
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

// Execute выполняет use case приёма заявки
// Проверка блокировки, подсчёт мест и вставка идут в одной транзакции
// под advisory-блокировкой даты, поэтому параллельные заявки на одну дату
// не могут вместе превысить лимит
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.IncAdmission(admissionResult(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	normalizeRequest(req)

	uc.logger.Info("CreateBooking: institution=%q, group=%q, date=%s, participants=%d",
		req.InstitutionName, req.GroupLabel, req.ExcursionDate, req.ParticipantsCount)

	// 1. Обязательные поля
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Формат даты
	date, err := parseExcursionDate(req.ExcursionDate)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 3-4. Не в прошлом и не в закрытый день недели
	today := domain.DateOf(uc.timeProvider.Now().In(uc.location))
	if err := validateSchedule(date, today, uc.schedule); err != nil {
		uc.logger.Warn("CreateBooking: rejected: %v", err)
		return nil, err
	}

	var (
		result    *domain.Booking
		remaining int
	)

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockDate(txCtx, date); err != nil {
			return fmt.Errorf("%w: failed to lock date: %v", ErrInternal, err)
		}

		// 5. Дата не заблокирована
		blocked, err := uc.blockedRepo.Exists(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: failed to check blocked date: %v", ErrInternal, err)
		}
		if blocked {
			return fmt.Errorf("%w: %s", ErrBlockedDate, domain.DateKey(date))
		}

		// 6. Есть свободное место
		active, err := uc.bookingRepo.CountActiveOnDate(txCtx, date)
		if err != nil {
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		if active >= uc.schedule.Capacity {
			return fmt.Errorf("%w: %d/%d places taken on %s",
				ErrCapacityExceeded, active, uc.schedule.Capacity, domain.DateKey(date))
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			RequesterName:     req.RequesterName,
			InstitutionName:   req.InstitutionName,
			GroupLabel:        req.GroupLabel,
			GroupProfile:      req.GroupProfile,
			ExcursionDate:     date,
			ContactPhone:      req.ContactPhone,
			ParticipantsCount: req.ParticipantsCount,
			Notes:             req.Notes,
			Status:            domain.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		remaining = uc.schedule.Remaining(active + 1)
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrRejected) {
			uc.logger.Warn("CreateBooking: rejected: %v", err)
			return nil, err
		}
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		uc.logger.Error("CreateBooking: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d on %s, %d places left",
		result.ID, domain.DateKey(date), remaining)

	return &Response{
		ID:                result.ID,
		RequesterName:     result.RequesterName,
		InstitutionName:   result.InstitutionName,
		GroupLabel:        result.GroupLabel,
		GroupProfile:      result.GroupProfile,
		ExcursionDate:     result.ExcursionDate,
		ContactPhone:      result.ContactPhone,
		ParticipantsCount: result.ParticipantsCount,
		Notes:             result.Notes,
		Status:            result.Status,
		CreatedAt:         result.CreatedAt,
		RemainingSlots:    remaining,
	}, nil
}

func admissionResult(err error) string {
	switch {
	case err == nil:
		return resultAdmitted
	case errors.Is(err, ErrInvalidInput):
		return resultInvalid
	case errors.Is(err, ErrPastDate):
		return resultRejectedPast
	case errors.Is(err, ErrClosedWeekday):
		return resultRejectedWeekday
	case errors.Is(err, ErrBlockedDate):
		return resultRejectedBlocked
	case errors.Is(err, ErrCapacityExceeded):
		return resultRejectedCapacity
	default:
		return resultError
	}
}
