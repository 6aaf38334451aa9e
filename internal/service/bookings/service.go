package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
	bookingRepo "github.com/m04kA/excursion-booking/internal/infra/storage/booking"
	"github.com/m04kA/excursion-booking/internal/service/bookings/models"
	"github.com/m04kA/excursion-booking/pkg/export"
)

// Service сервис администрирования бронирований
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	capacity    int
	location    *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	capacity int,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		capacity:    capacity,
		location:    location,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтру, сначала самые поздние даты экскурсий
// Без фильтра по статусу отменённые скрыты, если не указан IncludeCancelled
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	bookings, err := s.list(ctx, "List", req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Любой статус можно сменить на любой другой. Повторная установка текущего статуса ничего не меняет.
// Восстановление отменённого бронирования проверяет свободные места на дату под той же
// блокировкой даты, что и приём заявок
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	newStatus, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	var result *domain.Booking

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
		}

		if booking.Status == newStatus {
			result = booking
			return nil
		}

		if !booking.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, booking.Status, newStatus)
		}

		if booking.Status.IsReactivation(newStatus) {
			if err := s.checkCapacity(txCtx, booking.ExcursionDate); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: booking id=%d %s -> %s", id, booking.Status, newStatus)
		booking.Status = newStatus
		result = booking
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrInvalidStatus):
			s.logger.Warn("UpdateStatus: booking id=%d: %v", id, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			s.logger.Error("UpdateStatus: booking id=%d: %v", id, err)
			return nil, err
		default:
			s.logger.Error("UpdateStatus: booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - %v", ErrInternal, err)
		}
	}

	return models.FromDomainBooking(result), nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// Export собирает таблицу бронирований для выгрузки в CSV/JSON/PDF
func (s *Service) Export(ctx context.Context, req *models.ListRequest) (export.Dataset, error) {
	bookings, err := s.list(ctx, "Export", req)
	if err != nil {
		return export.Dataset{}, err
	}

	dataset := export.Dataset{
		Headers: models.ExportHeaders,
		Rows:    make([]map[string]string, 0, len(bookings)),
	}
	for _, booking := range bookings {
		dataset.Rows = append(dataset.Rows, models.ToExportRow(booking, s.location))
	}

	s.logger.Info("Export: prepared %d rows", len(dataset.Rows))
	return dataset, nil
}

// Вспомогательные методы

func (s *Service) list(ctx context.Context, op string, req *models.ListRequest) ([]*domain.Booking, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("%s: invalid filter: %v", op, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return bookings, nil
}

// checkCapacity проверяет, что на дату осталось место. Вызывается внутри транзакции
func (s *Service) checkCapacity(ctx context.Context, date time.Time) error {
	if err := s.bookingRepo.LockDate(ctx, date); err != nil {
		return fmt.Errorf("%w: lock date: %v", ErrInternal, err)
	}

	active, err := s.bookingRepo.CountActiveOnDate(ctx, date)
	if err != nil {
		return fmt.Errorf("%w: count bookings: %v", ErrInternal, err)
	}

	if active >= s.capacity {
		return fmt.Errorf("%w: %d/%d places taken on %s", ErrCapacityExceeded, active, s.capacity, domain.DateKey(date))
	}

	return nil
}
