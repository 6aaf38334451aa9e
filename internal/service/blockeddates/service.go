package blockeddates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/excursion-booking/internal/domain"
	blockedRepo "github.com/m04kA/excursion-booking/internal/infra/storage/blockeddate"
	"github.com/m04kA/excursion-booking/internal/service/blockeddates/models"
)

// Service сервис управления заблокированными датами
type Service struct {
	repo      BlockedDateRepository
	validator *validator.Validate
	logger    Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo BlockedDateRepository, logger Logger) *Service {
	return &Service{
		repo:      repo,
		validator: validator.New(),
		logger:    logger,
	}
}

// Block закрывает дату для записи. Повторная блокировка не ошибка
func (s *Service) Block(ctx context.Context, req *models.BlockRequest) (*models.BlockResponse, error) {
	req.Date = strings.TrimSpace(req.Date)
	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		req.Reason = &reason
		if reason == "" {
			req.Reason = nil
		}
	}

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Block: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		s.logger.Warn("Block: %v", err)
		return nil, err
	}

	created, err := s.repo.Add(ctx, date, req.Reason)
	if err != nil {
		s.logger.Error("Block: repository error for date=%s: %v", req.Date, err)
		return nil, fmt.Errorf("%w: Block - repository error: %v", ErrInternal, err)
	}

	if created {
		s.logger.Info("Block: date %s blocked", domain.DateKey(date))
	} else {
		s.logger.Info("Block: date %s was already blocked", domain.DateKey(date))
	}

	return &models.BlockResponse{Date: domain.DateKey(date), Created: created}, nil
}

// Unblock снимает блокировку с даты
func (s *Service) Unblock(ctx context.Context, rawDate string) error {
	date, err := parseDate(rawDate)
	if err != nil {
		s.logger.Warn("Unblock: %v", err)
		return err
	}

	if err := s.repo.Remove(ctx, date); err != nil {
		if errors.Is(err, blockedRepo.ErrNotFound) {
			s.logger.Warn("Unblock: date %s is not blocked", domain.DateKey(date))
			return ErrNotBlocked
		}
		s.logger.Error("Unblock: repository error for date=%s: %v", rawDate, err)
		return fmt.Errorf("%w: Unblock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Unblock: date %s unblocked", domain.DateKey(date))
	return nil
}

// List возвращает заблокированные даты за период
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BlockedDateListResponse, error) {
	var from, to *time.Time

	if req.From != nil {
		date, err := parseDate(*req.From)
		if err != nil {
			return nil, err
		}
		from = &date
	}

	if req.To != nil {
		date, err := parseDate(*req.To)
		if err != nil {
			return nil, err
		}
		to = &date
	}

	items, err := s.repo.List(ctx, from, to)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainList(items), nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := domain.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q, expected YYYY-MM-DD", ErrInvalidInput, raw)
	}
	return date, nil
}
