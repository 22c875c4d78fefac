package maintenance

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/delanoso/safetyhub/internal/repo"
	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages maintenance schedules, the equipment on them and the
// service log that drives each item's next due date.
type Service interface {
	ListSchedules(ctx context.Context, actor auth.Actor) ([]models.MaintenanceSchedule, error)
	GetSchedule(ctx context.Context, actor auth.Actor, id uint) (*models.MaintenanceSchedule, error)
	CreateSchedule(ctx context.Context, actor auth.Actor, input ScheduleInput) (*models.MaintenanceSchedule, error)
	UpdateSchedule(ctx context.Context, actor auth.Actor, id uint, input UpdateScheduleInput) (*models.MaintenanceSchedule, error)
	DeleteSchedule(ctx context.Context, actor auth.Actor, id uint) error

	ListItems(ctx context.Context, actor auth.Actor, scheduleID uint) ([]models.MaintenanceItem, error)
	CreateItem(ctx context.Context, actor auth.Actor, scheduleID uint, input ItemInput) (*models.MaintenanceItem, error)
	UpdateItem(ctx context.Context, actor auth.Actor, id uint, input UpdateItemInput) (*models.MaintenanceItem, error)
	DeleteItem(ctx context.Context, actor auth.Actor, id uint) error

	ListServices(ctx context.Context, actor auth.Actor, itemID uint) ([]models.MaintenanceService, error)
	LogService(ctx context.Context, actor auth.Actor, itemID uint, input ServiceLogInput) (*models.MaintenanceService, error)
	DeleteService(ctx context.Context, actor auth.Actor, id uint) error
}

type service struct {
	repo *Repository
	tx   txRunner
}

func NewService(r *Repository, tx txRunner) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: r, tx: tx}, nil
}

func (s *service) ListSchedules(ctx context.Context, actor auth.Actor) ([]models.MaintenanceSchedule, error) {
	rows, err := s.repo.Schedules.List(ctx, actor)
	return rows, repo.MapError(err, "maintenance schedule", "list")
}

func (s *service) GetSchedule(ctx context.Context, actor auth.Actor, id uint) (*models.MaintenanceSchedule, error) {
	row, err := s.repo.Schedules.Get(ctx, actor, id, "Items")
	if err != nil {
		return nil, repo.MapError(err, "maintenance schedule", "load")
	}
	return row, nil
}

func (s *service) CreateSchedule(ctx context.Context, actor auth.Actor, input ScheduleInput) (*models.MaintenanceSchedule, error) {
	if !input.Frequency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid frequency")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	companyID, err := repo.CompanyFor(actor, input.CompanyID)
	if err != nil {
		return nil, err
	}
	row := &models.MaintenanceSchedule{
		CompanyID:   companyID,
		Name:        name,
		Description: input.Description,
		Frequency:   input.Frequency,
	}
	if err := s.repo.Schedules.Create(ctx, row); err != nil {
		return nil, repo.MapError(err, "maintenance schedule", "create")
	}
	return row, nil
}

// UpdateSchedule leaves existing next-service dates alone when the
// frequency changes; they move on the next logged service.
func (s *service) UpdateSchedule(ctx context.Context, actor auth.Actor, id uint, input UpdateScheduleInput) (*models.MaintenanceSchedule, error) {
	row, err := s.repo.Schedules.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "maintenance schedule", "load")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
		if row.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
	}
	if input.Description != nil {
		row.Description = *input.Description
	}
	if input.Frequency != nil {
		if !input.Frequency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid frequency")
		}
		row.Frequency = *input.Frequency
	}
	if err := s.repo.Schedules.Save(ctx, row); err != nil {
		return nil, repo.MapError(err, "maintenance schedule", "update")
	}
	return row, nil
}

func (s *service) DeleteSchedule(ctx context.Context, actor auth.Actor, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteScheduleCascadeTx(tx, actor, id)
	})
	return repo.MapError(err, "maintenance schedule", "delete")
}

func (s *service) ListItems(ctx context.Context, actor auth.Actor, scheduleID uint) ([]models.MaintenanceItem, error) {
	if _, err := s.repo.Schedules.Get(ctx, actor, scheduleID); err != nil {
		return nil, repo.MapError(err, "maintenance schedule", "load")
	}
	rows, err := s.repo.ListItems(ctx, actor, scheduleID)
	return rows, repo.MapError(err, "maintenance item", "list")
}

func (s *service) CreateItem(ctx context.Context, actor auth.Actor, scheduleID uint, input ItemInput) (*models.MaintenanceItem, error) {
	schedule, err := s.repo.Schedules.Get(ctx, actor, scheduleID)
	if err != nil {
		return nil, repo.MapError(err, "maintenance schedule", "load")
	}
	item := &models.MaintenanceItem{
		ScheduleID:      schedule.ID,
		CompanyID:       schedule.CompanyID,
		Name:            strings.TrimSpace(input.Name),
		Location:        strings.TrimSpace(input.Location),
		SerialNumber:    strings.TrimSpace(input.SerialNumber),
		LastServiceDate: input.LastServiceDate,
		NextServiceDate: input.NextServiceDate,
	}
	if item.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if item.NextServiceDate == nil && item.LastServiceDate != nil {
		next := schedule.Frequency.Next(*item.LastServiceDate)
		item.NextServiceDate = &next
	}
	if err := s.repo.Items.Create(ctx, item); err != nil {
		return nil, repo.MapError(err, "maintenance item", "create")
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, actor auth.Actor, id uint, input UpdateItemInput) (*models.MaintenanceItem, error) {
	item, err := s.repo.Items.Get(ctx, actor, id)
	if err != nil {
		return nil, repo.MapError(err, "maintenance item", "load")
	}
	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
		if item.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
	}
	if input.Location != nil {
		item.Location = strings.TrimSpace(*input.Location)
	}
	if input.SerialNumber != nil {
		item.SerialNumber = strings.TrimSpace(*input.SerialNumber)
	}
	if input.LastServiceDate != nil {
		item.LastServiceDate = input.LastServiceDate
	}
	if input.NextServiceDate != nil {
		item.NextServiceDate = input.NextServiceDate
	}
	if err := s.repo.Items.Save(ctx, item); err != nil {
		return nil, repo.MapError(err, "maintenance item", "update")
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, actor auth.Actor, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteItemCascadeTx(tx, actor, id)
	})
	return repo.MapError(err, "maintenance item", "delete")
}

func (s *service) ListServices(ctx context.Context, actor auth.Actor, itemID uint) ([]models.MaintenanceService, error) {
	if _, err := s.repo.Items.Get(ctx, actor, itemID); err != nil {
		return nil, repo.MapError(err, "maintenance item", "load")
	}
	rows, err := s.repo.ListServices(ctx, actor, itemID)
	return rows, repo.MapError(err, "maintenance service", "list")
}

// LogService stores the service and moves the item's last and next dates in
// one transaction. An older back-dated entry does not pull the dates back.
func (s *service) LogService(ctx context.Context, actor auth.Actor, itemID uint, input ServiceLogInput) (*models.MaintenanceService, error) {
	if input.ServiceDate == nil || input.ServiceDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "serviceDate is required")
	}
	if input.Cost != nil && input.Cost.Valid && input.Cost.Decimal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}

	var out *models.MaintenanceService
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		item, err := s.repo.Items.GetTx(tx, actor, itemID)
		if err != nil {
			return err
		}
		var schedule models.MaintenanceSchedule
		if err := tx.First(&schedule, item.ScheduleID).Error; err != nil {
			return err
		}

		entry := &models.MaintenanceService{
			ItemID:      item.ID,
			CompanyID:   item.CompanyID,
			ServiceDate: *input.ServiceDate,
			PerformedBy: strings.TrimSpace(input.PerformedBy),
			Notes:       input.Notes,
		}
		if input.Cost != nil {
			entry.Cost = *input.Cost
		}
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		if item.LastServiceDate == nil || !input.ServiceDate.Before(*item.LastServiceDate) {
			last := *input.ServiceDate
			next := schedule.Frequency.Next(last)
			item.LastServiceDate = &last
			item.NextServiceDate = &next
			if err := s.repo.SetServiceDatesTx(tx, item); err != nil {
				return err
			}
		}
		out = entry
		return nil
	})
	if err != nil {
		return nil, repo.MapError(err, "maintenance service", "create")
	}
	return out, nil
}

// DeleteService removes a log entry. When that entry set the item's last
// service date, the dates are recomputed from the latest remaining entry.
func (s *service) DeleteService(ctx context.Context, actor auth.Actor, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		entry, err := s.repo.Services.GetTx(tx, actor, id)
		if err != nil {
			return err
		}
		if err := s.repo.Services.DeleteTx(tx, actor, id); err != nil {
			return err
		}
		var item models.MaintenanceItem
		if err := tx.First(&item, entry.ItemID).Error; err != nil {
			return err
		}
		if item.LastServiceDate == nil || !item.LastServiceDate.Equal(entry.ServiceDate.Time) {
			return nil
		}
		var schedule models.MaintenanceSchedule
		if err := tx.First(&schedule, item.ScheduleID).Error; err != nil {
			return err
		}
		latest, err := s.repo.LatestServiceTx(tx, item.ID)
		if err != nil {
			return err
		}
		if latest == nil {
			item.LastServiceDate, item.NextServiceDate = nil, nil
		} else {
			last := latest.ServiceDate
			next := schedule.Frequency.Next(last)
			item.LastServiceDate, item.NextServiceDate = &last, &next
		}
		return s.repo.SetServiceDatesTx(tx, &item)
	})
	return repo.MapError(err, "maintenance service", "delete")
}
