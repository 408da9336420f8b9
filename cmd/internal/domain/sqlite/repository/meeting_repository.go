package repository

import (
	"context"
	"errors"
	"meety/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultMeetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) *DefaultMeetingRepository {
	return &DefaultMeetingRepository{db: db}
}

func (m *DefaultMeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	err := m.db.WithContext(ctx).Create(meeting).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return entity.ErrMeetingExists
	}
	return err
}

func (m *DefaultMeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	var meeting entity.Meeting
	err := m.db.WithContext(ctx).Where("meeting_id = ?", id).First(&meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (m *DefaultMeetingRepository) FindByStatus(ctx context.Context, status entity.Status) ([]*entity.Meeting, error) {
	meetings := make([]*entity.Meeting, 0)
	err := m.db.WithContext(ctx).
		Where("status = ?", status).
		Order("date asc").
		Find(&meetings).Error
	return meetings, err
}

func (m *DefaultMeetingRepository) FindByStatusAndDate(ctx context.Context, status entity.Status, date string) ([]*entity.Meeting, error) {
	meetings := make([]*entity.Meeting, 0)
	err := m.db.WithContext(ctx).
		Where("status = ?", status).
		Where("date = ?", date).
		Find(&meetings).Error
	return meetings, err
}

func (m *DefaultMeetingRepository) FindByStatusBetween(ctx context.Context, status entity.Status, from, to string) ([]*entity.Meeting, error) {
	meetings := make([]*entity.Meeting, 0)
	err := m.db.WithContext(ctx).
		Where("status = ?", status).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date asc").
		Find(&meetings).Error
	return meetings, err
}

// UpdateStatus touches only the status column. A missing id is reported
// before any write is attempted.
func (m *DefaultMeetingRepository) UpdateStatus(ctx context.Context, id string, status entity.Status) (*entity.Meeting, error) {
	var updated *entity.Meeting
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meeting entity.Meeting
		err := tx.Where("meeting_id = ?", id).First(&meeting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrMeetingNotFound
		}
		if err != nil {
			return err
		}

		err = tx.Model(&entity.Meeting{}).
			Where("meeting_id = ?", id).
			Update("status", status).Error
		if err != nil {
			return err
		}
		meeting.Status = status
		updated = &meeting
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
