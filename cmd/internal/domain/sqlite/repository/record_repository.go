package repository

import (
	"context"
	"fmt"

	"fostercare/cmd/internal/backend"
	"fostercare/cmd/internal/utils"

	"gorm.io/gorm"
)

// DefaultRecordRepository stores one entity type in its own table. The same
// implementation backs children, families, staff and notes.
type DefaultRecordRepository[T backend.Record] struct {
	db    *gorm.DB
	newID func() string
}

func NewRecordRepository[T backend.Record](db *gorm.DB, newID func() string) *DefaultRecordRepository[T] {
	return &DefaultRecordRepository[T]{db: db, newID: newID}
}

// SelectAll returns every record, newest first.
func (r *DefaultRecordRepository[T]) SelectAll(ctx context.Context) ([]T, error) {
	var recs []T
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *DefaultRecordRepository[T]) SelectByID(ctx context.Context, id string) (T, error) {
	var zero T
	var recs []T
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return zero, err
	}

	if len(recs) == 0 {
		return zero, backend.ErrNotFound
	}
	return recs[0], nil
}

func (r *DefaultRecordRepository[T]) Insert(ctx context.Context, rec T) (T, error) {
	rec.SetID(r.newID())
	rec.Stamp(utils.NowUTC())

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		var zero T
		return zero, err
	}
	return rec, nil
}

func (r *DefaultRecordRepository[T]) Update(ctx context.Context, rec T) (T, error) {
	var zero T
	if rec.GetID() == "" {
		return zero, backend.ErrNotFound
	}

	rec.Stamp(utils.NowUTC())
	result := r.db.WithContext(ctx).
		Model(rec).
		Select("*").
		Omit("id", "created_at").
		Updates(rec)
	if result.Error != nil {
		return zero, result.Error
	}

	if result.RowsAffected == 0 {
		return zero, backend.ErrNotFound
	}

	// Reload so the caller sees the stored creation time.
	stored, err := r.SelectByID(ctx, rec.GetID())
	if err != nil {
		return zero, fmt.Errorf("reload after update: %w", err)
	}
	return stored, nil
}

func (r *DefaultRecordRepository[T]) Delete(ctx context.Context, id string) error {
	rec, err := r.SelectByID(ctx, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(rec).Error
}
