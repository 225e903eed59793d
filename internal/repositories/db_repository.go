package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dbRepository[M any, PM Model[M]] struct {
	db *gorm.DB
}

func NewDBRepository[M any, PM Model[M]](db *gorm.DB) Repository[M] {
	return &dbRepository[M, PM]{db: db}
}

func (r *dbRepository[M, PM]) Get(ctx context.Context, id string) (*M, error) {
	var model M
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &model, nil
}

func (r *dbRepository[M, PM]) GetAll(ctx context.Context) ([]M, error) {
	models := make([]M, 0)
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (r *dbRepository[M, PM]) FindBy(ctx context.Context, field string, value string) ([]M, error) {
	models := make([]M, 0)
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return models, nil
}

func (r *dbRepository[M, PM]) Save(ctx context.Context, model *M) error {
	return r.db.WithContext(ctx).Create(model).Error
}

// Update writes every column of an existing row and never inserts.
func (r *dbRepository[M, PM]) Update(ctx context.Context, model *M) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(model).Select("*").Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		// mysql reports zero affected rows when nothing changed
		var count int64
		err := tx.Model(new(M)).Where("id = ?", PM(model).GetID().String()).Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *dbRepository[M, PM]) Delete(ctx context.Context, model *M) error {
	err := r.db.WithContext(ctx).Delete(model).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (r *dbRepository[M, PM]) Count(ctx context.Context) (int64, error) {
	var count int64
	var model M
	err := r.db.WithContext(ctx).Model(&model).Count(&count).Error
	return count, err
}
