package repository

import (
	"context"
	"errors"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error)
	GetListAfter(ctx context.Context, lastID int64, limit int) ([]entity.User, error)
	IncreaseReactionCount(ctx context.Context, id int64, kind entity.ReactionKind, delta int64) error
	UpdateReactionCount(ctx context.Context, id int64, kind entity.ReactionKind, count int64) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

// GetByIDForUpdate locks the user row until the end of the transaction of
// ctx on stores supporting row-level locking.
func (r *userRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entity.User, error) {
	var record entity.User
	err := xcontext.DB(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id=?", id).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByName(ctx context.Context, name string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("name=?", name).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// GetListAfter pages through users ordered by id, starting after lastID.
func (r *userRepository) GetListAfter(ctx context.Context, lastID int64, limit int) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// IncreaseReactionCount adds delta to the counter of kind. A negative delta is
// refused when it would take the counter below zero; both that case and a
// missing user report gorm.ErrRecordNotFound.
func (r *userRepository) IncreaseReactionCount(
	ctx context.Context, id int64, kind entity.ReactionKind, delta int64,
) error {
	column := kind.CounterColumn()
	if column == "" {
		return errors.New("invalid reaction kind")
	}

	tx := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id)
	if delta < 0 {
		tx = tx.Where(column+" >= ?", -delta)
	}

	tx = tx.Update(column, gorm.Expr(column+"+?", delta))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *userRepository) UpdateReactionCount(
	ctx context.Context, id int64, kind entity.ReactionKind, count int64,
) error {
	column := kind.CounterColumn()
	if column == "" {
		return errors.New("invalid reaction kind")
	}

	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update(column, count).Error
}
