package repository

import (
	"context"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"gorm.io/gorm"
)

type TopicRepository interface {
	ReactableRepository

	Create(ctx context.Context, data *entity.Topic) error
	GetByID(ctx context.Context, id int64) (*entity.Topic, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Topic, error)
	IncreaseReplyCount(ctx context.Context, id int64) (int64, error)
}

type topicRepository struct {
	reactableRepository[entity.Topic]
}

func NewTopicRepository() *topicRepository {
	return &topicRepository{}
}

func (r *topicRepository) Create(ctx context.Context, data *entity.Topic) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *topicRepository) GetByID(ctx context.Context, id int64) (*entity.Topic, error) {
	var result entity.Topic
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *topicRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Topic, error) {
	var result []entity.Topic
	err := xcontext.DB(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// IncreaseReplyCount bumps the reply counter and returns its new value, which
// is the floor of the reply being created. It must run inside a transaction.
func (r *topicRepository) IncreaseReplyCount(ctx context.Context, id int64) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Topic{}).
		Where("id=?", id).
		Update("reply_count", gorm.Expr("reply_count+1"))
	if tx.Error != nil {
		return 0, tx.Error
	}

	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Topic{}).
		Select("reply_count").
		Where("id=?", id).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
