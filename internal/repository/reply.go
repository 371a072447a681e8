package repository

import (
	"context"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

type ReplyRepository interface {
	ReactableRepository

	Create(ctx context.Context, data *entity.Reply) error
	GetByID(ctx context.Context, id int64) (*entity.Reply, error)
	GetListByTopicID(ctx context.Context, topicID int64, offset, limit int) ([]entity.Reply, error)
}

type replyRepository struct {
	reactableRepository[entity.Reply]
}

func NewReplyRepository() *replyRepository {
	return &replyRepository{}
}

func (r *replyRepository) Create(ctx context.Context, data *entity.Reply) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *replyRepository) GetByID(ctx context.Context, id int64) (*entity.Reply, error) {
	var result entity.Reply
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *replyRepository) GetListByTopicID(
	ctx context.Context, topicID int64, offset, limit int,
) ([]entity.Reply, error) {
	var result []entity.Reply
	err := xcontext.DB(ctx).
		Where("topic_id=?", topicID).
		Order("floor ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
