package repository

import (
	"context"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, data *entity.Message) error
	GetByID(ctx context.Context, id int64) (*entity.Message, error)
	GetListByReceiverID(ctx context.Context, receiverID int64, offset, limit int) ([]entity.Message, error)
	CountUnread(ctx context.Context, receiverID int64) (int64, error)
	UpdateStatus(ctx context.Context, id, receiverID int64, status entity.MessageStatus) error
}

type messageRepository struct{}

func NewMessageRepository() *messageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(ctx context.Context, data *entity.Message) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id int64) (*entity.Message, error) {
	var result entity.Message
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&result).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *messageRepository) GetListByReceiverID(
	ctx context.Context, receiverID int64, offset, limit int,
) ([]entity.Message, error) {
	var result []entity.Message
	err := xcontext.DB(ctx).
		Where("receiver_id=?", receiverID).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, receiverID int64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("receiver_id=? AND status=?", receiverID, entity.MessageUnread).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateStatus only touches a message addressed to receiverID.
func (r *messageRepository) UpdateStatus(
	ctx context.Context, id, receiverID int64, status entity.MessageStatus,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Message{}).
		Where("id=? AND receiver_id=?", id, receiverID).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
