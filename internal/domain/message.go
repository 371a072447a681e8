package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"gorm.io/gorm"
)

type MessageDomain interface {
	Send(context.Context, *model.SendMessageRequest) (*model.SendMessageResponse, error)
	GetList(context.Context, *model.GetListMessageRequest) (*model.GetListMessageResponse, error)
	MarkRead(context.Context, *model.ReadMessageRequest) (*model.ReadMessageResponse, error)

	// Notify turns a reaction event into a message to the reacted user.
	Notify(context.Context, *model.ReactionEvent) error
}

type messageDomain struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageDomain(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
) MessageDomain {
	return &messageDomain{messageRepo: messageRepo, userRepo: userRepo}
}

func (d *messageDomain) Send(
	ctx context.Context, req *model.SendMessageRequest,
) (*model.SendMessageResponse, error) {
	senderID := xcontext.RequestUserID(ctx)
	if req.ToUID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing to_uid")
	}

	if req.ToUID == senderID {
		return nil, errorx.New(errorx.BadRequest, "Cannot send message to yourself")
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Content must not be empty")
	}

	if _, err := d.userRepo.GetByID(ctx, req.ToUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get receiver: %v", err)
		return nil, errorx.Unknown
	}

	msg := &entity.Message{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		SenderID:      senderID,
		ReceiverID:    req.ToUID,
		Type:          entity.MessageTypeUser,
		Status:        entity.MessageUnread,
		Content:       req.Content,
	}
	if err := d.messageRepo.Create(ctx, msg); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create message: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SendMessageResponse{ID: msg.ID}, nil
}

func (d *messageDomain) GetList(
	ctx context.Context, req *model.GetListMessageRequest,
) (*model.GetListMessageResponse, error) {
	receiverID := xcontext.RequestUserID(ctx)
	offset, limit := common.Paginate(ctx, req.Offset, req.Limit)

	messages, err := d.messageRepo.GetListByReceiverID(ctx, receiverID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of messages: %v", err)
		return nil, errorx.Unknown
	}

	unread, err := d.messageRepo.CountUnread(ctx, receiverID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unread messages: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Message{}
	for i := range messages {
		result = append(result, convertMessage(&messages[i]))
	}

	return &model.GetListMessageResponse{Messages: result, Unread: unread}, nil
}

func (d *messageDomain) MarkRead(
	ctx context.Context, req *model.ReadMessageRequest,
) (*model.ReadMessageResponse, error) {
	if req.MessageID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing mid")
	}

	err := d.messageRepo.UpdateStatus(ctx, req.MessageID, xcontext.RequestUserID(ctx), entity.MessageRead)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found message")
		}

		xcontext.Logger(ctx).Errorf("Cannot update message status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ReadMessageResponse{}, nil
}

func (d *messageDomain) Notify(ctx context.Context, event *model.ReactionEvent) error {
	if !event.Push {
		return nil
	}

	var msgType entity.MessageType
	switch entity.ReactionKind(event.Kind) {
	case entity.ReactionLike:
		msgType = entity.MessageTypeLike
	case entity.ReactionDislike:
		msgType = entity.MessageTypeDislike
	default:
		return fmt.Errorf("invalid reaction kind %q", event.Kind)
	}

	actorName := fmt.Sprintf("user %d", event.ActorUID)
	actor, err := d.userRepo.GetByID(ctx, event.ActorUID)
	if err == nil {
		actorName = actor.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return d.messageRepo.Create(ctx, &entity.Message{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		SenderID:      event.ActorUID,
		ReceiverID:    event.TargetUID,
		Type:          msgType,
		Status:        entity.MessageUnread,
		Content:       fmt.Sprintf("%s %sd your %s", actorName, event.Kind, event.Target),
		TopicID:       event.TopicID,
		ReplyID:       event.ReplyID,
	})
}
