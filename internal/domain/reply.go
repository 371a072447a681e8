package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/moemoe-lab/forum/internal/common"
	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/pubsub"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/moemoe-lab/forum/pkg/xredis"
	"gorm.io/gorm"
)

type ReplyDomain interface {
	Create(context.Context, *model.CreateReplyRequest) (*model.CreateReplyResponse, error)
	GetList(context.Context, *model.GetListReplyRequest) (*model.GetListReplyResponse, error)
	Like(context.Context, *model.ReactReplyRequest) (*model.ReactResponse, error)
	Dislike(context.Context, *model.ReactReplyRequest) (*model.ReactResponse, error)
}

type replyDomain struct {
	replyRepo repository.ReplyRepository
	topicRepo repository.TopicRepository
	userRepo  repository.UserRepository
	reactions *reactionApplier
}

func NewReplyDomain(
	replyRepo repository.ReplyRepository,
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) ReplyDomain {
	return &replyDomain{
		replyRepo: replyRepo,
		topicRepo: topicRepo,
		userRepo:  userRepo,
		reactions: newReactionApplier(entity.ReactableReply, replyRepo, userRepo, redisClient, publisher),
	}
}

func (d *replyDomain) Create(
	ctx context.Context, req *model.CreateReplyRequest,
) (*model.CreateReplyResponse, error) {
	if req.TopicID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing tid")
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Content must not be empty")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	floor, err := d.topicRepo.IncreaseReplyCount(ctx, req.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot increase reply count: %v", err)
		return nil, errorx.Unknown
	}

	reply := &entity.Reply{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		TopicID:       req.TopicID,
		AuthorID:      xcontext.RequestUserID(ctx),
		Floor:         floor,
		Content:       req.Content,
	}
	if err := d.replyRepo.Create(ctx, reply); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reply: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.WithCommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit reply: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateReplyResponse{ID: reply.ID, Floor: reply.Floor}, nil
}

func (d *replyDomain) GetList(
	ctx context.Context, req *model.GetListReplyRequest,
) (*model.GetListReplyResponse, error) {
	if req.TopicID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing tid")
	}

	if _, err := d.topicRepo.GetByID(ctx, req.TopicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot get topic: %v", err)
		return nil, errorx.Unknown
	}

	offset, limit := common.Paginate(ctx, req.Offset, req.Limit)
	replies, err := d.replyRepo.GetListByTopicID(ctx, req.TopicID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of replies: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []int64{}
	for _, reply := range replies {
		authorIDs = append(authorIDs, reply.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reply authors: %v", err)
		return nil, errorx.Unknown
	}

	authorSet := userMap(authors)
	result := []model.Reply{}
	for i := range replies {
		result = append(result, convertReply(&replies[i], authorSet[replies[i].AuthorID]))
	}

	return &model.GetListReplyResponse{Replies: result}, nil
}

func (d *replyDomain) Like(
	ctx context.Context, req *model.ReactReplyRequest,
) (*model.ReactResponse, error) {
	return d.react(ctx, entity.ReactionLike, req)
}

func (d *replyDomain) Dislike(
	ctx context.Context, req *model.ReactReplyRequest,
) (*model.ReactResponse, error) {
	return d.react(ctx, entity.ReactionDislike, req)
}

func (d *replyDomain) react(
	ctx context.Context, kind entity.ReactionKind, req *model.ReactReplyRequest,
) (*model.ReactResponse, error) {
	if err := checkReactionParams(ctx, req.ToUID, req.IsPush); err != nil {
		return nil, err
	}

	if req.ReplyID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing rid")
	}

	reply, err := d.replyRepo.GetByID(ctx, req.ReplyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found reply")
		}

		xcontext.Logger(ctx).Errorf("Cannot get reply: %v", err)
		return nil, errorx.Unknown
	}

	if req.TopicID != 0 && req.TopicID != reply.TopicID {
		return nil, errorx.New(errorx.NotFound, "Not found reply in topic %d", req.TopicID)
	}

	target := reactionTarget{TopicID: reply.TopicID, ReplyID: reply.ID, AuthorID: reply.AuthorID}
	return d.reactions.apply(ctx, kind, target, *req.ToUID, *req.IsPush)
}
