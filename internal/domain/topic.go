package domain

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

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

const maxTopicTitleLength = 128

type TopicDomain interface {
	Create(context.Context, *model.CreateTopicRequest) (*model.CreateTopicResponse, error)
	Get(context.Context, *model.GetTopicRequest) (*model.GetTopicResponse, error)
	GetList(context.Context, *model.GetListTopicRequest) (*model.GetListTopicResponse, error)
	Like(context.Context, *model.ReactTopicRequest) (*model.ReactResponse, error)
	Dislike(context.Context, *model.ReactTopicRequest) (*model.ReactResponse, error)
}

type topicDomain struct {
	topicRepo repository.TopicRepository
	userRepo  repository.UserRepository
	reactions *reactionApplier
}

func NewTopicDomain(
	topicRepo repository.TopicRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
	publisher pubsub.Publisher,
) TopicDomain {
	return &topicDomain{
		topicRepo: topicRepo,
		userRepo:  userRepo,
		reactions: newReactionApplier(entity.ReactableTopic, topicRepo, userRepo, redisClient, publisher),
	}
}

func (d *topicDomain) Create(
	ctx context.Context, req *model.CreateTopicRequest,
) (*model.CreateTopicResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || utf8.RuneCountInString(title) > maxTopicTitleLength {
		return nil, errorx.New(errorx.BadRequest, "Title must be 1 to %d characters", maxTopicTitleLength)
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, errorx.New(errorx.BadRequest, "Content must not be empty")
	}

	topic := &entity.Topic{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		AuthorID:      xcontext.RequestUserID(ctx),
		Title:         title,
		Content:       req.Content,
	}
	if err := d.topicRepo.Create(ctx, topic); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create topic: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTopicResponse{ID: topic.ID}, nil
}

func (d *topicDomain) Get(
	ctx context.Context, req *model.GetTopicRequest,
) (*model.GetTopicResponse, error) {
	topic, err := d.getTopic(ctx, req.TopicID)
	if err != nil {
		return nil, err
	}

	author, err := d.userRepo.GetByID(ctx, topic.AuthorID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get topic author: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetTopicResponse(convertTopic(topic, author))
	return &resp, nil
}

func (d *topicDomain) GetList(
	ctx context.Context, req *model.GetListTopicRequest,
) (*model.GetListTopicResponse, error) {
	offset, limit := common.Paginate(ctx, req.Offset, req.Limit)
	topics, err := d.topicRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get list of topics: %v", err)
		return nil, errorx.Unknown
	}

	authorIDs := []int64{}
	for _, topic := range topics {
		authorIDs = append(authorIDs, topic.AuthorID)
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get topic authors: %v", err)
		return nil, errorx.Unknown
	}

	authorSet := userMap(authors)
	result := []model.Topic{}
	for i := range topics {
		result = append(result, convertTopic(&topics[i], authorSet[topics[i].AuthorID]))
	}

	return &model.GetListTopicResponse{Topics: result}, nil
}

func (d *topicDomain) Like(
	ctx context.Context, req *model.ReactTopicRequest,
) (*model.ReactResponse, error) {
	return d.react(ctx, entity.ReactionLike, req)
}

func (d *topicDomain) Dislike(
	ctx context.Context, req *model.ReactTopicRequest,
) (*model.ReactResponse, error) {
	return d.react(ctx, entity.ReactionDislike, req)
}

func (d *topicDomain) react(
	ctx context.Context, kind entity.ReactionKind, req *model.ReactTopicRequest,
) (*model.ReactResponse, error) {
	if err := checkReactionParams(ctx, req.ToUID, req.IsPush); err != nil {
		return nil, err
	}

	topic, err := d.getTopic(ctx, req.TopicID)
	if err != nil {
		return nil, err
	}

	target := reactionTarget{TopicID: topic.ID, AuthorID: topic.AuthorID}
	return d.reactions.apply(ctx, kind, target, *req.ToUID, *req.IsPush)
}

func (d *topicDomain) getTopic(ctx context.Context, topicID int64) (*entity.Topic, error) {
	if topicID == 0 {
		return nil, errorx.New(errorx.BadRequest, "Missing tid")
	}

	topic, err := d.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found topic")
		}

		xcontext.Logger(ctx).Errorf("Cannot get topic: %v", err)
		return nil, errorx.Unknown
	}

	return topic, nil
}
