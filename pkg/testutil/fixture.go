package testutil

import (
	"context"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/xcontext"
)

var (
	User1 = &entity.User{SnowFlakeBase: entity.SnowFlakeBase{ID: 1}, Name: "user1"}
	User2 = &entity.User{SnowFlakeBase: entity.SnowFlakeBase{ID: 2}, Name: "user2"}
	User3 = &entity.User{SnowFlakeBase: entity.SnowFlakeBase{ID: 3}, Name: "user3"}

	// Author7 owns Topic1 and Reply42.
	Author7 = &entity.User{SnowFlakeBase: entity.SnowFlakeBase{ID: 7}, Name: "author7"}

	Users = []*entity.User{User1, User2, User3, Author7}

	Topic1 = &entity.Topic{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 1000},
		AuthorID:      Author7.ID,
		Title:         "The first topic",
		Content:       "Hello",
		ReplyCount:    1,
	}

	Reply42 = &entity.Reply{
		SnowFlakeBase: entity.SnowFlakeBase{ID: 42},
		TopicID:       Topic1.ID,
		AuthorID:      Author7.ID,
		Floor:         1,
		Content:       "First reply",
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertTopics(ctx)
	InsertReplies(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, u := range Users {
		user := *u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertTopics(ctx context.Context) {
	topic := *Topic1
	if err := repository.NewTopicRepository().Create(ctx, &topic); err != nil {
		panic(err)
	}
}

func InsertReplies(ctx context.Context) {
	reply := *Reply42
	if err := repository.NewReplyRepository().Create(ctx, &reply); err != nil {
		panic(err)
	}
}

// GetUser reads the user straight from the database.
func GetUser(ctx context.Context, id int64) entity.User {
	var user entity.User
	if err := xcontext.DB(ctx).Take(&user, "id=?", id).Error; err != nil {
		panic(err)
	}

	return user
}

func GetReply(ctx context.Context, id int64) entity.Reply {
	var reply entity.Reply
	if err := xcontext.DB(ctx).Take(&reply, "id=?", id).Error; err != nil {
		panic(err)
	}

	return reply
}

func GetTopic(ctx context.Context, id int64) entity.Topic {
	var topic entity.Topic
	if err := xcontext.DB(ctx).Take(&topic, "id=?", id).Error; err != nil {
		panic(err)
	}

	return topic
}
