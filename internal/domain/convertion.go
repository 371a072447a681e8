package domain

import (
	"time"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertUser(user *entity.User) model.User {
	if user == nil {
		return model.User{}
	}

	return model.User{
		ID:        user.ID,
		Name:      user.Name,
		Avatar:    user.Avatar,
		Bio:       user.Bio,
		Like:      user.LikeCount,
		Dislike:   user.DislikeCount,
		CreatedAt: user.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertTopic(topic *entity.Topic, author *entity.User) model.Topic {
	if topic == nil {
		return model.Topic{}
	}

	return model.Topic{
		ID:         topic.ID,
		Author:     convertUser(author),
		Title:      topic.Title,
		Content:    topic.Content,
		Likes:      convertReactors(topic.Likes),
		Dislikes:   convertReactors(topic.Dislikes),
		ReplyCount: topic.ReplyCount,
		CreatedAt:  topic.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertReply(reply *entity.Reply, author *entity.User) model.Reply {
	if reply == nil {
		return model.Reply{}
	}

	return model.Reply{
		ID:        reply.ID,
		TopicID:   reply.TopicID,
		Author:    convertUser(author),
		Floor:     reply.Floor,
		Content:   reply.Content,
		Likes:     convertReactors(reply.Likes),
		Dislikes:  convertReactors(reply.Dislikes),
		CreatedAt: reply.CreatedAt.Format(defaultTimeLayout),
	}
}

func convertMessage(msg *entity.Message) model.Message {
	if msg == nil {
		return model.Message{}
	}

	return model.Message{
		ID:        msg.ID,
		FromUID:   msg.SenderID,
		ToUID:     msg.ReceiverID,
		Type:      string(msg.Type),
		Status:    string(msg.Status),
		Content:   msg.Content,
		TopicID:   msg.TopicID,
		ReplyID:   msg.ReplyID,
		CreatedAt: msg.CreatedAt.Format(defaultTimeLayout),
	}
}

// convertReactors never returns nil, so empty sets are encoded as [].
func convertReactors(reactors entity.Array[int64]) []int64 {
	if reactors == nil {
		return []int64{}
	}

	return []int64(reactors)
}

func userMap(users []entity.User) map[int64]*entity.User {
	m := make(map[int64]*entity.User, len(users))
	for i := range users {
		m[users[i].ID] = &users[i]
	}

	return m
}
