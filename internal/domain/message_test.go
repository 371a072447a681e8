package domain

import (
	"testing"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/testutil"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestMessageDomain() MessageDomain {
	return NewMessageDomain(repository.NewMessageRepository(), repository.NewUserRepository())
}

func Test_messageDomain_Send(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestMessageDomain()

	resp, err := domain.Send(ctx, &model.SendMessageRequest{ToUID: testutil.User2.ID, Content: "hi"})
	require.NoError(t, err)

	msg, err := repository.NewMessageRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, msg.SenderID)
	require.Equal(t, testutil.User2.ID, msg.ReceiverID)
	require.Equal(t, entity.MessageTypeUser, msg.Type)
	require.Equal(t, entity.MessageUnread, msg.Status)

	_, err = domain.Send(ctx, &model.SendMessageRequest{ToUID: testutil.User1.ID, Content: "hi"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.Send(ctx, &model.SendMessageRequest{ToUID: 999, Content: "hi"})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = domain.Send(ctx, &model.SendMessageRequest{ToUID: testutil.User2.ID})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_messageDomain_GetListAndMarkRead(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestMessageDomain()

	var ids []int64
	for _, content := range []string{"first", "second"} {
		resp, err := domain.Send(ctx, &model.SendMessageRequest{ToUID: testutil.User2.ID, Content: content})
		require.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	receiverCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	list, err := domain.GetList(receiverCtx, &model.GetListMessageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Messages, 2)
	require.Equal(t, "second", list.Messages[0].Content)
	require.Equal(t, int64(2), list.Unread)

	// Only the receiver can mark a message as read.
	_, err = domain.MarkRead(ctx, &model.ReadMessageRequest{MessageID: ids[0]})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = domain.MarkRead(receiverCtx, &model.ReadMessageRequest{MessageID: ids[0]})
	require.NoError(t, err)

	list, err = domain.GetList(receiverCtx, &model.GetListMessageRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), list.Unread)
	require.Equal(t, "read", list.Messages[1].Status)

	_, err = domain.MarkRead(receiverCtx, &model.ReadMessageRequest{})
	requireErrorCode(t, err, errorx.BadRequest)

	// The sender has no message.
	list, err = domain.GetList(ctx, &model.GetListMessageRequest{})
	require.NoError(t, err)
	require.Empty(t, list.Messages)
}

func Test_messageDomain_Notify(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newTestMessageDomain()

	event := &model.ReactionEvent{
		Target:    string(entity.ReactableReply),
		Kind:      string(entity.ReactionDislike),
		Push:      true,
		ActorUID:  testutil.User3.ID,
		TargetUID: testutil.Author7.ID,
		TopicID:   testutil.Topic1.ID,
		ReplyID:   testutil.Reply42.ID,
	}
	require.NoError(t, domain.Notify(ctx, event))

	event.Push = false
	require.NoError(t, domain.Notify(ctx, event))

	list, err := domain.GetList(xcontext.WithRequestUserID(ctx, testutil.Author7.ID), &model.GetListMessageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Messages, 1)

	msg := list.Messages[0]
	require.Equal(t, "dislike", msg.Type)
	require.Equal(t, "user3 disliked your reply", msg.Content)
	require.Equal(t, testutil.User3.ID, msg.FromUID)
	require.Equal(t, testutil.Reply42.ID, msg.ReplyID)

	event.Push = true
	event.Kind = "love"
	require.Error(t, domain.Notify(ctx, event))
}
