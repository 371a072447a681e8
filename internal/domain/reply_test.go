package domain

import (
	"encoding/json"
	"testing"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/model"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/errorx"
	"github.com/moemoe-lab/forum/pkg/testutil"
	"github.com/moemoe-lab/forum/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestReplyDomain(publisher *testutil.RecordPublisher) ReplyDomain {
	return NewReplyDomain(
		repository.NewReplyRepository(),
		repository.NewTopicRepository(),
		repository.NewUserRepository(),
		testutil.NewMemoryRedisClient(),
		publisher,
	)
}

func Test_replyDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestReplyDomain(&testutil.RecordPublisher{})

	first, err := domain.Create(ctx, &model.CreateReplyRequest{TopicID: testutil.Topic1.ID, Content: "second floor"})
	require.NoError(t, err)
	require.Equal(t, int64(2), first.Floor)

	second, err := domain.Create(ctx, &model.CreateReplyRequest{TopicID: testutil.Topic1.ID, Content: "third floor"})
	require.NoError(t, err)
	require.Equal(t, int64(3), second.Floor)

	require.Equal(t, int64(3), testutil.GetTopic(ctx, testutil.Topic1.ID).ReplyCount)

	reply := testutil.GetReply(ctx, second.ID)
	require.Equal(t, testutil.User1.ID, reply.AuthorID)
	require.Equal(t, "third floor", reply.Content)
}

func Test_replyDomain_Create_Invalid(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestReplyDomain(&testutil.RecordPublisher{})

	_, err := domain.Create(ctx, &model.CreateReplyRequest{TopicID: 999, Content: "content"})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = domain.Create(ctx, &model.CreateReplyRequest{TopicID: testutil.Topic1.ID, Content: ""})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.Create(ctx, &model.CreateReplyRequest{Content: "content"})
	requireErrorCode(t, err, errorx.BadRequest)

	require.Equal(t, int64(1), testutil.GetTopic(ctx, testutil.Topic1.ID).ReplyCount)
}

func Test_replyDomain_GetList(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestReplyDomain(&testutil.RecordPublisher{})

	_, err := domain.Create(ctx, &model.CreateReplyRequest{TopicID: testutil.Topic1.ID, Content: "second floor"})
	require.NoError(t, err)

	resp, err := domain.GetList(ctx, &model.GetListReplyRequest{TopicID: testutil.Topic1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Replies, 2)
	require.Equal(t, testutil.Reply42.ID, resp.Replies[0].ID)
	require.Equal(t, testutil.Author7.Name, resp.Replies[0].Author.Name)
	require.Equal(t, int64(2), resp.Replies[1].Floor)
	require.Equal(t, testutil.User1.Name, resp.Replies[1].Author.Name)

	_, err = domain.GetList(ctx, &model.GetListReplyRequest{TopicID: 999})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_replyDomain_Dislike(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	publisher := &testutil.RecordPublisher{}
	domain := newTestReplyDomain(publisher)

	req := &model.ReactReplyRequest{
		TopicID: testutil.Topic1.ID,
		ReplyID: testutil.Reply42.ID,
		ToUID:   int64Ptr(testutil.Author7.ID),
		IsPush:  boolPtr(true),
	}

	resp, err := domain.Dislike(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "added", resp.Effect)
	require.Equal(t, []int64{testutil.User3.ID}, []int64(testutil.GetReply(ctx, testutil.Reply42.ID).Dislikes))
	require.Equal(t, int64(1), testutil.GetUser(ctx, testutil.Author7.ID).DislikeCount)

	_, err = domain.Dislike(ctx, req)
	requireErrorCode(t, err, errorx.AlreadyExists)

	req.IsPush = boolPtr(false)
	resp, err = domain.Dislike(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "removed", resp.Effect)
	require.Empty(t, testutil.GetReply(ctx, testutil.Reply42.ID).Dislikes)
	require.Equal(t, int64(0), testutil.GetUser(ctx, testutil.Author7.ID).DislikeCount)

	resp, err = domain.Dislike(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "no_effect", resp.Effect)

	packs := publisher.Get(model.ReactionTopic)
	require.Len(t, packs, 2)

	var event model.ReactionEvent
	require.NoError(t, json.Unmarshal(packs[1].Msg, &event))
	require.Equal(t, "reply", event.Target)
	require.False(t, event.Push)
	require.Equal(t, testutil.Reply42.ID, event.ReplyID)
	require.Equal(t, testutil.Topic1.ID, event.TopicID)
}

func Test_replyDomain_React_WrongTopic(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newTestReplyDomain(&testutil.RecordPublisher{})

	_, err := domain.Like(ctx, &model.ReactReplyRequest{
		TopicID: 999,
		ReplyID: testutil.Reply42.ID,
		ToUID:   int64Ptr(testutil.Author7.ID),
		IsPush:  boolPtr(true),
	})
	requireErrorCode(t, err, errorx.NotFound)

	_, err = domain.Like(ctx, &model.ReactReplyRequest{
		ReplyID: 999,
		ToUID:   int64Ptr(testutil.Author7.ID),
		IsPush:  boolPtr(true),
	})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_replyDomain_React_Aborted(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User3.ID)
	testutil.CreateFixtureDb(ctx)
	publisher := &testutil.RecordPublisher{}
	counters := &faultyCounters{}
	replyRepo := repository.NewReplyRepository()

	domain := &replyDomain{
		replyRepo: replyRepo,
		topicRepo: repository.NewTopicRepository(),
		userRepo:  repository.NewUserRepository(),
		reactions: newReactionApplier(
			entity.ReactableReply, replyRepo, counters, testutil.NewMemoryRedisClient(), publisher),
	}

	_, err := domain.Dislike(ctx, &model.ReactReplyRequest{
		ReplyID: testutil.Reply42.ID,
		ToUID:   int64Ptr(testutil.Author7.ID),
		IsPush:  boolPtr(true),
	})
	requireErrorCode(t, err, errorx.Aborted)

	maxRetries := xcontext.Configs(ctx).Reaction.MaxRetries
	require.Equal(t, int(maxRetries)+1, counters.attempts)
	require.Empty(t, testutil.GetReply(ctx, testutil.Reply42.ID).Dislikes)
	require.Equal(t, int64(0), testutil.GetUser(ctx, testutil.Author7.ID).DislikeCount)
	require.Empty(t, publisher.Get(model.ReactionTopic))
}
