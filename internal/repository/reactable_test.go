package repository_test

import (
	"context"
	"testing"

	"github.com/moemoe-lab/forum/internal/entity"
	"github.com/moemoe-lab/forum/internal/repository"
	"github.com/moemoe-lab/forum/pkg/testutil"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ReactableTestSuite struct {
	suite.Suite

	ctx       context.Context
	topicRepo repository.TopicRepository
	replyRepo repository.ReplyRepository
}

func TestReactableSuite(t *testing.T) {
	suite.Run(t, new(ReactableTestSuite))
}

func (suite *ReactableTestSuite) SetupTest() {
	suite.ctx = testutil.MockContext()
	testutil.CreateFixtureDb(suite.ctx)
	suite.topicRepo = repository.NewTopicRepository()
	suite.replyRepo = repository.NewReplyRepository()
}

func (suite *ReactableTestSuite) TestGetReactions_Empty() {
	t := suite.T()

	reactions, err := suite.replyRepo.GetReactions(suite.ctx, testutil.Reply42.ID)
	require.NoError(t, err)
	require.Empty(t, reactions.Likes)
	require.Empty(t, reactions.Dislikes)
	require.Equal(t, int64(0), reactions.Version)

	_, err = suite.replyRepo.GetReactions(suite.ctx, 404)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func (suite *ReactableTestSuite) TestUpdateReactors() {
	t := suite.T()
	id := testutil.Reply42.ID

	err := suite.replyRepo.UpdateReactors(suite.ctx, id, entity.ReactionDislike, []int64{3, 1}, 0)
	require.NoError(t, err)

	reactions, err := suite.replyRepo.GetReactions(suite.ctx, id)
	require.NoError(t, err)
	require.Equal(t, entity.Array[int64]{3, 1}, reactions.Dislikes)
	require.Empty(t, reactions.Likes)
	require.Equal(t, int64(1), reactions.Version)

	// The topic of the reply is untouched.
	topic, err := suite.topicRepo.GetReactions(suite.ctx, testutil.Topic1.ID)
	require.NoError(t, err)
	require.Empty(t, topic.Dislikes)
	require.Equal(t, int64(0), topic.Version)
}

func (suite *ReactableTestSuite) TestUpdateReactors_StaleVersion() {
	t := suite.T()
	id := testutil.Topic1.ID

	require.NoError(t, suite.topicRepo.UpdateReactors(suite.ctx, id, entity.ReactionLike, []int64{1}, 0))

	err := suite.topicRepo.UpdateReactors(suite.ctx, id, entity.ReactionLike, []int64{2}, 0)
	require.ErrorIs(t, err, repository.ErrVersionConflict)

	reactions, err := suite.topicRepo.GetReactions(suite.ctx, id)
	require.NoError(t, err)
	require.Equal(t, entity.Array[int64]{1}, reactions.Likes)
}

func (suite *ReactableTestSuite) TestForEachReactions() {
	t := suite.T()

	reply := *testutil.Reply42
	reply.ID = 43
	reply.Floor = 2
	reply.AuthorID = testutil.User1.ID
	reply.Likes = entity.Array[int64]{2, 3}
	require.NoError(t, suite.replyRepo.Create(suite.ctx, &reply))

	var visited []repository.AuthorReactions
	err := suite.replyRepo.ForEachReactions(suite.ctx, 1, func(r repository.AuthorReactions) error {
		visited = append(visited, r)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, visited, 2)
	require.Equal(t, testutil.Reply42.ID, visited[0].ID)
	require.Equal(t, testutil.Author7.ID, visited[0].AuthorID)
	require.Equal(t, int64(43), visited[1].ID)
	require.Equal(t, testutil.User1.ID, visited[1].AuthorID)
	require.Equal(t, entity.Array[int64]{2, 3}, visited[1].Likes)
}

func (suite *ReactableTestSuite) TestGetReactionsByAuthorID() {
	t := suite.T()

	require.NoError(t, suite.topicRepo.UpdateReactors(suite.ctx, testutil.Topic1.ID, entity.ReactionLike, []int64{1, 2}, 0))

	records, err := suite.topicRepo.GetReactionsByAuthorID(suite.ctx, testutil.Author7.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, testutil.Topic1.ID, records[0].ID)
	require.Equal(t, entity.Array[int64]{1, 2}, records[0].Likes)

	records, err = suite.topicRepo.GetReactionsByAuthorID(suite.ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, records)
}
