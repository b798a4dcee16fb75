package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, s *Store, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "hashed", Role: "user"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func seedProfile(t *testing.T, s *Store, userID uuid.UUID, userName string, public bool) *models.Profile {
	t.Helper()
	profile := &models.Profile{UserID: userID, UserName: userName, IsPublic: public}
	require.NoError(t, s.SaveProfile(context.Background(), profile))
	return profile
}

func seedTopic(t *testing.T, s *Store, userID uuid.UUID, title string, techs ...string) *models.Topic {
	t.Helper()
	topic := &models.Topic{Title: title, Description: "about " + title, Technologies: techs, UserID: userID}
	require.NoError(t, s.CreateTopic(context.Background(), topic))
	// keep creation timestamps distinct for ordering assertions
	time.Sleep(time.Millisecond)
	return topic
}

func TestUserLookup(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "dev@example.com")

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", byID.Email)

	byEmail, err := s.GetUserByEmail(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUserBanAndList(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "banned@example.com")
	seedUser(t, s, "innocent@example.com")

	reason := "spam"
	expires := time.Now().Add(48 * time.Hour)
	require.NoError(t, s.SetUserBan(ctx, user.ID, true, &reason, &expires))

	banned, err := s.ListBannedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, banned, 1)
	assert.Equal(t, user.ID, banned[0].ID)
	require.NotNil(t, banned[0].BanReason)
	assert.Equal(t, "spam", *banned[0].BanReason)

	require.NoError(t, s.SetUserBan(ctx, user.ID, false, nil, nil))
	banned, err = s.ListBannedUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, banned)

	assert.ErrorIs(t, s.SetUserBan(ctx, uuid.New(), true, nil, nil), store.ErrNotFound)
}

func TestDeleteUserCascade(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := seedUser(t, s, "owner@example.com")
	other := seedUser(t, s, "other@example.com")
	seedProfile(t, s, owner.ID, "owner", true)
	seedProfile(t, s, other.ID, "other", true)

	ownTopic := seedTopic(t, s, owner.ID, "mine", "go")
	otherTopic := seedTopic(t, s, other.ID, "theirs", "rust")

	// other's comment on owner's topic must go with the topic
	strayComment := &models.Comment{Content: "nice", UserID: other.ID, TopicID: ownTopic.ID}
	require.NoError(t, s.CreateComment(ctx, strayComment))
	// owner's comment on other's topic must also go
	ownComment := &models.Comment{Content: "thanks", UserID: owner.ID, TopicID: otherTopic.ID}
	require.NoError(t, s.CreateComment(ctx, ownComment))

	token := &models.RefreshToken{UserID: owner.ID, TokenHash: "abc", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.CreateRefreshToken(ctx, token))

	require.NoError(t, s.DeleteUserCascade(ctx, owner.ID))

	_, err := s.GetUserByID(ctx, owner.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetProfileByUserID(ctx, owner.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetTopicByID(ctx, ownTopic.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCommentByID(ctx, strayComment.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCommentByID(ctx, ownComment.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetRefreshTokenByHash(ctx, "abc")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// the other user's data survives
	_, err = s.GetUserByID(ctx, other.ID)
	assert.NoError(t, err)
	_, err = s.GetTopicByID(ctx, otherTopic.ID)
	assert.NoError(t, err)
}

func TestRefreshTokenRevocation(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "dev@example.com")

	token := &models.RefreshToken{UserID: user.ID, TokenHash: "h1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.CreateRefreshToken(ctx, token))

	found, err := s.GetRefreshTokenByHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, token.ID, found.ID)

	require.NoError(t, s.RevokeRefreshToken(ctx, token.ID))
	_, err = s.GetRefreshTokenByHash(ctx, "h1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveProfileUpsert(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "dev@example.com")

	first := seedProfile(t, s, user.ID, "devguy", false)

	updated := &models.Profile{UserID: user.ID, UserName: "devguy", Bio: "hello", IsPublic: true}
	require.NoError(t, s.SaveProfile(ctx, updated))

	got, err := s.GetProfileByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "hello", got.Bio)
	assert.True(t, got.IsPublic)
}

func TestPublicProfileLookup(t *testing.T) {
	ctx := context.Background()
	s := New()
	pub := seedUser(t, s, "pub@example.com")
	priv := seedUser(t, s, "priv@example.com")
	seedProfile(t, s, pub.ID, "visible", true)
	seedProfile(t, s, priv.ID, "hidden", false)

	got, err := s.GetPublicProfileByUserName(ctx, "visible")
	require.NoError(t, err)
	assert.Equal(t, pub.ID, got.UserID)

	_, err = s.GetPublicProfileByUserName(ctx, "hidden")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// non-public lookup still sees it
	_, err = s.GetProfileByUserName(ctx, "hidden")
	assert.NoError(t, err)
}

func TestListTopicsSearchAndOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "dev@example.com")

	older := seedTopic(t, s, user.ID, "Rust vs Go", "rust", "go")
	newer := seedTopic(t, s, user.ID, "Frontend picks", "react", "TypeScript")

	all, err := s.ListTopics(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	matched, err := s.ListTopics(ctx, "go")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, older.ID, matched[0].ID)

	// mixed-case tag matches no casing variant
	matched, err = s.ListTopics(ctx, "typescript")
	require.NoError(t, err)
	assert.Empty(t, matched)

	// but the title substring still works
	matched, err = s.ListTopics(ctx, "frontend")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, newer.ID, matched[0].ID)
}

func TestListTopicsCommentCount(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "dev@example.com")
	topic := seedTopic(t, s, user.ID, "counted", "go")
	quiet := seedTopic(t, s, user.ID, "quiet", "go")

	for i := 0; i < 3; i++ {
		require.NoError(t, s.CreateComment(ctx, &models.Comment{
			Content: "hey", UserID: user.ID, TopicID: topic.ID,
		}))
	}

	all, err := s.ListTopics(ctx, "")
	require.NoError(t, err)
	counts := map[uuid.UUID]int64{}
	for _, tc := range all {
		counts[tc.ID] = tc.CommentCount
	}
	assert.Equal(t, int64(3), counts[topic.ID])
	assert.Equal(t, int64(0), counts[quiet.ID])
}

func TestGetTopicDetail(t *testing.T) {
	ctx := context.Background()
	s := New()
	author := seedUser(t, s, "author@example.com")
	seedProfile(t, s, author.ID, "author", true)
	commenter := seedUser(t, s, "commenter@example.com")
	seedProfile(t, s, commenter.ID, "commenter", true)

	topic := seedTopic(t, s, author.ID, "detailed", "go")
	require.NoError(t, s.CreateComment(ctx, &models.Comment{
		Content: "first", UserID: commenter.ID, TopicID: topic.ID,
	}))

	detail, err := s.GetTopicDetail(ctx, topic.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Author)
	assert.Equal(t, "author", detail.Author.UserName)
	require.Len(t, detail.Comments, 1)
	require.NotNil(t, detail.Comments[0].Author)
	assert.Equal(t, "commenter", detail.Comments[0].Author.UserName)
}

func TestDeleteTopicRemovesComments(t *testing.T) {
	ctx := context.Background()
	s := New()
	user := seedUser(t, s, "dev@example.com")
	topic := seedTopic(t, s, user.ID, "doomed", "go")

	comment := &models.Comment{Content: "gone soon", UserID: user.ID, TopicID: topic.ID}
	require.NoError(t, s.CreateComment(ctx, comment))

	require.NoError(t, s.DeleteTopic(ctx, topic.ID))

	_, err := s.GetTopicByID(ctx, topic.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetCommentByID(ctx, comment.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteTopic(ctx, topic.ID), store.ErrNotFound)
}
