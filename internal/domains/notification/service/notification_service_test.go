package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/notification"
	"library-backend/internal/infrastructure/email"
)

type fakeUser struct {
	id                   uuid.UUID
	name                 string
	email                string
	receiveNotifications bool
}

type fakeRepo struct {
	users    []fakeUser
	follows  []*notification.Follow
	logs     []*notification.EmailLog
	articles map[uuid.UUID]*notification.ArticleInfo
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{articles: map[uuid.UUID]*notification.ArticleInfo{}}
}

func (f *fakeRepo) GetFollow(_ context.Context, userID, authorID uuid.UUID) (*notification.Follow, error) {
	for _, fl := range f.follows {
		if fl.UserID == userID && fl.AuthorID == authorID {
			return fl, nil
		}
	}
	return nil, notification.ErrFollowNotFound
}

func (f *fakeRepo) CreateFollow(_ context.Context, entity *notification.Follow) error {
	for _, fl := range f.follows {
		if fl.UserID == entity.UserID && fl.AuthorID == entity.AuthorID {
			return notification.ErrAlreadyFollowing
		}
	}
	f.follows = append(f.follows, entity)
	return nil
}

func (f *fakeRepo) SetFollowActive(_ context.Context, userID, authorID uuid.UUID, active bool) error {
	for _, fl := range f.follows {
		if fl.UserID == userID && fl.AuthorID == authorID {
			fl.IsActive = active
			return nil
		}
	}
	return notification.ErrFollowNotFound
}

func (f *fakeRepo) ListFollowedAuthors(_ context.Context, _ uuid.UUID) ([]author.Author, error) {
	return nil, nil
}

func (f *fakeRepo) ArticleForNotification(_ context.Context, articleID uuid.UUID) (*notification.ArticleInfo, error) {
	info, ok := f.articles[articleID]
	if !ok {
		return nil, errors.New("article not found")
	}
	return info, nil
}

func (f *fakeRepo) UsersMatchingAuthorName(_ context.Context, firstName string) ([]notification.Recipient, error) {
	var out []notification.Recipient
	for _, u := range f.users {
		if u.receiveNotifications && strings.Contains(strings.ToLower(u.name), strings.ToLower(firstName)) {
			out = append(out, notification.Recipient{ID: u.id, Name: u.name, Email: u.email})
		}
	}
	return out, nil
}

func (f *fakeRepo) ActiveFollowers(_ context.Context, authorID uuid.UUID) ([]notification.Recipient, error) {
	var out []notification.Recipient
	for _, fl := range f.follows {
		if fl.AuthorID != authorID || !fl.IsActive {
			continue
		}
		for _, u := range f.users {
			if u.id == fl.UserID && u.receiveNotifications {
				out = append(out, notification.Recipient{ID: u.id, Name: u.name, Email: u.email})
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) HasEmailLog(_ context.Context, userID, articleID uuid.UUID) (bool, error) {
	for _, l := range f.logs {
		if l.UserID == userID && l.ArticleID == articleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateEmailLog(_ context.Context, entry *notification.EmailLog) error {
	f.logs = append(f.logs, entry)
	return nil
}

func (f *fakeRepo) RecentEmailLogs(_ context.Context, limit int) ([]notification.EmailLogView, error) {
	var out []notification.EmailLogView
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, notification.EmailLogView{ID: f.logs[i].ID, Status: f.logs[i].Status})
	}
	return out, nil
}

type fakeAuthorService struct {
	authors []*author.Author
}

func (f *fakeAuthorService) Create(_ context.Context, _ author.CreateAuthorRequest) (*author.Author, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAuthorService) GetByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	for _, a := range f.authors {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorService) GetBySlug(_ context.Context, _ string) (*author.Author, error) {
	return nil, author.ErrAuthorNotFound
}

func (f *fakeAuthorService) List(_ context.Context) ([]author.Author, error) { return nil, nil }

func (f *fakeAuthorService) FindOrCreate(_ context.Context, _, _ string) (*author.Author, error) {
	return nil, errors.New("not implemented")
}

type fakeSender struct {
	sent []email.NotificationData
	fail bool
}

func (f *fakeSender) SendArticleNotification(_ context.Context, data email.NotificationData) error {
	if f.fail {
		return errors.New("smtp unreachable")
	}
	f.sent = append(f.sent, data)
	return nil
}

type fixture struct {
	repo      *fakeRepo
	sender    *fakeSender
	authors   *fakeAuthorService
	articleID uuid.UUID
	authorID  uuid.UUID
	readerID  uuid.UUID
	writerID  uuid.UUID
}

// setup builds an article by "Ana Souza" with two interested users: one whose
// account name matches the author's first name, one following the author.
func setup(t *testing.T) *fixture {
	t.Helper()

	repo := newFakeRepo()
	authorEntity := author.New("Ana", "Souza", "ana-souza")

	writerID := uuid.New()
	readerID := uuid.New()
	repo.users = []fakeUser{
		{id: writerID, name: "Ana Souza", email: "ana@example.com", receiveNotifications: true},
		{id: readerID, name: "Carlos Pereira", email: "carlos@example.com", receiveNotifications: true},
	}

	follow := notification.NewFollow(readerID, authorEntity.ID)
	repo.follows = append(repo.follows, follow)

	articleID := uuid.New()
	repo.articles[articleID] = &notification.ArticleInfo{
		ID:        articleID,
		Title:     "Dados Abertos",
		EventName: "SBES",
		Authors: []notification.ArticleAuthor{
			{ID: authorEntity.ID, FirstName: "Ana", FullName: "Ana Souza"},
		},
	}

	return &fixture{
		repo:      repo,
		sender:    &fakeSender{},
		authors:   &fakeAuthorService{authors: []*author.Author{authorEntity}},
		articleID: articleID,
		authorID:  authorEntity.ID,
		readerID:  readerID,
		writerID:  writerID,
	}
}

func TestNotifyReachesNameMatchesAndFollowers(t *testing.T) {
	f := setup(t)
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	svc.NotifyArticlePublished(context.Background(), f.articleID)

	require.Len(t, f.sender.sent, 2)
	assert.Equal(t, "Novo artigo publicado - Dados Abertos", f.sender.sent[0].Subject())
	assert.Equal(t, "SBES", f.sender.sent[0].EventName)

	require.Len(t, f.repo.logs, 2)
	for _, l := range f.repo.logs {
		assert.Equal(t, notification.StatusSent, l.Status)
		assert.Equal(t, f.articleID, l.ArticleID)
	}
}

func TestNotifySkipsAlreadySent(t *testing.T) {
	f := setup(t)
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	svc.NotifyArticlePublished(context.Background(), f.articleID)
	svc.NotifyArticlePublished(context.Background(), f.articleID)

	assert.Len(t, f.sender.sent, 2)
	assert.Len(t, f.repo.logs, 2)
}

func TestNotifyResendsWhenSkipDisabled(t *testing.T) {
	f := setup(t)
	svc := NewNotificationService(f.repo, f.authors, f.sender, false)

	svc.NotifyArticlePublished(context.Background(), f.articleID)
	svc.NotifyArticlePublished(context.Background(), f.articleID)

	// Still one email per user per call, but repeated across calls.
	assert.Len(t, f.sender.sent, 4)
	assert.Len(t, f.repo.logs, 4)
}

func TestNotifyLogsFailures(t *testing.T) {
	f := setup(t)
	f.sender.fail = true
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	svc.NotifyArticlePublished(context.Background(), f.articleID)

	require.Len(t, f.repo.logs, 2)
	for _, l := range f.repo.logs {
		assert.Equal(t, notification.StatusFailed, l.Status)
	}
}

func TestNotifyIgnoresOptedOutUsers(t *testing.T) {
	f := setup(t)
	for i := range f.repo.users {
		f.repo.users[i].receiveNotifications = false
	}
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	svc.NotifyArticlePublished(context.Background(), f.articleID)

	assert.Empty(t, f.sender.sent)
	assert.Empty(t, f.repo.logs)
}

func TestFollowAuthorReactivatesInactiveRow(t *testing.T) {
	f := setup(t)
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	// Already actively following.
	err := svc.FollowAuthor(context.Background(), f.readerID, f.authorID)
	assert.ErrorIs(t, err, notification.ErrAlreadyFollowing)

	require.NoError(t, svc.UnfollowAuthor(context.Background(), f.readerID, f.authorID))
	assert.False(t, f.repo.follows[0].IsActive)

	require.NoError(t, svc.FollowAuthor(context.Background(), f.readerID, f.authorID))
	assert.True(t, f.repo.follows[0].IsActive)
	assert.Len(t, f.repo.follows, 1)
}

func TestFollowUnknownAuthor(t *testing.T) {
	f := setup(t)
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	err := svc.FollowAuthor(context.Background(), f.readerID, uuid.New())
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestUnfollowWithoutFollow(t *testing.T) {
	f := setup(t)
	svc := NewNotificationService(f.repo, f.authors, f.sender, true)

	err := svc.UnfollowAuthor(context.Background(), f.writerID, f.authorID)
	assert.ErrorIs(t, err, notification.ErrFollowNotFound)
}
