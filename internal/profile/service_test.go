package profile

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/go-blog-api/internal/apperror"
	"github.com/redmonkez12/go-blog-api/internal/auth"
	"github.com/redmonkez12/go-blog-api/internal/blog"
	"github.com/redmonkez12/go-blog-api/internal/database"
	"github.com/redmonkez12/go-blog-api/internal/database/dbtest"
	"github.com/redmonkez12/go-blog-api/internal/logging"
	"github.com/redmonkez12/go-blog-api/internal/user"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (n *recordingNotifier) SendAccountDeletedEmail(_ context.Context, toEmail, _ string) error {
	n.record("deleted " + toEmail)
	return nil
}

func (n *recordingNotifier) SendAccountErasedEmail(_ context.Context, toEmail, _ string) error {
	n.record("erased " + toEmail)
	return nil
}

func (n *recordingNotifier) record(notice string) {
	n.mu.Lock()
	n.sent = append(n.sent, notice)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *recordingNotifier) notices() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.sent...)
}

func (n *recordingNotifier) wait(t *testing.T) {
	t.Helper()
	select {
	case <-n.done:
	case <-time.After(2 * time.Second):
		t.Fatal("account deleted notice was not sent")
	}
}

type fixture struct {
	svc      *Service
	users    *user.Repository
	blogs    *blog.Service
	db       *bun.DB
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	logger := logging.NewDiscardLogger()
	users := user.NewRepository(db)
	blogs := blog.NewService(blog.NewRepository(db), logger)
	notifier := &recordingNotifier{done: make(chan struct{}, 8)}

	return &fixture{
		svc:      NewService(users, blogs, notifier, logger),
		users:    users,
		blogs:    blogs,
		db:       db,
		notifier: notifier,
	}
}

func (f *fixture) createUser(t *testing.T, userName string) *user.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), user.NewUser{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		UserName:     userName,
		EmailAddress: userName + "@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) createBlog(t *testing.T, owner uuid.UUID) *blog.Blog {
	t.Helper()
	b, err := f.blogs.Create(context.Background(), owner, blog.CreateInput{
		Title:    "Hello",
		Synopsis: "First post",
		Content:  "Body text",
	})
	require.NoError(t, err)
	return b
}

func strPtr(s string) *string { return &s }

func TestGet_ExcludesSoftDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "ada")

	got, err := f.svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada", got.UserName)

	require.NoError(t, f.svc.SoftDelete(ctx, u.ID))
	f.notifier.wait(t)

	_, err = f.svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUpdate_Partial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "ada")

	got, err := f.svc.Update(ctx, u.ID, user.ProfileUpdate{LastName: strPtr(" King ")})
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "King", got.LastName)
	assert.Equal(t, "ada@example.com", got.EmailAddress)

	unchanged, err := f.svc.Update(ctx, u.ID, user.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "King", unchanged.LastName)
}

func TestUpdate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "ada")

	_, err := f.svc.Update(ctx, u.ID, user.ProfileUpdate{FirstName: strPtr("")})
	require.ErrorIs(t, err, apperror.ErrMissingField)
	assert.Equal(t, "firstName", apperror.FieldOf(err))

	_, err = f.svc.Update(ctx, u.ID, user.ProfileUpdate{EmailAddress: strPtr("nope")})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)

	long := strings.Repeat("a", 250) + "@example.com"
	_, err = f.svc.Update(ctx, u.ID, user.ProfileUpdate{EmailAddress: strPtr(long)})
	assert.ErrorIs(t, err, auth.ErrInvalidEmailFormat)

	got, err := f.svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.EmailAddress)
}

func TestUpdate_DuplicateIsConflictNotInternal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.createUser(t, "ada")
	f.createUser(t, "grace")

	_, err := f.svc.Update(ctx, ada.ID, user.ProfileUpdate{UserName: strPtr("grace")})
	assert.ErrorIs(t, err, user.ErrDuplicateIdentity)

	_, err = f.svc.Update(ctx, ada.ID, user.ProfileUpdate{EmailAddress: strPtr("grace@example.com")})
	assert.ErrorIs(t, err, user.ErrDuplicateIdentity)
}

func TestSoftDelete_KeepsBlogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "ada")
	b := f.createBlog(t, u.ID)

	require.NoError(t, f.svc.SoftDelete(ctx, u.ID))
	f.notifier.wait(t)

	got, err := f.blogs.Get(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted)

	blogs, err := f.svc.Blogs(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, blogs, 1)

	assert.Equal(t, []string{"deleted ada@example.com"}, f.notifier.notices())
}

func TestPermanentDelete_SelfOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.createUser(t, "ada")
	grace := f.createUser(t, "grace")

	err := f.svc.PermanentDelete(ctx, ada.ID, grace.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = f.svc.Get(ctx, grace.ID)
	assert.NoError(t, err)
}

func TestPermanentDelete_RemovesUserAndBlogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "ada")
	f.createBlog(t, u.ID)
	trashed := f.createBlog(t, u.ID)
	require.NoError(t, f.blogs.Trash(ctx, u.ID, trashed.ID))

	require.NoError(t, f.svc.PermanentDelete(ctx, u.ID, u.ID))
	f.notifier.wait(t)

	_, err := f.svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)

	n, err := f.db.NewSelect().Model((*database.Blog)(nil)).Where("user_id = ?", u.ID).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, f.svc.PermanentDelete(ctx, u.ID, u.ID), user.ErrNotFound)
	assert.Equal(t, []string{"erased ada@example.com"}, f.notifier.notices())
}

func TestPermanentDelete_AfterSoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "ada")
	require.NoError(t, f.svc.SoftDelete(ctx, u.ID))
	f.notifier.wait(t)

	require.NoError(t, f.svc.PermanentDelete(ctx, u.ID, u.ID))

	n, err := f.db.NewSelect().Model((*database.User)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteNotices_MatchWhatWasRemoved(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada := f.createUser(t, "ada")
	grace := f.createUser(t, "grace")

	require.NoError(t, f.svc.SoftDelete(ctx, ada.ID))
	f.notifier.wait(t)
	require.NoError(t, f.svc.PermanentDelete(ctx, grace.ID, grace.ID))
	f.notifier.wait(t)

	assert.Equal(t, []string{"deleted ada@example.com", "erased grace@example.com"}, f.notifier.notices())
}
