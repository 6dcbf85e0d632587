package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/SergeyParamoshkin/blogapi/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	return db
}

func strPtr(s string) *string { return &s }

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestArticleRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	created, err := db.CreateArticle(ctx, strPtr("hello"), strPtr("world"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.Date.IsZero())

	got, err := db.GetArticle(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("get after create mismatch (-created +got):\n%s", diff)
	}
}

func TestArticleDateIsServerAssigned(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 30, 45, 123, time.UTC)
	old := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = old })

	db := newTestDB(t)
	a, err := db.CreateArticle(context.Background(), strPtr("t"), strPtr("b"))
	require.NoError(t, err)
	require.True(t, a.Date.Equal(fixed.Truncate(time.Second)), "date = %v", a.Date)
}

func TestUpdateArticlePartial(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	orig, err := db.CreateArticle(ctx, strPtr("title"), strPtr("body"))
	require.NoError(t, err)

	updated, err := db.UpdateArticle(ctx, orig.ID, model.ArticlePatch{Title: strPtr("new title")})
	require.NoError(t, err)
	require.Equal(t, "new title", *updated.Title)
	require.Equal(t, orig.Body, updated.Body)
	require.True(t, orig.Date.Equal(updated.Date))

	updated, err = db.UpdateArticle(ctx, orig.ID, model.ArticlePatch{Body: strPtr("new body")})
	require.NoError(t, err)
	require.Equal(t, "new title", *updated.Title)
	require.Equal(t, "new body", *updated.Body)

	updated, err = db.UpdateArticle(ctx, orig.ID, model.ArticlePatch{})
	require.NoError(t, err)
	require.Equal(t, "new title", *updated.Title)
	require.Equal(t, "new body", *updated.Body)
}

func TestOmittedFieldsStayNull(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, err := db.CreateArticle(ctx, nil, nil)
	require.NoError(t, err)
	require.Nil(t, a.Title)
	require.Nil(t, a.Body)

	a, err = db.UpdateArticle(ctx, a.ID, model.ArticlePatch{Body: strPtr("")})
	require.NoError(t, err)
	require.Nil(t, a.Title)
	require.Equal(t, "", *a.Body)

	u, err := db.CreateUser(ctx, &model.User{Username: "dave"})
	require.NoError(t, err)
	require.Nil(t, u.Image)

	b, err := db.CreateBlog(ctx, nil, nil)
	require.NoError(t, err)
	require.Nil(t, b.UserID)
	require.Nil(t, b.Content)
}

func TestArticleNotFound(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.GetArticle(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.UpdateArticle(ctx, 999, model.ArticlePatch{Title: strPtr("x")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.DeleteArticle(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteArticleReturnsPriorState(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, err := db.CreateArticle(ctx, strPtr("gone"), strPtr("soon"))
	require.NoError(t, err)

	deleted, err := db.DeleteArticle(ctx, a.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(a, deleted); diff != "" {
		t.Fatalf("deleted article mismatch (-want +got):\n%s", diff)
	}

	_, err = db.GetArticle(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListArticlesInInsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	list, err := db.ListArticles(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	for _, title := range []string{"a", "b", "c"} {
		_, err := db.CreateArticle(ctx, strPtr(title), nil)
		require.NoError(t, err)
	}

	list, err = db.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, title := range []string{"a", "b", "c"} {
		require.Equal(t, title, *list[i].Title)
	}
}

func TestCreateUserConflict(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, &model.User{Username: "alice", PasswordHash: "h", Image: strPtr("a.png")})
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "a.png", *u.Image)

	_, err = db.CreateUser(ctx, &model.User{Username: "alice", Image: strPtr("other.png")})
	require.ErrorIs(t, err, ErrConflict)

	got, err := db.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u, got)

	_, err = db.GetUserByUsername(ctx, "bob")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	alice, err := db.CreateUser(ctx, &model.User{Username: "alice"})
	require.NoError(t, err)
	bob, err := db.CreateUser(ctx, &model.User{Username: "bob"})
	require.NoError(t, err)

	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	require.Equal(t, []*model.User{alice, bob}, users)

	got, err := db.GetUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, bob, got)

	updated, err := db.UpdateUser(ctx, bob.ID, model.UserPatch{Image: strPtr("bob.png")})
	require.NoError(t, err)
	require.Equal(t, "bob", updated.Username)
	require.Equal(t, "bob.png", *updated.Image)

	_, err = db.UpdateUser(ctx, bob.ID, model.UserPatch{Username: strPtr("alice")})
	require.ErrorIs(t, err, ErrConflict)

	deleted, err := db.DeleteUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice, deleted)

	_, err = db.GetUser(ctx, alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = db.DeleteUser(ctx, alice.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBlogCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	uid := int64(7)
	withAuthor, err := db.CreateBlog(ctx, &uid, strPtr("first"))
	require.NoError(t, err)
	require.NotNil(t, withAuthor.UserID)
	require.Equal(t, uid, *withAuthor.UserID)

	anonymous, err := db.CreateBlog(ctx, nil, strPtr("second"))
	require.NoError(t, err)
	require.Nil(t, anonymous.UserID)

	blogs, err := db.ListBlogs(ctx)
	require.NoError(t, err)
	require.Equal(t, []*model.Blog{withAuthor, anonymous}, blogs)

	got, err := db.GetBlog(ctx, anonymous.ID)
	require.NoError(t, err)
	require.Equal(t, anonymous, got)

	updated, err := db.UpdateBlog(ctx, anonymous.ID, model.BlogPatch{UserID: &uid})
	require.NoError(t, err)
	require.Equal(t, "second", *updated.Content)
	require.Equal(t, uid, *updated.UserID)

	_, err = db.DeleteBlog(ctx, withAuthor.ID)
	require.NoError(t, err)
	_, err = db.GetBlog(ctx, withAuthor.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

// Deleting a user does not cascade to its blogs.
func TestDeleteUserKeepsBlogs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, &model.User{Username: "carol"})
	require.NoError(t, err)
	b, err := db.CreateBlog(ctx, &u.ID, strPtr("orphan"))
	require.NoError(t, err)

	_, err = db.DeleteUser(ctx, u.ID)
	require.NoError(t, err)

	got, err := db.GetBlog(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, *got.UserID)
}

func TestConcurrentCreates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.CreateArticle(ctx, strPtr("c"), strPtr("c")); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	list, err := db.ListArticles(ctx)
	require.NoError(t, err)
	require.Len(t, list, 20)
}

func TestTimestampScan(t *testing.T) {
	want := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)

	for _, v := range []any{
		want,
		"2023-05-06 07:08:09",
		"2023-05-06 07:08:09+00:00",
		[]byte("2023-05-06T07:08:09Z"),
	} {
		var got time.Time
		require.NoError(t, timestamp{&got}.Scan(v), "value %v", v)
		require.True(t, want.Equal(got), "value %v: got %v", v, got)
	}

	var got time.Time
	require.Error(t, timestamp{&got}.Scan(42))
	require.Error(t, timestamp{&got}.Scan("yesterday"))
}

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, isUniqueViolation(errors.New("boom")))
	require.False(t, isUniqueViolation(nil))
}
