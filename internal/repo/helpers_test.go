package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
	"github.com/pkordes/juicebox/backend/testutil"
)

// newTestTx opens a transaction that is rolled back when the test finishes.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// newTestRepos returns every repo bound to one rolled-back transaction so
// tests can build full hierarchies (user → post → tags).
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	return repo.NewRepos(newTestTx(t))
}

// uniqueName appends a random suffix so fixtures never collide with rows
// committed by other tests sharing the database.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func mustCreateUser(t *testing.T, users repo.UserRepo) domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), domain.NewUser{
		Username: uniqueName("albert"),
		Password: "bertie99",
		Name:     "Al Bert",
		Location: "Sidney, Australia",
	})
	require.NoError(t, err, "create user fixture")
	return u
}

func mustCreatePost(t *testing.T, rs repo.Repos, authorID uuid.UUID) domain.Post {
	t.Helper()
	p, err := rs.Posts.Create(context.Background(), domain.NewPost{
		AuthorID: authorID,
		Title:    "First Post",
		Content:  "This is my first post. I hope I love writing blogs as much as I love reading them.",
	})
	require.NoError(t, err, "create post fixture")
	return p
}

// mustLinkTags creates the named tags and links them to the post.
func mustLinkTags(t *testing.T, rs repo.Repos, postID uuid.UUID, names ...string) []domain.Tag {
	t.Helper()
	ctx := context.Background()
	tags, err := rs.Tags.CreateTags(ctx, names)
	require.NoError(t, err, "create tags")
	require.NoError(t, rs.PostTags.AddToPost(ctx, postID, domain.TagIDs(tags)), "link tags")
	return tags
}

func postIDs(posts []domain.Post) []uuid.UUID {
	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
