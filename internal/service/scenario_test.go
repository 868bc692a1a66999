package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
	"github.com/pkordes/juicebox/backend/internal/service"
	"github.com/pkordes/juicebox/backend/testutil"
)

// newTestServices wires real services to a Store bound to a transaction that
// is rolled back when the test ends. InTx becomes a savepoint.
func newTestServices(t *testing.T) (*service.PostService, *service.TagService, *service.UserService) {
	t.Helper()
	pool := testutil.NewPool(t)
	tx, err := pool.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	store := repo.NewStore(tx)
	return service.NewPostService(store, store.Posts),
		service.NewTagService(store.Tags),
		service.NewUserService(store.Users).WithHashCost(bcrypt.MinCost)
}

func postIDs(posts []domain.Post) []uuid.UUID {
	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

// TestScenario_TagLifecycle walks a post through creation, tag replacement and
// soft deletion, checking tag-scoped reads after every step.
func TestScenario_TagLifecycle(t *testing.T) {
	posts, tags, users := newTestServices(t)
	ctx := context.Background()
	suffix := "-" + uuid.NewString()[:8]
	happy, fresh, other := "#happy"+suffix, "#new"+suffix, "#other"+suffix

	author, err := users.Create(ctx, domain.NewUser{
		Username: "glamgal" + suffix,
		Password: "somethingwitty",
		Name:     "Joshua",
		Location: "Upper East Side",
	})
	require.NoError(t, err)

	post, err := posts.Create(ctx, domain.NewPost{
		AuthorID: author.ID,
		Title:    "FirstPost",
		Content:  "I am glad to be here.",
		Tags:     []string{happy, fresh},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{happy, fresh}, post.Tags)
	assert.Equal(t, author.Username, post.Author.Username)

	byHappy, err := tags.PostsByName(ctx, happy)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{post.ID}, postIDs(byHappy))

	updated, err := posts.Update(ctx, post.ID, domain.PostPatch{Tags: []string{fresh, other}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{fresh, other}, updated.Tags)

	byHappy, err = tags.PostsByName(ctx, happy)
	require.NoError(t, err)
	assert.Empty(t, byHappy, "replaced tag no longer lists the post")

	byOther, err := tags.PostsByName(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{post.ID}, postIDs(byOther))

	_, err = posts.Deactivate(ctx, post.ID)
	require.NoError(t, err)

	byOther, err = tags.PostsByName(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, byOther, "inactive posts are excluded")

	all, err := tags.List(ctx)
	require.NoError(t, err)
	names := domain.TagNames(all)
	assert.Contains(t, names, happy, "tags are never deleted")
	assert.Contains(t, names, fresh)
	assert.Contains(t, names, other)
}

// TestScenario_CreateRollsBackOnUnknownAuthor checks that a failed create
// leaves no tag behind.
func TestScenario_CreateRollsBackOnUnknownAuthor(t *testing.T) {
	posts, tags, _ := newTestServices(t)
	ctx := context.Background()
	name := "#orphan-" + uuid.NewString()[:8]

	_, err := posts.Create(ctx, domain.NewPost{
		AuthorID: uuid.New(),
		Title:    "Ghost",
		Content:  "nobody wrote this",
		Tags:     []string{name},
	})
	require.ErrorIs(t, err, domain.ErrForeignKeyViolation)

	all, err := tags.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, domain.TagNames(all), name)
}

// TestScenario_UpdateRollsBackOnMissingPost checks that tags resolved for a
// post that does not exist are not committed either.
func TestScenario_UpdateRollsBackOnMissingPost(t *testing.T) {
	posts, tags, _ := newTestServices(t)
	ctx := context.Background()
	name := "#never-" + uuid.NewString()[:8]

	_, err := posts.Update(ctx, uuid.New(), domain.PostPatch{Tags: []string{name}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := tags.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, domain.TagNames(all), name)
}
