package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/juicebox/backend/internal/domain"
	"github.com/pkordes/juicebox/backend/internal/repo"
	"github.com/pkordes/juicebox/backend/internal/service"
)

// seedUsers is the demo user set.
var seedUsers = []domain.NewUser{
	{Username: "albert", Password: "bertie99", Name: "Al Bert", Location: "Sidney, Australia"},
	{Username: "sandra", Password: "imposter_albert", Name: "Just Sandra", Location: "Not tellin"},
	{Username: "glamgal", Password: "somethingwitty", Name: "Joshua", Location: "Upper East Side"},
}

// seedPost is a demo post keyed by its author's username.
type seedPost struct {
	author  string
	title   string
	content string
	tags    []string
}

var seedPosts = []seedPost{
	{
		author:  "albert",
		title:   "FirstPost",
		content: "This is my first post. I hope I love writing blogs as much as I love reading them.",
		tags:    []string{"#happy", "#youcandoanything"},
	},
	{
		author:  "sandra",
		title:   "How does this work?",
		content: "Seriously, does this even do anything?",
		tags:    []string{"#happy", "#worst-day-ever"},
	},
	{
		author:  "glamgal",
		title:   "Living the Glam Life",
		content: "Do you even? I swear that half of you are posing.",
		tags:    []string{"#happy", "#youcandoanything", "#canmandoeverything"},
	},
}

func newSeedCommand() *cobra.Command {
	flags := newDBFlags()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo users, posts and tags",
		Long: `Load the demo users, posts and tags into an empty, migrated database.
Run "juicectl reset" first to start over.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dsn, err := databaseURL(flags)
			if err != nil {
				return err
			}
			pool, err := pgxpool.New(cmd.Context(), dsn)
			if err != nil {
				return fmt.Errorf("open pool: %w", err)
			}
			defer pool.Close()

			if err := seed(cmd.Context(), repo.NewStore(pool)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users and %d posts\n", len(seedUsers), len(seedPosts))
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// seed creates the demo users, then their posts. Each phase runs
// concurrently; posts that share tags exercise concurrent tag creation.
// Authors are resolved by username, so posts only depend on the users table.
func seed(ctx context.Context, store *repo.Store) error {
	users := service.NewUserService(store.Users)
	posts := service.NewPostService(store, store.Posts)

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range seedUsers {
		g.Go(func() error {
			if _, err := users.Create(gctx, u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	g, gctx = errgroup.WithContext(ctx)
	for _, p := range seedPosts {
		g.Go(func() error {
			author, err := users.GetByUsername(gctx, p.author)
			if err != nil {
				return fmt.Errorf("seed post %q: author %s: %w", p.title, p.author, err)
			}
			post, err := posts.Create(gctx, domain.NewPost{
				AuthorID: author.ID,
				Title:    p.title,
				Content:  p.content,
				Tags:     p.tags,
			})
			if err != nil {
				return fmt.Errorf("seed post %q: %w", p.title, err)
			}
			slog.InfoContext(gctx, "seeded post", "title", post.Title, "tags", post.Tags)
			return nil
		})
	}
	return g.Wait()
}
