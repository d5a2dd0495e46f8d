// Command seed fills a development database with demo users, posts and follows.
// Running it twice is safe: existing users and follow edges are skipped.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/neubri/threads-clone/internal/auth"
	"github.com/neubri/threads-clone/internal/cache"
	"github.com/neubri/threads-clone/internal/config"
	"github.com/neubri/threads-clone/internal/database"
	"github.com/neubri/threads-clone/internal/domain"
	"github.com/neubri/threads-clone/internal/logging"
	postgresrepo "github.com/neubri/threads-clone/internal/repository/postgres"
	"github.com/neubri/threads-clone/internal/service"
)

var demoPosts = []string{
	"First thread of the day.",
	"Anyone else shipping on a Friday?",
	"Coffee count: 3.",
}

func main() {
	users := flag.Int("users", 5, "number of demo users to create")
	password := flag.String("password", "password", "password for every demo user")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logger := logging.New("threads-seed", cfg.LogLevel, "text")

	if err := seed(context.Background(), cfg, logger, *users, *password); err != nil {
		logger.WithError(err).Fatal("seeding failed")
	}
	logger.Info("seed complete")
}

func seed(ctx context.Context, cfg *config.Config, logger *logging.Logger, n int, password string) error {
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer rdb.Close()

	tokens, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return err
	}

	userRepo := postgresrepo.NewUserRepo(pool)
	users := service.NewUserService(userRepo, tokens)
	posts := service.NewPostService(postgresrepo.NewPostRepo(pool), userRepo, cache.NewFeedCache(rdb), logger, nil)
	follows := service.NewFollowService(postgresrepo.NewFollowRepo(pool), userRepo)

	var seeded []*domain.User
	for i := 1; i <= n; i++ {
		username := fmt.Sprintf("demo%d", i)
		_, err := users.Register(ctx, service.RegisterInput{
			Name:     fmt.Sprintf("Demo User %d", i),
			Username: username,
			Email:    username + "@example.com",
			Password: password,
		})
		created := err == nil
		if err != nil && !domain.IsKind(err, domain.KindConflict) {
			return fmt.Errorf("registering %s: %w", username, err)
		}

		u, err := userRepo.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("user %s missing after register", username)
		}
		seeded = append(seeded, u)

		if !created {
			logger.WithField("username", username).Info("user exists, skipping posts")
			continue
		}
		for _, content := range demoPosts {
			if _, err := posts.CreatePost(ctx, u.ID.String(), service.CreatePostInput{Content: content, Tags: []string{"demo"}}); err != nil {
				return err
			}
		}
	}

	// each user follows the next one, wrapping around
	for i, u := range seeded {
		next := seeded[(i+1)%len(seeded)]
		if next.ID == u.ID {
			continue
		}
		_, err := follows.FollowUser(ctx, u.ID.String(), next.ID.String())
		if err != nil && !domain.IsKind(err, domain.KindConflict) {
			return fmt.Errorf("following %s -> %s: %w", u.Username, next.Username, err)
		}
	}

	return nil
}
