// Command seed provisions an initial user population into the configured
// store backend: one admin plus a batch of sequentially numbered users with
// bcrypt-hashed passwords. Existing usernames are left untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/Bhupesh-Khordia/auth-service/internal/core/domain"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/service"
	"github.com/Bhupesh-Khordia/auth-service/internal/pkg/config"
	"github.com/Bhupesh-Khordia/auth-service/internal/store"
	"github.com/Bhupesh-Khordia/auth-service/pkg/logger"
)

var firstNames = []string{
	"Alice", "Bob", "Charlie", "Diana", "Emma", "Frank", "Grace", "Henry",
	"Ivy", "Jack", "Kate", "Leo", "Mary", "Nick", "Olivia", "Paul",
	"Quinn", "Rachel", "Sam", "Tina", "Uma", "Victor", "Wendy", "Xander",
	"Yara", "Zoe", "Alex", "Ben", "Chloe", "David", "Eva", "Felix",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
}

func main() {
	count := flag.Int("count", 99, "number of regular users to create (admin is always created)")
	adminPassword := flag.String("admin-password", "admin123", "password for the admin user")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	userStore, _, cleanup, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("store init failed")
	}
	defer cleanup()

	hasher := service.NewBcryptHasher(cfg.BcryptCost)

	created, skipped := 0, 0
	insert := func(username, fullName, password, role string) {
		hash, err := hasher.Hash(password)
		if err != nil {
			log.Fatal().Err(err).Str("username", username).Msg("hash failed")
		}
		err = userStore.Insert(ctx, &domain.User{
			Username:     username,
			FullName:     fullName,
			PasswordHash: hash,
			Role:         role,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrUserExists):
			skipped++
			log.Debug().Str("username", username).Msg("already exists, skipped")
		default:
			log.Fatal().Err(err).Str("username", username).Msg("insert failed")
		}
	}

	insert("admin", "Admin User", *adminPassword, domain.RoleAdmin)

	for i := 1; i <= *count; i++ {
		fullName := fmt.Sprintf("%s %s",
			firstNames[rand.Intn(len(firstNames))],
			lastNames[rand.Intn(len(lastNames))],
		)
		insert(
			fmt.Sprintf("user%03d", i),
			fullName,
			fmt.Sprintf("pass%03d", i),
			domain.RoleUser,
		)
	}

	log.Info().
		Int("created", created).
		Int("skipped", skipped).
		Str("backend", cfg.StoreBackend).
		Msg("seeding complete")
}
