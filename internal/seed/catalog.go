package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mathfacts/backend/internal/logger"
	"github.com/mathfacts/backend/internal/repos"
	"github.com/mathfacts/backend/internal/types"
)

// MaxOperand is the top of the multiplication table the catalog covers.
const MaxOperand = 12

// Catalog inserts the full multiplication fact table if the problem table is
// empty. Re-running it against a populated database is a no-op, so it is safe
// to call on every boot.
func Catalog(ctx context.Context, db *gorm.DB, problemRepo repos.ProblemRepo, log *logger.Logger) error {
	count, err := problemRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("counting problems: %w", err)
	}
	if count > 0 {
		log.Debug("Problem catalog already seeded", "count", count)
		return nil
	}

	problems := make([]*types.Problem, 0, MaxOperand*MaxOperand)
	for a := 1; a <= MaxOperand; a++ {
		for b := 1; b <= MaxOperand; b++ {
			problems = append(problems, &types.Problem{
				Text:     fmt.Sprintf("%d x %d", a, b),
				OperandA: a,
				OperandB: b,
				Answer:   a * b,
			})
		}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := problemRepo.Create(ctx, tx, problems); err != nil {
			return fmt.Errorf("seeding problem catalog: %w", err)
		}
		log.Info("Seeded problem catalog", "count", len(problems))
		return nil
	})
}

// SeedUser is one named account to pre-create.
type SeedUser struct {
	Name  string
	Pin   string
	Image string
	Level int
}

// Users upserts the given accounts by name, hashing each pin. Existing names
// are left untouched.
func Users(ctx context.Context, db *gorm.DB, userRepo repos.UserRepo, log *logger.Logger, seedUsers []SeedUser) error {
	for _, su := range seedUsers {
		exists, err := userRepo.NameExists(ctx, nil, su.Name)
		if err != nil {
			return fmt.Errorf("checking user %q: %w", su.Name, err)
		}
		if exists {
			log.Debug("User already seeded", "name", su.Name)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Pin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing pin for %q: %w", su.Name, err)
		}
		level := su.Level
		if level == 0 {
			level = types.LevelOne
		}
		user := &types.User{
			ID:    uuid.New(),
			Name:  su.Name,
			Pin:   string(hashed),
			Image: su.Image,
			Level: level,
		}
		if _, err := userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
			return fmt.Errorf("creating user %q: %w", su.Name, err)
		}
		log.Info("Seeded user", "name", su.Name, "level", level)
	}
	return nil
}
