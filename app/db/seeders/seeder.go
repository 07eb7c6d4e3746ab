package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-addressbook/app/db/fakers"
	"github.com/Rakhulsr/go-addressbook/app/models"
	"github.com/Rakhulsr/go-addressbook/app/repositories"
	"gorm.io/gorm"
)

// DBSeed makes sure a user with email exists and gives it count fake
// addresses. The first address of a user without any becomes the default.
func DBSeed(ctx context.Context, db *gorm.DB, email string, count int) (*models.User, error) {
	userRepo := repositories.NewUserRepository(db)
	addressRepo := repositories.NewGormAddressRepository(db)

	user, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = fakers.UserFaker(email)
		if err := userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create seed user: %w", err)
		}
		log.Printf("DBSeed: Created user %s with password %q", user.Email, "password")
	}

	existing, err := addressRepo.CountByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	for i := 0; i < count; i++ {
		address := fakers.AddressFaker(user.ID, existing == 0 && i == 0)
		if err := addressRepo.CreateAddress(ctx, address); err != nil {
			return nil, fmt.Errorf("failed to seed address %d: %w", i+1, err)
		}
	}
	log.Printf("DBSeed: Added %d addresses for %s", count, user.Email)
	return user, nil
}
