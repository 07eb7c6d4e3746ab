package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-addressbook/app/models"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

type AddressRepository interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	FindAddressByID(ctx context.Context, userID string, id uint) (*models.Address, error)
	FindAddressesByUserID(ctx context.Context, userID string) ([]models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, userID string, id uint) error
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type GormAddressRepository struct {
	db *gorm.DB
}

func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// demoteOthers clears the default flag on every address of the owner except keepID.
func demoteOthers(tx *gorm.DB, userID string, keepID uint) error {
	q := tx.Model(&models.Address{}).Where("user_id = ? AND is_default = ?", userID, true)
	if keepID != 0 {
		q = q.Where("id <> ?", keepID)
	}
	return q.Update("is_default", false).Error
}

func (r *GormAddressRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	address.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := demoteOthers(tx, address.UserID, 0); err != nil {
				return fmt.Errorf("failed to unset old default address: %w", err)
			}
		}
		if err := tx.Create(address).Error; err != nil {
			return fmt.Errorf("failed to create address: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("GormAddressRepository: Failed to create address for user %s: %v", address.UserID, err)
		return err
	}
	return nil
}

func (r *GormAddressRepository) FindAddressByID(ctx context.Context, userID string, id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("GormAddressRepository: Failed to find address by ID %d: %v", id, err)
		return nil, fmt.Errorf("failed to find address by ID: %w", err)
	}
	return &address, nil
}

func (r *GormAddressRepository) FindAddressesByUserID(ctx context.Context, userID string) ([]models.Address, error) {
	addresses := []models.Address{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC, created_at DESC, id DESC").
		Find(&addresses).Error; err != nil {
		log.Printf("GormAddressRepository: Failed to find addresses for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to find addresses by user ID: %w", err)
	}
	return addresses, nil
}

// UpdateAddress replaces every editable column of an existing address.
func (r *GormAddressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Address
		if err := tx.First(&existing, "id = ? AND user_id = ?", address.ID, address.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			return fmt.Errorf("failed to load address: %w", err)
		}

		if address.IsDefault {
			if err := demoteOthers(tx, address.UserID, address.ID); err != nil {
				return fmt.Errorf("failed to unset old default address during update: %w", err)
			}
		}

		address.CreatedAt = existing.CreatedAt
		if err := tx.Model(&existing).Select(
			"full_name", "phone_number", "street_address", "city", "state", "zip_code", "is_default",
		).Updates(address).Error; err != nil {
			return fmt.Errorf("failed to update address: %w", err)
		}
		return nil
	})
	if err != nil && !errors.Is(err, ErrAddressNotFound) {
		log.Printf("GormAddressRepository: Failed to update address %d: %v", address.ID, err)
	}
	return err
}

func (r *GormAddressRepository) DeleteAddress(ctx context.Context, userID string, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Address{})
	if result.Error != nil {
		log.Printf("GormAddressRepository: Failed to delete address %d: %v", id, result.Error)
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *GormAddressRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return count, nil
}
