package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/vehicle_api/internal/domain"
	"github.com/Skotchmaster/vehicle_api/internal/hash"
	"github.com/Skotchmaster/vehicle_api/internal/models"
)

// FindByCredentials returns domain.ErrCredentialNotFound for both an unknown
// email and a wrong password.
func (r *GormRepo) FindByCredentials(ctx context.Context, email, password string) (*models.Administrator, error) {
	var adm models.Administrator
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&adm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCredentialNotFound
		}
		return nil, err
	}
	if !hash.CheckPassword(adm.PasswordHash, password) {
		return nil, domain.ErrCredentialNotFound
	}
	return &adm, nil
}

func (r *GormRepo) FindAdminByID(ctx context.Context, id uint) (*models.Administrator, error) {
	var adm models.Administrator
	if err := r.DB.WithContext(ctx).First(&adm, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &adm, nil
}

func (r *GormRepo) CreateAdminIfNotExists(ctx context.Context, adm *models.Administrator) error {
	tx := r.DB.WithContext(ctx).Where("email = ?", adm.Email).FirstOrCreate(adm)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// ListAdmins returns every administrator when limit is not positive.
func (r *GormRepo) ListAdmins(ctx context.Context, offset, limit int) ([]models.Administrator, error) {
	q := r.DB.WithContext(ctx).Model(&models.Administrator{}).Order("id ASC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	items := make([]models.Administrator, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
