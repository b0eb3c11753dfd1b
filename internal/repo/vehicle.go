package repo

import (
	"context"

	"github.com/Skotchmaster/vehicle_api/internal/models"
)

type VehicleFilter struct {
	Name  string
	Brand string
}

func (r *GormRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	return r.DB.WithContext(ctx).Create(v).Error
}

func (r *GormRepo) GetVehicle(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := r.DB.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *GormRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	return r.DB.WithContext(ctx).Save(v).Error
}

func (r *GormRepo) DeleteVehicle(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Vehicle{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepo) ListVehicles(ctx context.Context, f VehicleFilter, offset, limit int) ([]models.Vehicle, error) {
	q := r.DB.WithContext(ctx).Model(&models.Vehicle{})
	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(f.Name))
	}
	if f.Brand != "" {
		q = q.Where("LOWER(brand) LIKE ?", containsPattern(f.Brand))
	}

	items := make([]models.Vehicle, 0, limit)
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SearchVehicles matches the query against name or brand.
func (r *GormRepo) SearchVehicles(ctx context.Context, query string, offset, limit int) (int64, []models.Vehicle, error) {
	pattern := containsPattern(query)
	where := "LOWER(name) LIKE ? OR LOWER(brand) LIKE ?"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Vehicle{}).Where(where, pattern, pattern).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Vehicle, 0, limit)
	if err := r.DB.WithContext(ctx).
		Model(&models.Vehicle{}).
		Where(where, pattern, pattern).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
