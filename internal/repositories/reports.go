package repositories

import (
	"context"
	"github.com/maxaizer/simd-age/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Reports struct {
	db *gorm.DB
}

func NewReportsRepository(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

func (repo *Reports) Add(ctx context.Context, report entities.Report) error {
	report.ID = 0
	return repo.db.WithContext(ctx).Create(&report).Error
}

// Latest returns the most recently stored report, or nil when there is none.
func (repo *Reports) Latest(ctx context.Context) (*entities.Report, error) {

	var report entities.Report
	err := repo.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (repo *Reports) GetByRegion(ctx context.Context, region string) ([]entities.Report, error) {

	var reports []entities.Report
	if err := repo.db.WithContext(ctx).Order("id").Find(&reports, "region = ?", region).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (repo *Reports) Count(ctx context.Context) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&entities.Report{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
