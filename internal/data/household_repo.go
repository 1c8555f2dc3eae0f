package data

import (
	"context"
	"errors"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm"
)

// householdRepo 家庭仓库实现
type householdRepo struct {
	data *Data
	log  *log.Helper
}

// NewHouseholdRepo 创建家庭仓库
func NewHouseholdRepo(data *Data, logger log.Logger) biz.HouseholdRepo {
	return &householdRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// GetHousehold 获取家庭
func (r *householdRepo) GetHousehold(ctx context.Context, householdID uint64) (*biz.Household, error) {
	var m model.Household
	err := r.data.DB(ctx).Where("household_id = ?", householdID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get household %d: %v", householdID, err)
		return nil, err
	}
	return toBizHousehold(&m), nil
}

// ListHouseholds 分页列出家庭
func (r *householdRepo) ListHouseholds(ctx context.Context, clubID string, page, pageSize int) ([]*biz.Household, int, error) {
	var models []model.Household
	var total int64

	query := r.data.DB(ctx).Model(&model.Household{})
	if clubID != "" {
		query = query.Where("club_id = ?", clubID)
	}
	if err := query.Count(&total).Error; err != nil {
		r.log.Errorf("Failed to count households: %v", err)
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Order("household_id ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list households: %v", err)
		return nil, 0, err
	}

	households := make([]*biz.Household, len(models))
	for i, m := range models {
		households[i] = toBizHousehold(&m)
	}
	return households, int(total), nil
}

func toBizHousehold(m *model.Household) *biz.Household {
	return &biz.Household{
		HouseholdID: m.HouseholdID,
		ClubID:      m.ClubID,
		OwnerUID:    m.OwnerUID,
		Name:        m.Name,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
