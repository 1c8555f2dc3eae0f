package data

import (
	"context"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
)

// memberRepo 成员仓库实现
type memberRepo struct {
	data *Data
	log  *log.Helper
}

// NewMemberRepo 创建成员仓库
func NewMemberRepo(data *Data, logger log.Logger) biz.MemberRepo {
	return &memberRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// ListMembersByHousehold 获取家庭全部成员, 按创建顺序返回
// 顺序稳定性很重要: 捆绑优化的平局处理依赖原始顺序
func (r *memberRepo) ListMembersByHousehold(ctx context.Context, householdID uint64) ([]*biz.Member, error) {
	var models []model.Member
	if err := r.data.DB(ctx).
		Where("household_id = ?", householdID).
		Order("member_id ASC").
		Find(&models).Error; err != nil {
		r.log.Errorf("Failed to list members for household %d: %v", householdID, err)
		return nil, err
	}

	members := make([]*biz.Member, len(models))
	for i, m := range models {
		members[i] = &biz.Member{
			MemberID:    m.MemberID,
			HouseholdID: m.HouseholdID,
			Name:        m.Name,
			DateOfBirth: m.DateOfBirth,
			Gender:      m.Gender,
			Role:        m.Role,
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		}
	}
	return members, nil
}
