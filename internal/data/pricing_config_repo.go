package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"
	"github.com/kerry-png/clubstand-platform-sub000/internal/data/model"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 空值缓存占位, 防止缓存穿透
const nullConfigPlaceholder = "null"

// pricingConfigRepo 定价配置仓库实现 (redis 旁路缓存)
type pricingConfigRepo struct {
	data *Data
	log  *log.Helper
}

// NewPricingConfigRepo 创建定价配置仓库
func NewPricingConfigRepo(data *Data, logger log.Logger) biz.PricingConfigRepo {
	return &pricingConfigRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func configCacheKey(clubID, seasonType string) string {
	return fmt.Sprintf("pricing_config:%s:%s", clubID, seasonType)
}

// GetPricingConfig 获取俱乐部定价配置, 不存在时返回 (nil, nil)
func (r *pricingConfigRepo) GetPricingConfig(ctx context.Context, clubID, seasonType string) (*biz.PricingConfig, error) {
	key := configCacheKey(clubID, seasonType)

	// 先查缓存; 缓存故障只记日志, 不影响主流程
	cached, err := r.data.rdb.Get(ctx, key).Result()
	if err == nil {
		if cached == nullConfigPlaceholder {
			return nil, nil
		}
		var cfg biz.PricingConfig
		if err := json.Unmarshal([]byte(cached), &cfg); err == nil {
			return &cfg, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		r.log.Warnf("Failed to read pricing config cache for %s: %v", key, err)
	}

	var m model.PricingConfig
	err = r.data.DB(ctx).
		Where("club_id = ? AND season_type = ?", clubID, seasonType).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 空值也缓存, 过期时间较短
		if err := r.data.rdb.Set(ctx, key, nullConfigPlaceholder, constants.NullCacheExpiration).Err(); err != nil {
			r.log.Warnf("Failed to cache null pricing config for %s: %v", key, err)
		}
		return nil, nil
	}
	if err != nil {
		r.log.Errorf("Failed to get pricing config for club %s: %v", clubID, err)
		return nil, err
	}

	cfg := toBizPricingConfig(&m)
	if raw, err := json.Marshal(cfg); err == nil {
		// 过期时间加随机抖动, 防止缓存雪崩
		expiration := constants.DefaultCacheExpiration + time.Duration(rand.Intn(constants.CacheRandomMaxSeconds))*time.Second
		if err := r.data.rdb.Set(ctx, key, raw, expiration).Err(); err != nil {
			r.log.Warnf("Failed to cache pricing config for %s: %v", key, err)
		}
	}
	return cfg, nil
}

// SavePricingConfig 保存(插入或更新)俱乐部定价配置并失效缓存
func (r *pricingConfigRepo) SavePricingConfig(ctx context.Context, cfg *biz.PricingConfig) error {
	m := toModelPricingConfig(cfg)
	err := r.data.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "club_id"}, {Name: "season_type"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		r.log.Errorf("Failed to save pricing config for club %s: %v", cfg.ClubID, err)
		return err
	}

	key := configCacheKey(cfg.ClubID, cfg.SeasonType)
	if err := r.data.rdb.Del(ctx, key).Err(); err != nil {
		r.log.Warnf("Failed to invalidate pricing config cache for %s: %v", key, err)
	}
	return nil
}

func toBizPricingConfig(m *model.PricingConfig) *biz.PricingConfig {
	return &biz.PricingConfig{
		ClubID:                  m.ClubID,
		SeasonType:              m.SeasonType,
		PricingModel:            m.PricingModel,
		CutoffMonth:             m.CutoffMonth,
		CutoffDay:               m.CutoffDay,
		JuniorMaxAge:            m.JuniorMaxAge,
		AdultMinAge:             m.AdultMinAge,
		AdultBundleMinAge:       m.AdultBundleMinAge,
		MinAdultsForBundle:      m.MinAdultsForBundle,
		RequireJuniorForBundle:  m.RequireJuniorForBundle,
		EnableAdultBundle:       m.EnableAdultBundle,
		JuniorSinglePence:       m.JuniorSinglePence,
		JuniorMultiPence:        m.JuniorMultiPence,
		MaleFullPence:           m.MaleFullPence,
		MaleIntermediatePence:   m.MaleIntermediatePence,
		FemaleFullPence:         m.FemaleFullPence,
		FemaleIntermediatePence: m.FemaleIntermediatePence,
		SocialAdultPence:        m.SocialAdultPence,
		AdultBundlePence:        m.AdultBundlePence,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

func toModelPricingConfig(cfg *biz.PricingConfig) *model.PricingConfig {
	return &model.PricingConfig{
		ClubID:                  cfg.ClubID,
		SeasonType:              cfg.SeasonType,
		PricingModel:            cfg.PricingModel,
		CutoffMonth:             cfg.CutoffMonth,
		CutoffDay:               cfg.CutoffDay,
		JuniorMaxAge:            cfg.JuniorMaxAge,
		AdultMinAge:             cfg.AdultMinAge,
		AdultBundleMinAge:       cfg.AdultBundleMinAge,
		MinAdultsForBundle:      cfg.MinAdultsForBundle,
		RequireJuniorForBundle:  cfg.RequireJuniorForBundle,
		EnableAdultBundle:       cfg.EnableAdultBundle,
		JuniorSinglePence:       cfg.JuniorSinglePence,
		JuniorMultiPence:        cfg.JuniorMultiPence,
		MaleFullPence:           cfg.MaleFullPence,
		MaleIntermediatePence:   cfg.MaleIntermediatePence,
		FemaleFullPence:         cfg.FemaleFullPence,
		FemaleIntermediatePence: cfg.FemaleIntermediatePence,
		SocialAdultPence:        cfg.SocialAdultPence,
		AdultBundlePence:        cfg.AdultBundlePence,
	}
}
