package biz

import (
	"testing"

	"github.com/kerry-png/clubstand-platform-sub000/internal/constants"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPricingConfigIsValid(t *testing.T) {
	cfg := DefaultPricingConfig()
	assert.True(t, cfg.Validate())
	assert.Equal(t, constants.PricingModelBundled, cfg.PricingModel)
	assert.True(t, cfg.EnableAdultBundle)
}

func TestPricingConfigValidate(t *testing.T) {
	mutate := func(fn func(c *PricingConfig)) *PricingConfig {
		cfg := DefaultPricingConfig()
		fn(cfg)
		return cfg
	}

	tests := []struct {
		name string
		cfg  *PricingConfig
		want bool
	}{
		{"negative price", mutate(func(c *PricingConfig) { c.JuniorSinglePence = -1 }), false},
		{"cutoff month out of range", mutate(func(c *PricingConfig) { c.CutoffMonth = 13 }), false},
		{"cutoff day out of range", mutate(func(c *PricingConfig) { c.CutoffDay = 0 }), false},
		{"unknown pricing model", mutate(func(c *PricingConfig) { c.PricingModel = "seasonal" }), false},
		{"family cap model accepted at config level", mutate(func(c *PricingConfig) { c.PricingModel = constants.PricingModelFamilyCap }), true},
		{"flat model", mutate(func(c *PricingConfig) { c.PricingModel = constants.PricingModelFlat }), true},
		{"zero prices allowed", mutate(func(c *PricingConfig) { c.SocialAdultPence = 0 }), true},
		{"negative age bound", mutate(func(c *PricingConfig) { c.JuniorMaxAge = -1 }), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Validate())
		})
	}
}
