package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Path: "data/pitchdesk.db"},
		Portal:   PortalConfig{SigningKey: "secret"},
		HoldPolicy: HoldPolicyConfig{
			MinimumHoldHours: 2,
			HoldDays: map[string]int{
				entity.WorkflowTypeStandard: 3,
				entity.WorkflowTypeContest:  5,
			},
			DefaultHoldDays: 3,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	t.Run("port out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing database path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Path = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing signing key", func(t *testing.T) {
		cfg := validConfig()
		cfg.Portal.SigningKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative minimum hold hours", func(t *testing.T) {
		cfg := validConfig()
		cfg.HoldPolicy.MinimumHoldHours = -1
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative hold days", func(t *testing.T) {
		cfg := validConfig()
		cfg.HoldPolicy.HoldDays[entity.WorkflowTypeContest] = -5
		assert.Error(t, cfg.Validate())
	})
}

func TestHoldPolicyConfig_HoldPolicy(t *testing.T) {
	cfg := HoldPolicyConfig{
		Enabled:             true,
		MinimumHoldHours:    2,
		BusinessDaysOnly:    true,
		ProcessingTimeOfDay: "14:00",
		AllowAdminBypass:    true,
		RequireBypassReason: true,
		AuditBypass:         true,
		HoldDays:            map[string]int{entity.WorkflowTypeStandard: 3},
		DefaultHoldDays:     3,
	}

	policy := cfg.HoldPolicy()

	assert.True(t, policy.Enabled)
	assert.Equal(t, 2, policy.MinimumHoldHours)
	assert.Equal(t, "14:00", policy.ProcessingTimeOfDay)
	assert.Equal(t, 3, policy.HoldDaysFor(entity.WorkflowTypeStandard))
	assert.Equal(t, 3, policy.HoldDaysFor("UNKNOWN"))
}
