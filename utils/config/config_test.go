package config_test

import (
	"testing"

	"github.com/citymind-lab/crossim/utils/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 100, Interval: 1},
			Seed: 42,
			Mode: config.ModeHybrid,
		},
		Intersection: config.Intersection{
			LanesPerDirection:   2,
			BaseArrivalRate:     0.3,
			EmergencyProb:       0.01,
			TransitProb:         0.05,
			VehicleClearTime:    2,
			DefaultCycleTime:    120,
			EmissionRatePerHour: 0.3,
		},
		Reward: config.Reward{Wait: 1, Throughput: 0.5, Emission: 0.3, EmergencyBonus: 10},
		Agent: config.Agent{
			EpsilonStart:       1,
			EpsilonMin:         0.01,
			EpsilonDecay:       0.995,
			Gamma:              0.95,
			LearningRate:       0.001,
			ReplayCapacity:     1000,
			BatchSize:          32,
			TargetSyncInterval: 100,
		},
	}
}

func TestRuntimeConfigDefaults(t *testing.T) {
	rc, err := config.NewRuntimeConfig(validConfig())
	require.NoError(t, err)
	assert.Equal(t, 30, rc.All.Intersection.MaxArrivalsPerStep)
	assert.Equal(t, 32, rc.All.Agent.HiddenSize)
	assert.Equal(t, 1, rc.All.Agent.TrainInterval)
	assert.Equal(t, 1.0, rc.All.Fuzzy.Resolution)
	assert.Equal(t, config.ModeHybrid, rc.C.Mode)
}

func TestRuntimeConfigRejectsBadProbabilities(t *testing.T) {
	c := validConfig()
	c.Intersection.EmergencyProb = 0.7
	c.Intersection.TransitProb = 0.5
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "emergency_prob+transit_prob")
}

func TestRuntimeConfigRejectsBadMode(t *testing.T) {
	c := validConfig()
	c.Control.Mode = "adaptive"
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "control.mode")
}

func TestRuntimeConfigRejectsBadHyperparams(t *testing.T) {
	c := validConfig()
	c.Agent.EpsilonMin = 2
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "epsilon_min")

	c = validConfig()
	c.Agent.BatchSize = 5000
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "batch_size")

	c = validConfig()
	c.Agent.Gamma = 1
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "gamma")
}

func TestRuntimeConfigAgentSkippedOutsideHybrid(t *testing.T) {
	c := validConfig()
	c.Control.Mode = config.ModeFuzzy
	c.Agent = config.Agent{} // 非hybrid模式下不校验智能体超参数
	_, err := config.NewRuntimeConfig(c)
	assert.NoError(t, err)
}

func TestRuntimeConfigAgentSkippedWhenDisabled(t *testing.T) {
	c := validConfig()
	c.Agent = config.Agent{Disabled: true}
	_, err := config.NewRuntimeConfig(c)
	assert.NoError(t, err)
}

func TestRuntimeConfigValidatesFuzzyRules(t *testing.T) {
	c := validConfig()
	c.Fuzzy.Rules = []config.FuzzyRule{{Density: "low", Wait: "short", Green: "forever"}}
	_, err := config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "bad green term")

	c = validConfig()
	c.Fuzzy.Rules = []config.FuzzyRule{{Green: "short"}}
	_, err = config.NewRuntimeConfig(c)
	assert.ErrorContains(t, err, "empty antecedent")
}
