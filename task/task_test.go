package task_test

import (
	"testing"

	"github.com/citymind-lab/crossim/task"
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(mode string) config.Config {
	return config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 300, Interval: 1},
			Seed: 1024,
			Mode: mode,
		},
		Intersection: config.Intersection{
			LanesPerDirection:   2,
			BaseArrivalRate:     0.15,
			EmergencyProb:       0.05,
			TransitProb:         0.1,
			VehicleClearTime:    2,
			DefaultCycleTime:    60,
			EmissionRatePerHour: 0.9,
			FuelRatePerHour:     0.8,
		},
		Reward: config.Reward{
			Wait:           1,
			Throughput:     0.5,
			Emission:       0.3,
			EmergencyBonus: 10,
			QueueThreshold: 20,
			QueuePenalty:   0.1,
		},
		Agent: config.Agent{
			EpsilonStart:       1,
			EpsilonMin:         0.05,
			EpsilonDecay:       0.995,
			Gamma:              0.95,
			LearningRate:       0.005,
			HiddenSize:         16,
			ReplayCapacity:     512,
			BatchSize:          16,
			TargetSyncInterval: 50,
			TrainInterval:      5,
		},
	}
}

func TestNewContextRejectsBadConfig(t *testing.T) {
	cfg := testConfig(config.ModeFixed)
	cfg.Control.Step.Total = 0
	_, err := task.NewContext(cfg)
	assert.Error(t, err)

	cfg = testConfig("adaptive")
	_, err = task.NewContext(cfg)
	assert.Error(t, err)
}

func TestRunFullInterval(t *testing.T) {
	for _, mode := range []string{config.ModeFixed, config.ModeFuzzy, config.ModeHybrid} {
		ctx, err := task.NewContext(testConfig(mode))
		require.NoError(t, err, mode)
		summary := ctx.Run()
		assert.Equal(t, int32(300), summary.Steps, mode)
		assert.Equal(t, summary.Arrived, summary.Processed+summary.Queued, mode)
		assert.Equal(t, ctx.Clock().END_STEP, ctx.Clock().InternalStep, mode)
	}
}

func TestRunReproducible(t *testing.T) {
	a, err := task.NewContext(testConfig(config.ModeHybrid))
	require.NoError(t, err)
	b, err := task.NewContext(testConfig(config.ModeHybrid))
	require.NoError(t, err)
	assert.Equal(t, a.Run(), b.Run())
}

func TestRunDifferentSeedsDiverge(t *testing.T) {
	cfg := testConfig(config.ModeFuzzy)
	a, err := task.NewContext(cfg)
	require.NoError(t, err)
	cfg.Control.Seed = 2048
	b, err := task.NewContext(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Run(), b.Run())
}

func TestResetAllowsRerun(t *testing.T) {
	ctx, err := task.NewContext(testConfig(config.ModeFuzzy))
	require.NoError(t, err)
	ctx.Run()
	ctx.Reset()
	assert.Zero(t, ctx.Intersection().ArrivedTotal())
	summary := ctx.Run()
	assert.Equal(t, int32(300), summary.Steps)
	assert.Equal(t, summary.Arrived, summary.Processed+summary.Queued)
}
