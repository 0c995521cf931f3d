package agent_test

import (
	"testing"

	"github.com/citymind-lab/crossim/agent"
	"github.com/citymind-lab/crossim/utils/config"
	"github.com/citymind-lab/crossim/utils/randengine"
	"github.com/stretchr/testify/assert"
)

func testAgentConfig() config.Agent {
	return config.Agent{
		EpsilonStart:       1,
		EpsilonMin:         0.05,
		EpsilonDecay:       0.9,
		Gamma:              0.95,
		LearningRate:       0.01,
		HiddenSize:         8,
		ReplayCapacity:     64,
		BatchSize:          4,
		TargetSyncInterval: 10,
		TrainInterval:      1,
	}
}

func makeTransition(v float64) agent.Transition {
	return agent.Transition{
		State:     []float64{v, v, v, v},
		Action:    []float64{0.1, -0.2, 0.3, -0.4},
		Reward:    v,
		NextState: []float64{v + 1, v + 1, v + 1, v + 1},
	}
}

func TestReplayBufferCapacity(t *testing.T) {
	b := agent.NewReplayBuffer(8)
	for i := 0; i < 20; i++ {
		b.Push(makeTransition(float64(i)))
	}
	assert.Equal(t, 8, b.Len())
}

func TestReplayBufferEvictsOldest(t *testing.T) {
	b := agent.NewReplayBuffer(4)
	for i := 0; i < 6; i++ {
		b.Push(makeTransition(float64(i)))
	}
	// 0和1已被淘汰，剩余经验的奖励均不小于2
	engine := randengine.New(1)
	batch := b.Sample(engine, 4)
	assert.Len(t, batch, 4)
	for _, tr := range batch {
		assert.GreaterOrEqual(t, tr.Reward, 2.0)
	}
}

func TestReplayBufferSampleShortBuffer(t *testing.T) {
	b := agent.NewReplayBuffer(16)
	b.Push(makeTransition(0))
	b.Push(makeTransition(1))
	engine := randengine.New(1)
	batch := b.Sample(engine, 8)
	assert.Len(t, batch, 2)
}

func TestSelectActionWithinRange(t *testing.T) {
	engine := randengine.New(42)
	a := agent.New(engine, testAgentConfig(), 16, 4)
	state := make([]float64, 16)
	for i := 0; i < 50; i++ {
		action := a.SelectAction(state)
		assert.Len(t, action, 4)
		for _, v := range action {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestTrainStepNoOpBelowBatch(t *testing.T) {
	engine := randengine.New(42)
	a := agent.New(engine, testAgentConfig(), 4, 4)
	a.Observe(makeTransition(1))
	before := a.Epsilon()
	loss := a.TrainStep()
	assert.Zero(t, loss)
	assert.Equal(t, before, a.Epsilon())
}

func TestTrainStepDecaysEpsilonToFloor(t *testing.T) {
	engine := randengine.New(42)
	cfg := testAgentConfig()
	a := agent.New(engine, cfg, 4, 4)
	for i := 0; i < 8; i++ {
		a.Observe(makeTransition(float64(i)))
	}
	prev := a.Epsilon()
	for i := 0; i < 100; i++ {
		a.TrainStep()
		assert.LessOrEqual(t, a.Epsilon(), prev)
		assert.GreaterOrEqual(t, a.Epsilon(), cfg.EpsilonMin)
		prev = a.Epsilon()
	}
	assert.Equal(t, cfg.EpsilonMin, a.Epsilon())
}

func TestParametersRoundTrip(t *testing.T) {
	engine := randengine.New(42)
	a := agent.New(engine, testAgentConfig(), 4, 4)
	b := agent.New(engine, testAgentConfig(), 4, 4)

	assert.NoError(t, b.SetParameters(a.Parameters()))
	assert.Equal(t, a.Parameters(), b.Parameters())
}

func TestSetParametersRejectsBadLength(t *testing.T) {
	engine := randengine.New(42)
	a := agent.New(engine, testAgentConfig(), 4, 4)
	before := a.Parameters()
	assert.Error(t, a.SetParameters([]float64{1, 2, 3}))
	assert.Equal(t, before, a.Parameters())
}

func TestTrainStepChangesParameters(t *testing.T) {
	engine := randengine.New(7)
	a := agent.New(engine, testAgentConfig(), 4, 4)
	for i := 0; i < 16; i++ {
		a.Observe(makeTransition(float64(i % 4)))
	}
	before := a.Parameters()
	a.TrainStep()
	assert.NotEqual(t, before, a.Parameters())
}
