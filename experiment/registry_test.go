package experiment

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/flamegpu/experiment-framework/pkg/logger"
)

func TestRegistry_Add(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		givenState []string
		giveName   string
		wantErr    error
		wantNames  []string
	}{
		{
			name:      "success: adds new experiment",
			giveName:  "predator_prey",
			wantNames: []string{"predator_prey"},
		},
		{
			name:       "success: adds alongside existing experiments",
			givenState: []string{"flocking"},
			giveName:   "predator_prey",
			wantNames:  []string{"flocking", "predator_prey"},
		},
		{
			name:       "error: duplicate name",
			givenState: []string{"predator_prey"},
			giveName:   "predator_prey",
			wantErr:    ErrExperimentExists,
			wantNames:  []string{"predator_prey"},
		},
		{
			name:      "error: empty name",
			giveName:  "",
			wantErr:   ErrEmptyName,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := NewRegistry(logger.Test(t))
			for _, name := range tt.givenState {
				require.NoError(t, registry.Add(NewExperimentDescription(name)))
			}

			err := registry.Add(NewExperimentDescription(tt.giveName))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantNames, registry.Names())
		})
	}
}

func TestRegistry_Add_LogsRegistration(t *testing.T) {
	t.Parallel()

	lggr, logs := logger.TestObserved(t, zapcore.DebugLevel)
	registry := NewRegistry(lggr)

	require.NoError(t, registry.Add(NewExperimentDescription("boids")))

	entries := logs.FilterMessage("Registered experiment").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boids", entries[0].ContextMap()["name"])
}

func TestRegistry_SharesRecord(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	desc := NewExperimentDescription("predator_prey")
	require.NoError(t, registry.Add(desc))

	desc.SetRepeats(12)

	got, err := registry.Get("predator_prey")
	require.NoError(t, err)
	assert.Equal(t, uint(12), got.Repeats())
	assert.NotSame(t, desc.data(), got, "Get must return a copy")
}

func TestRegistry_Contains(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	require.NoError(t, registry.Add(NewExperimentDescription("predator_prey")))

	assert.True(t, registry.Contains(NewExperimentDescription("predator_prey")))
	assert.False(t, registry.Contains(NewExperimentDescription("flocking")))
}

func TestRegistry_Get_NotFound(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))

	got, err := registry.Get("missing")
	require.ErrorIs(t, err, ErrExperimentNotFound)
	assert.Nil(t, got)
}

func TestRegistry_Remove(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	require.NoError(t, registry.Add(NewExperimentDescription("predator_prey")))
	require.NoError(t, registry.Add(NewExperimentDescription("flocking")))

	require.NoError(t, registry.Remove("predator_prey"))
	assert.Equal(t, []string{"flocking"}, registry.Names())
	assert.Equal(t, 1, registry.Len())

	require.ErrorIs(t, registry.Remove("predator_prey"), ErrExperimentNotFound)

	// A removed name can be registered again.
	require.NoError(t, registry.Add(NewExperimentDescription("predator_prey")))
}

func TestRegistry_Fetch(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	for _, name := range []string{"predator_prey", "boids", "flocking"} {
		require.NoError(t, registry.Add(NewExperimentDescription(name)))
	}

	records := registry.Fetch()
	require.Len(t, records, 3)
	assert.Equal(t, "boids", records[0].Name())
	assert.Equal(t, "flocking", records[1].Name())
	assert.Equal(t, "predator_prey", records[2].Name())
}

func TestRegistry_Snapshot(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	desc := NewExperimentDescription("predator_prey")
	desc.SetRepeats(2)
	require.NoError(t, registry.Add(desc))

	snapshot := registry.Snapshot()
	desc.SetRepeats(9)

	got, err := snapshot.Get("predator_prey")
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.Repeats())

	// The snapshot is a registry of its own.
	require.NoError(t, snapshot.Add(NewExperimentDescription("flocking")))
	assert.Equal(t, 1, registry.Len())
	assert.Equal(t, 2, snapshot.Len())
}

func TestRegistry_Plan(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	desc := NewExperimentDescription("predator_prey")
	desc.SetRepeats(2)
	require.NoError(t, registry.Add(desc))

	plan, err := registry.Plan("predator_prey",
		WithSeed(1),
		WithParameters(Parameter{Name: "prey", Values: []any{50, 100, 150}}),
	)
	require.NoError(t, err)
	assert.Equal(t, "predator_prey", plan.Experiment)
	assert.Len(t, plan.Runs, 6)

	_, err = registry.Plan("missing")
	require.ErrorIs(t, err, ErrExperimentNotFound)
}

func TestRegistry_Plan_TooManyRuns(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Test(t))
	desc := NewExperimentDescription("predator_prey")
	desc.SetRepeats(math.MaxUint)
	require.NoError(t, registry.Add(desc))

	_, err := registry.Plan("predator_prey", WithSeed(1))
	require.ErrorIs(t, err, ErrTooManyRuns)
}

func TestNewRegistry_NilLogger(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(nil)
	desc := NewExperimentDescription("flocking")

	require.NoError(t, registry.Add(desc))

	plan, err := registry.Plan("flocking", WithSeed(1))
	require.NoError(t, err)
	assert.Len(t, plan.Runs, 1)

	require.NoError(t, registry.Remove("flocking"))
	assert.Zero(t, registry.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(logger.Nop())
	desc := NewExperimentDescription("predator_prey")
	require.NoError(t, registry.Add(desc))

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			desc.SetRepeats(uint(i))
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Plan("predator_prey", WithSeed(int64(i)))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, registry.Len())
}
