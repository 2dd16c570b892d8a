package tetris

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// scenario replays a fixed input sequence against a prepared board.
type scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Setup       scenarioSetup  `yaml:"setup"`
	Steps       []scenarioStep `yaml:"steps"`
	Expect      scenarioExpect `yaml:"expect"`
}

type scenarioSetup struct {
	Current string   `yaml:"current"`
	Next    string   `yaml:"next,omitempty"`
	Rows    []string `yaml:"rows,omitempty"`
}

type scenarioStep struct {
	Input  *Input `yaml:"input,omitempty"`
	Tick   *int64 `yaml:"tick,omitempty"`
	Repeat int    `yaml:"repeat,omitempty"`
}

type scenarioExpect struct {
	Score        int    `yaml:"score"`
	Lines        int    `yaml:"lines"`
	Level        int    `yaml:"level"`
	FallInterval int64  `yaml:"fall_interval_ms"`
	State        string `yaml:"state"`
	Occupied     *int   `yaml:"occupied,omitempty"`
	CurrentY     *int   `yaml:"current_y,omitempty"`
}

func loadScenario(t *testing.T, path string) *scenario {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var sc scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	require.NoError(t, decoder.Decode(&sc), path)
	require.NotEmpty(t, sc.Name, path)
	return &sc
}

func (sc *scenario) run(t *testing.T) *Engine {
	t.Helper()

	e := newTestEngine(t)
	fillRows(t, e.grid, sc.Setup.Rows...)

	kind, err := ParseKind(sc.Setup.Current)
	require.NoError(t, err)
	e.setCurrent(kind)
	if sc.Setup.Next != "" {
		kind, err := ParseKind(sc.Setup.Next)
		require.NoError(t, err)
		e.setNext(kind)
	}

	var now int64
	for _, step := range sc.Steps {
		for range max(step.Repeat, 1) {
			if step.Tick != nil {
				now = *step.Tick
				e.Tick(now)
			}
			if step.Input != nil {
				e.Apply(*step.Input, now)
			}
			requireConsistent(t, e)
		}
	}
	return e
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		sc := loadScenario(t, path)
		t.Run(sc.Name, func(t *testing.T) {
			e := sc.run(t)

			assert.Equal(t, sc.Expect.Score, e.Score(), "score")
			assert.Equal(t, sc.Expect.Lines, e.Lines(), "lines")
			assert.Equal(t, sc.Expect.Level, e.Level(), "level")
			assert.Equal(t, sc.Expect.FallInterval, e.FallInterval(), "fall interval")
			assert.Equal(t, sc.Expect.State, e.State().String(), "state")
			if sc.Expect.Occupied != nil {
				assert.Equal(t, *sc.Expect.Occupied, e.grid.Count(), "occupied cells")
			}
			if sc.Expect.CurrentY != nil {
				assert.Equal(t, *sc.Expect.CurrentY, e.Current().Y, "current piece row")
			}
		})
	}
}
