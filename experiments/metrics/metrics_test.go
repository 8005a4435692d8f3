package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lanes/engine"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start()
	c.AddIteration()
	c.AddOutcome(engine.WithComm, false, false)
	c.AddOutcome(engine.NoComm, true, true)
	c.AddOutcome(engine.Base, true, false)
	c.AddIteration()
	c.AddOutcome(engine.WithComm, true, false)
	c.AddOutcome(engine.NoComm, true, false)
	c.AddOutcome(engine.Base, false, false)
	c.AddSkipped()

	summary := c.Complete()

	require.Equal(t, Tally{WithComm: 1, NoComm: 2, Base: 1, Iterations: 2, Skipped: 1}, summary.Tally)
	require.Equal(t, StrategyMetric{Runs: 2, Failures: 2, Collisions: 1}, summary.Strategies["no_comm"])
	require.False(t, summary.EndTime.Before(summary.StartTime))
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root)
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, root, filepath.Dir(w.Dir()), "Run directory should be created under the root")

	t.Run("setup and summary carry the run id", func(t *testing.T) {
		require.NoError(t, w.WriteSetup(Setup{Car1Model: "a", Car2Model: "b", Iterations: 3}))
		require.NoError(t, w.WriteSummary(Summary{Tally: Tally{WithComm: 1}}))

		data, err := os.ReadFile(w.Path("summary.json"))
		require.NoError(t, err)
		var summary Summary
		require.NoError(t, json.Unmarshal(data, &summary))
		require.Equal(t, w.RunID(), summary.RunID)
		require.Equal(t, 1, summary.Tally.WithComm)

		data, err = os.ReadFile(w.Path("setup.json"))
		require.NoError(t, err)
		var setup Setup
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, w.RunID(), setup.RunID)
		require.Equal(t, 3, setup.Iterations)
	})

	t.Run("iteration records", func(t *testing.T) {
		records := []IterationRecord{
			{Iteration: 1, Strategy: "with_comm", Ambulance: "right", Car1Side: "right", Car2Side: "left",
				Car1Action: "left", Car2Action: "slow down", Car1Message: "moving, left", Failure: false, Collision: true},
		}
		require.NoError(t, w.WriteIterationRecords(records))

		f, err := os.Open(w.Path("iterations.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2, "Header plus one row")
		require.Equal(t, "iteration", rows[0][0])
		require.Equal(t, []string{"1", "with_comm", "right", "right", "left", "left", "slow down", "moving, left", "", "false", "true", ""}, rows[1])
	})
}
