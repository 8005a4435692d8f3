package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Setup struct {
	RunID               string    `json:"run_id"`
	Car1Model           string    `json:"car1_model"`
	Car2Model           string    `json:"car2_model"`
	BaseModel           string    `json:"base_model"`
	DistillModel        string    `json:"distill_model"`
	Iterations          int       `json:"iterations"`
	SameSideProbability float64   `json:"same_side_probability"`
	Seed                uint64    `json:"seed"`
	StartTime           time.Time `json:"start_time"`
}

type IterationRecord struct {
	Iteration   int
	Strategy    string
	Ambulance   string
	Car1Side    string
	Car2Side    string
	Car1Action  string
	Car2Action  string
	Car1Message string
	Car2Message string
	Failure     bool
	Collision   bool
	Animation   string
}

type Writer struct {
	runID   string
	baseDir string
}

// NewWriter creates <root>/<timestamp>-<run id> for one experiment run.
func NewWriter(root string) (*Writer, error) {
	runID := uuid.New().String()
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp+"-"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		runID:   runID,
		baseDir: baseDir,
	}, nil
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// Path returns the location of name inside the run directory.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.baseDir, name)
}

func (w *Writer) WriteSetup(setup Setup) error {
	setup.RunID = w.runID
	return w.writeJSON("setup.json", setup)
}

func (w *Writer) WriteSummary(summary Summary) error {
	summary.RunID = w.runID
	return w.writeJSON("summary.json", summary)
}

func (w *Writer) writeJSON(name string, v any) error {
	f, err := os.Create(w.Path(name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteIterationRecords(records []IterationRecord) error {
	// Create a file
	f, err := os.Create(w.Path("iterations.csv"))
	if err != nil {
		return fmt.Errorf("failed to create iteration records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	header := []string{"iteration", "strategy", "ambulance_side", "car1_side", "car2_side",
		"car1_action", "car2_action", "car1_message", "car2_message", "failure", "collision", "animation"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write iteration records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.Iteration),
			record.Strategy,
			record.Ambulance,
			record.Car1Side,
			record.Car2Side,
			record.Car1Action,
			record.Car2Action,
			record.Car1Message,
			record.Car2Message,
			strconv.FormatBool(record.Failure),
			strconv.FormatBool(record.Collision),
			record.Animation,
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write iteration record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush iteration records: %w", err)
	}
	return nil
}
