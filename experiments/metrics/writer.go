package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one searcher set-up taking part in an experiment
type AgentConfig struct {
	Name      string
	Variant   string
	Depth     int
	TieBreak  string
	Heuristic string
	Seed      uint64
	Timeout   time.Duration
}

// DecisionRecord is one configuration's decision on a shared state
type DecisionRecord struct {
	Config    string
	TieBreak  string
	Heuristic string
	Action    string
	Value     float64
	SearchMetric
}

type GameRecord struct {
	ID     int
	Config string
	GameMetric
}

type MoveRecord struct {
	Game int
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by experiment and current timestamp
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"name", "variant", "depth", "tie_break", "heuristic", "seed", "timeout"}
	rows := make([][]string, len(configs))
	for i, config := range configs {
		rows[i] = []string{
			config.Name,
			config.Variant,
			strconv.Itoa(config.Depth),
			config.TieBreak,
			config.Heuristic,
			strconv.FormatUint(config.Seed, 10),
			config.Timeout.String(),
		}
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	header := []string{"config", "variant", "depth", "tie_break", "heuristic", "action", "value", "nodes", "leaves", "cutoffs", "partial", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			record.Config,
			record.Variant,
			strconv.Itoa(record.Depth),
			record.TieBreak,
			record.Heuristic,
			record.Action,
			formatFloat(record.Value),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
			strconv.FormatBool(record.Partial),
			record.Duration.String(),
		}
	}
	return w.write("decision_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "turn", "agent", "action", "score", "variant", "depth", "nodes", "leaves", "cutoffs", "partial", "duration"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Turn),
			strconv.Itoa(record.Agent),
			record.Action,
			formatFloat(record.Score),
			record.Variant,
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
			strconv.FormatBool(record.Partial),
			record.Duration.String(),
		}
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "config", "start_time", "end_time", "duration", "total_moves", "rounds", "terminal", "final_score"}
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{
			strconv.Itoa(record.ID),
			record.Config,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Rounds),
			strconv.FormatBool(record.Terminal),
			formatFloat(record.FinalScore),
		}
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
