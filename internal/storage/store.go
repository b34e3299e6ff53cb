package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/cellsim/internal/config"
	"github.com/san-kum/cellsim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	configFile     = "config.yaml"
	trajectoryFile = "trajectory.csv"
	seriesFile     = "series.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type GridInfo struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Pages int `json:"pages"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Cells      int                `json:"cells"`
	Molecules  int                `json:"molecules"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	StepsTaken int                `json:"steps_taken"`
	Contacts   int                `json:"contacts"`
	Grid       GridInfo           `json:"grid"`
	Warnings   []string           `json:"warnings,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata, the config that produced the
// run, every recorded frame and the metric series. meta.ID and
// meta.Timestamp are filled in.
func (s *Store) Save(meta RunMetadata, cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("run_%d", now.UnixNano())
	for n := 1; s.exists(meta.ID); n++ {
		meta.ID = fmt.Sprintf("run_%d_%d", now.UnixNano(), n)
	}
	meta.Timestamp = now
	meta.StepsTaken = result.StepsTaken
	meta.Contacts = result.Contacts
	meta.Metrics = result.Metrics

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if cfg != nil {
		if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
			return "", err
		}
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), result.Frames); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) exists(runID string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, runID))
	return err == nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeTrajectory(path string, frames []sim.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "time", "id", "kind", "x", "y", "z", "vx", "vy", "vz"}); err != nil {
		return err
	}
	for _, fr := range frames {
		for _, smp := range fr.Samples {
			row := []string{
				strconv.Itoa(fr.Step),
				formatFloat(fr.Time),
				strconv.Itoa(smp.ID),
				smp.Kind,
			}
			for _, v := range smp.Position {
				row = append(row, formatFloat(v))
			}
			for _, v := range smp.Velocity {
				row = append(row, formatFloat(v))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func seriesNames(series map[string][]float64) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	names := seriesNames(result.Series)
	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}
	for i, fr := range result.Frames {
		row := []string{formatFloat(fr.Time)}
		for _, name := range names {
			vals := result.Series[name]
			if i < len(vals) {
				row = append(row, formatFloat(vals[i]))
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// LoadTrajectory rebuilds the recorded frames of a run.
func (s *Store) LoadTrajectory(runID string) ([]sim.Frame, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}

	frames := make([]sim.Frame, 0)
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != 10 {
			continue
		}
		step, err := strconv.Atoi(rec[0])
		if err != nil {
			continue
		}
		id, err := strconv.Atoi(rec[2])
		if err != nil {
			continue
		}
		nums, ok := parseFloats(append([]string{rec[1]}, rec[4:]...))
		if !ok {
			continue
		}

		if len(frames) == 0 || frames[len(frames)-1].Step != step {
			frames = append(frames, sim.Frame{Step: step, Time: nums[0]})
		}
		fr := &frames[len(frames)-1]
		fr.Samples = append(fr.Samples, sim.Sample{
			ID:       id,
			Kind:     rec[3],
			Position: mgl64.Vec3{nums[1], nums[2], nums[3]},
			Velocity: mgl64.Vec3{nums[4], nums[5], nums[6]},
			Visible:  true,
		})
	}
	return frames, nil
}

// LoadSeries returns recorded metric series keyed by name and the sample times.
func (s *Store) LoadSeries(runID string) (map[string][]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return map[string][]float64{}, []float64{}, nil
	}

	header := records[0]
	series := make(map[string][]float64, len(header)-1)
	times := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		nums, ok := parseFloats(records[i])
		if !ok || len(nums) != len(header) {
			continue
		}
		times = append(times, nums[0])
		for j := 1; j < len(header); j++ {
			series[header[j]] = append(series[header[j]], nums[j])
		}
	}
	return series, times, nil
}

func parseFloats(fields []string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
