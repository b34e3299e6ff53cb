package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cellsim/internal/sim"
)

type ExportData struct {
	Run    RunMetadata          `json:"run"`
	Frames []sim.Frame          `json:"frames"`
	Series map[string][]float64 `json:"series"`
}

// Export loads a stored run and writes it as a single JSON document.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	series, _, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Run: *meta, Frames: frames, Series: series})
}

func (s *Store) ExportFile(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Export(f, runID)
}
