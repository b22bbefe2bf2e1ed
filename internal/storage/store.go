package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/varsense/internal/sensitivity"
	"github.com/san-kum/varsense/internal/sweep"
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

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"` // estimate or sweep
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Samples   int                `json:"samples"`
	Targets   []int              `json:"targets"`
	Normalize bool               `json:"normalize"`
	CoV       float64            `json:"cov"`
	Results   map[string]float64 `json:"results,omitempty"`
}

// SaveEstimate persists one estimation run as a metadata.json document.
func (s *Store) SaveEstimate(model string, seed int64, targets []int, normalize bool, cov float64, result sensitivity.Result) (string, error) {
	meta := RunMetadata{
		ID:        fmt.Sprintf("%s_%d", model, time.Now().Unix()),
		Kind:      "estimate",
		Model:     model,
		Timestamp: time.Now(),
		Seed:      seed,
		Samples:   result.Samples,
		Targets:   targets,
		Normalize: normalize,
		CoV:       cov,
		Results: map[string]float64{
			"lower_index":    result.LowerIndex,
			"total_index":    result.TotalIndex,
			"model_variance": result.ModelVariance,
			"model_mean":     result.ModelMean,
		},
	}
	if err := s.writeMetadata(meta); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// SaveSweep persists a CoV sweep: metadata.json plus the plain-text
// sweep rows in sweep.dat.
func (s *Store) SaveSweep(model string, seed int64, targets []int, samples int, points []sweep.Point) (string, error) {
	meta := RunMetadata{
		ID:        fmt.Sprintf("%s_sweep_%d", model, time.Now().Unix()),
		Kind:      "sweep",
		Model:     model,
		Timestamp: time.Now(),
		Seed:      seed,
		Samples:   samples,
		Targets:   targets,
	}
	if err := s.writeMetadata(meta); err != nil {
		return "", err
	}
	if err := sweep.WriteFile(filepath.Join(s.baseDir, meta.ID, "sweep.dat"), points); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func (s *Store) writeMetadata(meta RunMetadata) error {
	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSweep reads back the sweep rows of a sweep run.
func (s *Store) LoadSweep(runID string) ([]sweep.Point, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "sweep.dat"))
	if err != nil {
		return nil, err
	}

	points := make([]sweep.Point, 0)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("storage: malformed sweep row %q", line)
		}

		vals := make([]float64, 4)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: malformed sweep value %q: %w", field, err)
			}
			vals[i] = v
		}
		points = append(points, sweep.Point{
			CoV:             vals[0],
			TotalIndex:      vals[1],
			LowerComplement: vals[2],
			ModelVariance:   vals[3],
		})
	}
	return points, nil
}
