package storage

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strconv"

	"github.com/san-kum/varsense/internal/sweep"
)

type ExportData struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Model     string             `json:"model"`
	Samples   int                `json:"samples"`
	Targets   []int              `json:"targets"`
	Normalize bool               `json:"normalize"`
	Results   map[string]float64 `json:"results,omitempty"`
	Sweep     []sweep.Point      `json:"sweep,omitempty"`
}

func exportData(meta *RunMetadata, points []sweep.Point) ExportData {
	return ExportData{
		ID:        meta.ID,
		Kind:      meta.Kind,
		Model:     meta.Model,
		Samples:   meta.Samples,
		Targets:   meta.Targets,
		Normalize: meta.Normalize,
		Results:   meta.Results,
		Sweep:     points,
	}
}

func ExportJSONStdout(meta *RunMetadata, points []sweep.Point) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(meta, points))
}

// ExportCSVStdout writes sweep rows as CSV with a header, for tools
// that prefer CSV over the raw whitespace format.
func ExportCSVStdout(points []sweep.Point) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"cov", "total_index", "lower_complement", "model_variance"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.CoV, 'g', -1, 64),
			strconv.FormatFloat(p.TotalIndex, 'g', -1, 64),
			strconv.FormatFloat(p.LowerComplement, 'g', -1, 64),
			strconv.FormatFloat(p.ModelVariance, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
