// Package export renders stored sweep data to standalone SVG charts.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/varsense/internal/sweep"
)

// Series selects one column of a sweep for plotting.
type Series struct {
	Label string
	Color string
	Value func(sweep.Point) float64
}

// DefaultSeries covers the three quantities a CoV sweep records.
func DefaultSeries() []Series {
	return []Series{
		{Label: "total index", Color: "#00ff00", Value: func(p sweep.Point) float64 { return p.TotalIndex }},
		{Label: "lower index (complement)", Color: "#00bfff", Value: func(p sweep.Point) float64 { return p.LowerComplement }},
		{Label: "model variance", Color: "#ff8c00", Value: func(p sweep.Point) float64 { return p.ModelVariance }},
	}
}

// SweepToSVG renders sweep points as polylines over CoV with a shared
// y-axis. Each series is scaled against the global min/max so relative
// magnitudes stay comparable.
func SweepToSVG(points []sweep.Point, series []Series, width, height int) string {
	if len(points) < 2 || len(series) == 0 {
		return ""
	}

	minX, maxX := points[0].CoV, points[0].CoV
	for _, p := range points {
		if p.CoV < minX {
			minX = p.CoV
		}
		if p.CoV > maxX {
			maxX = p.CoV
		}
	}

	minY, maxY := series[0].Value(points[0]), series[0].Value(points[0])
	for _, s := range series {
		for _, p := range points {
			v := s.Value(p)
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, s := range series {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, s.Color))
		for i, p := range points {
			x := (p.CoV - minX) / rangeX * float64(width)
			y := float64(height) - (s.Value(p)-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	// Legend in the top-left corner.
	legendY := 20
	for _, s := range series {
		sb.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, legendY, s.Color, s.Label))
		legendY += 16
	}

	sb.WriteString(fmt.Sprintf(`<text x="10" y="%d" fill="#888888" font-family="monospace" font-size="12">CoV %.2f .. %.2f</text>
`, height-10, minX, maxX))

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteSweepSVG renders the default series and writes the chart to path.
func WriteSweepSVG(path string, points []sweep.Point, width, height int) error {
	svg := SweepToSVG(points, DefaultSeries(), width, height)
	if svg == "" {
		return fmt.Errorf("export: not enough sweep points to plot")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("export: failed to write svg: %w", err)
	}
	return nil
}
