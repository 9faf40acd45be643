package render

import (
	"bytes"
	"fmt"
	"puzzlestats/internal/stats"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	chartWidth  = 800
	chartHeight = 400
	// minBar keeps empty buckets visible.
	minBar = 0.2
)

var (
	barColor  = drawing.ColorFromHex("787c7e")
	textColor = drawing.ColorBlack
)

// DistributionChart renders a summary's histogram as a PNG bar chart.
func DistributionChart(title string, buckets []stats.Bucket) ([]byte, error) {
	if len(buckets) == 0 {
		return nil, fmt.Errorf("chart %q has no buckets", title)
	}

	bars := make([]chart.Value, 0, len(buckets))
	highest := 0
	for _, b := range buckets {
		highest = max(highest, b.Count)
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%d)", b.Label, b.Count),
			Value: max(float64(b.Count), minBar),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}
	if highest == 0 {
		title += ": no results"
	}

	graph := chart.BarChart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   60,
		Background: chart.Style{FillColor: drawing.ColorWhite},
		Canvas:     chart.Style{FillColor: drawing.ColorWhite},
		TitleStyle: chart.Style{FontColor: textColor},
		XAxis:      chart.Style{FontColor: textColor},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: textColor},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(highest) + 1},
		},
		Bars: bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
