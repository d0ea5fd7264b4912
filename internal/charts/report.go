// Package charts renders an HTML report for an assembled deck list.
package charts

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/recommendations"
)

// ChartConfig holds configuration for the report charts.
type ChartConfig struct {
	Width  string // Chart width (e.g., "900px")
	Height string // Chart height (e.g., "500px")
	Theme  string // Chart theme
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "900px",
		Height: "500px",
		Theme:  "light",
	}
}

// curveBuckets labels the mana-curve x-axis; the last bucket collects
// everything at seven or more.
var curveBuckets = []string{"0", "1", "2", "3", "4", "5", "6", "7+"}

// RenderDeckReport writes an HTML page with the deck's category breakdown
// and mana curve for a recommendation result.
func RenderDeckReport(result *recommendations.Result, config ChartConfig, outputPath string) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Deck report: %s", result.Lead.Name)
	page.AddCharts(
		categoryChart(result, config),
		curveChart(result, config),
	)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func categoryChart(result *recommendations.Result, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Category breakdown",
			Subtitle: fmt.Sprintf("Lead: %s", result.Lead.Name),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	categories := make([]string, 0, len(result.CategoryBreakdown))
	for category := range result.CategoryBreakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	values := make([]opts.BarData, len(categories))
	for i, category := range categories {
		values[i] = opts.BarData{Value: result.CategoryBreakdown[category]}
	}

	bar.SetXAxis(categories).AddSeries("Cards", values)
	return bar
}

func curveChart(result *recommendations.Result, config ChartConfig) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Mana curve",
			Subtitle: "Non-land recommendations by mana value",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
	)

	counts := make([]int, len(curveBuckets))
	for _, rec := range result.Recommendations {
		if rec.Category == recommendations.CategoryLands {
			continue
		}
		counts[manaBucket(rec.ManaValue)]++
	}

	values := make([]opts.BarData, len(counts))
	for i, count := range counts {
		values[i] = opts.BarData{Value: count}
	}

	bar.SetXAxis(curveBuckets).AddSeries("Cards", values)
	return bar
}

func manaBucket(manaValue float64) int {
	mv := int(manaValue)
	if mv < 0 {
		mv = 0
	}
	if mv > 7 {
		mv = 7
	}
	return mv
}
