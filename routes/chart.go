/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"bytes"
	htmltemplate "html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lablens/lablens/lab"
)

// TrendChart is a rendered chart for one test.
type TrendChart struct {
	Name string
	HTML htmltemplate.HTML
}

// trendCharts renders a line chart for every current test measured in at
// least two periods.
func trendCharts(panel lab.LabPanel) ([]TrendChart, error) {
	current, ok := panel.Current()
	if !ok {
		return nil, nil
	}

	var out []TrendChart
	for _, r := range current.Results {
		points := lab.Series(panel, r.Name)
		if len(points) < 2 {
			continue
		}

		html, err := generateTrendChart(lab.DisplayName(r.Name), r.Unit, points)
		if err != nil {
			return nil, err
		}

		out = append(out, TrendChart{Name: lab.DisplayName(r.Name), HTML: htmltemplate.HTML(html)})
	}

	return out, nil
}

// generateTrendChart creates a line chart of a test's values, oldest first
func generateTrendChart(title, unit string, points []lab.SeriesPoint) (string, error) {
	xAxis := make([]string, 0, len(points))
	yData := make([]opts.LineData, 0, len(points))

	for _, p := range points {
		xAxis = append(xAxis, p.Label)
		yData = append(yData, opts.LineData{Value: p.Value})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "100%",
			Height: "280px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  unit,
			Scale: opts.Bool(true),
		}),
	)

	line.SetXAxis(xAxis).
		AddSeries(title, yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return buf.String(), nil
}
