package util

import (
	"fmt"
	"io"
	"sort"

	"crowd-status/facet"
	"crowd-status/models/venue"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// StatusCounts tallies table-seat statuses per match date.
type StatusCounts struct {
	Dates  []string
	Counts map[facet.ReservationStatus][]int
}

// CountTableStatuses builds the per-date tally from projected results.
func CountTableStatuses(results []facet.VenueResult) StatusCounts {
	perDate := make(map[string]map[facet.ReservationStatus]int)
	for _, r := range results {
		for _, m := range r.Matches {
			if perDate[m.Date] == nil {
				perDate[m.Date] = make(map[facet.ReservationStatus]int)
			}
			perDate[m.Date][m.Table.Status]++
		}
	}

	dates := make([]string, 0, len(perDate))
	for d := range perDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	counts := make(map[facet.ReservationStatus][]int, len(facet.Statuses))
	for _, st := range facet.Statuses {
		row := make([]int, len(dates))
		for i, d := range dates {
			row[i] = perDate[d][st]
		}
		counts[st] = row
	}
	return StatusCounts{Dates: dates, Counts: counts}
}

// RenderStatusChart writes an HTML stacked bar chart of table-seat status by date.
func RenderStatusChart(w io.Writer, results []facet.VenueResult, lang venue.Language) error {
	tally := CountTableStatuses(results)

	title := "日付別 テーブル席の空き状況"
	if lang == venue.LanguageEn {
		title = "Table availability by date"
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
	)
	bar.SetXAxis(tally.Dates)

	for _, label := range facet.StatusLabels {
		name := label.Icon + " " + label.LabelJa
		if lang == venue.LanguageEn {
			name = label.Icon + " " + label.LabelEn
		}
		data := make([]opts.BarData, 0, len(tally.Dates))
		for _, n := range tally.Counts[label.Status] {
			data = append(data, opts.BarData{Value: n})
		}
		bar.AddSeries(name, data, charts.WithBarChartOpts(opts.BarChart{Stack: "status"}))
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render status chart: %w", err)
	}
	return nil
}
