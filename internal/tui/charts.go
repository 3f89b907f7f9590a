package tui

import (
	"math"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/eliterealty/internal/catalog"
)

// trendEpoch anchors the monthly series on a real calendar so the time
// series chart can place it; only the month labels are shown.
var trendEpoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func priceTrendChart(points []catalog.PricePoint, w, h int) string {
	if len(points) == 0 || w < 10 || h < 4 {
		return mutedStyle.Render("No price data.")
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	lo = math.Floor(lo * 0.9)
	hi = math.Ceil(hi * 1.05)
	if hi <= lo {
		hi = lo + 1
	}

	start := trendEpoch
	end := trendEpoch.AddDate(0, len(points)-1, 0)

	chart := tslc.New(w, h)
	chart.SetStyle(lipgloss.NewStyle().Foreground(colorBrand))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(colorSurface2)
	chart.LabelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(lo, hi)
	chart.SetViewYRange(lo, hi)
	chart.Model.XLabelFormatter = func(_ int, v float64) string {
		return monthLabel(points, time.Unix(int64(v), 0).UTC())
	}
	for i, p := range points {
		chart.Push(tslc.TimePoint{Time: trendEpoch.AddDate(0, i, 0), Value: p.Price})
	}
	chart.DrawBraille()
	return chart.View()
}

// monthLabel names the series month a tick falls in, and only for ticks
// close to the start of that month so labels do not repeat.
func monthLabel(points []catalog.PricePoint, t time.Time) string {
	idx := (t.Year()-trendEpoch.Year())*12 + int(t.Month()-trendEpoch.Month())
	if idx < 0 || idx >= len(points) || t.Day() > 7 {
		return ""
	}
	return points[idx].Month
}

func demandChart(points []catalog.DemandPoint, w, h int) string {
	if len(points) == 0 || w < len(points) || h < 3 {
		return mutedStyle.Render("No demand data.")
	}
	data := make([]barchart.BarData, 0, len(points))
	for i, p := range points {
		style := lipgloss.NewStyle().Foreground(chartColors[i%len(chartColors)])
		data = append(data, barchart.BarData{
			Label:  p.Area,
			Values: []barchart.BarValue{{Name: p.Area, Value: p.Demand, Style: style}},
		})
	}
	const gap = 1
	barW := max(1, (w-gap*(len(points)-1))/len(points))
	chart := barchart.New(w, h,
		barchart.WithDataSet(data),
		barchart.WithBarGap(gap),
		barchart.WithBarWidth(barW),
	)
	chart.Draw()
	return chart.View()
}
