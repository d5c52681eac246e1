package http

import (
	"strconv"

	"disc-quiz-service/internal/domain"
)

// Bar chart geometry in SVG user units.
const (
	chartWidth  = 480
	chartHeight = 310
	plotLeft    = 56
	plotTop     = 36
	plotHeight  = 200
	barWidth    = 64
	barGap      = 36
)

// categoryColors fixes one color per category.
var categoryColors = map[domain.Category]string{
	domain.Dominance:         "red",
	domain.Influence:         "blue",
	domain.Steadiness:        "green",
	domain.Conscientiousness: "orange",
}

type barChart struct {
	Title    string
	XLabel   string
	YLabel   string
	Width    int
	Height   int
	PlotLeft int
	PlotTop  int
	Baseline int
	PlotEnd  int
	CenterX  int
	MidY     int
	Ticks    []chartTick
	Bars     []chartBar
}

type chartTick struct {
	Label string
	Y     float64
}

type chartBar struct {
	Category string
	Value    string
	Color    string
	X        float64
	Y        float64
	Width    float64
	Height   float64
	CenterX  float64
}

// newBarChart lays out one bar per category, percentages on the Y axis.
func newBarChart(dist domain.Distribution, format func(float64) string) barChart {
	chart := barChart{
		Title:    "Distribuição do Perfil DISC",
		XLabel:   "Categorias",
		YLabel:   "Porcentagem",
		Width:    chartWidth,
		Height:   chartHeight,
		PlotLeft: plotLeft,
		PlotTop:  plotTop,
		Baseline: plotTop + plotHeight,
		PlotEnd:  plotLeft + len(domain.Categories)*(barWidth+barGap),
		MidY:     plotTop + plotHeight/2,
	}
	chart.CenterX = (chart.PlotLeft + chart.PlotEnd) / 2
	for _, pct := range []int{0, 25, 50, 75, 100} {
		chart.Ticks = append(chart.Ticks, chartTick{
			Label: strconv.Itoa(pct) + "%",
			Y:     float64(chart.Baseline) - float64(pct)/100*plotHeight,
		})
	}
	for i, entry := range dist.Entries() {
		h := clampPercent(entry.Percent) / 100 * plotHeight
		x := float64(plotLeft + barGap/2 + i*(barWidth+barGap))
		chart.Bars = append(chart.Bars, chartBar{
			Category: string(entry.Category),
			Value:    format(entry.Percent),
			Color:    categoryColors[entry.Category],
			X:        x,
			Y:        float64(chart.Baseline) - h,
			Width:    barWidth,
			Height:   h,
			CenterX:  x + barWidth/2,
		})
	}
	return chart
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
