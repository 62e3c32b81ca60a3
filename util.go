package loanpredictor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	// PositiveColor marks contributions pushing the prediction higher
	PositiveColor = "#ff0051"
	// NegativeColor marks contributions pushing the prediction lower
	NegativeColor = "#008bfb"
)

var ErrNoResults = errors.New("no results to plot")

func barColor(v float64) string {
	if v < 0 {
		return NegativeColor
	}
	return PositiveColor
}

// AttributionBar generates a horizontal echart bar chart of the contributions. The strongest
// contribution is drawn on top. If opt is nil the default options are used.
func AttributionBar(title string, contributions []Contribution, opt *Options) *charts.Bar {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	ranked := Attribution{Contributions: contributions}.Ranked()
	if opt.MaxPlotFeatures > 0 && len(ranked) > opt.MaxPlotFeatures {
		ranked = ranked[:opt.MaxPlotFeatures]
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(
			opts.Initialization{
				PageTitle: title,
				Width:     opt.PlotWidth,
				Height:    opt.PlotHeight,
			},
		),
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	// category axis is drawn bottom up once reversed
	labels := make([]string, 0, len(ranked))
	barData := make([]opts.BarData, 0, len(ranked))
	for i := len(ranked) - 1; i >= 0; i-- {
		c := ranked[i]
		labels = append(labels, c.Label())
		barData = append(barData, opts.BarData{
			Name:  c.Label(),
			Value: c.Attribution,
			ItemStyle: &opts.ItemStyle{
				Color: barColor(c.Attribution),
			},
		})
	}

	bar.SetXAxis(labels).
		AddSeries("Attribution", barData).
		XYReversal()
	return bar
}

// RenderAttribution writes a standalone html document with the attribution chart of the
// results
func RenderAttribution(w io.Writer, res *Results, opt *Options) error {
	if res == nil {
		return ErrNoResults
	}
	return AttributionBar("Price Factors Explained", res.Attribution.Contributions, opt).Render(w)
}

// AttributionHTML renders the attribution chart into a standalone html document
func AttributionHTML(res *Results, opt *Options) (string, error) {
	var buf bytes.Buffer
	if err := RenderAttribution(&buf, res, opt); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlotResults uses the Apache Echarts library to generate an html file showing the attribution
// of every assembled column along with the attribution folded back into the input fields
func PlotResults(path string, res *Results, opt *Options) error {
	if res == nil {
		return ErrNoResults
	}

	page := components.NewPage()
	page.PageTitle = "Loan Prediction"
	page.AddCharts(
		AttributionBar("Price Factors Explained", res.Attribution.Contributions, opt),
		AttributionBar("Price Factors By Field", res.Attribution.ByField(), opt),
	)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	defer file.Close()

	return page.Render(file)
}
