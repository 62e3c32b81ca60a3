package loanpredictor

const (
	// DefaultRangeOffset is the fixed half width of the displayed variation around the
	// rounded prediction. It is a heuristic, not derived from model uncertainty.
	DefaultRangeOffset = 110

	DefaultPlotWidth  = "600px"
	DefaultPlotHeight = "400px"
)

// Options configures how predictions are presented
type Options struct {
	RangeOffset int `json:"range_offset"`

	PlotWidth  string `json:"plot_width"`
	PlotHeight string `json:"plot_height"`
	// MaxPlotFeatures limits the bars of the attribution plot to the strongest contributions.
	// 0 plots every non zero contribution.
	MaxPlotFeatures int `json:"max_plot_features"`
}

// NewDefaultOptions returns the presentation options of the original demo
func NewDefaultOptions() *Options {
	return &Options{
		RangeOffset: DefaultRangeOffset,
		PlotWidth:   DefaultPlotWidth,
		PlotHeight:  DefaultPlotHeight,
	}
}
