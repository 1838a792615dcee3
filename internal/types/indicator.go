package types

// MAType selects the smoothing used by a moving average.
type MAType string

const (
	MATypeSimple      MAType = "simple"
	MATypeExponential MAType = "exponential"
	// MATypeSmoothed is Wilder's smoothing (the RMA used inside RSI).
	MATypeSmoothed MAType = "smoothed"
	MATypeWeighted MAType = "weighted"
)

// AppliedPrice selects which bar price feeds the oscillator.
type AppliedPrice string

const (
	AppliedPriceClose    AppliedPrice = "close"
	AppliedPriceOpen     AppliedPrice = "open"
	AppliedPriceHigh     AppliedPrice = "high"
	AppliedPriceLow      AppliedPrice = "low"
	AppliedPriceMedian   AppliedPrice = "median"
	AppliedPriceTypical  AppliedPrice = "typical"
	AppliedPriceWeighted AppliedPrice = "weighted"
)
