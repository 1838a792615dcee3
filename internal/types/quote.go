package types

// Quote is the current top of book for an instrument.
type Quote struct {
	Symbol string
	Bid    float64
	Ask    float64
	// Digits is the number of decimals prices are quoted with.
	Digits int
}
