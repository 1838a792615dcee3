package feed

// SeriesProvider supplies the two bar arenas the oscillator reads: the base
// resolution stream the output is indexed by, and the aggregation stream the
// oscillator is computed on. Both may be the same arena.
type SeriesProvider interface {
	Base() *BarSeries
	Aggregate() *BarSeries
}

// StaticProvider serves two independently loaded arenas.
type StaticProvider struct {
	base *BarSeries
	agg  *BarSeries
}

// NewStaticProvider pairs base and aggregation arenas. A nil aggregation arena
// means the base arena is used for both.
func NewStaticProvider(base, agg *BarSeries) *StaticProvider {
	if agg == nil {
		agg = base
	}

	return &StaticProvider{base: base, agg: agg}
}

func (p *StaticProvider) Base() *BarSeries {
	return p.base
}

func (p *StaticProvider) Aggregate() *BarSeries {
	return p.agg
}
