package pdf

import (
	"math"

	"go.uber.org/zap"
)

type Adapter struct {
	pageMin, pageMax     int
	xRangeMin, xRangeMax float64
	logger               *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// WithPageRange limits extraction to pages [min, max], 1-based inclusive.
func WithPageRange(min, max int) Option {
	return func(a *Adapter) {
		a.pageMin = min
		a.pageMax = max
	}
}

// WithXRange keeps only characters whose device x position falls within
// [min, max). Useful for cutting off margin notes.
func WithXRange(min, max float64) Option {
	return func(a *Adapter) {
		a.xRangeMin = min
		a.xRangeMax = max
	}
}

func New(options ...Option) *Adapter {
	a := &Adapter{
		pageMin:   1,
		pageMax:   math.MaxInt,
		xRangeMin: 0,
		xRangeMax: math.Inf(1),
		logger:    zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	return a
}

const adapterName = "pdf"

func (a *Adapter) Name() string {
	return adapterName
}
