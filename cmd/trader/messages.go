package main

import "github.com/moznion/go-optional"

// resultMsg carries the rendered output of a completed exchange operation.
type resultMsg struct {
	Output string
}

// opErrorMsg indicates a failed or rejected operation.
type opErrorMsg struct {
	Err error
}

// priceHintMsg carries the current market price shown while filling in a
// stop order form. None means the lookup failed.
type priceHintMsg struct {
	Symbol string
	Price  optional.Option[float64]
}
