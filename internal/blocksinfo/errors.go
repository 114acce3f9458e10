package blocksinfo

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange       = errors.New("invalid range specifier")
	ErrInvalidBlockRange  = errors.New("invalid block range")
	ErrInvalidBlockSpec   = errors.New("invalid block specifier")
	ErrNegativeHeight     = errors.New("block number must be non-negative")
	ErrHeightAboveTip     = errors.New("requested block height greater than current chain tip")
	ErrNBlocks            = errors.New("nBlocks must be a positive integer not greater than current chain height")
	ErrMalformedAddClause = errors.New("malformed nBlocks specifier")
	ErrAddClauseTooLong   = errors.New("overly long nBlocks specifier")
	ErrUnknownField       = errors.New("unrecognized field")
	ErrUnknownStat        = errors.New("unrecognized stat")
	ErrEmptySelection     = errors.New("no blocks selected")
	// ErrMalformedBlock is returned by a Daemon when a raw block or its coinbase cannot be decoded.
	ErrMalformedBlock = errors.New("malformed block")
)

// RangeError reports a user supplied argument that could not be resolved to block heights.
type RangeError struct {
	Arg string
	Err error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%q: %v", e.Arg, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}

func rangeErr(arg string, err error) error {
	return &RangeError{Arg: arg, Err: err}
}
