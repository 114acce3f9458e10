package blocksinfo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/pkg/safe"
)

const (
	curSpec          = "cur"
	maxAddClauseSize = 30
)

// RangeSpec is a parsed range argument. FromTip, NBlocks and Step are zero when absent.
type RangeSpec struct {
	First   uint64
	Last    uint64
	FromTip uint64
	NBlocks uint64
	Step    uint64
}

// Heights expands the range into the visited heights.
func (r RangeSpec) Heights() []uint64 {
	step := r.Step
	if step == 0 {
		step = 1
	}
	out := make([]uint64, 0, (r.Last-r.First)/step+1)
	for h := r.First; h <= r.Last; h += step {
		out = append(out, h)
		if r.Last-h < step {
			break
		}
	}
	return out
}

// Selection is the resolved set of heights for one run. Heights is non-nil for
// stepped ranges and explicit lists; otherwise First..Last is a contiguous range.
// Explicit is set when the heights were given as separate arguments, in which
// case First and Last are unused.
type Selection struct {
	Heights  []uint64
	First    uint64
	Last     uint64
	Explicit bool
}

// EndsAt reports whether the selection is a range ending at height h.
func (s Selection) EndsAt(h uint64) bool {
	return !s.Explicit && s.Last == h
}

// Contiguous reports whether the selection is an uninterrupted ascending range.
func (s Selection) Contiguous() bool {
	return s.Heights == nil
}

// All returns the heights in visiting order.
func (s Selection) All() []uint64 {
	if s.Heights != nil {
		return s.Heights
	}
	return RangeSpec{First: s.First, Last: s.Last}.Heights()
}

// ResolveArgs converts positional arguments into a Selection: no arguments
// selects the tip, one argument is a range specifier, several are explicit heights.
func ResolveArgs(args []string, tip uint64) (Selection, error) {
	switch len(args) {
	case 0:
		return Selection{First: tip, Last: tip}, nil
	case 1:
		r, err := ParseRangeSpec(args[0], tip)
		if err != nil {
			return Selection{}, err
		}
		if r.Step != 0 {
			return Selection{Heights: r.Heights(), First: r.First, Last: r.Last}, nil
		}
		return Selection{First: r.First, Last: r.Last}, nil
	default:
		heights := make([]uint64, 0, len(args))
		for _, arg := range args {
			h, err := ParseBlockSpec(arg, tip)
			if err != nil {
				return Selection{}, err
			}
			heights = append(heights, h)
		}
		return Selection{Heights: heights, Explicit: true}, nil
	}
}

// ParseBlockSpec resolves "cur" or a decimal height not above tip.
func ParseBlockSpec(arg string, tip uint64) (uint64, error) {
	if arg == curSpec {
		return tip, nil
	}
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if strings.HasPrefix(arg, "-") {
				return 0, rangeErr(arg, ErrNegativeHeight)
			}
			return 0, rangeErr(arg, ErrHeightAboveTip)
		}
		return 0, rangeErr(arg, ErrInvalidBlockSpec)
	}
	h, err := safe.Uint64(n)
	if err != nil {
		return 0, rangeErr(arg, ErrNegativeHeight)
	}
	if h > tip {
		return 0, rangeErr(arg, ErrHeightAboveTip)
	}
	return h, nil
}

// ParseRangeSpec parses a range argument against the current tip:
//
//	-N[+nblocks[+step]]
//	first[-last][+nblocks[+step]] or first-last[+step]
//
// where first and last are heights or "cur", and each +clause is a product
// of decimal factors such as 144*10.
func ParseRangeSpec(arg string, tip uint64) (RangeSpec, error) {
	p := rangeParser{arg: arg, rest: arg, tip: tip}

	var first, last *uint64
	fromTip, ok, err := p.fromTip()
	if err != nil {
		return RangeSpec{}, err
	}
	if ok {
		f := tip - fromTip
		first = &f
	} else if first, last, err = p.absRange(); err != nil {
		return RangeSpec{}, err
	}

	add1, err := p.add()
	if err != nil {
		return RangeSpec{}, err
	}
	add2, err := p.add()
	if err != nil {
		return RangeSpec{}, err
	}
	if p.rest != "" {
		return RangeSpec{}, rangeErr(arg, ErrInvalidRange)
	}
	if add2 != 0 && last != nil {
		return RangeSpec{}, rangeErr(arg, ErrInvalidRange)
	}

	nblocks, step := add1, add2
	if last != nil {
		nblocks, step = 0, add1
	}

	if nblocks != 0 {
		if first == nil {
			f := tip - nblocks + 1
			first = &f
		}
		l := *first + nblocks - 1
		last = &l
	}

	if first == nil {
		return RangeSpec{}, rangeErr(arg, ErrInvalidBlockSpec)
	}
	if last == nil {
		last = first
	}
	if *first > tip {
		return RangeSpec{}, rangeErr(strconv.FormatUint(*first, 10), ErrHeightAboveTip)
	}
	if *last > tip {
		return RangeSpec{}, rangeErr(strconv.FormatUint(*last, 10), ErrHeightAboveTip)
	}
	if *first > *last {
		return RangeSpec{}, rangeErr(fmt.Sprintf("%d-%d", *first, *last), ErrInvalidBlockRange)
	}

	return RangeSpec{
		First:   *first,
		Last:    *last,
		FromTip: fromTip,
		NBlocks: nblocks,
		Step:    step,
	}, nil
}

// rangeParser consumes a range argument left to right; rest holds the unparsed suffix.
type rangeParser struct {
	arg  string
	rest string
	tip  uint64
}

func (p *rangeParser) fromTip() (uint64, bool, error) {
	if !strings.HasPrefix(p.rest, "-") {
		return 0, false, nil
	}
	n := leadingCount(p.rest[1:], isDigit)
	if n == 0 {
		return 0, false, nil
	}
	digits := p.rest[1 : n+1]
	p.rest = p.rest[n+1:]

	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, false, rangeErr(digits, ErrNBlocks)
	}
	if err := p.checkNBlocks(digits, v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (p *rangeParser) absRange() (*uint64, *uint64, error) {
	n := leadingCount(p.rest, isNotSign)
	if n == 0 {
		return nil, nil, nil
	}
	firstArg := p.rest[:n]
	p.rest = p.rest[n:]

	first, err := ParseBlockSpec(firstArg, p.tip)
	if err != nil {
		return nil, nil, err
	}

	if !strings.HasPrefix(p.rest, "-") {
		return &first, nil, nil
	}
	n = leadingCount(p.rest[1:], isNotSign)
	if n == 0 {
		return &first, nil, nil
	}
	lastArg := p.rest[1 : n+1]
	p.rest = p.rest[n+1:]

	last, err := ParseBlockSpec(lastArg, p.tip)
	if err != nil {
		return nil, nil, err
	}
	return &first, &last, nil
}

// add parses one "+factor[*factor...]" clause, returning 0 when none is present.
func (p *rangeParser) add() (uint64, error) {
	if !strings.HasPrefix(p.rest, "+") {
		return 0, nil
	}
	n := leadingCount(p.rest[1:], func(c byte) bool { return isDigit(c) || c == '*' })
	if n == 0 {
		return 0, nil
	}
	clause := p.rest[1 : n+1]
	p.rest = p.rest[n+1:]

	label := "+" + clause
	if strings.Trim(clause, "*") != clause {
		return 0, rangeErr(label, ErrMalformedAddClause)
	}
	if len(clause) > maxAddClauseSize {
		return 0, rangeErr(label, ErrAddClauseTooLong)
	}

	product := uint64(1)
	for _, factor := range strings.Split(clause, "*") {
		if factor == "" {
			return 0, rangeErr(label, ErrMalformedAddClause)
		}
		v, err := strconv.ParseUint(factor, 10, 64)
		if err != nil {
			return 0, rangeErr(label, ErrNBlocks)
		}
		if product, err = safe.Mul(product, v); err != nil {
			return 0, rangeErr(label, ErrNBlocks)
		}
	}
	if err := p.checkNBlocks(label, product); err != nil {
		return 0, err
	}
	return product, nil
}

func (p *rangeParser) checkNBlocks(label string, v uint64) error {
	if v == 0 || v > p.tip {
		return rangeErr(label, ErrNBlocks)
	}
	return nil
}

func leadingCount(s string, pred func(byte) bool) int {
	n := 0
	for n < len(s) && pred(s[n]) {
		n++
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNotSign(c byte) bool {
	return c != '+' && c != '-'
}
