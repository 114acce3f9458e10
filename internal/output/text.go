// Package output renders block reports as aligned text or streamed JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/blocksinfo"
)

var _ blocksinfo.Renderer = (*Text)(nil)

// Text writes the report as an aligned table followed by the statistics sections.
type Text struct {
	w       io.Writer
	layout  *blocksinfo.Layout
	header  *color.Color
	label   *color.Color
	written bool
}

// NewText constructs a text renderer. Colors are emitted only when useColor is set.
func NewText(w io.Writer, useColor bool) *Text {
	t := &Text{
		w:      w,
		header: color.New(color.Bold),
		label:  color.New(color.FgCyan),
	}
	if useColor {
		t.header.EnableColor()
		t.label.EnableColor()
	} else {
		t.header.DisableColor()
		t.label.DisableColor()
	}
	return t
}

func (t *Text) Begin(layout *blocksinfo.Layout, rows bool) error {
	t.layout = layout
	if !rows {
		return nil
	}
	for _, line := range layout.Header() {
		if err := t.println(t.header.Sprint(line)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Text) Row(row *blocksinfo.BlockRow) error {
	return t.println(t.layout.Format(row.Texts()))
}

func (t *Text) Stats(block blocksinfo.StatBlock) error {
	if t.written {
		if err := t.println(""); err != nil {
			return err
		}
	}
	switch block.Kind {
	case blocksinfo.StatRange, blocksinfo.StatDiff:
	default:
		if err := t.println(t.header.Sprint(block.Label + ":")); err != nil {
			return err
		}
	}
	if block.Cells != nil {
		return t.println(strings.TrimRight(t.layout.FormatKeyed(block.Cells, ' '), " "))
	}
	for _, line := range block.Lines {
		label := fmt.Sprintf("%-*s", block.LabelWidth, line.Label+":")
		if err := t.println(t.label.Sprint(label) + " " + line.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (t *Text) End() error {
	return nil
}

func (t *Text) println(s string) error {
	t.written = true
	_, err := fmt.Fprintln(t.w, s)
	return err
}
