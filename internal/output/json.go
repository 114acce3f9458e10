package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goodnatureofminers/blockinsight7000-nodetools/internal/blocksinfo"
)

var _ blocksinfo.Renderer = (*JSON)(nil)

// JSON streams the report as a single object: rows go into "block_data" as
// they arrive and each statistics section becomes a key of its own. In raw
// mode values keep their native JSON types; otherwise the display text is
// emitted.
type JSON struct {
	w       *bufio.Writer
	raw     bool
	layout  *blocksinfo.Layout
	members int
	inRows  bool
	nrows   int
}

// NewJSON constructs a JSON renderer.
func NewJSON(w io.Writer, raw bool) *JSON {
	return &JSON{w: bufio.NewWriter(w), raw: raw}
}

func (j *JSON) Begin(layout *blocksinfo.Layout, rows bool) error {
	j.layout = layout
	j.w.WriteByte('{')
	if rows {
		if err := j.key("block_data"); err != nil {
			return err
		}
		j.w.WriteByte('[')
		j.inRows = true
	}
	return nil
}

func (j *JSON) Row(row *blocksinfo.BlockRow) error {
	if !j.inRows {
		return fmt.Errorf("row %d outside block_data", row.Height)
	}
	if j.nrows > 0 {
		j.w.WriteByte(',')
	}
	j.nrows++

	obj := make(orderedObject, 0, len(row.Fields))
	for i, f := range row.Fields {
		c := row.Cells[i]
		var v any = c.Text
		if j.raw {
			v = c.Raw
		}
		obj = append(obj, member{f.String(), v})
	}
	if err := j.encode(obj); err != nil {
		return err
	}
	return j.w.Flush()
}

func (j *JSON) Stats(block blocksinfo.StatBlock) error {
	j.closeRows()
	if err := j.key(block.Kind.String()); err != nil {
		return err
	}

	var obj orderedObject
	if block.Cells != nil {
		for _, f := range j.layout.Fields() {
			if v, ok := block.Cells[f]; ok {
				obj = append(obj, member{f.String(), v})
			}
		}
	} else {
		for _, line := range block.Lines {
			var v any = line.Value()
			if j.raw {
				v = line.Raw
			}
			obj = append(obj, member{line.Key, v})
		}
	}
	return j.encode(obj)
}

func (j *JSON) End() error {
	j.closeRows()
	j.w.WriteString("}\n")
	return j.w.Flush()
}

func (j *JSON) closeRows() {
	if j.inRows {
		j.w.WriteByte(']')
		j.inRows = false
	}
}

func (j *JSON) key(name string) error {
	if j.members > 0 {
		j.w.WriteByte(',')
	}
	j.members++
	return j.encode(name, ':')
}

func (j *JSON) encode(v any, suffix ...byte) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	if _, err := j.w.Write(data); err != nil {
		return err
	}
	_, err = j.w.Write(suffix)
	return err
}

type member struct {
	key   string
	value any
}

// orderedObject marshals as a JSON object preserving member order.
type orderedObject []member

func (o orderedObject) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, m := range o {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.key, err)
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}
