package patch

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/handegar/pdrun/base"
)

// Parse reads a Pure Data text patch.
func Parse(r io.Reader) (*Patch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading patch")
	}
	return ParseString(string(data))
}

func ParseString(text string) (*Patch, error) {
	p := &Patch{}

	for i, record := range splitRecords(text) {
		if len(record) == 0 || record[0] != '#' {
			continue
		}
		if len(record) < 2 {
			return nil, errors.Errorf("record %d: missing chunk type", i)
		}

		body := strings.TrimSpace(record[2:])
		switch record[1] {
		case 'A', 'N': // Array data and framesets carry no DSP objects
			continue
		case 'X':
			if err := p.parseElement(body); err != nil {
				return nil, errors.Wrapf(err, "record %d", i)
			}
		default:
			return nil, errors.Errorf("record %d: unknown chunk type '%c'", i, record[1])
		}
	}

	for i, c := range p.Connections {
		if err := p.connect(c); err != nil {
			return nil, errors.Wrapf(err, "connection %d", i)
		}
	}

	return p, nil
}

// Records end with ';'. An escaped '\;' belongs to the record.
func splitRecords(text string) []string {
	var records []string
	var current strings.Builder

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '\\' && i+1 < len(text) && text[i+1] == ';' {
			current.WriteByte(';')
			i++
			continue
		}
		if ch == ';' {
			records = append(records, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteByte(ch)
	}

	if rest := strings.TrimSpace(current.String()); rest != "" {
		records = append(records, rest)
	}
	return records
}

func (p *Patch) parseElement(body string) error {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return errors.New("empty element")
	}

	kind, found := base.ElementNames[fields[0]]
	if !found {
		return errors.Errorf("unsupported element '%s'", fields[0])
	}

	if kind == base.Connect {
		c, err := parseConnection(fields[1:])
		if err != nil {
			return err
		}
		p.Connections = append(p.Connections, c)
		return nil
	}

	// x, y
	if len(fields) < 3 {
		return errors.Errorf("%s: missing position", fields[0])
	}

	o := &Object{ID: len(p.Objects), Kind: kind}
	switch kind {
	case base.Obj:
		if err := o.setClass(fields[3:]); err != nil {
			return err
		}
	default:
		o.Content = strings.Join(fields[3:], " ")
	}

	p.Objects = append(p.Objects, o)
	return nil
}

func (o *Object) setClass(fields []string) error {
	if len(fields) == 0 {
		return errors.New("obj: missing class name")
	}

	class, found := base.LookupClass(fields[0])
	if !found {
		return errors.Errorf("unsupported object '%s'", fields[0])
	}

	o.Class = class.Name
	o.Args = fields[1:]
	o.Inlets = make([]Inlet, class.Inlets)
	o.Outlets = class.Outlets

	for i, arg := range o.Args {
		if i >= len(class.ArgInlets) {
			break
		}
		v, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return errors.Wrapf(err, "%s: argument %d", class.Name, i)
		}
		o.Inlets[class.ArgInlets[i]].Source = &Source{Constant: float32(v)}
	}
	return nil
}

func parseConnection(fields []string) (Connection, error) {
	if len(fields) != 4 {
		return Connection{}, errors.Errorf("connect: expected 4 fields, got %d", len(fields))
	}

	var vals [4]int
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Connection{}, errors.Wrapf(err, "connect: field %d", i)
		}
		vals[i] = v
	}

	return Connection{
		Source:       vals[0],
		SourceOutlet: vals[1],
		Target:       vals[2],
		TargetInlet:  vals[3],
	}, nil
}

// A later connection into an inlet replaces an earlier one.
func (p *Patch) connect(c Connection) error {
	if c.Source < 0 || c.Source >= len(p.Objects) {
		return errors.Errorf("source object %d out of range", c.Source)
	}
	if c.Target < 0 || c.Target >= len(p.Objects) {
		return errors.Errorf("target object %d out of range", c.Target)
	}

	src := p.Objects[c.Source]
	dst := p.Objects[c.Target]
	if c.SourceOutlet < 0 || c.SourceOutlet >= src.Outlets {
		return errors.Errorf("%s has no outlet %d", src, c.SourceOutlet)
	}
	if c.TargetInlet < 0 || c.TargetInlet >= len(dst.Inlets) {
		return errors.Errorf("%s has no inlet %d", dst, c.TargetInlet)
	}

	dst.Inlets[c.TargetInlet].Source = &Source{Object: src, Outlet: c.SourceOutlet}
	return nil
}
