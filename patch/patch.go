package patch

import (
	"fmt"

	"github.com/handegar/pdrun/base"
)

// Source feeds an inlet: either an outlet of another object or a constant
// given as a creation argument.
type Source struct {
	Object   *Object // nil for constants
	Outlet   int
	Constant float32
}

func (s *Source) IsConstant() bool {
	return s.Object == nil
}

func (s *Source) String() string {
	if s == nil {
		return "-"
	}
	if s.IsConstant() {
		return fmt.Sprintf("%f", s.Constant)
	}
	return fmt.Sprintf("#%d:%d", s.Object.ID, s.Outlet)
}

type Inlet struct {
	Source *Source // nil when unconnected
}

type Object struct {
	ID      int
	Kind    int    // base.Obj, base.Msg or base.Text
	Class   string // Only for base.Obj
	Args    []string
	Content string // Message content or comment text

	Inlets  []Inlet
	Outlets int
}

func (o *Object) String() string {
	switch o.Kind {
	case base.Msg:
		return fmt.Sprintf("#%d msg(%s)", o.ID, o.Content)
	case base.Text:
		return fmt.Sprintf("#%d text(%s)", o.ID, o.Content)
	}
	return fmt.Sprintf("#%d %s", o.ID, o.Class)
}

// Connected reports whether the given inlet has a source.
func (o *Object) Connected(inlet int) bool {
	return inlet < len(o.Inlets) && o.Inlets[inlet].Source != nil
}

type Connection struct {
	Source       int
	SourceOutlet int
	Target       int
	TargetInlet  int
}

type Patch struct {
	Objects     []*Object
	Connections []Connection
}

// ObjectsOfClass returns all objects of the given class in index order.
func (p *Patch) ObjectsOfClass(class string) []*Object {
	var ret []*Object
	for _, o := range p.Objects {
		if o.Kind == base.Obj && o.Class == class {
			ret = append(ret, o)
		}
	}
	return ret
}
