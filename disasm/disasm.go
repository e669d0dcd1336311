package disasm

import (
	"fmt"
	"strings"

	"github.com/handegar/pdrun/base"
	"github.com/handegar/pdrun/patch"
)

func PrintCodeListing(chain []*patch.Object) {
	fmt.Print(CodeListing(chain))
}

// CodeListing renders the chain in execution order, one object per line
// with its inlet sources and what it computes each tick.
func CodeListing(chain []*patch.Object) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n;;\n;; Signal chain (%d objects)\n;;\n", len(chain)))
	for _, o := range chain {
		sb.WriteString(ObjectToString(o, true))
	}
	sb.WriteString("\n")
	return sb.String()
}

func ObjectToString(o *patch.Object, showFormulae bool) string {
	var sources []string
	for _, inlet := range o.Inlets {
		sources = append(sources, inlet.Source.String())
	}

	ret := fmt.Sprintf("  #%-3d %-8s %s", o.ID, o.Class, strings.Join(sources, ", "))

	if showFormulae {
		diff := 40 - len(ret)
		if diff > 1 {
			ret += strings.Repeat(" ", diff)
		}
		ret += "\t;; " + Formulae(o)
	}

	return ret + "\n"
}

func Formulae(o *patch.Object) string {
	if o.Class == base.LOG && !o.Connected(1) {
		return "ln(a)"
	}
	doc, found := ClassDocs[o.Class]
	if !found {
		return "?"
	}
	return doc.Formulae
}
