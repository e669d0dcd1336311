package disasm

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handegar/pdrun/base"
	"github.com/handegar/pdrun/dsp"
	"github.com/handegar/pdrun/patch"
)

const mixPatch = `#N canvas 0 22 450 300 10;
#X obj 30 27 osc~ 440;
#X obj 30 60 *~ 0.1;
#X obj 150 27 phasor~ 2;
#X obj 150 60 clip~ 0.2 0.8;
#X obj 30 100 dac~;
#X obj 150 100 log~;
#X connect 0 0 1 0;
#X connect 2 0 3 0;
#X connect 3 0 1 1;
#X connect 1 0 4 0;
#X connect 3 0 4 1;
`

func TestCodeListing(t *testing.T) {
	p, err := patch.ParseString(mixPatch)
	require.NoError(t, err)

	chain, err := dsp.BuildChain(p)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "chain", []byte(CodeListing(chain)))
}

func TestFormulae(t *testing.T) {
	p, err := patch.ParseString("#X obj 0 0 log~;\n#X obj 0 0 log~ 10;")
	require.NoError(t, err)

	assert.Equal(t, "ln(a)", Formulae(p.Objects[0]))
	assert.Equal(t, "ln(a) / ln(b)", Formulae(p.Objects[1]))
}

func TestEveryClassIsDocumented(t *testing.T) {
	for name := range base.Classes {
		_, found := ClassDocs[name]
		assert.True(t, found, "missing docs for %s", name)
	}
}

func TestObjectToStringWithoutFormulae(t *testing.T) {
	p, err := patch.ParseString("#X obj 0 0 sig~ 0.5;")
	require.NoError(t, err)

	assert.Equal(t, "  #0   sig~     0.500000\n", ObjectToString(p.Objects[0], false))
}
