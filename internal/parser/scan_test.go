package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	title := "(DX11) Nuke <x> Launcher [WiP]"
	spans := Scan(title)
	require.Len(t, spans, 3)

	assert.Equal(t, Span{Kind: Paren, Start: 0, End: 5, Content: "DX11"}, spans[0])
	assert.Equal(t, Angle, spans[1].Kind)
	assert.Equal(t, "x", spans[1].Content)
	assert.Equal(t, "<x>", spans[1].Raw(title))
	assert.Equal(t, Square, spans[2].Kind)
	assert.Equal(t, "[WiP]", spans[2].Raw(title))
}

func TestScan_NoBrackets(t *testing.T) {
	assert.Empty(t, Scan("Plain Title"))
	assert.Empty(t, Scan(""))
}

func TestScan_Malformed(t *testing.T) {
	cases := []struct {
		Title    string
		Contents []string
	}{
		{"a ) b", nil},
		{"a ( b", nil},
		{"a ( b [c]", []string{"c"}},
		{"(a [b) c]", []string{"a [b"}},
		{"((a)", []string{"(a"}},
		{"[]", []string{""}},
		{"<< >", []string{"< "}},
		{"x ] [y] (", []string{"y"}},
	}
	for _, c := range cases {
		var got []string
		for _, s := range Scan(c.Title) {
			got = append(got, s.Content)
		}
		assert.Equal(t, c.Contents, got, "Scan(%q)", c.Title)
	}
}

func TestScan_SpansDoNotOverlap(t *testing.T) {
	spans := Scan("[a] (b) <c> [d (e] f)")
	for i := 1; i < len(spans); i++ {
		assert.Greater(t, spans[i].Start, spans[i-1].End)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "paren", Paren.String())
	assert.Equal(t, "square", Square.String())
	assert.Equal(t, "angle", Angle.String())
}
