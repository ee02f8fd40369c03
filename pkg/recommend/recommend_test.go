package recommend

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pkg.jsn.cam/bipgen/pkg/bipgen"
)

const purchases = `strict graph {
	c1 [tipo=c];
	c2 [tipo=c];
	c3 [tipo=c];
	c4 [tipo=c];
	p1 [tipo=p];
	p2 [tipo=p];
	p3 [tipo=p];
	p4 [tipo=p];
	p5 [tipo=p];
	c1 -- p1;
	c1 -- p2;
	c2 -- p1;
	c2 -- p3;
	c3 -- p1;
	c3 -- p2;
	c3 -- p3;
	c3 -- p4;
	c4 -- p5;
}
`

func readString(t *testing.T, s string) *Graph {
	t.Helper()
	g, err := Read(strings.NewReader(s))
	require.NoError(t, err)
	return g
}

func TestRecommendWeights(t *testing.T) {
	h := Recommend(readString(t, purchases))

	require.Equal(t, GraphName, h.Name)

	wantEdges := []Edge{
		{Consumer: "c1", Product: "p3", Weight: 2}, // from c2 and c3
		{Consumer: "c1", Product: "p4", Weight: 1}, // from c3
		{Consumer: "c2", Product: "p2", Weight: 2}, // from c1 and c3
		{Consumer: "c2", Product: "p4", Weight: 1}, // from c3
	}
	if diff := cmp.Diff(wantEdges, h.Edges()); diff != "" {
		t.Errorf("recommendation edges mismatch (-want +got):\n%s", diff)
	}

	// c3 already bought everything its co-buyers did; c4 shares nothing
	wantNodes := []Node{
		{"p1", Product}, {"c1", Consumer}, {"p3", Product}, {"p2", Product},
		{"p4", Product}, {"c2", Consumer}, {"c3", Consumer},
	}
	if diff := cmp.Diff(wantNodes, h.Nodes()); diff != "" {
		t.Errorf("recommendation nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestRecommendOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Recommend(readString(t, purchases))))

	want := "strict graph recomendacoes {\n" +
		"\tp1[\"tipo\"=p]\n" +
		"\tc1[\"tipo\"=c]\n" +
		"\tp3[\"tipo\"=p]\n" +
		"\tp2[\"tipo\"=p]\n" +
		"\tp4[\"tipo\"=p]\n" +
		"\tc2[\"tipo\"=c]\n" +
		"\tc3[\"tipo\"=c]\n" +
		"\n" +
		"\tc1 -- p3[\"weight\"=2]\n" +
		"\tc1 -- p4[\"weight\"=1]\n" +
		"\tc2 -- p2[\"weight\"=2]\n" +
		"\tc2 -- p4[\"weight\"=1]\n" +
		"}\n"
	require.Equal(t, want, buf.String())
}

func TestRecommendCountsEachCoBuyerOnce(t *testing.T) {
	g := readString(t, `strict graph {
	c1 [tipo=c];
	c2 [tipo=c];
	p1 [tipo=p];
	p2 [tipo=p];
	p3 [tipo=p];
	c1 -- p1;
	c1 -- p2;
	c2 -- p1;
	c2 -- p2;
	c2 -- p3;
}
`)

	h := Recommend(g)

	e, ok := h.Edge("c1", "p3")
	require.True(t, ok)
	require.Equal(t, int64(1), e.Weight, "c2 is reached through p1 and p2 but recommends once")
	require.Len(t, h.Edges(), 1)
}

func TestRecommendEmpty(t *testing.T) {
	h := Recommend(readString(t, "strict graph {\n\tc1 [tipo=c];\n\tp1 [tipo=p];\n\tc1 -- p1;\n}\n"))
	require.Empty(t, h.Nodes())
	require.Empty(t, h.Edges())

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, h))
	require.Equal(t, "strict graph recomendacoes {\n\n}\n", buf.String())
}

func TestRecommendGeneratedGraphs(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		r, _ := bipgen.NewRand(seed)
		consumers := int(seed%9) + 2
		products := int(seed%7) + 2

		var buf bytes.Buffer
		stats, err := bipgen.NewGraph(consumers, products, r).Emit(&buf)
		require.NoError(t, err)

		g, err := Read(&buf)
		require.NoError(t, err)
		require.Len(t, g.Nodes(), consumers+products)
		require.Len(t, g.Edges(), stats.Edges)

		h := Recommend(g)
		for _, e := range h.Edges() {
			require.False(t, g.HasEdge(e.Consumer, e.Product),
				"seed %d: %s already bought %s", seed, e.Consumer, e.Product)
			require.GreaterOrEqual(t, e.Weight, int64(1))
			require.LessOrEqual(t, e.Weight, int64(len(g.Buyers(e.Product))))
		}

		// Write's output reads back to the same graph
		var out bytes.Buffer
		require.NoError(t, Write(&out, h))
		back, err := Read(&out)
		require.NoError(t, err)
		require.Equal(t, h.Name, back.Name)
		require.Equal(t, h.Nodes(), back.Nodes())
		require.Equal(t, h.Edges(), back.Edges())
	}
}
