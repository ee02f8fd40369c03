package bipgen

import (
	"io"
	"math/rand/v2"
	"strconv"
)

// Graph writes one randomly wired consumer/product graph as a strict,
// undirected DOT graph.
type Graph struct {
	Consumers int
	Products  int
	rand      *rand.Rand
}

// GraphStats describes what Emit wrote.
type GraphStats struct {
	Attempts int // edge draws made across all consumers
	Edges    int // edge statements written
}

// edge is keyed by the 1-based consumer and product indices.
type edge struct {
	consumer int
	product  int
}

var (
	graphOpen  = []byte("strict graph {\n")
	graphClose = []byte("}\n")
)

func NewGraph(consumers, products int, r *rand.Rand) *Graph {
	return &Graph{Consumers: consumers, Products: products, rand: r}
}

// Emit writes the header, every consumer and product declaration, the
// randomly drawn edges and the closing brace. Each consumer makes between 1
// and Products draws; a draw that repeats an already written pair is skipped.
func (g *Graph) Emit(w io.Writer) (GraphStats, error) {
	var stats GraphStats

	if _, err := w.Write(graphOpen); err != nil {
		return stats, err
	}
	for i := 1; i <= g.Consumers; i++ {
		if _, err := io.WriteString(w, "\t"+consumerLabel(i)+" [tipo=c];\n"); err != nil {
			return stats, err
		}
	}
	for j := 1; j <= g.Products; j++ {
		if _, err := io.WriteString(w, "\t"+productLabel(j)+" [tipo=p];\n"); err != nil {
			return stats, err
		}
	}

	// Reset per file; shared by every consumer of this graph.
	seen := make(map[edge]struct{})
	for i := 1; i <= g.Consumers; i++ {
		tries := between(g.rand, 1, g.Products)
		for range tries {
			k := between(g.rand, 1, g.Products)
			stats.Attempts++

			e := edge{consumer: i, product: k}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}

			if _, err := io.WriteString(w, "\t"+consumerLabel(i)+" -- "+productLabel(k)+";\n"); err != nil {
				return stats, err
			}
			stats.Edges++
		}
	}

	_, err := w.Write(graphClose)
	return stats, err
}

func consumerLabel(i int) string { return "c" + strconv.Itoa(i) }
func productLabel(j int) string  { return "p" + strconv.Itoa(j) }

// FileName is the name a case with the given counts is written under.
func FileName(consumers, products int) string {
	return strconv.Itoa(consumers) + "c_" + strconv.Itoa(products) + "p.dot"
}
