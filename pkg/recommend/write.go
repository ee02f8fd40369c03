package recommend

import (
	"bufio"
	"io"
	"strconv"
)

// Write renders g as a strict graph with quoted tipo and weight attributes:
// one node per line, a blank line, then one weighted edge per line.
func Write(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)

	if g.Name == "" {
		bw.WriteString("strict graph {")
	} else {
		bw.WriteString("strict graph " + g.Name + " {")
	}
	for _, n := range g.nodes {
		bw.WriteString("\n\t" + n.Name + `["tipo"=`)
		bw.WriteByte(byte(n.Kind))
		bw.WriteByte(']')
	}
	bw.WriteString("\n\n")

	for _, e := range g.edges {
		bw.WriteString("\t" + e.Consumer + " -- " + e.Product + `["weight"=` + strconv.FormatInt(e.Weight, 10) + "]\n")
	}
	bw.WriteString("}\n")

	// bufio.Writer keeps the first error and reports it here
	return bw.Flush()
}
