package recommend

// GraphName names every recommendation graph Recommend builds.
const GraphName = "recomendacoes"

// Recommend builds the recommendation graph of a purchase graph g.
//
// For each consumer c1 and each product p1 it bought, every other buyer c2
// of p1 recommends to c1 each product c2 bought that c1 did not. An edge
// c1 -- p2 weighs the number of distinct consumers recommending p2 to c1.
// A consumer appears in the result once it shares a product with anyone,
// and so does every product those co-buyers bought, recommended or not.
func Recommend(g *Graph) *Graph {
	h := NewGraph(GraphName)

	for _, c1 := range g.Consumers() {
		// co-buyers of c1 whose purchases were already counted
		counted := make(map[string]bool)

		for _, p1 := range g.Bought(c1.Name) {
			for _, c2 := range g.Buyers(p1) {
				if c2 == c1.Name {
					continue
				}
				firstVisit := !counted[c2]
				counted[c2] = true

				for _, p2 := range g.Bought(c2) {
					product, _ := g.Node(p2)
					h.AddNode(product)
					h.AddNode(c1)

					if g.HasEdge(c1.Name, p2) {
						continue
					}
					if !h.HasEdge(c1.Name, p2) {
						h.AddEdge(c1.Name, p2, 1)
					} else if firstVisit {
						h.increment(c1.Name, p2)
					}
				}
			}
		}
	}

	return h
}
