// Package recommend reads the consumer/product graphs written by bipgen and
// derives weighted product recommendations for each consumer.
package recommend

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax      = errors.New("malformed graph")
	ErrUnknownNode = errors.New("unknown node")
	ErrBadEdge     = errors.New("edge must join a consumer and a product")
)

// Kind is the value of a node's tipo attribute
type Kind byte

const (
	Consumer Kind = 'c'
	Product  Kind = 'p'
)

type Node struct {
	Name string
	Kind Kind
}

// Edge joins a consumer to a product. In a purchase graph the weight is 1;
// in a recommendation graph it counts the consumers behind the recommendation.
type Edge struct {
	Consumer string
	Product  string
	Weight   int64
}

type edgeKey struct {
	consumer string
	product  string
}

// Graph is an undirected bipartite graph that keeps nodes and edges in
// insertion order.
type Graph struct {
	Name string

	nodes   []Node
	nodeIdx map[string]int
	edges   []Edge
	edgeIdx map[edgeKey]int

	bought map[string][]string // consumer -> products, edge order
	buyers map[string][]string // product -> consumers, edge order
}

func NewGraph(name string) *Graph {
	return &Graph{
		Name:    name,
		nodeIdx: make(map[string]int),
		edgeIdx: make(map[edgeKey]int),
		bought:  make(map[string][]string),
		buyers:  make(map[string][]string),
	}
}

// AddNode adds n unless a node with the same name exists. It reports
// whether n was added.
func (g *Graph) AddNode(n Node) bool {
	if _, ok := g.nodeIdx[n.Name]; ok {
		return false
	}
	g.nodeIdx[n.Name] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	return true
}

// AddEdge joins two declared nodes, in either order, one of which must be a
// consumer and the other a product. A repeated pair is ignored and reported
// as not added.
func (g *Graph) AddEdge(a, b string, weight int64) (bool, error) {
	na, ok := g.Node(a)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownNode, a)
	}
	nb, ok := g.Node(b)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownNode, b)
	}

	switch {
	case na.Kind == Consumer && nb.Kind == Product:
	case na.Kind == Product && nb.Kind == Consumer:
		na, nb = nb, na
	default:
		return false, fmt.Errorf("%w: %s -- %s", ErrBadEdge, a, b)
	}

	key := edgeKey{consumer: na.Name, product: nb.Name}
	if _, dup := g.edgeIdx[key]; dup {
		return false, nil
	}
	g.edgeIdx[key] = len(g.edges)
	g.edges = append(g.edges, Edge{Consumer: na.Name, Product: nb.Name, Weight: weight})
	g.bought[na.Name] = append(g.bought[na.Name], nb.Name)
	g.buyers[nb.Name] = append(g.buyers[nb.Name], na.Name)
	return true, nil
}

func (g *Graph) Node(name string) (Node, bool) {
	i, ok := g.nodeIdx[name]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Edge returns the edge between a consumer and a product
func (g *Graph) Edge(consumer, product string) (Edge, bool) {
	i, ok := g.edgeIdx[edgeKey{consumer: consumer, product: product}]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

func (g *Graph) HasEdge(consumer, product string) bool {
	_, ok := g.edgeIdx[edgeKey{consumer: consumer, product: product}]
	return ok
}

// Nodes returns the nodes in insertion order
func (g *Graph) Nodes() []Node {
	return append([]Node(nil), g.nodes...)
}

// Edges returns the edges in insertion order
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Consumers returns the consumer nodes in insertion order
func (g *Graph) Consumers() []Node {
	var out []Node
	for _, n := range g.nodes {
		if n.Kind == Consumer {
			out = append(out, n)
		}
	}
	return out
}

// Bought returns the products a consumer is joined to, in edge order
func (g *Graph) Bought(consumer string) []string {
	return g.bought[consumer]
}

// Buyers returns the consumers joined to a product, in edge order
func (g *Graph) Buyers(product string) []string {
	return g.buyers[product]
}

func (g *Graph) increment(consumer, product string) {
	g.edges[g.edgeIdx[edgeKey{consumer: consumer, product: product}]].Weight++
}
