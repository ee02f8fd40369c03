package recommend

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Line shapes accepted by Read. Attribute names and values may be quoted
// and statements may omit the trailing semicolon, so Write's output reads
// back as well as bipgen's.
var (
	headerLine = regexp.MustCompile(`^strict\s+graph(?:\s+"?(\w+)"?)?\s*\{$`)
	nodeLine   = regexp.MustCompile(`^"?(\w+)"?\s*\[\s*"?tipo"?\s*=\s*"?([cp])"?\s*\]\s*;?$`)
	edgeLine   = regexp.MustCompile(`^"?(\w+)"?\s*--\s*"?(\w+)"?\s*(?:\[\s*"?weight"?\s*=\s*"?(\d+)"?\s*\])?\s*;?$`)
)

// Read parses a strict undirected graph made of tipo-tagged node statements
// and consumer--product edge statements. Nodes must be declared before the
// edges that use them; a repeated node or edge keeps the first occurrence.
func Read(r io.Reader) (*Graph, error) {
	var g *Graph
	closed := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case closed:
			return nil, fmt.Errorf("%w: line %d: content after closing brace", ErrSyntax, lineNo)

		case g == nil:
			m := headerLine.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("%w: line %d: expected \"strict graph {\", got %q", ErrSyntax, lineNo, line)
			}
			g = NewGraph(m[1])

		case line == "}":
			closed = true

		case nodeLine.MatchString(line):
			m := nodeLine.FindStringSubmatch(line)
			g.AddNode(Node{Name: m[1], Kind: Kind(m[2][0])})

		case edgeLine.MatchString(line):
			m := edgeLine.FindStringSubmatch(line)
			weight := int64(1)
			if m[3] != "" {
				w, err := strconv.ParseInt(m[3], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: weight %q: %v", ErrSyntax, lineNo, m[3], err)
				}
				weight = w
			}
			if _, err := g.AddEdge(m[1], m[2], weight); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}

		default:
			return nil, fmt.Errorf("%w: line %d: unrecognized statement %q", ErrSyntax, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if g == nil {
		return nil, fmt.Errorf("%w: empty input", ErrSyntax)
	}
	if !closed {
		return nil, fmt.Errorf("%w: missing closing brace", ErrSyntax)
	}
	return g, nil
}
