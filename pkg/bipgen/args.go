package bipgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

const (
	DefaultConsumers = 10
	DefaultProducts  = 10

	// MaxRandomCount bounds counts drawn for randomized cases.
	MaxRandomCount = 100
)

// Mode is how the command line asked for cases to be generated.
// It is one of Defaults, Batch or Sized.
type Mode interface {
	isMode()
	String() string
}

// Defaults writes a single 10x10 case.
type Defaults struct{}

// Batch writes Quantity cases with randomized counts.
type Batch struct {
	Quantity int
}

// Sized writes one case with the given counts.
type Sized struct {
	Consumers int
	Products  int
}

func (Defaults) isMode() {}
func (Batch) isMode()    {}
func (Sized) isMode()    {}

func (Defaults) String() string { return "defaults" }
func (b Batch) String() string  { return fmt.Sprintf("batch(%d)", b.Quantity) }
func (s Sized) String() string  { return fmt.Sprintf("sized(%d,%d)", s.Consumers, s.Products) }

// Params are the values the generation loop starts with.
type Params struct {
	Quantity  int
	Consumers int
	Products  int
}

// ParseMode resolves positional command-line tokens (program name excluded).
// Tokens past the second are ignored.
func ParseMode(tokens []string) (Mode, error) {
	switch len(tokens) {
	case 0:
		return Defaults{}, nil
	case 1:
		n, err := parseToken("quantity", tokens[0])
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: quantity must not be negative, got %d", ErrInvalidArgument, n)
		}
		return Batch{Quantity: n}, nil
	default:
		consumers, err := parseToken("consumers", tokens[0])
		if err != nil {
			return nil, err
		}
		products, err := parseToken("products", tokens[1])
		if err != nil {
			return nil, err
		}
		if consumers < 1 || products < 1 {
			return nil, fmt.Errorf("%w: counts must be positive, got %d consumers and %d products",
				ErrInvalidArgument, consumers, products)
		}
		return Sized{Consumers: consumers, Products: products}, nil
	}
}

func parseToken(name, tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrInvalidArgument, name, tok)
	}
	return n, nil
}

// Plan turns a mode into starting parameters. Only Batch consumes
// randomness: consumers first, then products.
func Plan(mode Mode, r *rand.Rand) Params {
	switch m := mode.(type) {
	case Batch:
		return Params{
			Quantity:  m.Quantity,
			Consumers: randomCount(r),
			Products:  randomCount(r),
		}
	case Sized:
		return Params{Quantity: 1, Consumers: m.Consumers, Products: m.Products}
	default:
		return Params{Quantity: 1, Consumers: DefaultConsumers, Products: DefaultProducts}
	}
}

func randomCount(r *rand.Rand) int {
	return between(r, 1, MaxRandomCount)
}
