package logic

import (
	"fmt"
	"math/rand"
)

// Op is a two-input gate operation.
type Op int

const (
	OpAnd Op = iota
	OpOr
	OpXor
	opCount
)

func (o Op) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "XOR"
	}
}

// Gate combines two signals. Signals 0..inputs-1 are the switches, signal
// inputs+i is the output of gate i.
type Gate struct {
	Op     Op
	A, B   int
	Negate bool
}

// Circuit is a chain of gates over a set of switches. The last gate drives
// the output.
type Circuit struct {
	Inputs int
	Gates  []Gate
}

// Eval returns the circuit output for the switch positions in.
func (c Circuit) Eval(in []bool) bool {
	signals := make([]bool, c.Inputs+len(c.Gates))
	copy(signals, in)

	for i, g := range c.Gates {
		a, b := signals[g.A], signals[g.B]
		var v bool
		switch g.Op {
		case OpAnd:
			v = a && b
		case OpOr:
			v = a || b
		default:
			v = a != b
		}
		if g.Negate {
			v = !v
		}
		signals[c.Inputs+i] = v
	}

	if len(c.Gates) == 0 {
		return false
	}
	return signals[len(signals)-1]
}

// SignalName returns the label for a signal index.
func (c Circuit) SignalName(s int) string {
	if s < c.Inputs {
		return fmt.Sprintf("S%d", s+1)
	}
	return fmt.Sprintf("G%d", s-c.Inputs+1)
}

// Describe returns one line per gate, e.g. "G2 = NOT(G1 XOR S3)".
func (c Circuit) Describe() []string {
	lines := make([]string, len(c.Gates))
	for i, g := range c.Gates {
		expr := fmt.Sprintf("%s %s %s", c.SignalName(g.A), g.Op, c.SignalName(g.B))
		if g.Negate {
			expr = "NOT(" + expr + ")"
		}
		lines[i] = fmt.Sprintf("G%d = %s", i+1, expr)
	}
	return lines
}

// maxAttempts bounds regeneration when the all-off position already
// satisfies the circuit.
const maxAttempts = 32

// Generate builds a random circuit with at least one switch position that
// drives the output high, and returns that position. Each gate after the
// first consumes the previous gate, so every gate matters.
func Generate(rng *rand.Rand, inputs, gates int) (Circuit, []bool) {
	var (
		c      Circuit
		target []bool
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		c, target = generate(rng, inputs, gates)
		if !c.Eval(make([]bool, inputs)) {
			break
		}
	}
	return c, target
}

func generate(rng *rand.Rand, inputs, gates int) (Circuit, []bool) {
	c := Circuit{Inputs: inputs, Gates: make([]Gate, gates)}

	for i := range c.Gates {
		g := Gate{
			Op:     Op(rng.Intn(int(opCount))),
			Negate: rng.Intn(4) == 0,
		}
		if i == 0 {
			g.A = rng.Intn(inputs)
			g.B = (g.A + 1 + rng.Intn(inputs-1)) % inputs
		} else {
			g.A = inputs + i - 1
			g.B = rng.Intn(inputs + i - 1)
		}
		c.Gates[i] = g
	}

	target := make([]bool, inputs)
	for i := range target {
		target[i] = rng.Intn(2) == 1
	}
	target[rng.Intn(inputs)] = true

	// Fix the last gate so the target position solves the circuit.
	if !c.Eval(target) {
		last := &c.Gates[len(c.Gates)-1]
		last.Negate = !last.Negate
	}
	return c, target
}
