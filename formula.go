/*
Copyright © 2017 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

package thermochem

import (
	"fmt"
	"math/big"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Formula is a chemical formula expressed as the number of atoms of
// each element (or site species) per formula unit. Formula values are
// treated as immutable: all methods return new values.
type Formula map[string]float64

// Clone returns a copy of f.
func (f Formula) Clone() Formula {
	o := make(Formula, len(f))
	for e, n := range f {
		o[e] = n
	}
	return o
}

// Add returns the element-wise sum of f and g.
func (f Formula) Add(g Formula) Formula {
	o := f.Clone()
	for e, n := range g {
		o[e] += n
	}
	return o
}

// Scale returns f with every amount multiplied by a.
func (f Formula) Scale(a float64) Formula {
	o := make(Formula, len(f))
	for e, n := range f {
		o[e] = n * a
	}
	return o
}

// Normalize returns f rescaled so that its amounts sum to one.
// A formula whose amounts sum to zero is returned unchanged.
func (f Formula) Normalize() Formula {
	v := make([]float64, 0, len(f))
	for _, n := range f {
		v = append(v, n)
	}
	s := floats.Sum(v)
	if s == 0 {
		return f.Clone()
	}
	return f.Scale(1 / s)
}

// Elements returns the keys of f, with periodic table elements in IUPAC
// order followed by any other keys in lexical order.
func (f Formula) Elements() []string {
	o := make([]string, 0, len(f))
	for _, e := range IUPACElementOrder {
		if _, ok := f[e]; ok {
			o = append(o, e)
		}
	}
	var other []string
	for e := range f {
		if _, ok := iupacIndex[e]; !ok {
			other = append(other, e)
		}
	}
	sort.Strings(other)
	return append(o, other...)
}

// ExactFormula is a chemical formula whose amounts are held as exact
// rational numbers.
type ExactFormula map[string]*big.Rat

// Float converts f into a Formula.
func (f ExactFormula) Float() Formula {
	o := make(Formula, len(f))
	for e, n := range f {
		o[e], _ = n.Float64()
	}
	return o
}

// add adds amount × scale of element e to f.
func (f ExactFormula) add(e string, amount, scale *big.Rat) {
	v := new(big.Rat).Mul(amount, scale)
	if n, ok := f[e]; ok {
		v.Add(v, n)
	}
	f[e] = v
}

// ParseError describes a formula string that does not follow the
// formula grammar.
type ParseError struct {
	Input  string // The string being parsed.
	Offset int    // Byte offset of the problem.
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("thermochem: parsing formula %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// ParseExactFormula reads a chemical formula written in the XnYm format,
// where the formula has n atoms of element X and m atoms of element Y.
// Element symbols are an upper case letter optionally followed by a lower
// case letter. Amounts are optional (the default is exactly 1) and may be
// integers, decimals ("0.5") or fractions ("1/2"). Repeated elements are
// summed. Text that does not follow this grammar results in a *ParseError.
func ParseExactFormula(formula string) (ExactFormula, error) {
	f := make(ExactFormula)
	sc := &scanner{s: formula}
	if err := sc.elements(f, big.NewRat(1, 1), 1, func(byte) bool { return false }); err != nil {
		return nil, err
	}
	return f, nil
}

// DictionarizeFormula reads a chemical formula string as described for
// ParseExactFormula and converts it into a Formula.
func DictionarizeFormula(formula string) (Formula, error) {
	f, err := ParseExactFormula(formula)
	if err != nil {
		return nil, err
	}
	return f.Float(), nil
}

// scanner reads the tokens of the formula grammar from a string.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) peek() byte { return sc.s[sc.pos] }

func (sc *scanner) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: sc.s, Offset: sc.pos, Msg: fmt.Sprintf(format, args...)}
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// symbol reads an upper case letter followed by at most maxLower lower case
// letters. A negative maxLower allows any number of lower case letters.
func (sc *scanner) symbol(maxLower int) (string, error) {
	if sc.done() || !isUpper(sc.peek()) {
		if sc.done() {
			return "", sc.errorf("expected a symbol but reached the end of the formula")
		}
		return "", sc.errorf("expected a symbol starting with an upper case letter but found %q", sc.peek())
	}
	start := sc.pos
	sc.pos++
	for n := 0; !sc.done() && isLower(sc.peek()) && (maxLower < 0 || n < maxLower); n++ {
		sc.pos++
	}
	return sc.s[start:sc.pos], nil
}

func (sc *scanner) digits() string {
	start := sc.pos
	for !sc.done() && isDigit(sc.peek()) {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

// amount reads an optional amount: digits, optionally followed by either
// a decimal part or a denominator. It returns nil if no amount is present.
func (sc *scanner) amount() (*big.Rat, error) {
	if sc.done() || !isDigit(sc.peek()) {
		return nil, nil
	}
	start := sc.pos
	sc.digits()
	if !sc.done() && (sc.peek() == '.' || sc.peek() == '/') {
		sep := sc.peek()
		sc.pos++
		if sc.digits() == "" {
			return nil, sc.errorf("expected digits after %q", sep)
		}
	}
	text := sc.s[start:sc.pos]
	v, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, &ParseError{Input: sc.s, Offset: start, Msg: fmt.Sprintf("invalid amount %q", text)}
	}
	return v, nil
}

// elements reads symbol-amount pairs into f, multiplying each amount by
// scale, until the input is exhausted or stop returns true for the next
// byte.
func (sc *scanner) elements(f ExactFormula, scale *big.Rat, maxLower int, stop func(byte) bool) error {
	for !sc.done() && !stop(sc.peek()) {
		e, err := sc.symbol(maxLower)
		if err != nil {
			return err
		}
		n, err := sc.amount()
		if err != nil {
			return err
		}
		if n == nil {
			n = big.NewRat(1, 1)
		}
		f.add(e, n, scale)
	}
	return nil
}
