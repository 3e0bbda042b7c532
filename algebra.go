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
	"math"
	"math/big"
	"strconv"
	"strings"
)

// SumFormulae returns the sum of the given formulae, each multiplied by the
// corresponding value in amounts. If amounts is nil, each formula is
// counted once.
func SumFormulae(formulae []Formula, amounts []float64) (Formula, error) {
	if amounts == nil {
		amounts = make([]float64, len(formulae))
		for i := range amounts {
			amounts[i] = 1
		}
	} else if len(amounts) != len(formulae) {
		return nil, fmt.Errorf("thermochem: summing formulae: %w: %d formulae but %d amounts",
			ErrShape, len(formulae), len(amounts))
	}
	o := make(Formula)
	for i, f := range formulae {
		for e, n := range f {
			o[e] += amounts[i] * n
		}
	}
	return o, nil
}

// FormulaMass returns the mass of one mole of formula f [kg/mol].
func FormulaMass(f Formula) (float64, error) {
	var mass float64
	for _, e := range f.Elements() {
		m, err := atomicMass(e)
		if err != nil {
			return math.NaN(), err
		}
		mass += f[e] * m
	}
	return mass, nil
}

// Conversion types accepted by ConvertFormula.
const (
	Mass  = "mass"
	Molar = "molar"
)

// ConvertFormula converts formula f from molar amounts to masses
// (to == "mass") or from masses to molar amounts (to == "molar").
// If normalize is true, the converted amounts are rescaled to sum to one.
func ConvertFormula(f Formula, to string, normalize bool) (Formula, error) {
	if to != Mass && to != Molar {
		return nil, fmt.Errorf("thermochem: converting formula: %w: conversion type %q should be either %q or %q",
			ErrInvalidArgument, to, Mass, Molar)
	}
	o := make(Formula, len(f))
	for e, n := range f {
		m, err := atomicMass(e)
		if err != nil {
			return nil, err
		}
		if to == Mass {
			o[e] = n * m
		} else {
			o[e] = n / m
		}
	}
	if normalize {
		o = o.Normalize()
	}
	return o, nil
}

// amountTolerance is the magnitude below which an amount is treated as
// absent, and the distance from one within which it is left implicit.
const amountTolerance = 1.e-12

// FormulaToString returns a string representation of f with elements in
// the order given by IUPACElementOrder. Keys of f that are not in the
// periodic table are added at the end of the string in lexical order.
// Amounts within 1e-12 of one are omitted, amounts smaller than 1e-12
// in magnitude are dropped along with their element, and all other amounts
// are written as their simplest exact integer or fraction.
func FormulaToString(f Formula) string {
	return formulaToString(f, f.Elements())
}

// formulaToString writes the amounts in f in the order of keys.
func formulaToString(f Formula, keys []string) string {
	var b strings.Builder
	for _, e := range keys {
		n := f[e]
		if math.Abs(n) <= amountTolerance {
			continue
		}
		b.WriteString(e)
		if math.Abs(n-1) >= amountTolerance {
			b.WriteString(SimplifyAmount(n))
		}
	}
	return b.String()
}

// SimplifyAmount returns the shortest exact string for x: an integer if x
// is within rounding error of one, else the simplest fraction p/q whose
// nearest float64 is x and whose q² does not exceed the denominator of the
// shortest decimal form of x, else that decimal form as a fraction.
// For example, 1./3. gives "1/3" but 0.333333 gives "333333/1000000".
func SimplifyAmount(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	if r := math.Round(x); math.Abs(x-r) <= amountTolerance*math.Max(1, math.Abs(x)) {
		return strconv.FormatFloat(r, 'f', -1, 64)
	}
	d, ok := new(big.Rat).SetString(strconv.FormatFloat(x, 'f', -1, 64))
	if !ok {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return simplestRational(d, x).RatString()
}

// simplestRational walks the continued-fraction convergents of d and
// returns the first that rounds to x, stopping once the square of the
// convergent denominator exceeds the denominator of d.
func simplestRational(d *big.Rat, x float64) *big.Rat {
	a := new(big.Int).Abs(d.Num())
	b := new(big.Int).Set(d.Denom())
	denom := d.Denom()
	// Convergents h/k with h(-1)=1, h(-2)=0, k(-1)=0, k(-2)=1.
	h1, h2 := big.NewInt(1), big.NewInt(0)
	k1, k2 := big.NewInt(0), big.NewInt(1)
	var q, m, kk big.Int
	for b.Sign() != 0 {
		q.DivMod(a, b, &m)
		h := new(big.Int).Add(new(big.Int).Mul(&q, h1), h2)
		k := new(big.Int).Add(new(big.Int).Mul(&q, k1), k2)
		if kk.Mul(k, k).Cmp(denom) > 0 {
			break
		}
		r := new(big.Rat).SetFrac(h, k)
		if d.Sign() < 0 {
			r.Neg(r)
		}
		if f, _ := r.Float64(); f == x {
			return r
		}
		h1, h2 = h, h1
		k1, k2 = k, k1
		a.Set(b)
		b.Set(&m)
	}
	return d
}
