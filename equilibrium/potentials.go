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

package equilibrium

import (
	"fmt"
	"math"

	"github.com/spatialmodel/thermochem"
	"gonum.org/v1/gonum/mat"
)

const (
	// independenceTolerance is the smallest allowed sum of squares of
	// a row of the U factor of the endmember compositional array.
	independenceTolerance = 1.e-6

	// residualTolerance is the largest allowed least-squares residual
	// of a component composition.
	residualTolerance = 1.e-10

	// proportionDecimals is the number of decimal places that fitted
	// endmember proportions are rounded to.
	proportionDecimals = 10
)

// ChemicalPotentials returns the chemical potentials [J/mol] of the given
// components in an assemblage whose state has already been set.
//
// The compositional space of the components does not have to be a
// superset of the compositional space of the assemblage, nor do the
// components have to form an orthogonal basis. Each component must be a
// linear combination of the endmembers of the assemblage, and the
// endmember compositions must be linearly independent.
func ChemicalPotentials(assemblage []Phase, components []thermochem.Formula) ([]float64, error) {
	if len(assemblage) == 0 {
		return nil, fmt.Errorf("equilibrium: calculating chemical potentials: empty assemblage")
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("equilibrium: calculating chemical potentials: no components")
	}
	var formulae []thermochem.Formula
	var potentials []float64
	for i, p := range assemblage {
		f, mu := p.Endmembers()
		if len(f) != len(mu) {
			return nil, fmt.Errorf("equilibrium: calculating chemical potentials: phase %d has %d endmember formulae but %d potentials",
				i, len(f), len(mu))
		}
		formulae = append(formulae, f...)
		potentials = append(potentials, mu...)
	}

	endmembers, elements, err := thermochem.CompositionalArray(formulae)
	if err != nil {
		return nil, fmt.Errorf("equilibrium: calculating chemical potentials: %v", err)
	}
	if err := checkIndependent(endmembers); err != nil {
		return nil, err
	}

	// Express the components with the same element order as the endmembers.
	comps, err := thermochem.OrderedCompositionalArray(components, elements)
	if err != nil {
		return nil, fmt.Errorf("equilibrium: calculating chemical potentials: %w: %w", ErrComponentUndefined, err)
	}

	// Find the endmember proportions that sum to each component composition.
	var p mat.Dense
	if err := p.Solve(endmembers.T(), comps.T()); err != nil {
		return nil, fmt.Errorf("equilibrium: calculating chemical potentials: %w: %v", ErrDependentEndmembers, err)
	}
	var resid mat.Dense
	resid.Mul(endmembers.T(), &p)
	resid.Sub(&resid, comps.T())
	_, nComp := resid.Dims()
	for k := 0; k < nComp; k++ {
		col := mat.Col(nil, k, &resid)
		var ss float64
		for _, v := range col {
			ss += v * v
		}
		if ss > residualTolerance {
			return nil, fmt.Errorf("equilibrium: %w: component %d (%s)",
				ErrComponentUndefined, k+1, thermochem.FormulaToString(components[k]))
		}
	}

	scale := math.Pow(10, proportionDecimals)
	p.Apply(func(_, _ int, v float64) float64 { return math.Round(v*scale) / scale }, &p)

	// Endmembers with zero proportion do not contribute, even when their
	// potential is -Inf.
	mu := make([]float64, nComp)
	for k := range mu {
		for i, g := range potentials {
			n := p.At(i, k)
			if n == 0 {
				continue
			}
			if math.IsInf(g, 0) || math.IsNaN(g) {
				return nil, fmt.Errorf("equilibrium: %w: component %d (%s) requires endmember %d, whose potential is %g",
					ErrNonFinitePotential, k+1, thermochem.FormulaToString(components[k]), i+1, g)
			}
			mu[k] += n * g
		}
	}
	return mu, nil
}

// checkIndependent returns an error if the rows of a are not linearly
// independent. Rows that vanish from the U factor of the LU decomposition
// of a are dependent on the rows above them.
func checkIndependent(a *mat.Dense) error {
	m, n := a.Dims()
	if m > n {
		return fmt.Errorf("equilibrium: %w: %d endmembers in a space of %d elements", ErrDependentEndmembers, m, n)
	}
	// LU requires a square matrix. The padded rows are zero, so they are
	// never chosen as pivots ahead of the rows of a.
	sq := mat.NewDense(n, n, nil)
	sq.Slice(0, m, 0, n).(*mat.Dense).Copy(a)
	var lu mat.LU
	lu.Factorize(sq)
	var u mat.TriDense
	lu.UTo(&u)
	for i := 0; i < m; i++ {
		var ss float64
		for j := i; j < n; j++ {
			v := u.At(i, j)
			ss += v * v
		}
		if ss <= independenceTolerance {
			return fmt.Errorf("equilibrium: %w: endmember compositions do not form an independent set of basis vectors",
				ErrDependentEndmembers)
		}
	}
	return nil
}

// Fugacity returns the fugacity of the component given by the formula
// of the standard material in the assemblage, relative to the standard
// material, at the temperature of the first phase of the assemblage.
func Fugacity(standard Endmember, assemblage []Phase) (float64, error) {
	mu, err := ChemicalPotentials(assemblage, []thermochem.Formula{standard.Formula()})
	if err != nil {
		return math.NaN(), err
	}
	return math.Exp((mu[0] - standard.Gibbs()) / (GasConstant * assemblage[0].Temperature())), nil
}

// RelativeFugacity returns the fugacity of the component given by the
// formula of the standard material in the assemblage, relative to its
// fugacity in the reference assemblage.
func RelativeFugacity(standard Endmember, assemblage, reference []Phase) (float64, error) {
	c := []thermochem.Formula{standard.Formula()}
	mu, err := ChemicalPotentials(assemblage, c)
	if err != nil {
		return math.NaN(), err
	}
	muRef, err := ChemicalPotentials(reference, c)
	if err != nil {
		return math.NaN(), fmt.Errorf("equilibrium: reference assemblage: %w", err)
	}
	return math.Exp((mu[0] - muRef[0]) / (GasConstant * assemblage[0].Temperature())), nil
}
