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

package material

import (
	"fmt"
	"math"

	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/equilibrium"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// formulaTolerance is the largest difference allowed between the
// amount of an element in a site formula and in the corresponding
// endmember formula.
const formulaTolerance = 1.e-10

// Solution is an ideal solid solution, in which the activity of each
// endmember is given by the random mixing of species on each site.
type Solution struct {
	name       string
	endmembers []*Mineral
	chemistry  *thermochem.SolutionChemistry

	// x holds the molar fractions of the endmembers.
	x []float64

	p, t float64
	set  bool
}

// NewSolution creates a solid solution of the given endmembers, where
// siteFormulae holds the site formula (e.g. "[Mg]2SiO4") of each
// endmember. The composition is initially pure in the first endmember.
func NewSolution(name string, endmembers []*Mineral, siteFormulae []string) (*Solution, error) {
	if len(endmembers) != len(siteFormulae) {
		return nil, fmt.Errorf("material: solution %s: %w: %d endmembers but %d site formulae",
			name, thermochem.ErrShape, len(endmembers), len(siteFormulae))
	}
	chem, err := thermochem.ProcessSolutionChemistry(siteFormulae)
	if err != nil {
		return nil, fmt.Errorf("material: solution %s: %w", name, err)
	}
	for i, m := range endmembers {
		if !sameFormula(chem.SolutionFormulae[i], m.Formula()) {
			return nil, fmt.Errorf("material: solution %s: site formula %s does not match the formula %s of %s",
				name, siteFormulae[i], thermochem.FormulaToString(m.Formula()), m.Name())
		}
	}
	s := &Solution{
		name:       name,
		endmembers: endmembers,
		chemistry:  chem,
		x:          make([]float64, len(endmembers)),
	}
	s.x[0] = 1
	return s, nil
}

func sameFormula(a, b thermochem.Formula) bool {
	for e, v := range a {
		if math.Abs(v-b[e]) > formulaTolerance {
			return false
		}
	}
	for e, v := range b {
		if math.Abs(v-a[e]) > formulaTolerance {
			return false
		}
	}
	return true
}

// Name returns the name of the solution.
func (s *Solution) Name() string { return s.name }

// Chemistry returns the site information of the solution.
func (s *Solution) Chemistry() *thermochem.SolutionChemistry { return s.chemistry }

// SetComposition sets the molar fractions of the endmembers.
// The fractions must be non-negative and are normalized to sum to one.
func (s *Solution) SetComposition(fractions []float64) error {
	if len(fractions) != len(s.endmembers) {
		return fmt.Errorf("material: solution %s: %w: %d fractions for %d endmembers",
			s.name, thermochem.ErrShape, len(fractions), len(s.endmembers))
	}
	sum := floats.Sum(fractions)
	if floats.Min(fractions) < 0 || sum <= 0 {
		return fmt.Errorf("material: solution %s: %w: invalid composition %v",
			s.name, thermochem.ErrInvalidArgument, fractions)
	}
	copy(s.x, fractions)
	floats.Scale(1/sum, s.x)
	return nil
}

// Composition returns the molar fractions of the endmembers.
func (s *Solution) Composition() []float64 {
	return append([]float64(nil), s.x...)
}

// SetState sets the pressure [Pa] and temperature [K] of the solution
// and of all of its endmembers.
func (s *Solution) SetState(pressure, temperature float64) {
	s.p, s.t, s.set = pressure, temperature, true
	for _, m := range s.endmembers {
		m.SetState(pressure, temperature)
	}
}

// Pressure returns the current pressure [Pa].
func (s *Solution) Pressure() float64 {
	if !s.set {
		return math.NaN()
	}
	return s.p
}

// Temperature returns the current temperature [K].
func (s *Solution) Temperature() float64 {
	if !s.set {
		return math.NaN()
	}
	return s.t
}

// siteOccupancies returns the fraction of each site occupied by each
// species at the current composition.
func (s *Solution) siteOccupancies() []float64 {
	var y mat.VecDense
	y.MulVec(s.chemistry.EndmemberOccupancies.T(), mat.NewVecDense(len(s.x), s.x))
	return y.RawVector().Data
}

// logActivities returns the natural logarithm of the ideal activity of
// each endmember.
func (s *Solution) logActivities() []float64 {
	y := s.siteOccupancies()
	o := make([]float64, len(s.endmembers))
	for i := range o {
		for j, yj := range y {
			yij := s.chemistry.EndmemberOccupancies.At(i, j)
			if yij == 0 {
				continue
			}
			o[i] += s.chemistry.EndmemberNOccupancies.At(i, j) * math.Log(yj/yij)
		}
	}
	return o
}

// PartialGibbs returns the partial molar Gibbs energy [J/mol] of each
// endmember.
func (s *Solution) PartialGibbs() []float64 {
	lna := s.logActivities()
	rt := equilibrium.GasConstant * s.t
	o := make([]float64, len(s.endmembers))
	for i, m := range s.endmembers {
		o[i] = m.Gibbs() + rt*lna[i]
	}
	return o
}

// mix returns the molar average of v.
func (s *Solution) mix(v func(m *Mineral) float64) float64 {
	var o float64
	for i, m := range s.endmembers {
		if s.x[i] != 0 {
			o += s.x[i] * v(m)
		}
	}
	return o
}

// Gibbs returns the molar Gibbs energy [J/mol].
func (s *Solution) Gibbs() float64 {
	mu := s.PartialGibbs()
	var g float64
	for i, xi := range s.x {
		if xi != 0 {
			g += xi * mu[i]
		}
	}
	return g
}

// Entropy returns the molar entropy [J/K/mol], including the
// configurational entropy of mixing.
func (s *Solution) Entropy() float64 {
	lna := s.logActivities()
	var conf float64
	for i, xi := range s.x {
		if xi != 0 {
			conf -= equilibrium.GasConstant * xi * lna[i]
		}
	}
	return s.mix((*Mineral).Entropy) + conf
}

// Volume returns the molar volume [m³/mol].
func (s *Solution) Volume() float64 { return s.mix((*Mineral).Volume) }

// Helmholtz returns the molar Helmholtz energy [J/mol].
func (s *Solution) Helmholtz() float64 { return s.Gibbs() - s.p*s.Volume() }

// MolarVolume returns the molar volume [m³/mol].
func (s *Solution) MolarVolume() float64 { return s.Volume() }

// MolarMass returns the molar mass [kg/mol].
func (s *Solution) MolarMass() float64 { return s.mix((*Mineral).MolarMass) }

// Formula returns the bulk formula at the current composition.
func (s *Solution) Formula() thermochem.Formula {
	f, err := thermochem.SumFormulae(s.chemistry.SolutionFormulae, s.x)
	if err != nil {
		panic(err) // The lengths are checked in NewSolution.
	}
	return f
}

// Endmembers returns the formulae and partial Gibbs energies of the
// endmembers.
func (s *Solution) Endmembers() ([]thermochem.Formula, []float64) {
	f := make([]thermochem.Formula, len(s.endmembers))
	for i, m := range s.endmembers {
		f[i] = m.Formula()
	}
	return f, s.PartialGibbs()
}
