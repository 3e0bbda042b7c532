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
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/thermochem"
)

func different(a, b, tolerance float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}
	if b == 0 {
		return math.Abs(a) > tolerance
	}
	return math.Abs((a-b)/b) > tolerance
}

// testMaterial is a material whose Gibbs energy, volume and entropy
// are given by arbitrary functions of pressure and temperature.
type testMaterial struct {
	formula thermochem.Formula
	mass    float64
	p, t    float64
	set     bool

	gibbs, volume, entropy func(p, t float64) float64
}

func (m *testMaterial) SetState(p, t float64) { m.p, m.t, m.set = p, t, true }
func (m *testMaterial) Gibbs() float64        { return m.gibbs(m.p, m.t) }
func (m *testMaterial) Volume() float64       { return m.volume(m.p, m.t) }
func (m *testMaterial) Entropy() float64      { return m.entropy(m.p, m.t) }
func (m *testMaterial) Helmholtz() float64    { return m.Gibbs() - m.p*m.Volume() }
func (m *testMaterial) Formula() thermochem.Formula {
	return m.formula
}
func (m *testMaterial) MolarMass() float64   { return m.mass }
func (m *testMaterial) MolarVolume() float64 { return m.Volume() }
func (m *testMaterial) Temperature() float64 {
	if !m.set {
		return math.NaN()
	}
	return m.t
}
func (m *testMaterial) Endmembers() ([]thermochem.Formula, []float64) {
	return []thermochem.Formula{m.formula}, []float64{m.Gibbs()}
}

// linearMaterial returns a material with constant volume [m³/mol] and
// entropy [J/K/mol], with Gibbs energy g0 [J/mol] at zero pressure and
// temperature.
func linearMaterial(formula string, g0, v, s float64) *testMaterial {
	f, err := thermochem.DictionarizeFormula(formula)
	if err != nil {
		panic(err)
	}
	m := &testMaterial{
		formula: f,
		gibbs:   func(p, t float64) float64 { return g0 + v*p - s*t },
		volume:  func(p, t float64) float64 { return v },
		entropy: func(p, t float64) float64 { return s },
	}
	m.mass, err = thermochem.FormulaMass(f)
	if err != nil {
		panic(err)
	}
	return m
}

// solidMaterial returns a material with internal energy cv·T and volume
// v0·(1 - b·P).
func solidMaterial(cv, v0, b float64) *testMaterial {
	return &testMaterial{
		formula: thermochem.Formula{"Mg": 1, "O": 1},
		gibbs: func(p, t float64) float64 {
			return cv*t - t*cv*math.Log(t) + p*v0*(1-b*p)
		},
		volume:  func(p, t float64) float64 { return v0 * (1 - b*p) },
		entropy: func(p, t float64) float64 { return cv * math.Log(t) },
	}
}

func TestPhaseInterfaces(t *testing.T) {
	m := linearMaterial("MgO", 0, 0, 0)
	var _ Material = m
	var _ Phase = m
	var _ Endmember = m
	var _ FractionPhase = m
}

func TestSentinelErrors(t *testing.T) {
	for _, err := range []error{ErrDependentEndmembers, ErrComponentUndefined, ErrNotConverged} {
		if errors.Is(err, thermochem.ErrShape) {
			t.Errorf("%v should not match %v", err, thermochem.ErrShape)
		}
	}
}
