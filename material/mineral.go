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

// Package material provides simple reference materials that implement
// the interfaces in package equilibrium: minerals described by a
// fixed set of thermodynamic properties, and ideal solid solutions of
// those minerals. Materials can be loaded from TOML library files.
package material

import (
	"fmt"
	"math"

	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/equilibrium"
)

// Material is a material of either kind in this package.
type Material interface {
	equilibrium.Material
	equilibrium.Phase
	equilibrium.Endmember
	equilibrium.FractionPhase

	// Name returns the name of the material.
	Name() string

	// Pressure returns the current pressure [Pa], or NaN if the state has
	// not been set.
	Pressure() float64
}

// MineralParams holds the properties of a mineral at its reference state.
type MineralParams struct {
	Name string

	// Formula is the chemical formula of the mineral, e.g. "Mg2SiO4".
	Formula string

	// G0 [J/mol], S0 [J/K/mol] and V0 [m³/mol] are the Gibbs energy,
	// entropy and volume at the reference pressure P0 [Pa] and
	// temperature T0 [K].
	G0, S0, V0 float64
	P0, T0     float64

	// Cp is the isobaric heat capacity [J/K/mol].
	Cp float64

	// Alpha is the volumetric thermal expansivity [1/K] and Beta is the
	// isothermal compressibility [1/Pa].
	Alpha, Beta float64
}

// Mineral is a pure phase with constant heat capacity, thermal
// expansivity and compressibility.
type Mineral struct {
	MineralParams

	formula thermochem.Formula
	mass    float64

	p, t float64
	set  bool
}

// NewMineral creates a new mineral from the given parameters.
func NewMineral(params MineralParams) (*Mineral, error) {
	f, err := thermochem.DictionarizeFormula(params.Formula)
	if err != nil {
		return nil, fmt.Errorf("material: mineral %s: %w", params.Name, err)
	}
	mass, err := thermochem.FormulaMass(f)
	if err != nil {
		return nil, fmt.Errorf("material: mineral %s: %w", params.Name, err)
	}
	if params.T0 <= 0 {
		return nil, fmt.Errorf("material: mineral %s: %w: reference temperature must be positive",
			params.Name, thermochem.ErrInvalidArgument)
	}
	return &Mineral{MineralParams: params, formula: f, mass: mass}, nil
}

// Name returns the name of the mineral.
func (m *Mineral) Name() string { return m.MineralParams.Name }

// SetState sets the pressure [Pa] and temperature [K] of the mineral.
func (m *Mineral) SetState(pressure, temperature float64) {
	m.p, m.t, m.set = pressure, temperature, true
}

// Pressure returns the current pressure [Pa].
func (m *Mineral) Pressure() float64 {
	if !m.set {
		return math.NaN()
	}
	return m.p
}

// Temperature returns the current temperature [K].
func (m *Mineral) Temperature() float64 {
	if !m.set {
		return math.NaN()
	}
	return m.t
}

// Gibbs returns the molar Gibbs energy [J/mol].
func (m *Mineral) Gibbs() float64 {
	dT := m.t - m.T0
	dP := m.p - m.P0
	return m.G0 + m.V0*((1+m.Alpha*dT)*dP-m.Beta/2*dP*dP) -
		m.S0*dT + m.Cp*(dT-m.t*math.Log(m.t/m.T0))
}

// Entropy returns the molar entropy [J/K/mol].
func (m *Mineral) Entropy() float64 {
	return m.S0 + m.Cp*math.Log(m.t/m.T0) - m.V0*m.Alpha*(m.p-m.P0)
}

// Volume returns the molar volume [m³/mol].
func (m *Mineral) Volume() float64 {
	return m.V0 * (1 + m.Alpha*(m.t-m.T0) - m.Beta*(m.p-m.P0))
}

// Helmholtz returns the molar Helmholtz energy [J/mol].
func (m *Mineral) Helmholtz() float64 { return m.Gibbs() - m.p*m.Volume() }

// Formula returns the chemical formula of the mineral.
func (m *Mineral) Formula() thermochem.Formula { return m.formula }

// MolarMass returns the molar mass [kg/mol].
func (m *Mineral) MolarMass() float64 { return m.mass }

// MolarVolume returns the molar volume [m³/mol].
func (m *Mineral) MolarVolume() float64 { return m.Volume() }

// Endmembers returns the formula and Gibbs energy of the mineral.
func (m *Mineral) Endmembers() ([]thermochem.Formula, []float64) {
	return []thermochem.Formula{m.formula}, []float64{m.Gibbs()}
}
