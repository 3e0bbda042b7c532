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

// Package equilibrium decomposes the Gibbs energies of mineral assemblages
// into the chemical potentials of user-defined components, and solves for
// the pressures and temperatures at which reactions between minerals are
// at equilibrium.
//
// The functions in this package operate on materials through the small
// interfaces defined below. Several of them repeatedly set the state of
// the materials they are given, so a material must not be used by more
// than one goroutine at a time.
package equilibrium

import (
	"errors"

	"github.com/spatialmodel/thermochem"
)

// GasConstant is the molar gas constant [J/K/mol].
const GasConstant = 8.31446261815324

var (
	// ErrDependentEndmembers is returned when the endmember compositions
	// of an assemblage do not form an independent set of basis vectors.
	ErrDependentEndmembers = errors.New("endmember compositions are not linearly independent")

	// ErrComponentUndefined is returned when a component cannot be
	// expressed as a linear combination of the endmembers of an assemblage.
	ErrComponentUndefined = errors.New("component not defined by the prescribed assemblage")

	// ErrNotConverged is returned when a nonlinear solve does not converge.
	ErrNotConverged = errors.New("solution did not converge")

	// ErrNonFinitePotential is returned when a component depends on an
	// endmember whose chemical potential is infinite or NaN, such as an
	// endmember absent from an ideal solution.
	ErrNonFinitePotential = errors.New("chemical potential is not finite")
)

// Material is a material whose thermodynamic state can be set and whose
// properties at that state can be read.
type Material interface {
	// SetState sets the pressure [Pa] and temperature [K] of the material.
	SetState(pressure, temperature float64)

	// Gibbs returns the molar Gibbs energy [J/mol].
	Gibbs() float64

	// Helmholtz returns the molar Helmholtz energy [J/mol].
	Helmholtz() float64

	// Entropy returns the molar entropy [J/K/mol].
	Entropy() float64

	// Volume returns the molar volume [m³/mol].
	Volume() float64
}

// Phase is a member of an assemblage. Each kind of phase knows how to
// describe itself as a set of endmembers: a pure mineral is a single
// endmember with a chemical potential equal to its molar Gibbs energy,
// and a solid solution contributes all of its endmembers along with their
// partial molar Gibbs energies.
type Phase interface {
	// Endmembers returns the formula and chemical potential [J/mol] of each
	// endmember of the phase at its current state.
	Endmembers() (formulae []thermochem.Formula, potentials []float64)

	// Temperature returns the current temperature of the phase [K].
	Temperature() float64
}

// Endmember is a material of fixed composition, such as the standard
// state material of a fugacity calculation.
type Endmember interface {
	Formula() thermochem.Formula
	Gibbs() float64
}

// FractionPhase is a phase whose molar mass and molar volume are known,
// as required by ConvertFractions.
type FractionPhase interface {
	// MolarMass returns the molar mass [kg/mol].
	MolarMass() float64

	// MolarVolume returns the molar volume [m³/mol] at the current state.
	MolarVolume() float64

	// Temperature returns the current temperature [K], or NaN if the
	// state has not been set.
	Temperature() float64
}
