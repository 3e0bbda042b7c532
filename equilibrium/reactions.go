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

	"github.com/spatialmodel/thermochem"
)

// Initial guesses commonly used for the reaction solvers.
const (
	// DefaultPressureGuess is a starting pressure [Pa] for
	// EquilibriumPressure.
	DefaultPressureGuess = 1.e5

	// DefaultTemperatureGuess is a starting temperature [K] for
	// EquilibriumTemperature.
	DefaultTemperatureGuess = 1000.
)

// DefaultInvariantGuess is a starting pressure [Pa] and temperature [K]
// for InvariantPoint.
var DefaultInvariantGuess = [2]float64{1.e9, 1000.}

// reactionGibbs sets all of the minerals to the given state and returns
// the stoichiometry-weighted sum of their Gibbs energies.
func reactionGibbs(minerals []Material, stoichiometry []float64, pressure, temperature float64) float64 {
	var g float64
	for i, m := range minerals {
		m.SetState(pressure, temperature)
		g += m.Gibbs() * stoichiometry[i]
	}
	return g
}

func checkReaction(minerals []Material, stoichiometry []float64) error {
	if len(minerals) == 0 {
		return fmt.Errorf("equilibrium: %w: reaction has no minerals", thermochem.ErrInvalidArgument)
	}
	if len(minerals) != len(stoichiometry) {
		return fmt.Errorf("equilibrium: %w: %d minerals but %d stoichiometric coefficients",
			thermochem.ErrShape, len(minerals), len(stoichiometry))
	}
	return nil
}

// EquilibriumPressure returns the pressure [Pa] at which the reaction
// Σ stoichiometry[i]·minerals[i] has zero Gibbs energy change at the
// given temperature [K], searching from the guessed pressure.
// When it returns, the minerals are in the returned state.
func (s *Solver) EquilibriumPressure(minerals []Material, stoichiometry []float64, temperature, guess float64) (float64, error) {
	if err := checkReaction(minerals, stoichiometry); err != nil {
		return 0, err
	}
	x, err := s.solve(fmt.Sprintf("equilibrium pressure at %g K", temperature),
		func(y, x []float64) {
			y[0] = reactionGibbs(minerals, stoichiometry, x[0], temperature)
		}, []float64{guess})
	return x[0], err
}

// EquilibriumTemperature returns the temperature [K] at which the
// reaction Σ stoichiometry[i]·minerals[i] has zero Gibbs energy change at
// the given pressure [Pa], searching from the guessed temperature.
// When it returns, the minerals are in the returned state.
func (s *Solver) EquilibriumTemperature(minerals []Material, stoichiometry []float64, pressure, guess float64) (float64, error) {
	if err := checkReaction(minerals, stoichiometry); err != nil {
		return 0, err
	}
	x, err := s.solve(fmt.Sprintf("equilibrium temperature at %g Pa", pressure),
		func(y, x []float64) {
			y[0] = reactionGibbs(minerals, stoichiometry, pressure, x[0])
		}, []float64{guess})
	return x[0], err
}

// InvariantPoint returns the pressure [Pa] and temperature [K] at which
// two reactions are simultaneously at equilibrium, searching from the
// guessed pressure and temperature. The two reactions may share minerals.
func (s *Solver) InvariantPoint(minerals1 []Material, stoichiometry1 []float64,
	minerals2 []Material, stoichiometry2 []float64, guess [2]float64) (pressure, temperature float64, err error) {
	if err = checkReaction(minerals1, stoichiometry1); err != nil {
		return 0, 0, err
	}
	if err = checkReaction(minerals2, stoichiometry2); err != nil {
		return 0, 0, err
	}
	x, err := s.solve("invariant point", func(y, x []float64) {
		y[0] = reactionGibbs(minerals1, stoichiometry1, x[0], x[1])
		y[1] = reactionGibbs(minerals2, stoichiometry2, x[0], x[1])
	}, guess[:])
	return x[0], x[1], err
}
