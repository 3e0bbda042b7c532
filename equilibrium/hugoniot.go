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

import "fmt"

// internalEnergy returns the molar internal energy [J/mol] of m at its
// current state.
func internalEnergy(m Material, temperature float64) float64 {
	return m.Helmholtz() + temperature*m.Entropy()
}

// Hugoniot returns the temperatures [K] and volumes [m³/mol] of m along
// the shock Hugoniot that starts at the reference pressure pRef [Pa] and
// temperature tRef [K], evaluated at each of the given pressures [Pa].
// Each temperature satisfies the Rankine-Hugoniot energy condition
//	U(P, T) - U_ref = ½ (P - P_ref)(V_ref - V(P, T)).
// The reference state is taken from reference, or from m itself if
// reference is nil. Each solution is started from tRef.
func (s *Solver) Hugoniot(m Material, pRef, tRef float64, pressures []float64, reference Material) (temperatures, volumes []float64, err error) {
	if reference == nil {
		reference = m
	}
	reference.SetState(pRef, tRef)
	uRef := internalEnergy(reference, tRef)
	vRef := reference.Volume()

	temperatures = make([]float64, len(pressures))
	volumes = make([]float64, len(pressures))
	for i, p := range pressures {
		x, err := s.solve(fmt.Sprintf("hugoniot temperature at %g Pa", p), func(y, x []float64) {
			m.SetState(p, x[0])
			y[0] = (internalEnergy(m, x[0]) - uRef) - 0.5*(p-pRef)*(vRef-m.Volume())
		}, []float64{tRef})
		temperatures[i] = x[0]
		volumes[i] = m.Volume()
		if err != nil {
			return temperatures[:i+1], volumes[:i+1], err
		}
	}
	return temperatures, volumes, nil
}
