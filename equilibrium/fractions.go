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
)

// Phase fraction types accepted by ConvertFractions.
const (
	MolarFraction  = "molar"
	MassFraction   = "mass"
	VolumeFraction = "volume"
)

// ConvertFractions takes a set of phase fractions of type from, which
// can be "molar", "mass" or "volume", and converts them to fractions of
// type to. Conversions to and from volume fractions require the states of
// the phases to have been set.
func ConvertFractions(phases []FractionPhase, fractions []float64, from, to string) ([]float64, error) {
	if len(phases) != len(fractions) {
		return nil, fmt.Errorf("equilibrium: converting fractions: %w: %d phases but %d fractions",
			thermochem.ErrShape, len(phases), len(fractions))
	}
	for _, t := range []string{from, to} {
		switch t {
		case MolarFraction, MassFraction:
		case VolumeFraction:
			for i, p := range phases {
				if math.IsNaN(p.Temperature()) {
					return nil, fmt.Errorf("equilibrium: converting fractions: the state of phase %d has not been set, "+
						"so volume fractions are undefined", i)
				}
			}
		default:
			return nil, fmt.Errorf("equilibrium: converting fractions: %w: fraction type %q should be %q, %q or %q",
				thermochem.ErrInvalidArgument, t, MolarFraction, MassFraction, VolumeFraction)
		}
	}

	// perMole returns the amount of the given type per mole of phase i.
	perMole := func(t string, i int) float64 {
		switch t {
		case MassFraction:
			return phases[i].MolarMass()
		case VolumeFraction:
			return phases[i].MolarVolume()
		default:
			return 1
		}
	}

	molar := make([]float64, len(fractions))
	var total float64
	for i, f := range fractions {
		molar[i] = f / perMole(from, i)
		total += molar[i]
	}
	o := make([]float64, len(fractions))
	var outTotal float64
	for i := range molar {
		o[i] = molar[i] / total * perMole(to, i)
		outTotal += o[i]
	}
	for i := range o {
		o[i] /= outTotal
	}
	return o, nil
}
