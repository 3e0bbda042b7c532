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

// Package thermochem converts chemical formulae, including multi-site
// solid solution formulae such as "[Mg]3[Al]2Si3O12", into numeric
// compositional representations and back again.
//
// Formulae are parsed with exact rational arithmetic so that simple
// fractional stoichiometries (e.g. "Si1/2") survive a parse-render round
// trip; they are converted to float64 values only when they are handed on
// to numerical code. Subpackage equilibrium uses the compositional arrays
// produced here to decompose chemical potentials and to solve for
// equilibrium conditions.
package thermochem

import "errors"

// Version gives the version number.
const Version = "1.0.0"

var (
	// ErrUnknownElement is returned when a formula refers to an element
	// that is absent from a required lookup table or element list.
	ErrUnknownElement = errors.New("unknown element")

	// ErrInvalidArgument is returned when an option value is not one
	// of the accepted values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSiteCount is returned when site formulae do not all have the
	// same number of sites.
	ErrSiteCount = errors.New("inconsistent number of sites")

	// ErrShape is returned when array inputs have incompatible dimensions.
	ErrShape = errors.New("incompatible shape")
)
