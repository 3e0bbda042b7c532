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
	"strings"

	"gonum.org/v1/gonum/mat"
)

// SiteOccupanciesToStrings converts a list of endmember site occupancies
// into site formula strings in the format read by ProcessSolutionChemistry,
// e.g. "[Mg]3[Al]2" for the classic two-site pyrope garnet.
//
// siteSpecies gives the names of the species which reside on each site.
// occupancies holds one row per endmember, with one column per site-species
// in the same order as siteSpecies. multiplicities gives the multiplicity
// of each site, either once per site (a vector with one element per site),
// once per site-species (a vector with one element per column of
// occupancies), or as a matrix with the same shape as occupancies.
// The occupancies of each site are renormalized to sum to one. Species
// that are not in the periodic table are written after the elements, in
// the order they appear in siteSpecies.
//
// The vacancy species "v" is written first on its site, as in
// IUPACElementOrder. ProcessSolutionChemistry only reads species that
// start with an upper case letter, so strings containing vacancies cannot
// be parsed back; name vacancies with an upper case species such as "Vac"
// to keep the two round-trippable.
func SiteOccupanciesToStrings(siteSpecies [][]string, multiplicities, occupancies mat.Matrix) ([]string, error) {
	nMbr, nOcc := occupancies.Dims()
	var nSpecies int
	for _, site := range siteSpecies {
		nSpecies += len(site)
	}
	if nSpecies != nOcc {
		return nil, fmt.Errorf("thermochem: converting site occupancies to strings: %w: "+
			"there are %d site species but endmember occupancies have %d columns", ErrShape, nSpecies, nOcc)
	}
	mult, err := expandMultiplicities(siteSpecies, multiplicities, nMbr, nOcc)
	if err != nil {
		return nil, err
	}

	o := make([]string, nMbr)
	for iMbr := 0; iMbr < nMbr; iMbr++ {
		var b strings.Builder
		col := 0
		for iSite, site := range siteSpecies {
			var sum float64
			for j := range site {
				sum += occupancies.At(iMbr, col+j)
			}
			if sum == 0 {
				return nil, fmt.Errorf("thermochem: converting site occupancies to strings: "+
					"site %d of endmember %d has no occupancy", iSite, iMbr)
			}
			f := make(Formula, len(site))
			for j, sp := range site {
				f[sp] += occupancies.At(iMbr, col+j) / sum
			}
			b.WriteString("[")
			b.WriteString(formulaToString(f, siteOrder(site)))
			b.WriteString("]")
			if m := mult(iMbr, col); math.Abs(m-1) >= amountTolerance {
				b.WriteString(SimplifyAmount(m))
			}
			col += len(site)
		}
		o[iMbr] = b.String()
	}
	return o, nil
}

// siteOrder returns the species of a site with periodic table elements in
// IUPAC order followed by any other species in site order.
func siteOrder(site []string) []string {
	o := make([]string, 0, len(site))
	for _, e := range IUPACElementOrder {
		for _, sp := range site {
			if sp == e {
				o = append(o, e)
				break
			}
		}
	}
	seen := make(map[string]bool, len(site))
	for _, sp := range site {
		if _, ok := iupacIndex[sp]; !ok && !seen[sp] {
			seen[sp] = true
			o = append(o, sp)
		}
	}
	return o
}

// expandMultiplicities returns a function giving the multiplicity of the
// site-species in column col for endmember iMbr.
func expandMultiplicities(siteSpecies [][]string, m mat.Matrix, nMbr, nOcc int) (func(iMbr, col int) float64, error) {
	r, c := m.Dims()
	if r == nMbr && c == nOcc && r != 1 {
		return m.At, nil
	}
	if r != 1 && c != 1 {
		return nil, fmt.Errorf("thermochem: site multiplicities: %w: if site multiplicities is a matrix, "+
			"it should have the same shape as endmember occupancies. They currently have shapes "+
			"(%d, %d) and (%d, %d)", ErrShape, r, c, nMbr, nOcc)
	}
	n := r
	if r == 1 {
		n = c
	}
	at := func(i int) float64 {
		if r == 1 {
			return m.At(0, i)
		}
		return m.At(i, 0)
	}
	switch {
	case n == len(siteSpecies):
		perSpecies := make([]float64, 0, nOcc)
		for i, site := range siteSpecies {
			for range site {
				perSpecies = append(perSpecies, at(i))
			}
		}
		return func(_, col int) float64 { return perSpecies[col] }, nil
	case n == nOcc:
		return func(_, col int) float64 { return at(col) }, nil
	default:
		return nil, fmt.Errorf("thermochem: site multiplicities: %w: site multiplicities should either be "+
			"given on a per-site basis (%d values) or a per-species basis (%d values), but %d were given",
			ErrShape, len(siteSpecies), nOcc, n)
	}
}
