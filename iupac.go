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

import "fmt"

// IUPACElementOrder lists all of the elements (plus "v", a site vacancy).
// The order is based loosely on electronegativity, following the scheme
// suggested by IUPAC, except that H comes after the Group 16 elements,
// not before them.
var IUPACElementOrder = []string{
	"v", "Og", "Rn", "Xe", "Kr", "Ar", "Ne", "He", // Group 18
	"Fr", "Cs", "Rb", "K", "Na", "Li", // Group 1 (not H)
	"Ra", "Ba", "Sr", "Ca", "Mg", "Be", // Group 2
	"Lr", "No", "Md", "Fm", "Es", "Cf", "Bk", "Cm",
	"Am", "Pu", "Np", "U", "Pa", "Th", "Ac", // Actinides
	"Lu", "Yb", "Tm", "Er", "Ho", "Dy", "Tb", "Gd",
	"Eu", "Sm", "Pm", "Nd", "Pr", "Ce", "La", // Lanthanides
	"Y", "Sc", // Group 3
	"Rf", "Hf", "Zr", "Ti", // Group 4
	"Db", "Ta", "Nb", "V", // Group 5
	"Sg", "W", "Mo", "Cr", // Group 6
	"Bh", "Re", "Tc", "Mn", // Group 7
	"Hs", "Os", "Ru", "Fe", // Group 8
	"Mt", "Ir", "Rh", "Co", // Group 9
	"Ds", "Pt", "Pd", "Ni", // Group 10
	"Rg", "Au", "Ag", "Cu", // Group 11
	"Cn", "Hg", "Cd", "Zn", // Group 12
	"Nh", "Tl", "In", "Ga", "Al", "B", // Group 13
	"Fl", "Pb", "Sn", "Ge", "Si", "C", // Group 14
	"Mc", "Bi", "Sb", "As", "P", "N", // Group 15
	"Lv", "Po", "Te", "Se", "S", "O", // Group 16
	"H",                              // hydrogen
	"Ts", "At", "I", "Br", "Cl", "F", // Group 17
}

// iupacIndex maps each symbol to its position in IUPACElementOrder.
var iupacIndex map[string]int

func init() {
	iupacIndex = make(map[string]int, len(IUPACElementOrder))
	for i, e := range IUPACElementOrder {
		iupacIndex[e] = i
	}
}

// SortElementListToIUPACOrder returns the given elements sorted into the
// order of IUPACElementOrder. It returns an error if any of the elements
// is not in the table.
func SortElementListToIUPACOrder(elements []string) ([]string, error) {
	present := make(map[string]bool, len(elements))
	for _, e := range elements {
		if _, ok := iupacIndex[e]; !ok {
			return nil, fmt.Errorf("thermochem: sorting elements: %w %q", ErrUnknownElement, e)
		}
		present[e] = true
	}
	o := make([]string, 0, len(present))
	for _, e := range IUPACElementOrder {
		if present[e] {
			o = append(o, e)
		}
	}
	return o, nil
}
