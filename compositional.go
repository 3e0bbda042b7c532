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

	"gonum.org/v1/gonum/mat"
)

// CompositionalArray returns an array with one row per formula and one
// column per element, along with the list of elements in column order.
// Elements are ordered by first appearance across formulae.
func CompositionalArray(formulae []Formula) (*mat.Dense, []string, error) {
	var elements []string
	seen := make(map[string]bool)
	for _, f := range formulae {
		for _, e := range f.Elements() {
			if !seen[e] {
				seen[e] = true
				elements = append(elements, e)
			}
		}
	}
	a, err := OrderedCompositionalArray(formulae, elements)
	if err != nil {
		return nil, nil, err
	}
	return a, elements, nil
}

// OrderedCompositionalArray returns an array with one row per formula and
// one column per element in elements. It returns an error if any formula
// contains an element that is not in elements.
func OrderedCompositionalArray(formulae []Formula, elements []string) (*mat.Dense, error) {
	if len(formulae) == 0 || len(elements) == 0 {
		return nil, fmt.Errorf("thermochem: creating compositional array: %w: %d formulae and %d elements",
			ErrShape, len(formulae), len(elements))
	}
	index := make(map[string]int, len(elements))
	for i, e := range elements {
		index[e] = i
	}
	a := mat.NewDense(len(formulae), len(elements), nil)
	for i, f := range formulae {
		for e, n := range f {
			j, ok := index[e]
			if !ok {
				return nil, fmt.Errorf("thermochem: creating compositional array: %w %q in formula %d",
					ErrUnknownElement, e, i)
			}
			a.Set(i, j, n)
		}
	}
	return a, nil
}
