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
	"math/big"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// SolutionChemistry holds the site information of a solid solution, as
// parsed from the site formulae of its endmembers.
type SolutionChemistry struct {
	// NSites is the number of sites in the solid solution. It is the same
	// for all endmembers.
	NSites int

	// Sites holds the species found on each site, in the order in which
	// they were first encountered.
	Sites [][]string

	// SiteNames holds a species_site label for each occupancy, where each
	// distinct site is given by an upper case letter in parsing order,
	// e.g. [Mg_A Fe_A Al_B].
	SiteNames []string

	// NOccupancies is the total number of possible species over all of
	// the sites. For example, the binary solution [[A][B], [B][C1/2D1/2]]
	// has five: two species on the first site and three on the second.
	NOccupancies int

	// SolutionFormulae holds the bulk formula of each endmember, with
	// the site information removed.
	SolutionFormulae []Formula

	// SiteMultiplicities holds the multiplicity of each site per formula
	// unit for each endmember. The multiplicity is repeated for each
	// species on a site, so the shape is (endmembers, NOccupancies).
	SiteMultiplicities *mat.Dense

	// EndmemberOccupancies holds the fraction of each site occupied by
	// each species for each endmember, in shape (endmembers, NOccupancies).
	EndmemberOccupancies *mat.Dense

	// EndmemberNOccupancies holds the number of atoms of each species on
	// each site per mole of endmember: the element-wise product of
	// SiteMultiplicities and EndmemberOccupancies.
	EndmemberNOccupancies *mat.Dense
}

// siteLetters label the sites of a solution.
const siteLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ProcessSolutionChemistry parses a list of endmember formulae containing
// site information, e.g.
//
//	[]string{"[Mg]3[Al]2Si3O12", "[Mg]3[Mg1/2Si1/2]2Si3O12"}
//
// Each site is written as a bracketed list of species, each an upper case
// letter followed by any number of lower case letters and an optional
// proportion, followed by an optional site multiplicity (default 1).
// Elements written after a site and before the next '[' are outside of
// any site and are added directly to the bulk formula. All formulae must
// have the same number of sites.
func ProcessSolutionChemistry(formulae []string) (*SolutionChemistry, error) {
	if len(formulae) == 0 {
		return nil, fmt.Errorf("thermochem: processing solution chemistry: no formulae")
	}
	nSites := strings.Count(formulae[0], "[")
	if nSites == 0 {
		return nil, fmt.Errorf("thermochem: processing solution chemistry: %w: formula %q has no sites",
			ErrSiteCount, formulae[0])
	}
	if nSites > len(siteLetters) {
		return nil, fmt.Errorf("thermochem: processing solution chemistry: %w: %d sites is more than the maximum of %d",
			ErrSiteCount, nSites, len(siteLetters))
	}
	for i, f := range formulae {
		if n := strings.Count(f, "["); n != nSites {
			return nil, fmt.Errorf("thermochem: processing solution chemistry: %w: all formulae must have the same "+
				"number of distinct sites, but formula %d (%q) has %d and formula 0 has %d",
				ErrSiteCount, i, f, n, nSites)
		}
	}

	sc := &SolutionChemistry{
		NSites:           nSites,
		Sites:            make([][]string, nSites),
		SolutionFormulae: make([]Formula, len(formulae)),
	}
	siteIndex := make([]map[string]int, nSites)
	for i := range siteIndex {
		siteIndex[i] = make(map[string]int)
	}
	// occupancies[endmember][site][species index on site]
	occupancies := make([][]map[int]*big.Rat, len(formulae))
	multiplicities := make([][]*big.Rat, len(formulae))

	for iMbr, formula := range formulae {
		bulk := make(ExactFormula)
		occupancies[iMbr] = make([]map[int]*big.Rat, nSites)
		multiplicities[iMbr] = make([]*big.Rat, nSites)
		s := &scanner{s: formula}
		for iSite := 0; iSite < nSites; iSite++ {
			species, proportions, mult, err := s.site(bulk)
			if err != nil {
				return nil, err
			}
			multiplicities[iMbr][iSite] = mult
			occ := make(map[int]*big.Rat)
			for i, sp := range species {
				bulk.add(sp, proportions[i], mult)
				j, ok := siteIndex[iSite][sp]
				if !ok {
					j = len(sc.Sites[iSite])
					siteIndex[iSite][sp] = j
					sc.Sites[iSite] = append(sc.Sites[iSite], sp)
					sc.NOccupancies++
				}
				if v, ok := occ[j]; ok {
					occ[j] = new(big.Rat).Add(v, proportions[i])
				} else {
					occ[j] = proportions[i]
				}
			}
			occupancies[iMbr][iSite] = occ
		}
		sc.SolutionFormulae[iMbr] = bulk.Float()
	}

	// Species first seen on a later endmember are absent from earlier
	// ones, so every column without an entry is zero.
	sc.EndmemberOccupancies = mat.NewDense(len(formulae), sc.NOccupancies, nil)
	sc.SiteMultiplicities = mat.NewDense(len(formulae), sc.NOccupancies, nil)
	for iMbr := range formulae {
		col := 0
		for iSite, site := range sc.Sites {
			m, _ := multiplicities[iMbr][iSite].Float64()
			for j := range site {
				if v, ok := occupancies[iMbr][iSite][j]; ok {
					f, _ := v.Float64()
					sc.EndmemberOccupancies.Set(iMbr, col, f)
				}
				sc.SiteMultiplicities.Set(iMbr, col, m)
				col++
			}
		}
	}
	sc.EndmemberNOccupancies = mat.NewDense(len(formulae), sc.NOccupancies, nil)
	sc.EndmemberNOccupancies.MulElem(sc.EndmemberOccupancies, sc.SiteMultiplicities)

	for i, site := range sc.Sites {
		for _, sp := range site {
			sc.SiteNames = append(sc.SiteNames, fmt.Sprintf("%s_%c", sp, siteLetters[i]))
		}
	}
	return sc, nil
}

// NEndmembers returns the number of endmembers in the solution.
func (sc *SolutionChemistry) NEndmembers() int { return len(sc.SolutionFormulae) }

// EndmemberStrings renders the site occupancies of each endmember back
// into site formula strings. Elements that are outside of the sites are
// not included.
func (sc *SolutionChemistry) EndmemberStrings() ([]string, error) {
	return SiteOccupanciesToStrings(sc.Sites, sc.SiteMultiplicities, sc.EndmemberOccupancies)
}

// site reads one bracketed site, its multiplicity, and any elements that
// follow it before the next site, which are added to bulk.
func (sc *scanner) site(bulk ExactFormula) (species []string, proportions []*big.Rat, mult *big.Rat, err error) {
	if sc.done() || sc.peek() != '[' {
		return nil, nil, nil, sc.errorf("expected '[' at the start of a site")
	}
	sc.pos++
	for !sc.done() && sc.peek() != ']' {
		sp, err := sc.symbol(-1)
		if err != nil {
			return nil, nil, nil, err
		}
		p, err := sc.amount()
		if err != nil {
			return nil, nil, nil, err
		}
		if p == nil {
			p = big.NewRat(1, 1)
		}
		species = append(species, sp)
		proportions = append(proportions, p)
	}
	if sc.done() {
		return nil, nil, nil, sc.errorf("site is missing its closing ']'")
	}
	if len(species) == 0 {
		return nil, nil, nil, sc.errorf("site contains no species")
	}
	sc.pos++ // Skip ']'.
	mult, err = sc.amount()
	if err != nil {
		return nil, nil, nil, err
	}
	if mult == nil {
		mult = big.NewRat(1, 1)
	}
	one := big.NewRat(1, 1)
	if err := sc.elements(bulk, one, 1, func(c byte) bool { return c == '[' }); err != nil {
		return nil, nil, nil, err
	}
	return species, proportions, mult, nil
}
