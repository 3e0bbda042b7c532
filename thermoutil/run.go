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

package thermoutil

import (
	"fmt"
	"io"
	"strings"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/equilibrium"
	"github.com/spatialmodel/thermochem/material"
)

// Formula writes the parsed form and molar mass of each of the given
// chemical formulae to w. convertTo can be "molar" or "mass", and if
// normalize is true the amounts are scaled to sum to one.
func Formula(w io.Writer, formulae []string, convertTo string, normalize bool) error {
	if len(formulae) == 0 {
		return fmt.Errorf("thermoutil: no formulae specified")
	}
	for _, s := range formulae {
		f, err := thermochem.DictionarizeFormula(s)
		if err != nil {
			return err
		}
		mass, err := thermochem.FormulaMass(f)
		if err != nil {
			return err
		}
		var c thermochem.Formula
		switch convertTo {
		case thermochem.Molar:
			c = f
			if normalize {
				c = f.Normalize()
			}
		case thermochem.Mass:
			c, err = thermochem.ConvertFormula(f, thermochem.Mass, normalize)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("thermoutil: %w: ConvertTo must be \"molar\" or \"mass\", not %q",
				thermochem.ErrInvalidArgument, convertTo)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\tmolar mass %.7v/mol\n", s, convertTo, amounts(c), unit.New(mass, unit.Kilogram))
	}
	return nil
}

// amounts formats the amount of each element in f.
func amounts(f thermochem.Formula) string {
	e := f.Elements()
	s := make([]string, len(e))
	for i, el := range e {
		s[i] = fmt.Sprintf("%s:%g", el, f[el])
	}
	return strings.Join(s, " ")
}

// Sites writes the site information of the solid solution with the given
// endmember site formulae to w.
func Sites(w io.Writer, formulae []string) error {
	sc, err := thermochem.ProcessSolutionChemistry(formulae)
	if err != nil {
		return err
	}
	rendered, err := sc.EndmemberStrings()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "sites: %d\n", sc.NSites)
	fmt.Fprintf(w, "occupancies: %s\n", strings.Join(sc.SiteNames, " "))
	for i := 0; i < sc.NEndmembers(); i++ {
		fmt.Fprintf(w, "%s\t%s\toccupancies %v\tmultiplicities %v\t%s\n",
			formulae[i], thermochem.FormulaToString(sc.SolutionFormulae[i]),
			sc.EndmemberOccupancies.RawRowView(i), sc.SiteMultiplicities.RawRowView(i), rendered[i])
	}
	return nil
}

// Potentials writes the chemical potentials of the given components in
// the assemblage at the given pressure [Pa] and temperature [K] to w.
func Potentials(w io.Writer, assemblage []material.Material, components []string, pressure, temperature float64) error {
	c, err := parseFormulae(components)
	if err != nil {
		return err
	}
	setState(assemblage, pressure, temperature)
	mu, err := equilibrium.ChemicalPotentials(asPhases(assemblage), c)
	if err != nil {
		return err
	}
	for i, s := range components {
		fmt.Fprintf(w, "%s\t%v/mol\n", s, unit.New(mu[i], unit.Joule))
	}
	return nil
}

// Fugacity writes the fugacity of the component with the composition of
// the standard material in the assemblage to w. If reference is not
// empty, the fugacity is relative to the reference assemblage instead of
// the standard material. All of the materials are set to the given
// pressure [Pa] and temperature [K].
func Fugacity(w io.Writer, standard material.Material, assemblage, reference []material.Material, pressure, temperature float64) error {
	standard.SetState(pressure, temperature)
	setState(assemblage, pressure, temperature)
	var f float64
	var err error
	if len(reference) == 0 {
		f, err = equilibrium.Fugacity(standard, asPhases(assemblage))
	} else {
		setState(reference, pressure, temperature)
		f, err = equilibrium.RelativeFugacity(standard, asPhases(assemblage), asPhases(reference))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\t%g\n", standard.Name(), f)
	return nil
}

// EquilibriumPressure writes the pressure at which the reaction
// Σ stoichiometry[i]·minerals[i] is at equilibrium at the given
// temperature [K] to w.
func EquilibriumPressure(w io.Writer, s *equilibrium.Solver, minerals []material.Material, stoichiometry []float64, temperature, guess float64) error {
	p, err := s.EquilibriumPressure(asMaterials(minerals), stoichiometry, temperature, guess)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pressure\t%v\n", unit.New(p, unit.Pascal))
	return nil
}

// EquilibriumTemperature writes the temperature at which the reaction
// Σ stoichiometry[i]·minerals[i] is at equilibrium at the given
// pressure [Pa] to w.
func EquilibriumTemperature(w io.Writer, s *equilibrium.Solver, minerals []material.Material, stoichiometry []float64, pressure, guess float64) error {
	t, err := s.EquilibriumTemperature(asMaterials(minerals), stoichiometry, pressure, guess)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "temperature\t%v\n", unit.New(t, unit.Kelvin))
	return nil
}

// InvariantPoint writes the pressure and temperature at which two
// reactions are simultaneously at equilibrium to w.
func InvariantPoint(w io.Writer, s *equilibrium.Solver, minerals1 []material.Material, stoichiometry1 []float64,
	minerals2 []material.Material, stoichiometry2 []float64, guess [2]float64) error {
	p, t, err := s.InvariantPoint(asMaterials(minerals1), stoichiometry1, asMaterials(minerals2), stoichiometry2, guess)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "pressure\t%v\n", unit.New(p, unit.Pascal))
	fmt.Fprintf(w, "temperature\t%v\n", unit.New(t, unit.Kelvin))
	return nil
}
