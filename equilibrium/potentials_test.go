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
	"errors"
	"math"
	"testing"

	"github.com/spatialmodel/thermochem"
)

func formulae(t *testing.T, s ...string) []thermochem.Formula {
	o := make([]thermochem.Formula, len(s))
	for i, v := range s {
		f, err := thermochem.DictionarizeFormula(v)
		if err != nil {
			t.Fatal(err)
		}
		o[i] = f
	}
	return o
}

// solutionPhase is a phase with several endmembers.
type solutionPhase struct {
	formulae   []thermochem.Formula
	potentials []float64
	t          float64
}

func (s solutionPhase) Endmembers() ([]thermochem.Formula, []float64) {
	return s.formulae, s.potentials
}
func (s solutionPhase) Temperature() float64 { return s.t }

func TestChemicalPotentials(t *testing.T) {
	per := linearMaterial("MgO", -6.0e5, 1.1e-5, 27)
	qtz := linearMaterial("SiO2", -9.1e5, 2.3e-5, 41)
	per.SetState(1.e5, 1000)
	qtz.SetState(1.e5, 1000)
	assemblage := []Phase{per, qtz}

	t.Run("own gibbs", func(t *testing.T) {
		mu, err := ChemicalPotentials(assemblage, formulae(t, "MgO", "SiO2"))
		if err != nil {
			t.Fatal(err)
		}
		if different(mu[0], per.Gibbs(), 1.e-8) {
			t.Errorf("MgO: have %g, want %g", mu[0], per.Gibbs())
		}
		if different(mu[1], qtz.Gibbs(), 1.e-8) {
			t.Errorf("SiO2: have %g, want %g", mu[1], qtz.Gibbs())
		}
	})
	t.Run("combination", func(t *testing.T) {
		mu, err := ChemicalPotentials(assemblage, formulae(t, "Mg2SiO4", "MgSi2O5"))
		if err != nil {
			t.Fatal(err)
		}
		want := []float64{2*per.Gibbs() + qtz.Gibbs(), per.Gibbs() + 2*qtz.Gibbs()}
		for i := range want {
			if different(mu[i], want[i], 1.e-8) {
				t.Errorf("%d: have %g, want %g", i, mu[i], want[i])
			}
		}
	})
	t.Run("solution", func(t *testing.T) {
		ss := solutionPhase{
			formulae:   formulae(t, "Mg2SiO4", "Fe2SiO4"),
			potentials: []float64{-2.1e6, -1.4e6},
			t:          1000,
		}
		mu, err := ChemicalPotentials([]Phase{ss, per}, formulae(t, "FeO"))
		if err != nil {
			t.Fatal(err)
		}
		// FeO = Fe2SiO4/2 - Mg2SiO4/2 + MgO
		want := -1.4e6/2 + 2.1e6/2 + per.Gibbs()
		if different(mu[0], want, 1.e-8) {
			t.Errorf("have %g, want %g", mu[0], want)
		}
	})
	t.Run("absent endmember", func(t *testing.T) {
		ss := solutionPhase{
			formulae:   formulae(t, "Mg2SiO4", "Fe2SiO4"),
			potentials: []float64{-2.1e6, math.Inf(-1)},
			t:          1000,
		}
		mu, err := ChemicalPotentials([]Phase{ss}, formulae(t, "Mg2SiO4"))
		if err != nil {
			t.Fatal(err)
		}
		if different(mu[0], -2.1e6, 1.e-12) {
			t.Errorf("have %g, want %g", mu[0], -2.1e6)
		}
		_, err = ChemicalPotentials([]Phase{ss}, formulae(t, "Fe2SiO4"))
		if !errors.Is(err, ErrNonFinitePotential) {
			t.Errorf("have %v, want %v", err, ErrNonFinitePotential)
		}
	})
	t.Run("undefined component", func(t *testing.T) {
		_, err := ChemicalPotentials(assemblage, formulae(t, "Al2O3"))
		if !errors.Is(err, ErrComponentUndefined) {
			t.Errorf("have %v, want %v", err, ErrComponentUndefined)
		}
	})
	t.Run("outside span", func(t *testing.T) {
		_, err := ChemicalPotentials(assemblage, formulae(t, "O2"))
		if !errors.Is(err, ErrComponentUndefined) {
			t.Errorf("have %v, want %v", err, ErrComponentUndefined)
		}
	})
	t.Run("dependent endmembers", func(t *testing.T) {
		fo := linearMaterial("Mg2SiO4", -2.1e6, 4.4e-5, 95)
		fo.SetState(1.e5, 1000)
		_, err := ChemicalPotentials([]Phase{per, qtz, fo}, formulae(t, "MgO"))
		if !errors.Is(err, ErrDependentEndmembers) {
			t.Errorf("have %v, want %v", err, ErrDependentEndmembers)
		}
	})
	t.Run("too many endmembers", func(t *testing.T) {
		mg := linearMaterial("Mg", 0, 1.4e-5, 33)
		o2 := linearMaterial("O2", 0, 2.2e-2, 205)
		mg.SetState(1.e5, 1000)
		o2.SetState(1.e5, 1000)
		_, err := ChemicalPotentials([]Phase{per, mg, o2}, formulae(t, "MgO"))
		if !errors.Is(err, ErrDependentEndmembers) {
			t.Errorf("have %v, want %v", err, ErrDependentEndmembers)
		}
	})
	t.Run("empty", func(t *testing.T) {
		if _, err := ChemicalPotentials(nil, formulae(t, "MgO")); err == nil {
			t.Error("expected an error for an empty assemblage")
		}
		if _, err := ChemicalPotentials(assemblage, nil); err == nil {
			t.Error("expected an error for no components")
		}
	})
}

func TestFugacity(t *testing.T) {
	const temperature = 1000.
	per := linearMaterial("MgO", -6.0e5, 1.1e-5, 27)
	qtz := linearMaterial("SiO2", -9.1e5, 2.3e-5, 41)
	per.SetState(1.e5, temperature)
	qtz.SetState(1.e5, temperature)

	// The standard state is one RT above the potential in the assemblage.
	standard := linearMaterial("MgO", per.Gibbs()+GasConstant*temperature, 0, 0)
	standard.SetState(0, 0)

	f, err := Fugacity(standard, []Phase{per, qtz})
	if err != nil {
		t.Fatal(err)
	}
	if different(f, math.Exp(-1), 1.e-8) {
		t.Errorf("fugacity: have %g, want %g", f, math.Exp(-1))
	}

	ref := linearMaterial("MgO", -6.0e5-2*GasConstant*temperature, 1.1e-5, 27)
	ref.SetState(1.e5, temperature)
	rf, err := RelativeFugacity(standard, []Phase{per, qtz}, []Phase{ref})
	if err != nil {
		t.Fatal(err)
	}
	if different(rf, math.Exp(2), 1.e-8) {
		t.Errorf("relative fugacity: have %g, want %g", rf, math.Exp(2))
	}

	al := linearMaterial("Al2O3", -1.6e6, 2.6e-5, 51)
	if _, err := Fugacity(al, []Phase{per, qtz}); !errors.Is(err, ErrComponentUndefined) {
		t.Errorf("have %v, want %v", err, ErrComponentUndefined)
	}
	if _, err := RelativeFugacity(standard, []Phase{per, qtz}, []Phase{qtz}); !errors.Is(err, ErrComponentUndefined) {
		t.Errorf("reference: have %v, want %v", err, ErrComponentUndefined)
	}
}
