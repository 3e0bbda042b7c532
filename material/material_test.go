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

package material

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/equilibrium"
	"gonum.org/v1/gonum/diff/fd"
)

func different(a, b, tolerance float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return true
	}
	if b == 0 {
		return math.Abs(a) > tolerance
	}
	return math.Abs((a-b)/b) > tolerance
}

const testLibrary = `
[[Mineral]]
Name = "fo"
Formula = "Mg2SiO4"
G0 = -2053.1e3
S0 = 95.1
V0 = 4.366e-5
P0 = 1.0e5
T0 = 298.15
Cp = 118.0
Alpha = 2.8e-5
Beta = 7.9e-12

[[Mineral]]
Name = "fa"
Formula = "Fe2SiO4"
G0 = -1379.2e3
S0 = 151.0
V0 = 4.631e-5
P0 = 1.0e5
T0 = 298.15
Cp = 131.0
Alpha = 2.8e-5
Beta = 7.4e-12

[[Solution]]
Name = "ol"
Endmembers = ["fo", "fa"]
SiteFormulae = ["[Mg]2SiO4", "[Fe]2SiO4"]
Composition = [0.5, 0.5]
`

func loadTestLibrary(t *testing.T) *Library {
	l, err := LoadLibrary(strings.NewReader(testLibrary))
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestMineral(t *testing.T) {
	l := loadTestLibrary(t)
	mm, err := l.Get("fo")
	if err != nil {
		t.Fatal(err)
	}
	m := mm.(*Mineral)

	if !math.IsNaN(m.Temperature()) || !math.IsNaN(m.Pressure()) {
		t.Errorf("state should be unset: %g K, %g Pa", m.Temperature(), m.Pressure())
	}

	m.SetState(m.P0, m.T0)
	if m.Gibbs() != m.G0 {
		t.Errorf("reference gibbs: have %g, want %g", m.Gibbs(), m.G0)
	}
	if different(m.Entropy(), m.S0, 1.e-12) {
		t.Errorf("reference entropy: have %g, want %g", m.Entropy(), m.S0)
	}
	if m.Volume() != m.V0 {
		t.Errorf("reference volume: have %g, want %g", m.Volume(), m.V0)
	}
	if different(m.MolarMass(), 0.14069310, 1.e-6) {
		t.Errorf("molar mass: have %g", m.MolarMass())
	}
	if want := (thermochem.Formula{"Mg": 2, "Si": 1, "O": 4}); !reflect.DeepEqual(m.Formula(), want) {
		t.Errorf("formula: %v", pretty.Diff(m.Formula(), want))
	}

	const p, temp = 1.e10, 1500.
	m.SetState(p, temp)
	gibbsT := func(x float64) float64 { m.SetState(p, x); return m.Gibbs() }
	gibbsP := func(x float64) float64 { m.SetState(x, temp); return m.Gibbs() }
	dGdT := fd.Derivative(gibbsT, temp, &fd.Settings{Formula: fd.Central, Step: 1.e-3})
	dGdP := fd.Derivative(gibbsP, p, &fd.Settings{Formula: fd.Central, Step: 1.e3})
	m.SetState(p, temp)
	if different(m.Entropy(), -dGdT, 1.e-6) {
		t.Errorf("entropy: have %g, want %g", m.Entropy(), -dGdT)
	}
	if different(m.Volume(), dGdP, 1.e-6) {
		t.Errorf("volume: have %g, want %g", m.Volume(), dGdP)
	}
	if want := m.Gibbs() - p*m.Volume(); m.Helmholtz() != want {
		t.Errorf("helmholtz: have %g, want %g", m.Helmholtz(), want)
	}
	f, mu := m.Endmembers()
	if len(f) != 1 || mu[0] != m.Gibbs() {
		t.Errorf("endmembers: %v %v", f, mu)
	}
}

func TestNewMineralErrors(t *testing.T) {
	if _, err := NewMineral(MineralParams{Name: "x", Formula: "Xx2O", T0: 298.15}); !errors.Is(err, thermochem.ErrUnknownElement) {
		t.Errorf("have %v, want %v", err, thermochem.ErrUnknownElement)
	}
	if _, err := NewMineral(MineralParams{Name: "x", Formula: "MgO"}); !errors.Is(err, thermochem.ErrInvalidArgument) {
		t.Errorf("have %v, want %v", err, thermochem.ErrInvalidArgument)
	}
}

func TestSolution(t *testing.T) {
	l := loadTestLibrary(t)
	mm, err := l.Get("ol")
	if err != nil {
		t.Fatal(err)
	}
	s := mm.(*Solution)
	fo := s.endmembers[0]
	fa := s.endmembers[1]

	const p, temp = 1.e9, 1200.
	s.SetState(p, temp)
	if fo.Temperature() != temp || fa.Pressure() != p {
		t.Errorf("endmember state not set")
	}

	rt := equilibrium.GasConstant * temp
	t.Run("mixed", func(t *testing.T) {
		mu := s.PartialGibbs()
		// Two Mg-Fe sites per formula unit, each half occupied.
		want := []float64{fo.Gibbs() + 2*rt*math.Log(0.5), fa.Gibbs() + 2*rt*math.Log(0.5)}
		for i := range want {
			if different(mu[i], want[i], 1.e-12) {
				t.Errorf("partial gibbs %d: have %g, want %g", i, mu[i], want[i])
			}
		}
		g := 0.5*fo.Gibbs() + 0.5*fa.Gibbs() + 2*rt*math.Log(0.5)
		if different(s.Gibbs(), g, 1.e-12) {
			t.Errorf("gibbs: have %g, want %g", s.Gibbs(), g)
		}
		if want := (thermochem.Formula{"Mg": 1, "Fe": 1, "Si": 1, "O": 4}); !reflect.DeepEqual(s.Formula(), want) {
			t.Errorf("formula: %v", pretty.Diff(s.Formula(), want))
		}
		if want := 0.5*fo.MolarMass() + 0.5*fa.MolarMass(); different(s.MolarMass(), want, 1.e-12) {
			t.Errorf("molar mass: have %g, want %g", s.MolarMass(), want)
		}
		gibbsT := func(x float64) float64 { s.SetState(p, x); return s.Gibbs() }
		dGdT := fd.Derivative(gibbsT, temp, &fd.Settings{Formula: fd.Central, Step: 1.e-3})
		s.SetState(p, temp)
		if different(s.Entropy(), -dGdT, 1.e-6) {
			t.Errorf("entropy: have %g, want %g", s.Entropy(), -dGdT)
		}
		if want := s.Gibbs() - p*s.Volume(); different(s.Helmholtz(), want, 1.e-12) {
			t.Errorf("helmholtz: have %g, want %g", s.Helmholtz(), want)
		}
	})
	t.Run("pure", func(t *testing.T) {
		if err := s.SetComposition([]float64{1, 0}); err != nil {
			t.Fatal(err)
		}
		f, mu := s.Endmembers()
		if !reflect.DeepEqual(f[0], fo.Formula()) {
			t.Errorf("formula: %v", pretty.Diff(f[0], fo.Formula()))
		}
		if different(mu[0], fo.Gibbs(), 1.e-12) {
			t.Errorf("partial gibbs: have %g, want %g", mu[0], fo.Gibbs())
		}
		if different(s.Gibbs(), fo.Gibbs(), 1.e-12) {
			t.Errorf("gibbs: have %g, want %g", s.Gibbs(), fo.Gibbs())
		}
		if different(s.Entropy(), fo.Entropy(), 1.e-12) {
			t.Errorf("entropy: have %g, want %g", s.Entropy(), fo.Entropy())
		}
	})
	t.Run("composition", func(t *testing.T) {
		if err := s.SetComposition([]float64{3, 1}); err != nil {
			t.Fatal(err)
		}
		if want := []float64{0.75, 0.25}; !reflect.DeepEqual(s.Composition(), want) {
			t.Errorf("have %v, want %v", s.Composition(), want)
		}
		if err := s.SetComposition([]float64{1}); !errors.Is(err, thermochem.ErrShape) {
			t.Errorf("have %v, want %v", err, thermochem.ErrShape)
		}
		if err := s.SetComposition([]float64{1, -1}); !errors.Is(err, thermochem.ErrInvalidArgument) {
			t.Errorf("have %v, want %v", err, thermochem.ErrInvalidArgument)
		}
	})
}

func TestSolutionPotentials(t *testing.T) {
	l := loadTestLibrary(t)
	ol, err := l.Get("ol")
	if err != nil {
		t.Fatal(err)
	}
	ol.SetState(1.e9, 1200)
	mu, err := equilibrium.ChemicalPotentials([]equilibrium.Phase{ol}, []thermochem.Formula{{"Mg": 2, "Si": 1, "O": 4}})
	if err != nil {
		t.Fatal(err)
	}
	_, want := ol.Endmembers()
	if different(mu[0], want[0], 1.e-8) {
		t.Errorf("have %g, want %g", mu[0], want[0])
	}

	t.Run("pure", func(t *testing.T) {
		s := ol.(*Solution)
		if err := s.SetComposition([]float64{1, 0}); err != nil {
			t.Fatal(err)
		}
		s.SetState(1.e9, 1200)
		mu, err := equilibrium.ChemicalPotentials([]equilibrium.Phase{s}, []thermochem.Formula{{"Mg": 2, "Si": 1, "O": 4}})
		if err != nil {
			t.Fatal(err)
		}
		fo := s.endmembers[0]
		if different(mu[0], fo.Gibbs(), 1.e-12) {
			t.Errorf("have %g, want %g", mu[0], fo.Gibbs())
		}
		_, err = equilibrium.ChemicalPotentials([]equilibrium.Phase{s}, []thermochem.Formula{{"Fe": 2, "Si": 1, "O": 4}})
		if !errors.Is(err, equilibrium.ErrNonFinitePotential) {
			t.Errorf("have %v, want %v", err, equilibrium.ErrNonFinitePotential)
		}
	})
}

func TestLoadLibrary(t *testing.T) {
	l := loadTestLibrary(t)
	if want := []string{"fa", "fo", "ol"}; !reflect.DeepEqual(l.Names(), want) {
		t.Errorf("names: have %v, want %v", l.Names(), want)
	}
	if _, err := l.GetAll([]string{"fo", "qtz"}); !errors.Is(err, thermochem.ErrInvalidArgument) {
		t.Errorf("missing material: have %v, want %v", err, thermochem.ErrInvalidArgument)
	}

	// The solution's endmembers are independent of the library minerals.
	fo, _ := l.Get("fo")
	ol, _ := l.Get("ol")
	ol.SetState(1.e9, 1200)
	if !math.IsNaN(fo.Temperature()) {
		t.Errorf("setting the solution state changed the mineral state")
	}

	for name, lib := range map[string]string{
		"unknown key":       "[[Mineral]]\nName = \"x\"\nFormula = \"MgO\"\nT0 = 298.15\nG = 1.0\n",
		"unknown endmember": "[[Solution]]\nName = \"ss\"\nEndmembers = [\"a\"]\nSiteFormulae = [\"[Mg]O\"]\n",
		"duplicate":         "[[Mineral]]\nName = \"x\"\nFormula = \"MgO\"\nT0 = 298.15\n[[Mineral]]\nName = \"x\"\nFormula = \"MgO\"\nT0 = 298.15\n",
		"mismatch":          "[[Mineral]]\nName = \"x\"\nFormula = \"MgO\"\nT0 = 298.15\n[[Solution]]\nName = \"ss\"\nEndmembers = [\"x\"]\nSiteFormulae = [\"[Fe]O\"]\n",
		"syntax":            "[[Mineral]\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadLibrary(strings.NewReader(lib)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
