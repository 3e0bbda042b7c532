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
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSumFormulae(t *testing.T) {
	fo := Formula{"Mg": 2, "Si": 1, "O": 4}
	fa := Formula{"Fe": 2, "Si": 1, "O": 4}

	s, err := SumFormulae([]Formula{fo, fa}, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Formula{"Mg": 2, "Fe": 2, "Si": 2, "O": 8}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("have %v, want %v", s, want)
	}

	s, err = SumFormulae([]Formula{fo, fa}, []float64{0.9, 0.1})
	if err != nil {
		t.Fatal(err)
	}
	if different(s["Mg"], 1.8, 1.e-14) || different(s["Fe"], 0.2, 1.e-14) || different(s["O"], 4, 1.e-14) {
		t.Errorf("weighted sum: %v", s)
	}

	if _, err := SumFormulae([]Formula{fo, fa}, []float64{1}); !errors.Is(err, ErrShape) {
		t.Errorf("length mismatch should give ErrShape but gave %v", err)
	}
}

func TestFormulaMass(t *testing.T) {
	periclase := Formula{"Mg": 1, "O": 1}
	m, err := FormulaMass(periclase)
	if err != nil {
		t.Fatal(err)
	}
	if different(m, 0.0403044, 1.e-10) {
		t.Errorf("MgO mass should be 0.0403044 kg/mol but is %g", m)
	}

	// Formula mass is linear in the formula.
	quartz := Formula{"Si": 1, "O": 2}
	sum, err := SumFormulae([]Formula{periclase, quartz}, nil)
	if err != nil {
		t.Fatal(err)
	}
	mSum, err := FormulaMass(sum)
	if err != nil {
		t.Fatal(err)
	}
	mQ, err := FormulaMass(quartz)
	if err != nil {
		t.Fatal(err)
	}
	if different(mSum, m+mQ, 1.e-14) {
		t.Errorf("mass of sum (%g) != sum of masses (%g)", mSum, m+mQ)
	}

	if _, err := FormulaMass(Formula{"Xx": 1}); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("unknown element should give ErrUnknownElement but gave %v", err)
	}
}

func TestConvertFormula(t *testing.T) {
	f := Formula{"Mg": 1.8, "Fe": 0.2, "Si": 1, "O": 4}
	mass, err := ConvertFormula(f, Mass, false)
	if err != nil {
		t.Fatal(err)
	}
	if different(mass["O"], 4*0.0159994, 1.e-14) {
		t.Errorf("O mass: %g", mass["O"])
	}
	back, err := ConvertFormula(mass, Molar, false)
	if err != nil {
		t.Fatal(err)
	}
	for e, n := range f {
		if different(back[e], n, 1.e-12) {
			t.Errorf("%s: round trip gives %g, want %g", e, back[e], n)
		}
	}

	norm, err := ConvertFormula(f, Mass, true)
	if err != nil {
		t.Fatal(err)
	}
	var total float64
	for _, n := range norm {
		total += n
	}
	if different(total, 1, 1.e-14) {
		t.Errorf("normalized masses sum to %g", total)
	}

	if _, err := ConvertFormula(f, "volume", false); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad conversion type should give ErrInvalidArgument but gave %v", err)
	}
	if _, err := ConvertFormula(Formula{"Xx": 1}, Molar, false); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("unknown element should give ErrUnknownElement but gave %v", err)
	}
}

func TestFormulaToString(t *testing.T) {
	tests := []struct {
		f    Formula
		want string
	}{
		{Formula{"O": 4, "Mg": 2, "Si": 1}, "Mg2SiO4"},
		{Formula{"Si": 0.5, "O": 1}, "Si1/2O"},
		{Formula{"Mg": 1. / 3., "Fe": 2. / 3.}, "Mg1/3Fe2/3"},
		{Formula{"Mg": 1.e-13, "O": 1}, "O"},
		{Formula{"H": 2, "O": 1}, "OH2"},
		{Formula{"Fef": 2, "Mg": 1}, "MgFef2"},
		{Formula{"Al": 2, "Ca": 3, "Si": 3, "O": 12}, "Ca3Al2Si3O12"},
		{Formula{"Na": 0.1234}, "Na617/5000"},
	}
	for _, test := range tests {
		if s := FormulaToString(test.f); s != test.want {
			t.Errorf("%v: have %q, want %q", test.f, s, test.want)
		}
	}
}

func TestSimplifyAmount(t *testing.T) {
	tests := map[float64]string{
		2:           "2",
		0.5:         "1/2",
		1. / 3.:     "1/3",
		1.5:         "3/2",
		0.1:         "1/10",
		-0.25:       "-1/4",
		2. / 3.:     "2/3",
		-7. / 3.:    "-7/3",
		0.333333:    "333333/1000000",
		0.123456789: "123456789/1000000000",
		2.5e-5:      "1/40000",
	}
	for x, want := range tests {
		if s := SimplifyAmount(x); s != want {
			t.Errorf("%g: have %q, want %q", x, s, want)
		}
	}
}

func TestSortElementListToIUPACOrder(t *testing.T) {
	s, err := SortElementListToIUPACOrder([]string{"O", "Mg", "Si"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Mg", "Si", "O"}; !reflect.DeepEqual(s, want) {
		t.Errorf("have %v, want %v", s, want)
	}
	if _, err := SortElementListToIUPACOrder([]string{"O", "Xx"}); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("unknown element should give ErrUnknownElement but gave %v", err)
	}
}

func TestReadAtomicMasses(t *testing.T) {
	r := strings.NewReader(`% comment line
Mg 0.024305 % magnesium
O  0.0159994
bad line here
Si

Al notanumber
`)
	m, err := ReadAtomicMasses(r)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"Mg": 0.024305, "O": 0.0159994}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("have %v, want %v", m, want)
	}

	embedded, err := ReadAtomicMasses(bytes.NewReader(atomicMassData))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range IUPACElementOrder {
		switch e {
		case "Og", "Ts", "Lv", "Mc", "Fl", "Nh", "Cn", "Rg", "Ds", "Mt", "Hs", "Bh", "Sg", "Db", "Rf":
			continue // No standard atomic weight.
		}
		if _, ok := embedded[e]; !ok {
			t.Errorf("no atomic mass for %s", e)
		}
	}
}
