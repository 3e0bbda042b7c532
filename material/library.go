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
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/thermochem"
)

// SolutionParams holds the definition of an ideal solid solution.
type SolutionParams struct {
	Name string

	// Endmembers holds the names of the endmember minerals.
	Endmembers []string

	// SiteFormulae holds the site formula of each endmember.
	SiteFormulae []string

	// Composition holds the initial molar fractions of the endmembers.
	// If empty, the solution is pure in the first endmember.
	Composition []float64
}

// Library holds a set of named materials. It is typically read from a
// TOML file such as:
//
//	[[Mineral]]
//	Name = "fo"
//	Formula = "Mg2SiO4"
//	G0 = -2053.1e3
//	S0 = 95.1
//	V0 = 4.366e-5
//	P0 = 1.0e5
//	T0 = 298.15
//	Cp = 118.0
//	Alpha = 2.8e-5
//	Beta = 7.9e-12
//
//	[[Solution]]
//	Name = "ol"
//	Endmembers = ["fo", "fa"]
//	SiteFormulae = ["[Mg]2SiO4", "[Fe]2SiO4"]
//	Composition = [0.9, 0.1]
type Library struct {
	Mineral  []MineralParams
	Solution []SolutionParams

	materials map[string]Material
}

// LoadLibrary reads a material library in TOML format from r.
func LoadLibrary(r io.Reader) (*Library, error) {
	l := new(Library)
	md, err := toml.NewDecoder(r).Decode(l)
	if err != nil {
		return nil, fmt.Errorf("material: reading library: %v", err)
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("material: reading library: %w: unrecognized keys %v", thermochem.ErrInvalidArgument, u)
	}
	if err := l.Setup(); err != nil {
		return nil, err
	}
	return l, nil
}

// Setup creates the materials described by the library's parameters.
func (l *Library) Setup() error {
	l.materials = make(map[string]Material)
	minerals := make(map[string]*Mineral)
	for _, p := range l.Mineral {
		if _, ok := l.materials[p.Name]; ok {
			return fmt.Errorf("material: duplicate material name %q", p.Name)
		}
		m, err := NewMineral(p)
		if err != nil {
			return err
		}
		minerals[p.Name] = m
		l.materials[p.Name] = m
	}
	for _, p := range l.Solution {
		if _, ok := l.materials[p.Name]; ok {
			return fmt.Errorf("material: duplicate material name %q", p.Name)
		}
		endmembers := make([]*Mineral, len(p.Endmembers))
		for i, name := range p.Endmembers {
			m, ok := minerals[name]
			if !ok {
				return fmt.Errorf("material: solution %s: %w: endmember %q is not a mineral in the library",
					p.Name, thermochem.ErrInvalidArgument, name)
			}
			// Each solution gets its own copy so that setting its state
			// does not change the state of other materials.
			mCopy := *m
			endmembers[i] = &mCopy
		}
		s, err := NewSolution(p.Name, endmembers, p.SiteFormulae)
		if err != nil {
			return err
		}
		if len(p.Composition) > 0 {
			if err := s.SetComposition(p.Composition); err != nil {
				return err
			}
		}
		l.materials[p.Name] = s
	}
	return nil
}

// Get returns the material with the given name.
func (l *Library) Get(name string) (Material, error) {
	m, ok := l.materials[name]
	if !ok {
		return nil, fmt.Errorf("material: %w: no material named %q in library", thermochem.ErrInvalidArgument, name)
	}
	return m, nil
}

// GetAll returns the materials with the given names.
func (l *Library) GetAll(names []string) ([]Material, error) {
	o := make([]Material, len(names))
	for i, n := range names {
		var err error
		if o[i], err = l.Get(n); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Names returns the names of all of the materials in the library,
// in sorted order.
func (l *Library) Names() []string {
	o := make([]string, 0, len(l.materials))
	for n := range l.materials {
		o = append(o, n)
	}
	sort.Strings(o)
	return o
}
