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
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed data/atomic_masses.dat
var atomicMassData []byte

// AtomicMasses holds the molar mass [kg/mol] of each element. It is
// loaded once when the package is initialized and must not be modified.
var AtomicMasses map[string]float64

func init() {
	var err error
	AtomicMasses, err = ReadAtomicMasses(bytes.NewReader(atomicMassData))
	if err != nil {
		panic(err)
	}
}

// ReadAtomicMasses reads a two column list of elements and their molar
// masses. Text following a '%' character is a comment. Lines that do not
// contain a symbol followed by a number are skipped.
func ReadAtomicMasses(r io.Reader) (map[string]float64, error) {
	o := make(map[string]float64)
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if i := strings.Index(line, "%"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		m, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		o[fields[0]] = m
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("thermochem: reading atomic masses: %v", err)
	}
	return o, nil
}

// atomicMass returns the molar mass of element e.
func atomicMass(e string) (float64, error) {
	m, ok := AtomicMasses[e]
	if !ok {
		return 0, fmt.Errorf("thermochem: %w %q: no atomic mass available", ErrUnknownElement, e)
	}
	return m, nil
}
