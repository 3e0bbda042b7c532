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
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/equilibrium"
	"github.com/spatialmodel/thermochem/material"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// loadLibrary reads the material library at the given path, which can
// include environment variables.
func loadLibrary(path string) (*material.Library, error) {
	path = os.ExpandEnv(path)
	if path == "" {
		return nil, fmt.Errorf("thermoutil: no materials file specified. Please set the MaterialsFile option and try again")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("thermoutil: opening materials file: %v", err)
	}
	defer f.Close()
	lib, err := material.LoadLibrary(f)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"file":      path,
		"materials": len(lib.Names()),
	}).Debug("thermoutil: loaded material library")
	return lib, nil
}

// getStringSlice returns a list of strings from a viper configuration,
// accounting for the fact that it might be a comma-separated string
// if it was set from an environment variable.
func getStringSlice(varName string, cfg *viper.Viper) ([]string, error) {
	v := cfg.Get(varName)
	if s, ok := v.(string); ok {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		o := strings.Split(s, ",")
		for i := range o {
			o[i] = strings.TrimSpace(o[i])
		}
		return o, nil
	}
	o, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("thermoutil: reading %s: %v", varName, err)
	}
	return o, nil
}

// getFloat64Slice returns a list of numbers from a viper configuration.
// The list may be given as numbers in a configuration file or as
// strings on the command line.
func getFloat64Slice(varName string, cfg *viper.Viper) ([]float64, error) {
	var items []interface{}
	switch v := cfg.Get(varName).(type) {
	case []interface{}:
		items = v
	case []float64:
		return v, nil
	default:
		s, err := getStringSlice(varName, cfg)
		if err != nil {
			return nil, err
		}
		for _, ss := range s {
			items = append(items, ss)
		}
	}
	o := make([]float64, len(items))
	for i, item := range items {
		var err error
		if o[i], err = cast.ToFloat64E(item); err != nil {
			return nil, fmt.Errorf("thermoutil: reading %s item %d: %v", varName, i, err)
		}
	}
	return o, nil
}

// parseFormulae parses a list of chemical formulae.
func parseFormulae(s []string) ([]thermochem.Formula, error) {
	o := make([]thermochem.Formula, len(s))
	for i, f := range s {
		var err error
		if o[i], err = thermochem.DictionarizeFormula(f); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// getMaterials returns the materials named in the given configuration
// variable.
func getMaterials(varName string, lib *material.Library, cfg *viper.Viper) ([]material.Material, error) {
	names, err := getStringSlice(varName, cfg)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("thermoutil: no materials specified in %s", varName)
	}
	return lib.GetAll(names)
}

// setState sets the state of all the given materials.
func setState(materials []material.Material, pressure, temperature float64) {
	for _, m := range materials {
		m.SetState(pressure, temperature)
	}
}

func asPhases(m []material.Material) []equilibrium.Phase {
	o := make([]equilibrium.Phase, len(m))
	for i, mm := range m {
		o[i] = mm
	}
	return o
}

func asMaterials(m []material.Material) []equilibrium.Material {
	o := make([]equilibrium.Material, len(m))
	for i, mm := range m {
		o[i] = mm
	}
	return o
}

// newSolver creates a solver from the configuration.
func newSolver(cfg *viper.Viper) *equilibrium.Solver {
	return &equilibrium.Solver{
		XTol:             cfg.GetFloat64("Tolerance"),
		MaxIterations:    cfg.GetInt("MaxIterations"),
		AllowUnconverged: cfg.GetBool("AllowUnconverged"),
		Log:              logrus.StandardLogger(),
	}
}
