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
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/unit"
	"github.com/spatialmodel/thermochem/equilibrium"
	"github.com/spatialmodel/thermochem/material"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Hugoniot writes the temperatures and volumes of mineral m along the
// shock Hugoniot from pRef [Pa] and tRef [K] at the given pressures [Pa]
// to w. If reference is not nil, the reference state is calculated from
// it instead of from m. If plotFile is not empty, temperature and volume
// are plotted against pressure and saved there as a PNG image.
func Hugoniot(w io.Writer, s *equilibrium.Solver, m, reference material.Material, pRef, tRef float64, pressures []float64, plotFile string) error {
	if len(pressures) == 0 {
		return fmt.Errorf("thermoutil: no pressures specified for the Hugoniot")
	}
	var ref equilibrium.Material
	if reference != nil {
		ref = reference
	}
	temps, vols, err := s.Hugoniot(m, pRef, tRef, pressures, ref)
	if err != nil {
		return err
	}
	for i, p := range pressures {
		fmt.Fprintf(w, "%v\t%v\t%v/mol\n", unit.New(p, unit.Pascal), unit.New(temps[i], unit.Kelvin),
			unit.New(vols[i], unit.Meter3))
	}
	if plotFile == "" {
		return nil
	}
	return plotHugoniot(os.ExpandEnv(plotFile), m.Name(), pressures, temps, vols)
}

// plotHugoniot saves side-by-side plots of temperature and volume
// against pressure.
func plotHugoniot(file, name string, pressures, temps, vols []float64) error {
	if ext := strings.ToLower(filepath.Ext(file)); ext != ".png" {
		return fmt.Errorf("thermoutil: plot file %s must have extension .png", file)
	}
	const gpa = 1.e9
	tXY := make(plotter.XYs, len(pressures))
	vXY := make(plotter.XYs, len(pressures))
	for i, p := range pressures {
		tXY[i].X, tXY[i].Y = p/gpa, temps[i]
		vXY[i].X, vXY[i].Y = p/gpa, vols[i]*1.e6
	}

	tPlot := plot.New()
	tPlot.Title.Text = name + " Hugoniot"
	tPlot.X.Label.Text = "Pressure (GPa)"
	tPlot.Y.Label.Text = "Temperature (K)"
	vPlot := plot.New()
	vPlot.Title.Text = name + " Hugoniot"
	vPlot.X.Label.Text = "Pressure (GPa)"
	vPlot.Y.Label.Text = "Volume (cm³/mol)"
	for _, pl := range []struct {
		p  *plot.Plot
		xy plotter.XYs
	}{{tPlot, tXY}, {vPlot, vXY}} {
		l, err := plotter.NewLine(pl.xy)
		if err != nil {
			return fmt.Errorf("thermoutil: plotting Hugoniot: %v", err)
		}
		pts, err := plotter.NewScatter(pl.xy)
		if err != nil {
			return fmt.Errorf("thermoutil: plotting Hugoniot: %v", err)
		}
		pts.Shape = draw.CircleGlyph{}
		pl.p.Add(l, pts)
	}

	img := vgimg.New(8*vg.Inch, 4*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}
	tPlot.Draw(tiles.At(dc, 0, 0))
	vPlot.Draw(tiles.At(dc, 1, 0))

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("thermoutil: creating plot file: %v", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("thermoutil: writing plot file: %v", err)
	}
	return f.Close()
}
