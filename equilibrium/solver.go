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
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Default solver settings.
const (
	// DefaultXTol is the default relative step size below which a solution
	// is considered converged. It is the square root of machine precision.
	DefaultXTol = 1.49012e-8

	// DefaultMaxIterations is the default maximum number of Newton
	// iterations.
	DefaultMaxIterations = 100

	// jacobianStep is the finite difference step in scaled variables.
	jacobianStep = 1.e-6

	// maxBacktracks is the maximum number of times a Newton step is halved.
	maxBacktracks = 40
)

// Solver finds the roots of the nonlinear equations that define
// equilibrium conditions. The zero value is ready to use.
type Solver struct {
	// XTol is the relative change in the solution between iterations
	// below which the solution is considered converged.
	// If zero, DefaultXTol is used.
	XTol float64

	// MaxIterations is the maximum number of iterations.
	// If zero, DefaultMaxIterations is used.
	MaxIterations int

	// AllowUnconverged specifies that when a solution does not converge,
	// the last iterate should be returned without an error
	// (a warning is logged instead).
	AllowUnconverged bool

	// Log receives solver diagnostics. If nil, logrus.StandardLogger()
	// is used.
	Log logrus.FieldLogger
}

// ConvergenceError is returned when a solution does not converge.
// It matches ErrNotConverged when used with errors.Is.
type ConvergenceError struct {
	// Problem describes the equations being solved.
	Problem string

	// X is the last iterate.
	X []float64

	// Residuals holds the values of the equations at X.
	Residuals []float64

	Iterations int

	// Reason describes why iteration stopped.
	Reason string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("equilibrium: %s: %v after %d iterations (%s); last iterate %v has residuals %v",
		e.Problem, ErrNotConverged, e.Iterations, e.Reason, e.X, e.Residuals)
}

// Unwrap returns ErrNotConverged.
func (e *ConvergenceError) Unwrap() error { return ErrNotConverged }

func (s *Solver) xtol() float64 {
	if s == nil || s.XTol <= 0 {
		return DefaultXTol
	}
	return s.XTol
}

func (s *Solver) maxIterations() int {
	if s == nil || s.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return s.MaxIterations
}

func (s *Solver) log() logrus.FieldLogger {
	if s == nil || s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// solve finds x such that f(x) = 0, starting from x0, using Newton's
// method with a finite difference Jacobian and a backtracking line search.
// Each variable is scaled by its current magnitude (or one, if larger)
// so that variables with very different magnitudes, such as pressure and
// temperature, are differenced and compared on equal terms.
// f must leave the system in the state corresponding to the last x it was
// called with, and solve always calls f with the returned x last.
// If the solution does not converge, the last iterate is returned along
// with a *ConvergenceError, unless s.AllowUnconverged is set.
func (s *Solver) solve(problem string, f func(y, x []float64), x0 []float64) ([]float64, error) {
	n := len(x0)
	x := make([]float64, n)
	copy(x, x0)
	fx := make([]float64, n)
	f(fx, x)

	xtol := s.xtol()
	scale := make([]float64, n)
	z := make([]float64, n)
	xTrial := make([]float64, n)
	fTrial := make([]float64, n)
	negF := make([]float64, n)
	jac := mat.NewDense(n, n, nil)
	var dz mat.VecDense

	scaled := func(y, z []float64) {
		for i := range z {
			xTrial[i] = z[i] * scale[i]
		}
		f(y, xTrial)
	}

	iter := 0
	converged := allZero(fx)
	reason := ""
	for !converged && iter < s.maxIterations() {
		iter++
		if !allFinite(fx) {
			reason = "non-finite residual"
			break
		}
		for i, v := range x {
			scale[i] = math.Max(math.Abs(v), 1)
			z[i] = v / scale[i]
		}
		fd.Jacobian(jac, scaled, z, &fd.JacobianSettings{
			Formula: fd.Central,
			Step:    jacobianStep,
			// The equations mutate shared material state.
			Concurrent: false,
		})
		for i, v := range fx {
			negF[i] = -v
		}
		if err := dz.SolveVec(jac, mat.NewVecDense(n, negF)); err != nil {
			// An ill-conditioned step is still tried; a singular one is not.
			if c, ok := err.(mat.Condition); !ok || math.IsInf(float64(c), 1) {
				reason = "singular Jacobian"
				break
			}
		}
		step := make([]float64, n)
		for i := range step {
			step[i] = dz.AtVec(i) * scale[i]
		}
		if !allFinite(step) {
			reason = "singular Jacobian"
			break
		}

		// Backtrack until the sum of squared residuals decreases.
		phi0 := floats.Dot(fx, fx)
		lambda := 1.
		accepted := false
		for k := 0; k < maxBacktracks; k++ {
			for i := range xTrial {
				xTrial[i] = x[i] + lambda*step[i]
			}
			f(fTrial, xTrial)
			if allFinite(fTrial) && floats.Dot(fTrial, fTrial) < phi0 {
				accepted = true
				break
			}
			lambda /= 2
		}
		stepNorm := lambda * floats.Norm(step, 2)
		if !accepted {
			// Within rounding error of the root the residual can no longer
			// be reduced; accept the full step if it is small enough.
			if floats.Norm(step, 2) <= xtol*(floats.Norm(x, 2)+xtol) {
				floats.Add(x, step)
				f(fx, x)
				converged = true
				break
			}
			reason = "line search failed"
			break
		}
		copy(x, xTrial)
		copy(fx, fTrial)
		converged = allZero(fx) || stepNorm <= xtol*(floats.Norm(x, 2)+xtol)
	}
	if !converged && reason == "" {
		reason = "iteration limit reached"
	}
	f(fx, x) // Leave the system in the state of the returned solution.

	entry := s.log().WithFields(logrus.Fields{
		"problem":    problem,
		"iterations": iter,
		"residual":   floats.Norm(fx, 2),
		"converged":  converged,
	})
	if converged {
		entry.Debug("equilibrium: solve complete")
		return x, nil
	}
	err := &ConvergenceError{
		Problem:    problem,
		X:          append([]float64(nil), x...),
		Residuals:  append([]float64(nil), fx...),
		Iterations: iter,
		Reason:     reason,
	}
	if s != nil && s.AllowUnconverged {
		entry.WithField("reason", reason).Warn("equilibrium: returning unconverged solution")
		return x, nil
	}
	return x, err
}

func allZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
