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

// Package thermoutil provides the thermochem command-line interface.
package thermoutil

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/thermochem"
	"github.com/spatialmodel/thermochem/equilibrium"
	"github.com/spatialmodel/thermochem/material"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to thermochem.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum level of log messages to
              print. Acceptable values are 'debug', 'info', 'warning', and 'error'.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "MaterialsFile",
			usage: `
              MaterialsFile is the path to the TOML file holding the
              mineral and solution definitions. It can include environment
              variables.`,
			shorthand:  "m",
			defaultVal: "",
			flagsets: []*pflag.FlagSet{potentialsCmd.Flags(), fugacityCmd.Flags(),
				equilibriumCmd.PersistentFlags(), hugoniotCmd.Flags()},
		},
		{
			name: "ConvertTo",
			usage: `
              ConvertTo specifies whether formula amounts should be
              reported as 'molar' amounts or 'mass' amounts.`,
			defaultVal: thermochem.Molar,
			flagsets:   []*pflag.FlagSet{formulaCmd.Flags()},
		},
		{
			name: "Normalize",
			usage: `
              Normalize specifies whether formula amounts should be
              scaled to sum to one.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{formulaCmd.Flags()},
		},
		{
			name: "Pressure",
			usage: `
              Pressure is the pressure [Pa] at which to evaluate the
              materials.`,
			shorthand:  "p",
			defaultVal: 1.e5,
			flagsets:   []*pflag.FlagSet{potentialsCmd.Flags(), fugacityCmd.Flags(), eqmTemperatureCmd.Flags()},
		},
		{
			name: "Temperature",
			usage: `
              Temperature is the temperature [K] at which to evaluate the
              materials.`,
			shorthand:  "t",
			defaultVal: 1000.,
			flagsets:   []*pflag.FlagSet{potentialsCmd.Flags(), fugacityCmd.Flags(), eqmPressureCmd.Flags()},
		},
		{
			name: "Assemblage",
			usage: `
              Assemblage is a list of the names of the materials in the
              assemblage.`,
			shorthand:  "a",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{potentialsCmd.Flags(), fugacityCmd.Flags()},
		},
		{
			name: "Components",
			usage: `
              Components is a list of the chemical formulae of the
              components whose chemical potentials should be calculated.`,
			shorthand:  "c",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{potentialsCmd.Flags()},
		},
		{
			name: "Standard",
			usage: `
              Standard is the name of the standard state material whose
              formula defines the component of a fugacity calculation.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fugacityCmd.Flags()},
		},
		{
			name: "ReferenceAssemblage",
			usage: `
              ReferenceAssemblage is a list of the names of the materials
              in a reference assemblage. If it is specified, the fugacity is
              calculated relative to the reference assemblage instead of the
              standard state material.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{fugacityCmd.Flags()},
		},
		{
			name: "Minerals",
			usage: `
              Minerals is a list of the names of the materials taking part
              in a reaction.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{equilibriumCmd.PersistentFlags()},
		},
		{
			name: "Stoichiometry",
			usage: `
              Stoichiometry is a list of the reaction coefficients of
              Minerals, negative for reactants and positive for products.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{equilibriumCmd.PersistentFlags()},
		},
		{
			name: "Minerals2",
			usage: `
              Minerals2 is a list of the names of the materials taking part
              in the second reaction of an invariant point calculation.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{invariantCmd.Flags()},
		},
		{
			name: "Stoichiometry2",
			usage: `
              Stoichiometry2 is a list of the reaction coefficients of
              Minerals2.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{invariantCmd.Flags()},
		},
		{
			name: "GuessPressure",
			usage: `
              GuessPressure is the pressure [Pa] from which the search for
              an equilibrium pressure starts.`,
			defaultVal: equilibrium.DefaultPressureGuess,
			flagsets:   []*pflag.FlagSet{eqmPressureCmd.Flags()},
		},
		{
			name: "GuessTemperature",
			usage: `
              GuessTemperature is the temperature [K] from which the search
              for an equilibrium temperature starts.`,
			defaultVal: equilibrium.DefaultTemperatureGuess,
			flagsets:   []*pflag.FlagSet{eqmTemperatureCmd.Flags()},
		},
		{
			name: "GuessInvariant",
			usage: `
              GuessInvariant is the pressure [Pa] and temperature [K] from
              which the search for an invariant point starts.`,
			defaultVal: []string{
				fmt.Sprint(equilibrium.DefaultInvariantGuess[0]),
				fmt.Sprint(equilibrium.DefaultInvariantGuess[1]),
			},
			flagsets: []*pflag.FlagSet{invariantCmd.Flags()},
		},
		{
			name: "Mineral",
			usage: `
              Mineral is the name of the material to shock.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{hugoniotCmd.Flags()},
		},
		{
			name: "ReferenceMineral",
			usage: `
              ReferenceMineral is the name of the material in the reference
              state of a Hugoniot calculation. If it is not specified, the
              shocked mineral is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{hugoniotCmd.Flags()},
		},
		{
			name: "PRef",
			usage: `
              PRef is the reference pressure [Pa] of a Hugoniot calculation.`,
			defaultVal: 1.e5,
			flagsets:   []*pflag.FlagSet{hugoniotCmd.Flags()},
		},
		{
			name: "TRef",
			usage: `
              TRef is the reference temperature [K] of a Hugoniot calculation.`,
			defaultVal: 300.,
			flagsets:   []*pflag.FlagSet{hugoniotCmd.Flags()},
		},
		{
			name: "Pressures",
			usage: `
              Pressures is a list of the pressures [Pa] at which to
              calculate the Hugoniot.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{hugoniotCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path to a PNG file where a plot of the Hugoniot
              should be saved. If it is empty, no plot is made.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{hugoniotCmd.Flags()},
		},
		{
			name: "MaxIterations",
			usage: `
              MaxIterations is the maximum number of iterations allowed
              when solving for equilibrium conditions.`,
			defaultVal: equilibrium.DefaultMaxIterations,
			flagsets:   []*pflag.FlagSet{equilibriumCmd.PersistentFlags(), hugoniotCmd.Flags()},
		},
		{
			name: "Tolerance",
			usage: `
              Tolerance is the relative change in the solution between
              iterations below which a solution is considered converged.`,
			defaultVal: equilibrium.DefaultXTol,
			flagsets:   []*pflag.FlagSet{equilibriumCmd.PersistentFlags(), hugoniotCmd.Flags()},
		},
		{
			name: "AllowUnconverged",
			usage: `
              AllowUnconverged specifies that the last iterate should be
              reported, with a warning, when a solution does not converge.
              Otherwise, non-convergence is an error.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{equilibriumCmd.PersistentFlags(), hugoniotCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("THERMOCHEM")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(formulaCmd)
	Root.AddCommand(sitesCmd)
	Root.AddCommand(potentialsCmd)
	Root.AddCommand(fugacityCmd)
	Root.AddCommand(equilibriumCmd)
	equilibriumCmd.AddCommand(eqmPressureCmd)
	equilibriumCmd.AddCommand(eqmTemperatureCmd)
	equilibriumCmd.AddCommand(invariantCmd)
	Root.AddCommand(hugoniotCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the log level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("thermoutil: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("thermoutil: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "thermochem",
	Short: "Chemical formula and thermodynamic equilibrium utilities.",
	Long: `thermochem parses chemical formulae, including the site formulae
of solid solutions, and calculates chemical potentials, fugacities, and
equilibrium conditions for mineral assemblages.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'THERMOCHEM_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of thermochem.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "thermochem v%s\n", thermochem.Version)
	},
	DisableAutoGenTag: true,
}

var formulaCmd = &cobra.Command{
	Use:   "formula [formulae...]",
	Short: "Parse chemical formulae",
	Long: `formula parses each of the given chemical formulae and prints
the amount of each element, as molar or mass amounts, along with the molar
mass of the formula.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Formula(cmd.OutOrStdout(), args, Cfg.GetString("ConvertTo"), Cfg.GetBool("Normalize"))
	},
	DisableAutoGenTag: true,
}

var sitesCmd = &cobra.Command{
	Use:   "sites [site formulae...]",
	Short: "Parse solid solution site formulae",
	Long: `sites parses the site formulae of the endmembers of a solid solution,
e.g. "[Mg]3[Al]2Si3O12" "[Fe]3[Al]2Si3O12", and prints the site occupancies
and multiplicities of each endmember.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Sites(cmd.OutOrStdout(), args)
	},
	DisableAutoGenTag: true,
}

var potentialsCmd = &cobra.Command{
	Use:   "potentials",
	Short: "Calculate chemical potentials",
	Long: `potentials calculates the chemical potentials of the Components
in the Assemblage at the given Pressure and Temperature.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(Cfg.GetString("MaterialsFile"))
		if err != nil {
			return err
		}
		assemblage, err := getMaterials("Assemblage", lib, Cfg)
		if err != nil {
			return err
		}
		components, err := getStringSlice("Components", Cfg)
		if err != nil {
			return err
		}
		return Potentials(cmd.OutOrStdout(), assemblage, components,
			Cfg.GetFloat64("Pressure"), Cfg.GetFloat64("Temperature"))
	},
	DisableAutoGenTag: true,
}

var fugacityCmd = &cobra.Command{
	Use:   "fugacity",
	Short: "Calculate a fugacity",
	Long: `fugacity calculates the fugacity of the component with the
composition of the Standard material in the Assemblage, relative to the
Standard material or, if it is specified, to the ReferenceAssemblage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(Cfg.GetString("MaterialsFile"))
		if err != nil {
			return err
		}
		standard, err := lib.Get(Cfg.GetString("Standard"))
		if err != nil {
			return err
		}
		assemblage, err := getMaterials("Assemblage", lib, Cfg)
		if err != nil {
			return err
		}
		var reference []material.Material
		if names, err := getStringSlice("ReferenceAssemblage", Cfg); err != nil {
			return err
		} else if len(names) > 0 {
			if reference, err = lib.GetAll(names); err != nil {
				return err
			}
		}
		return Fugacity(cmd.OutOrStdout(), standard, assemblage, reference,
			Cfg.GetFloat64("Pressure"), Cfg.GetFloat64("Temperature"))
	},
	DisableAutoGenTag: true,
}

var equilibriumCmd = &cobra.Command{
	Use:   "equilibrium",
	Short: "Solve for equilibrium conditions",
	Long: `equilibrium solves for the conditions at which reactions between
minerals are at equilibrium. Use the subcommands specified below to choose
what to solve for.`,
	DisableAutoGenTag: true,
}

// reaction returns the minerals and stoichiometry of the reaction given
// by the named configuration variables.
func reaction(lib *material.Library, mineralsVar, stoichiometryVar string) ([]material.Material, []float64, error) {
	minerals, err := getMaterials(mineralsVar, lib, Cfg)
	if err != nil {
		return nil, nil, err
	}
	stoichiometry, err := getFloat64Slice(stoichiometryVar, Cfg)
	if err != nil {
		return nil, nil, err
	}
	return minerals, stoichiometry, nil
}

var eqmPressureCmd = &cobra.Command{
	Use:   "pressure",
	Short: "Solve for an equilibrium pressure",
	Long: `pressure finds the pressure at which the reaction given by Minerals
and Stoichiometry is at equilibrium at the given Temperature.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(Cfg.GetString("MaterialsFile"))
		if err != nil {
			return err
		}
		minerals, stoichiometry, err := reaction(lib, "Minerals", "Stoichiometry")
		if err != nil {
			return err
		}
		return EquilibriumPressure(cmd.OutOrStdout(), newSolver(Cfg), minerals, stoichiometry,
			Cfg.GetFloat64("Temperature"), Cfg.GetFloat64("GuessPressure"))
	},
	DisableAutoGenTag: true,
}

var eqmTemperatureCmd = &cobra.Command{
	Use:   "temperature",
	Short: "Solve for an equilibrium temperature",
	Long: `temperature finds the temperature at which the reaction given by
Minerals and Stoichiometry is at equilibrium at the given Pressure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(Cfg.GetString("MaterialsFile"))
		if err != nil {
			return err
		}
		minerals, stoichiometry, err := reaction(lib, "Minerals", "Stoichiometry")
		if err != nil {
			return err
		}
		return EquilibriumTemperature(cmd.OutOrStdout(), newSolver(Cfg), minerals, stoichiometry,
			Cfg.GetFloat64("Pressure"), Cfg.GetFloat64("GuessTemperature"))
	},
	DisableAutoGenTag: true,
}

var invariantCmd = &cobra.Command{
	Use:   "invariant",
	Short: "Solve for an invariant point",
	Long: `invariant finds the pressure and temperature at which the reaction
given by Minerals and Stoichiometry and the reaction given by Minerals2 and
Stoichiometry2 are both at equilibrium.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(Cfg.GetString("MaterialsFile"))
		if err != nil {
			return err
		}
		m1, s1, err := reaction(lib, "Minerals", "Stoichiometry")
		if err != nil {
			return err
		}
		m2, s2, err := reaction(lib, "Minerals2", "Stoichiometry2")
		if err != nil {
			return err
		}
		guess, err := getFloat64Slice("GuessInvariant", Cfg)
		if err != nil {
			return err
		}
		if len(guess) != 2 {
			return fmt.Errorf("thermoutil: GuessInvariant must have two values (pressure and temperature) but has %d", len(guess))
		}
		return InvariantPoint(cmd.OutOrStdout(), newSolver(Cfg), m1, s1, m2, s2, [2]float64{guess[0], guess[1]})
	},
	DisableAutoGenTag: true,
}

var hugoniotCmd = &cobra.Command{
	Use:   "hugoniot",
	Short: "Calculate a shock Hugoniot",
	Long: `hugoniot calculates the temperatures and volumes of Mineral along
the shock Hugoniot starting from PRef and TRef, at each of the given Pressures.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadLibrary(Cfg.GetString("MaterialsFile"))
		if err != nil {
			return err
		}
		m, err := lib.Get(Cfg.GetString("Mineral"))
		if err != nil {
			return err
		}
		var ref material.Material
		if name := Cfg.GetString("ReferenceMineral"); name != "" {
			if ref, err = lib.Get(name); err != nil {
				return err
			}
		}
		pressures, err := getFloat64Slice("Pressures", Cfg)
		if err != nil {
			return err
		}
		return Hugoniot(cmd.OutOrStdout(), newSolver(Cfg), m, ref,
			Cfg.GetFloat64("PRef"), Cfg.GetFloat64("TRef"), pressures, Cfg.GetString("PlotFile"))
	},
	DisableAutoGenTag: true,
}
