// Package cmd provides the compgen command-line interface.
//
// Configuration is read from several sources, highest priority first:
//
//  1. Command-line flags (--config, --log-level, ...)
//  2. COMPGEN_CONFIG_FILE: path of the configuration file
//  3. Individual environment variables following COMPGEN_<SECTION>_<OPTION>,
//     e.g. COMPGEN_OUTPUT_DIR or COMPGEN_GENERATE_SERVER_PAGE_REF
//  4. The configuration file (.compgen.yml in the working directory)
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/conneroisu/compgen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "compgen",
	Short: "Assemble view components into generated source units",
	Long: `compgen assembles the files of a component directory (routes, views,
controllers, models, tasks and initializers) into one generated source unit
that registers every template and loads the component's code.

Quick Start:
  compgen init                      Write a default .compgen.yml
  compgen list app/blog             Show what a component contains
  compgen assemble app/blog         Print the client unit of one component
  compgen build                     Assemble every component to the output dir

Command Aliases:
  assemble (a), build (b), list (l)`,
	SilenceUsage: true,
}

// ExecuteContext adds all child commands to the root command and runs it.
// Commands observe ctx, so an interrupted build stops between units.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .compgen.yml, can also use COMPGEN_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
}

// initConfig points Viper at the configuration file and enables COMPGEN_
// environment overrides. A missing file is not an error.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("COMPGEN_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.DefaultFileName, ".yml"))
	}

	config.SetDefaults(viper.GetViper())
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config file %s: %v\n", cfgFile, err)
	}
}
