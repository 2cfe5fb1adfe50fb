// Copyright © 2025 The declnav authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "declnav",
	Short: "declnav — declaration navigation over syntax fixtures",
	Long: `declnav resolves written names to the declarations they refer to and
enumerates every explicit reference in a syntax tree. Trees are loaded
from declaration fixture files (.decl), which spell out the declarations
and the reference-bearing nodes of a source excerpt.

Getting started:
  declnav refs file.decl           Dump every reference record in the tree
  declnav resolve file.decl 2:4    Show the target set for the name at 2:4
  declnav explore file.decl        Open an interactive shell on the fixture
  declnav lsp                      Start a language server over fixtures

Resolution model:
  A name can resolve to several declarations at once. Each target carries
  relation tags describing how it was reached: alias (the name went
  through an alias or using-declaration), underlying (the entity behind
  an alias), instantiation (a template specialization), and pattern (the
  template the specialization came from). Unresolved names still produce
  a record with an empty target set.

More information:
  Source code:  https://github.com/declnav/declnav`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.declnav.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".declnav" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".declnav")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
