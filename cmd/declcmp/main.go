// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command declcmp renders declaration trees into their canonical text
// form and compares them, optionally against a golden snapshot file.
// Implements: prd007-cli R1-R5.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "declcmp",
		Short: "Canonical declaration-tree comparison",
		Long:  "declcmp renders the declaration surface of a source tree into a deterministic canonical form and compares two such renderings, optionally against a checked-in snapshot file.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("lang", "auto", "Source language: auto, go, python, javascript, typescript")
	rootCmd.PersistentFlags().Bool("include-object-methods", false, "Include universal object methods (equals, hashCode, ...)")
	rootCmd.PersistentFlags().Bool("primary-ctors", false, "Mark primary constructors with /*primary*/")
	rootCmd.PersistentFlags().Bool("include-unexported", false, "Include unexported Go declarations")
	rootCmd.PersistentFlags().StringSlice("skip-package", nil, "Qualified package names to treat as leaves (repeatable)")

	// Bind flags to viper.
	viper.BindPFlag("lang", rootCmd.PersistentFlags().Lookup("lang"))
	viper.BindPFlag("include-object-methods", rootCmd.PersistentFlags().Lookup("include-object-methods"))
	viper.BindPFlag("primary-ctors", rootCmd.PersistentFlags().Lookup("primary-ctors"))
	viper.BindPFlag("include-unexported", rootCmd.PersistentFlags().Lookup("include-unexported"))
	viper.BindPFlag("skip-package", rootCmd.PersistentFlags().Lookup("skip-package"))

	// Env vars: DECLCMP_LANG, DECLCMP_PRIMARY_CTORS, etc.
	viper.SetEnvPrefix("DECLCMP")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".declcmp")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newDumpCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print declcmp version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("declcmp %s\n", version)
		},
	}
}
