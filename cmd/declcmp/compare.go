// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-cli R2-R4.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/declcmp/internal/gitsrc"
	"github.com/petar-djukic/declcmp/internal/gotree"
	"github.com/petar-djukic/declcmp/internal/sittree"
	"github.com/petar-djukic/declcmp/pkg/declcmp"
	"github.com/petar-djukic/declcmp/pkg/types"
)

// newDumpCmd creates the "dump" command.
func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <dir>",
		Short: "Print the canonical declaration form of a source tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := buildTree(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			text, err := declcmp.Serialize(root, declcmp.Config{Policy: policyFromFlags()})
			if err != nil {
				return err
			}
			fmt.Print(text)
			return nil
		},
	}
}

// newCompareCmd creates the "compare" command.
func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <expected-dir> <actual-dir> | compare <dir> --rev <revision>",
		Short: "Compare the declaration surfaces of two source trees",
		Long:  "Compare renders both trees into the canonical form and fails on any difference. With --rev, the expected side is the same directory as committed at the given git revision (Go sources only). With --snapshot, the actual rendering is additionally reconciled against a golden file; a missing file is recorded and reported.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runCompare,
	}

	cmd.Flags().String("rev", "", "Git revision providing the expected tree")
	cmd.Flags().String("snapshot", "", "Snapshot file to reconcile against")

	return cmd
}

// runCompare executes the comparison.
func runCompare(cmd *cobra.Command, args []string) error {
	rev, _ := cmd.Flags().GetString("rev")
	snapshot, _ := cmd.Flags().GetString("snapshot")

	var expected, actual *types.Node
	var err error

	switch {
	case rev != "" && len(args) == 1:
		expected, actual, err = treesAtRevision(args[0], rev)
	case rev == "" && len(args) == 2:
		expected, err = buildTree(cmd.Context(), args[0])
		if err == nil {
			actual, err = buildTree(cmd.Context(), args[1])
		}
	default:
		return errors.New("expected two directories, or one directory with --rev")
	}
	if err != nil {
		return err
	}

	cfg := declcmp.Config{Policy: policyFromFlags()}
	if snapshot != "" {
		err = declcmp.CompareSnapshot(expected, actual, snapshot, cfg)
	} else {
		err = declcmp.Compare(expected, actual, cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return err
	}

	fmt.Println("declaration surfaces match")
	return nil
}

// treesAtRevision builds the expected tree from the directory's
// committed state and the actual tree from the working tree.
func treesAtRevision(dir, rev string) (expected, actual *types.Node, err error) {
	cfg := gotreeConfig()

	sources, err := gitsrc.FilesAt(dir, rev)
	if err != nil {
		return nil, nil, err
	}
	expected, err = gotree.BuildSources(filepath.Base(dir), sources, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("building tree at %s: %w", rev, err)
	}

	actual, err = gotree.BuildDir(dir, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("building working tree: %w", err)
	}
	return expected, actual, nil
}

// buildTree picks a frontend by the configured language (or by the
// file extensions present under dir) and builds the declaration tree.
func buildTree(ctx context.Context, dir string) (*types.Node, error) {
	lang := viper.GetString("lang")
	if lang == "auto" {
		lang = detectLang(dir)
	}

	switch lang {
	case "go":
		return gotree.BuildDir(dir, gotreeConfig())
	case "python", "javascript", "typescript":
		return sittree.BuildDir(ctx, dir)
	default:
		return nil, fmt.Errorf("cannot determine source language of %s; use --lang", dir)
	}
}

// detectLang inspects file extensions under dir, preferring Go when
// both are present.
func detectLang(dir string) string {
	lang := ""
	// Best-effort: an unreadable tree just leaves lang undetected.
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext == ".go" {
			lang = "go"
			return filepath.SkipAll
		}
		if lang == "" && sittree.Supported(ext) {
			switch ext {
			case ".py":
				lang = "python"
			case ".js":
				lang = "javascript"
			case ".ts":
				lang = "typescript"
			}
		}
		return nil
	})
	return lang
}

// gotreeConfig builds the Go frontend config from global flags.
func gotreeConfig() gotree.Config {
	return gotree.Config{IncludeUnexported: viper.GetBool("include-unexported")}
}

// policyFromFlags builds the comparison policy from global flags.
func policyFromFlags() types.Policy {
	pol := types.ExcludeObjectMethods
	if viper.GetBool("include-object-methods") {
		pol = types.Recursive
	}
	pol = pol.WithCheckPrimaryConstructors(viper.GetBool("primary-ctors"))

	if skip := viper.GetStringSlice("skip-package"); len(skip) > 0 {
		pol = pol.WithRecursionFilter(func(qualifiedName string) bool {
			return !slices.Contains(skip, qualifiedName) && !hasSkippedPrefix(skip, qualifiedName)
		})
	}
	return pol
}

// hasSkippedPrefix reports whether the qualified name lives under any
// skipped package path.
func hasSkippedPrefix(skip []string, qualifiedName string) bool {
	for _, s := range skip {
		if strings.HasPrefix(qualifiedName, s+"/") {
			return true
		}
	}
	return false
}
