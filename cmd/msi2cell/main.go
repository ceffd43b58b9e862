/*
 * main.go, part of gocryst.
 *
 * Copyright 2023 The gocryst developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// msi2cell converts Cerius2 .msi crystal models to CASTEP .cell seeds
// and back, and prepares full CASTEP job directories from them.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cryst "github.com/gocryst/gocryst"
	"github.com/gocryst/gocryst/castep"
	"github.com/gocryst/gocryst/cell"
	"github.com/gocryst/gocryst/msi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	log     *zap.SugaredLogger
	verbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "msi2cell",
		Short:         "Convert Cerius2 MSI crystal models to CASTEP cell seeds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg = zap.NewDevelopmentConfig()
			}
			logger, err := cfg.Build()
			if err != nil {
				return err
			}
			log = logger.Sugar()
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	root.AddCommand(convertCmd(), mergeCmd(), seedCmd(), xsdScriptCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "msi2cell:", err)
		os.Exit(1)
	}
}

// loadMsi reads and parses one .msi file, transparently handling a
// .zst suffix.
func loadMsi(path string) (*cryst.Model, error) {
	text, err := castep.ReadTextFile(path)
	if err != nil {
		return nil, err
	}
	m, err := msi.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Debugw("parsed model", "path", path, "atoms", m.Atoms().Len())
	return m, nil
}

func convertCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert FILE.msi",
		Short: "Convert an .msi model to a .cell file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMsi(args[0])
			if err != nil {
				return err
			}
			cm, err := cell.FromMsi(m)
			if err != nil {
				return err
			}
			text, err := cell.Export(cm)
			if err != nil {
				return err
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], ".msi") + ".cell"
			}
			if err := castep.WriteTextFile(output, text); err != nil {
				return err
			}
			log.Infow("wrote cell file", "path", output, "atoms", cm.Atoms().Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: input with .cell suffix)")
	return cmd
}

func mergeCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge FILE.msi FILE.msi...",
		Short: "Merge several .msi models into one",
		Long: `Merge concatenates the atoms of several models into the first
model's lattice. Atom ids of later models are shifted past the ids
already present, so every atom keeps a unique id.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := loadMsi(args[0])
			if err != nil {
				return err
			}
			for _, path := range args[1:] {
				next, err := loadMsi(path)
				if err != nil {
					return err
				}
				merged = cryst.Merge(merged, next)
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], ".msi") + "_merged.msi"
			}
			if err := castep.WriteTextFile(output, msi.Export(merged)); err != nil {
				return err
			}
			log.Infow("wrote merged model", "path", output, "atoms", merged.Atoms().Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path")
	return cmd
}

func seedCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "seed DIR",
		Short: "Generate CASTEP seed directories for every .msi under DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := castep.LoadJobConfig(configPath)
			if err != nil {
				return err
			}
			log.Infow("generating seeds", "root", args[0], "export", cfg.ExportDir)
			return castep.BatchSeedsFromDir(args[0], cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "job.yaml", "job config yaml")
	return cmd
}

func xsdScriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xsd-script DIR",
		Short: "Write a Materials Studio perl script converting .msi files under DIR to .xsd",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := castep.ToXsdScripts(args[0]); err != nil {
				return err
			}
			abs, _ := filepath.Abs("msi_to_xsd.pl")
			log.Infow("wrote conversion script", "path", abs)
			return nil
		},
	}
}
