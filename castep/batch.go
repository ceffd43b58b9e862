/*
 * batch.go, part of gocryst.
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

package castep

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/gocryst/gocryst/cell"
	"github.com/gocryst/gocryst/msi"
	"golang.org/x/sync/errgroup"
)

// findMsiFiles walks rootDir and returns the paths of all .msi files,
// sorted.
func findMsiFiles(rootDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".msi") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errDecorate(err, "findMsiFiles")
	}
	sort.Strings(paths)
	return paths, nil
}

// ToXsdScripts scans rootDir for generated .msi files and writes a
// perl script, msi_to_xsd.pl, that Materials Studio runs to convert
// each of them to .xsd. Every file is parsed before inclusion so the
// script never refers to a model the parser rejects.
func ToXsdScripts(rootDir string) error {
	paths, err := findMsiFiles(rootDir)
	if err != nil {
		return errDecorate(err, "ToXsdScripts")
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	var mu sync.Mutex
	valid := make(map[string]bool, len(paths))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			text, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if _, err := msi.Parse(string(text)); err != nil {
				return errDecorate(err, "ToXsdScripts "+path)
			}
			mu.Lock()
			valid[path] = true
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	items := make([]string, 0, len(paths))
	for _, path := range paths {
		if !valid[path] {
			continue
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		stem := strings.TrimSuffix(filepath.Base(path), ".msi")
		items = append(items, fmt.Sprintf("%q", dir+"/"+stem))
	}
	return WriteTextFile("msi_to_xsd.pl", xsdScript(items))
}

func xsdScript(items []string) string {
	var b strings.Builder
	b.WriteString("#!perl\nuse strict;\nuse Getopt::Long;\nuse MaterialsScript qw(:all);\n")
	fmt.Fprintf(&b, "my @params = (\n%s);\n", strings.Join(items, ", "))
	b.WriteString(`foreach my $item (@params) {
    my $doc = $Documents{"${item}.msi"};
    $doc->CalculateBonds;
    $doc->Export("${item}.xsd");
    $doc->Save;
    $doc->Close;
}`)
	return b.String()
}

// BatchSeedsFromDir parses every .msi file under rootDir, converts
// each model to the cell dialect and writes its seed files per cfg.
// Files are processed concurrently.
func BatchSeedsFromDir(rootDir string, cfg *JobConfig) error {
	paths, err := findMsiFiles(rootDir)
	if err != nil {
		return errDecorate(err, "BatchSeedsFromDir")
	}
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			text, err := ReadTextFile(path)
			if err != nil {
				return err
			}
			m, err := msi.Parse(text)
			if err != nil {
				return errDecorate(err, "BatchSeedsFromDir "+path)
			}
			cm, err := cell.FromMsi(m)
			if err != nil {
				return errDecorate(err, "BatchSeedsFromDir "+path)
			}
			seedName := strings.TrimSuffix(filepath.Base(path), ".msi")
			w, err := NewSeedWriter(cm, seedName, cfg.ExportDir, cfg.PotentialsDir, cfg.UseEDFT)
			if err != nil {
				return err
			}
			if cfg.CastepCmd != "" {
				w.SetCastepCmd(cfg.CastepCmd)
			}
			if len(cfg.WriteScripts) > 0 {
				w.SetScripts(cfg.WriteScripts)
			}
			if err := w.WriteSeedFiles(); err != nil {
				return err
			}
			return w.CopyPotentials()
		})
	}
	return g.Wait()
}
