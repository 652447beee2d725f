// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// RequirementsFile lists manifest dependencies installed before any user
	// code runs.
	RequirementsFile = "requirements.txt"

	// PyprojectFile marks the source directory as an installable package and
	// may declare build-system requirements of its own.
	PyprojectFile = "pyproject.toml"

	// SetupPyFile is the legacy package marker.
	SetupPyFile = "setup.py"

	// HookScript is the optional build customization script, run after
	// manifest dependencies are installed and before the package install.
	HookScript = "setup.sh"
)

type (
	// Manifest describes what a source directory declares about its own
	// installation. Detection only stats files; content is read lazily.
	Manifest struct {
		// SourceDir is the absolute path the manifest was detected in.
		SourceDir string

		// HasRequirements reports whether requirements.txt is present.
		HasRequirements bool

		// HasPyproject reports whether pyproject.toml is present.
		HasPyproject bool

		// HasSetupPy reports whether setup.py is present.
		HasSetupPy bool

		// HasHook reports whether setup.sh is present.
		HasHook bool
	}

	// Pyproject is the subset of pyproject.toml the launcher reads.
	Pyproject struct {
		Project struct {
			Name         string   `toml:"name"`
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		BuildSystem struct {
			Requires []string `toml:"requires"`
		} `toml:"build-system"`
	}
)

// Detect inspects sourceDir and reports which install steps apply.
func Detect(sourceDir string) (Manifest, error) {
	info, err := os.Stat(sourceDir)
	if err != nil {
		return Manifest{}, fmt.Errorf("source directory %s is not readable: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return Manifest{}, fmt.Errorf("source path %s is not a directory", sourceDir)
	}

	m := Manifest{SourceDir: sourceDir}
	m.HasRequirements = fileExists(filepath.Join(sourceDir, RequirementsFile))
	m.HasPyproject = fileExists(filepath.Join(sourceDir, PyprojectFile))
	m.HasSetupPy = fileExists(filepath.Join(sourceDir, SetupPyFile))
	m.HasHook = fileExists(filepath.Join(sourceDir, HookScript))
	return m, nil
}

// IsPackage reports whether the directory should be installed with
// `pip install .` rather than run as a flat script directory.
func (m Manifest) IsPackage() bool {
	return m.HasPyproject || m.HasSetupPy
}

// ReadPyproject parses pyproject.toml from the source directory.
func (m Manifest) ReadPyproject() (Pyproject, error) {
	var p Pyproject
	data, err := os.ReadFile(filepath.Join(m.SourceDir, PyprojectFile))
	if err != nil {
		return p, fmt.Errorf("failed to read %s: %w", PyprojectFile, err)
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse %s: %w", PyprojectFile, err)
	}
	return p, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
