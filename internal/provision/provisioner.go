// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

type (
	// Provisioner prepares a source directory for execution by installing its
	// declared dependencies. All pip invocations go through the configured
	// PipRunner so the pipeline can be exercised without a real interpreter.
	Provisioner struct {
		// Pip runs dependency installs. Required whenever the manifest
		// declares anything to install.
		Pip PipRunner

		// Stdout and Stderr receive hook script output. Either may be nil.
		Stdout io.Writer
		Stderr io.Writer

		// Logger reports per-step progress. May be nil.
		Logger *log.Logger
	}

	// Result records which install steps ran for one source directory.
	Result struct {
		// Manifest is the detection result the steps were derived from.
		Manifest Manifest

		// InstalledRequirements reports whether the manifest dependency step ran.
		InstalledRequirements bool

		// RanHook reports whether the build hook ran.
		RanHook bool

		// InstalledPackage reports whether `pip install .` ran.
		InstalledPackage bool

		// BuildRequires lists the build-system requirements declared by
		// pyproject.toml, when present.
		BuildRequires []string
	}
)

// Install runs the provisioning pipeline for sourceDir in fixed order:
// manifest dependencies, build hook, package install. A directory declaring
// none of the three is a flat script directory and provisions trivially.
// A pyproject.toml that does not parse aborts the pipeline before the
// package install runs.
func (p *Provisioner) Install(ctx context.Context, sourceDir string) (*Result, error) {
	manifest, err := Detect(sourceDir)
	if err != nil {
		return nil, err
	}
	res := &Result{Manifest: manifest}

	if manifest.HasRequirements {
		p.logf("installing manifest dependencies", "file", RequirementsFile)
		if err := p.requirePip(); err != nil {
			return nil, err
		}
		if err := p.Pip.Install(ctx, sourceDir, "-r", RequirementsFile); err != nil {
			return nil, fmt.Errorf("manifest dependency install failed: %w", err)
		}
		res.InstalledRequirements = true
	}

	if manifest.HasHook {
		p.logf("running build hook", "script", HookScript)
		if err := runHook(ctx, sourceDir, p.Stdout, p.Stderr); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrHookFailed, err)
		}
		res.RanHook = true
	}

	if manifest.IsPackage() {
		if manifest.HasPyproject {
			pyproject, err := manifest.ReadPyproject()
			if err != nil {
				return nil, err
			}
			res.BuildRequires = pyproject.BuildSystem.Requires
			p.logf("installing source package", "dir", sourceDir,
				"project", pyproject.Project.Name, "build_requires", res.BuildRequires)
		} else {
			p.logf("installing source package", "dir", sourceDir)
		}
		if err := p.requirePip(); err != nil {
			return nil, err
		}
		if err := p.Pip.Install(ctx, sourceDir, "."); err != nil {
			return nil, fmt.Errorf("package install failed: %w", err)
		}
		res.InstalledPackage = true
	}

	return res, nil
}

func (p *Provisioner) requirePip() error {
	if p.Pip == nil {
		return fmt.Errorf("source directory declares installable dependencies but no pip runner is configured")
	}
	return nil
}

func (p *Provisioner) logf(msg string, kv ...any) {
	if p.Logger != nil {
		p.Logger.Info(msg, kv...)
	}
}
