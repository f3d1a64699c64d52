package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
)

// ErrValidation marks a typecheck/lint/test/build failure. It halts the
// project and, through the orchestrator, the whole run.
var ErrValidation = errors.New("validation failed")

// testInvocationVariants are the extra argument sets tried when the plain
// test script fails: vitest wants --run to disable watch mode, jest wants
// --watchAll=false.
//
//nolint:gochecknoglobals // fixed compatibility table
var testInvocationVariants = [][]string{
	nil,
	{"--run"},
	{"--watchAll=false"},
}

// validationProfile tunes which steps run. Workspace subpackages get the
// tests-only profile.
type validationProfile struct {
	TestsOnly bool
}

// validator runs whichever of typecheck -> lint -> test -> build the
// project declares. Missing scripts are skipped, not failed: the fleet's
// projects carry heterogeneous tooling.
type validator struct {
	manager domainRepos.PackageManagerRepository
}

func newValidator(manager domainRepos.PackageManagerRepository) *validator {
	return &validator{manager: manager}
}

// Validate aborts on the first failing step with that step's captured
// output in the error.
func (v *validator) Validate(
	ctx context.Context,
	projectDir string,
	profile validationProfile,
) error {
	manifest, err := entities.ReadManifest(projectDir)
	if err != nil {
		return err
	}

	if !profile.TestsOnly {
		if typecheckErr := v.typecheck(ctx, projectDir, manifest); typecheckErr != nil {
			return typecheckErr
		}
		if lintErr := v.runDeclared(ctx, projectDir, manifest, "lint"); lintErr != nil {
			return lintErr
		}
	}

	if testErr := v.test(ctx, projectDir, manifest); testErr != nil {
		return testErr
	}

	if !profile.TestsOnly {
		if buildErr := v.runDeclared(ctx, projectDir, manifest, "build"); buildErr != nil {
			return buildErr
		}
	}

	return nil
}

// typecheck prefers a declared script and falls back to a bare tsc run
// when the project has a tsconfig but no script.
func (v *validator) typecheck(
	ctx context.Context,
	projectDir string,
	manifest *entities.Manifest,
) error {
	if manifest.HasScript("typecheck") {
		return v.runDeclared(ctx, projectDir, manifest, "typecheck")
	}

	if _, err := os.Stat(filepath.Join(projectDir, "tsconfig.json")); err != nil {
		return nil
	}

	logger.Debugf("No typecheck script, running bare tsc in %s", projectDir)
	result, err := v.manager.Exec(ctx, projectDir, "tsc", "--noEmit")
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return stepError("typecheck", result)
	}
	return nil
}

// test prefers a unit-only script over the general one and tries several
// invocation variants before declaring failure.
func (v *validator) test(
	ctx context.Context,
	projectDir string,
	manifest *entities.Manifest,
) error {
	script := ""
	switch {
	case manifest.HasScript("test:unit"):
		script = "test:unit"
	case manifest.HasScript("test"):
		script = "test"
	default:
		logger.Debugf("No test script declared in %s, skipping", projectDir)
		return nil
	}

	var last entities.ProcessResult
	for _, variant := range testInvocationVariants {
		logger.Infof("Running %s %v in %s", script, variant, projectDir)

		result, err := v.manager.Run(ctx, projectDir, script, variant...)
		if err != nil {
			return err
		}
		if result.Succeeded() {
			return nil
		}
		last = result
	}

	return stepError("test", last)
}

func (v *validator) runDeclared(
	ctx context.Context,
	projectDir string,
	manifest *entities.Manifest,
	script string,
) error {
	if !manifest.HasScript(script) {
		logger.Debugf("No %s script declared in %s, skipping", script, projectDir)
		return nil
	}

	logger.Infof("Running %s in %s", script, projectDir)

	result, err := v.manager.Run(ctx, projectDir, script)
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return stepError(script, result)
	}
	return nil
}

func stepError(step string, result entities.ProcessResult) error {
	return fmt.Errorf(
		"%w: %s step exited with code %d:\n%s",
		ErrValidation, step, result.ExitCode, result.CombinedOutput(),
	)
}
