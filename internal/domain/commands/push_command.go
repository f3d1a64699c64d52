package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	logger "github.com/sirupsen/logrus"

	"github.com/pushfleet/pushfleet/internal/domain/entities"
	domainRepos "github.com/pushfleet/pushfleet/internal/domain/repositories"
	infraRepos "github.com/pushfleet/pushfleet/internal/infrastructure/repositories"
)

// ErrProjectNotFound is returned when --starting-project names a project
// that never appears in the parsed list; nothing is processed in that case.
var ErrProjectNotFound = errors.New("starting project not found")

// Push is the interface for the push command (the release pipeline).
type Push interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PushOptions) error
}

// PushOptions holds runtime options for one release run.
type PushOptions struct {
	Force           bool     // bump every project even with no changes
	Subpackages     bool     // also validate nested workspace packages (tests only)
	DryRun          bool     // log planned actions without mutating anything
	Verbose         bool
	ProjectsFile    string   // newline-delimited "path:delaySeconds" entries
	StartingProject string   // resume point, matched by directory basename
	InlineProjects  []string // "path:delaySeconds" entries from the CLI
}

// PushCommand drives each project through reconcile -> validate -> bump ->
// analyze -> commit/push, in order, halting the whole run on the first
// failure: downstream projects may depend on the version just published
// upstream.
type PushCommand struct {
	packageManagers *infraRepos.PackageManagerRegistry
	sourceControl   domainRepos.SourceControlRepository
	registryFactory infraRepos.RegistryFactory
}

// NewPushCommand creates a new PushCommand.
func NewPushCommand(
	packageManagers *infraRepos.PackageManagerRegistry,
	sourceControl domainRepos.SourceControlRepository,
	registryFactory infraRepos.RegistryFactory,
) *PushCommand {
	return &PushCommand{
		packageManagers: packageManagers,
		sourceControl:   sourceControl,
		registryFactory: registryFactory,
	}
}

// Execute runs the full release cycle over the resolved project list.
func (it *PushCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PushOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	projects, err := resolveProjects(settings, opts)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		return errors.New("no projects to process; pass entries, --projects-file, or configure projects")
	}

	startIdx := 0
	if opts.StartingProject != "" {
		startIdx = findProject(projects, opts.StartingProject)
		if startIdx < 0 {
			return fmt.Errorf("%w: %q", ErrProjectNotFound, opts.StartingProject)
		}
		logger.Infof("Resuming from project %q (skipping %d)", opts.StartingProject, startIdx)
	}

	registry := it.registryFactory(settings.Registry)

	startedAt := time.Now()
	results := make([]entities.ProjectResult, 0, len(projects)-startIdx)
	consecutiveCommits := 0

	for i := startIdx; i < len(projects); i++ {
		project := projects[i]

		result := it.processProject(ctx, registry, settings, project, opts)
		results = append(results, result)

		switch result.Outcome {
		case entities.OutcomeFailed:
			printSummary(results, time.Since(startedAt))
			return fmt.Errorf("project %q failed: %s", project.Name(), result.Detail)
		case entities.OutcomeCommitted:
			consecutiveCommits++
		case entities.OutcomeSkipped:
			consecutiveCommits = 0
		}

		isLast := i == len(projects)-1
		if !isLast && project.PostDelaySeconds > 0 {
			if consecutiveCommits == 0 {
				logger.Debugf("Nothing published, skipping %ds delay after %s",
					project.PostDelaySeconds, project.Name())
				continue
			}
			if opts.DryRun {
				logger.Infof("[DRY RUN] Would wait %ds after %s", project.PostDelaySeconds, project.Name())
				continue
			}
			logger.Infof("Waiting %ds for the registry to index %s...",
				project.PostDelaySeconds, project.Name())
			sleepCtx(ctx, time.Duration(project.PostDelaySeconds)*time.Second)
		}
	}

	printSummary(results, time.Since(startedAt))
	return nil
}

// processProject runs the full per-project pipeline and maps every error
// class onto an outcome: environment gaps skip, everything else fails.
func (it *PushCommand) processProject(
	ctx context.Context,
	registry domainRepos.RegistryRepository,
	settings *entities.Settings,
	project entities.ProjectSpec,
	opts PushOptions,
) entities.ProjectResult {
	result := entities.ProjectResult{Project: project}

	logger.Infof("Processing %s", project.Path)

	if detail, ok := checkEnvironment(it.sourceControl, project.Path); !ok {
		logger.Warnf("Skipping %s: %s", project.Name(), detail)
		result.Outcome = entities.OutcomeSkipped
		result.Detail = detail
		return result
	}

	manager, err := it.packageManagers.ForProject(project.Path)
	if err != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = err.Error()
		return result
	}
	logger.Infof("Detected package manager: %s", manager.Kind())

	reconciler := newReconciler(registry, manager, settings.Scope)
	hasUpdates, reconcileErr := reconciler.Reconcile(ctx, project.Path, opts.DryRun)
	if reconcileErr != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = fmt.Sprintf("dependency reconciliation: %v", reconcileErr)
		return result
	}
	if hasUpdates {
		logger.Infof("Updated private-scope dependencies in %s", project.Name())
	}

	changes, changesErr := it.sourceControl.Changes(project.Path)
	if changesErr != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = fmt.Sprintf("change enumeration: %v", changesErr)
		return result
	}

	changeSet := entities.NewChangeSet(changes)
	if changeSet.IsEmpty() && !opts.Force {
		logger.Infof("%s: no changes, skipping", project.Name())
		result.Outcome = entities.OutcomeSkipped
		result.Detail = "no changes"
		return result
	}

	if opts.DryRun {
		logger.Infof("[DRY RUN] Would validate, bump, and release %s", project.Name())
		result.Outcome = entities.OutcomeSkipped
		result.Detail = "dry run"
		return result
	}

	validator := newValidator(manager)
	if validateErr := validator.Validate(ctx, project.Path, validationProfile{}); validateErr != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = validateErr.Error()
		return result
	}

	if opts.Subpackages {
		if subErr := it.validateSubpackages(ctx, project.Path, manager); subErr != nil {
			result.Outcome = entities.OutcomeFailed
			result.Detail = subErr.Error()
			return result
		}
	}

	version, bumpErr := bumpPatch(ctx, manager, project.Path)
	if bumpErr != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = fmt.Sprintf("version bump: %v", bumpErr)
		return result
	}
	logger.Infof("Bumped %s to v%s", project.Name(), version)

	message := BuildCommitMessage(changeSet, version, opts.Force)

	if commitErr := it.sourceControl.CommitAll(project.Path, message); commitErr != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = fmt.Sprintf("commit: %v", commitErr)
		return result
	}

	if pushErr := it.sourceControl.Push(ctx, project.Path); pushErr != nil {
		result.Outcome = entities.OutcomeFailed
		result.Detail = fmt.Sprintf("push: %v", pushErr)
		return result
	}

	logger.Infof("Released %s v%s", project.Name(), version)
	result.Outcome = entities.OutcomeCommitted
	result.Version = version
	return result
}

// validateSubpackages runs the tests-only profile against every nested
// workspace package declared in the root manifest.
func (it *PushCommand) validateSubpackages(
	ctx context.Context,
	projectDir string,
	manager domainRepos.PackageManagerRepository,
) error {
	manifest, err := entities.ReadManifest(projectDir)
	if err != nil {
		return err
	}

	subDirs := discoverWorkspaces(projectDir, manifest.Workspaces)
	if len(subDirs) == 0 {
		logger.Debugf("No workspace packages found under %s", projectDir)
		return nil
	}

	validator := newValidator(manager)
	for _, subDir := range subDirs {
		logger.Infof("Validating workspace package %s (tests only)", subDir)
		if validateErr := validator.Validate(ctx, subDir, validationProfile{TestsOnly: true}); validateErr != nil {
			return fmt.Errorf("workspace package %s: %w", filepath.Base(subDir), validateErr)
		}
	}
	return nil
}

// discoverWorkspaces expands the manifest's workspaces globs to the
// directories that actually contain a manifest.
func discoverWorkspaces(projectDir string, globs []string) []string {
	var dirs []string
	for _, pattern := range globs {
		matches, err := filepath.Glob(filepath.Join(projectDir, pattern))
		if err != nil {
			continue
		}
		for _, match := range matches {
			if _, statErr := os.Stat(filepath.Join(match, entities.ManifestFileName)); statErr == nil {
				dirs = append(dirs, match)
			}
		}
	}
	return dirs
}

func resolveProjects(settings *entities.Settings, opts PushOptions) ([]entities.ProjectSpec, error) {
	if len(opts.InlineProjects) > 0 {
		return entities.ParseProjectList(opts.InlineProjects)
	}
	if opts.ProjectsFile != "" {
		return entities.ParseProjectsFile(opts.ProjectsFile)
	}
	return entities.ParseProjectList(settings.Projects)
}

func findProject(projects []entities.ProjectSpec, name string) int {
	for i, project := range projects {
		if project.Name() == name {
			return i
		}
	}
	return -1
}

func checkEnvironment(
	sourceControl domainRepos.SourceControlRepository,
	projectDir string,
) (string, bool) {
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		return "directory does not exist", false
	}
	if _, err := os.Stat(filepath.Join(projectDir, entities.ManifestFileName)); err != nil {
		return "no " + entities.ManifestFileName, false
	}
	if !sourceControl.IsRepository(projectDir) {
		return "not a git repository", false
	}
	return "", true
}

// bumpPatch performs the adapter-level patch bump and re-reads the
// manifest to report the resulting version.
func bumpPatch(
	ctx context.Context,
	manager domainRepos.PackageManagerRepository,
	projectDir string,
) (string, error) {
	if err := manager.BumpPatch(ctx, projectDir); err != nil {
		return "", err
	}

	manifest, err := entities.ReadManifest(projectDir)
	if err != nil {
		return "", err
	}

	return manifest.Version, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func printSummary(results []entities.ProjectResult, elapsed time.Duration) {
	committed := 0
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Project", "Outcome", "Version", "Detail"})
	for _, result := range results {
		if result.Outcome == entities.OutcomeCommitted {
			committed++
		}
		t.AppendRow(table.Row{
			result.Project.Name(),
			string(result.Outcome),
			result.Version,
			result.Detail,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	logger.Infof(
		"Run finished: %d/%d projects released in %s",
		committed, len(results), elapsed.Round(time.Second),
	)
}
