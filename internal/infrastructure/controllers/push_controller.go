package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pushfleet/pushfleet/internal/domain/commands"
	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// PushController handles the "push" subcommand (the release pipeline).
type PushController struct {
	command commands.Push
}

// NewPushController creates a new PushController.
func NewPushController(command commands.Push) *PushController {
	return &PushController{command: command}
}

// GetBind returns the Cobra command metadata for the push controller.
func (it *PushController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "push [projects...]",
		Short: "Release every project in the fleet",
		Long: `Run the release pipeline over an ordered list of projects.

Each project is reconciled against the registry, validated,
patch-bumped, committed, and pushed. Projects are given as
"path" or "path:delaySeconds" entries, inline, through
--projects-file, or from the configuration file. The first
failing project halts the whole run.`,
	}
}

// Execute runs the release pipeline.
func (it *PushController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	force, _ := cmd.Flags().GetBool("force")
	subpackages, _ := cmd.Flags().GetBool("subpackages")
	projectsFile, _ := cmd.Flags().GetString("projects-file")
	startingProject, _ := cmd.Flags().GetString("starting-project")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	return it.command.Execute(ctx, settings, commands.PushOptions{
		Force:           force,
		Subpackages:     subpackages,
		DryRun:          dryRun,
		Verbose:         verbose,
		ProjectsFile:    projectsFile,
		StartingProject: startingProject,
		InlineProjects:  args,
	})
}

// AddFlags adds the push-specific flags to the given Cobra command.
func (it *PushController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("force", "f", false,
		"Bump and release every project even without changes")
	cmd.Flags().BoolP("subpackages", "s", false,
		"Also run tests in nested workspace packages")
	cmd.Flags().String("projects-file", "",
		"Newline-delimited file of \"path:delaySeconds\" entries")
	cmd.Flags().String("starting-project", "",
		"Resume the run from this project (matched by directory name)")
}

// loadSettings loads the configuration from --config, falling back to
// auto-detection and finally to built-in defaults. Release runs work
// without a config file as long as projects are given inline.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	if configPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings(), nil
		}
		configPath = found
	}

	logger.Infof("Using config file: %s", configPath)

	settings, err := entities.NewSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}
