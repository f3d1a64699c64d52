package controllers

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pushfleet/pushfleet/internal/domain/commands"
	"github.com/pushfleet/pushfleet/internal/domain/entities"
)

// TranslateController handles the "translate" subcommand.
type TranslateController struct {
	command commands.Translate
}

// NewTranslateController creates a new TranslateController.
func NewTranslateController(command commands.Translate) *TranslateController {
	return &TranslateController{command: command}
}

// GetBind returns the Cobra command metadata for the translate controller.
func (it *TranslateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "translate <locales-dir> [endpoint-url]",
		Short: "Fill missing locale translations from the English source",
		Long: `Read <locales-dir>/en/*.json as the source of truth and fill
every missing entry of every target language.

Existing non-empty translations are never overwritten. Backends
are tried in order (self-hosted batch endpoint, local LLM,
DeepL); when all of them fail the English text is kept so the
run never breaks a locale tree.`,
	}
}

// Execute runs the translation pipeline.
func (it *TranslateController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if len(args) == 0 || len(args) > 2 {
		return errors.New("expected <locales-dir> with an optional endpoint URL")
	}

	endpoint, _ := cmd.Flags().GetString("endpoint")
	if endpoint == "" && len(args) == 2 {
		endpoint = args[1]
	}
	llmHost, _ := cmd.Flags().GetString("llm-host")
	llmPort, _ := cmd.Flags().GetInt("llm-port")
	apiKey, _ := cmd.Flags().GetString("api-key")
	envFile, _ := cmd.Flags().GetString("env")
	batchLimit, _ := cmd.Flags().GetInt("batch-limit")
	languages, _ := cmd.Flags().GetStringSlice("languages")
	verbose, _ := cmd.Flags().GetBool("verbose")

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	return it.command.Execute(ctx, settings, commands.TranslateOptions{
		LocalesDir: args[0],
		Endpoint:   endpoint,
		LLMHost:    llmHost,
		LLMPort:    llmPort,
		APIKey:     apiKey,
		EnvFile:    envFile,
		BatchLimit: batchLimit,
		Languages:  languages,
		Verbose:    verbose,
	})
}

// AddFlags adds the translate-specific flags to the given Cobra command.
func (it *TranslateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("endpoint", "",
		"Self-hosted batch translation endpoint (takes precedence)")
	cmd.Flags().String("llm-host", "",
		"Host of an OpenAI-compatible LLM server")
	cmd.Flags().Int("llm-port", 0,
		"Port of the LLM server")
	cmd.Flags().String("api-key", "",
		"DeepL API key (inline, ${ENV_VAR}, or a path to a secret file)")
	cmd.Flags().String("env", "",
		"Dotenv file to load before resolving keys")
	cmd.Flags().Int("batch-limit", 0,
		"Maximum texts per translation request")
	cmd.Flags().StringSlice("languages", nil,
		"Target language codes (default: the configured fleet languages)")
}
