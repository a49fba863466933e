// Package commands wires the pdfpeek CLI.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdfpeek/pdfpeek/cmd/pdfpeek/ui"
	"github.com/pdfpeek/pdfpeek/internal/config"
	"github.com/pdfpeek/pdfpeek/internal/domain"
	"github.com/pdfpeek/pdfpeek/internal/extract"
	"github.com/pdfpeek/pdfpeek/internal/llm"
	"github.com/pdfpeek/pdfpeek/internal/observability"
	"github.com/pdfpeek/pdfpeek/internal/report"
)

var (
	jsonOutput bool
	noImage    bool
	outputPath string
	saveOutput bool
	aiProvider string
	aiPrompt   string
	verbose    bool
	noColor    bool
)

var rootCmd = &cobra.Command{
	Use:   "pdfpeek <file.pdf>",
	Short: "Extract text and embedded images from the first page of a PDF",
	Long: `pdfpeek opens a PDF document, pulls the plain text and the embedded images
of its first page, and prints them as a markdown report or as JSON.
Images below the configured minimum size are treated as icons and
skipped. The report can optionally be run through OpenRouter for an
AI summary.`,
	Example: `  pdfpeek document.pdf                 extract to markdown
  pdfpeek document.pdf --json          extract to JSON
  pdfpeek document.pdf --no-image      text only
  pdfpeek document.pdf --save          write <name>_extracted.md
  pdfpeek document.pdf --ai openrouter summarize with the main model`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of markdown")
	rootCmd.Flags().BoolVar(&noImage, "no-image", false, "skip image extraction (text only)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the report to a file")
	rootCmd.Flags().BoolVar(&saveOutput, "save", false, "write to <name>_extracted.md or .json")
	rootCmd.Flags().StringVar(&aiProvider, "ai", "none", "AI post-processing: openrouter, backup or none")
	rootCmd.Flags().StringVar(&aiPrompt, "ai-prompt", "", "custom prompt for AI post-processing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	pdfPath := args[0]
	ctx := cmd.Context()

	ui.Init(noColor, verbose)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log := observability.NewLogger(observability.LogConfig{Level: level, Service: "pdfpeek"})

	switch aiProvider {
	case "none", "openrouter", "backup":
	default:
		return fmt.Errorf("invalid --ai value %q (want openrouter, backup or none)", aiProvider)
	}
	if aiProvider != "none" {
		if err := cfg.RequireAPIKey(); err != nil {
			return err
		}
	}

	ui.Info("Processing: %s", pdfPath)

	svc := extract.NewService(cfg.MinImageBytes, log)
	result, err := svc.FirstPage(ctx, pdfPath, !noImage)
	if err != nil {
		return err
	}

	ui.Info("Extracted %d characters of text", len(result.Text))
	ui.Info("Found %d images", result.ImageCount)

	var content string
	if jsonOutput {
		content, err = report.JSON(result)
		if err != nil {
			return err
		}
	} else {
		content = report.Text(result)
	}

	if aiProvider != "none" {
		client := llm.NewClient(cfg.OpenRouter, log)
		spin := ui.NewSpinner("Processing with OpenRouter...")
		spin.Start()
		processed := client.AnalyzeWithFallback(ctx, content, aiPrompt, aiProvider == "backup")
		spin.Stop()

		if processed == content {
			ui.Warn("AI processing failed, keeping the unprocessed report")
		}
		content = processed
	}

	dest := destination(pdfPath, outputPath, saveOutput, jsonOutput)
	if dest == "" {
		fmt.Fprintln(cmd.OutOrStdout(), content)
		return nil
	}

	if err := os.WriteFile(dest, []byte(content+"\n"), 0o644); err != nil {
		return domain.IOError(fmt.Sprintf("could not save to %s", dest), err)
	}
	ui.Success("Content saved to: %s", dest)
	return nil
}

// destination resolves --output and --save into a file path. Empty means
// stdout. --save derives the name from the input file, as in
// "brochure.pdf" -> "brochure_extracted.md".
func destination(pdfPath, outputPath string, save, asJSON bool) string {
	if outputPath != "" {
		return outputPath
	}
	if !save {
		return ""
	}

	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	ext := "md"
	if asJSON {
		ext = "json"
	}
	return stem + "_extracted." + ext
}
