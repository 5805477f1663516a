package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptsec/promptval/internal/report"
)

var (
	promptText string
	promptFile string
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Analyze a single prompt and print the JSON result",
	Long: `Prompt runs one validation over text given inline or from a file and
prints the full result record as JSON to stdout.

  promptval prompt --text "Summarize the notes"
  promptval prompt --file prompts/summarize.txt --provider openai`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptText, "text", "", "Prompt text to analyze")
	promptCmd.Flags().StringVar(&promptFile, "file", "", "Path to a file containing the prompt")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	if promptText == "" && promptFile == "" {
		return fmt.Errorf("provide --text or --file")
	}

	content := promptText
	identifier := "prompt"
	if content == "" {
		data, err := os.ReadFile(promptFile)
		if err != nil {
			return fmt.Errorf("file not found: %s", promptFile)
		}
		content = string(data)
		identifier = promptFile
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	res, err := pipeline.Validate(cmd.Context(), content)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(report.FromResult(identifier, res))
}
