package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/redact"
)

var (
	validateReportJSON string
	validateYes        bool
	validateOutDir     string
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Validate a prompt file or directory and optionally apply fixes",
	Long: `Validate runs the full pipeline over a single prompt file or every .txt
file under a directory, prints the summary, and then offers to write the
corrected prompts. With --yes the fixes are applied without asking; in a
non-interactive session fixes are only applied when --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateReportJSON, "report-json", "", "Write JSON report to path")
	validateCmd.Flags().BoolVar(&validateYes, "yes", false, "Apply fixes without asking")
	validateCmd.Flags().StringVar(&validateOutDir, "out-dir", "corrected", "Directory for corrected files")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	files, err := listPromptFiles(args[0])
	if err != nil {
		return fmt.Errorf("path not found: %s", args[0])
	}
	if len(files) == 0 {
		fmt.Println("No prompt files found.")
		return nil
	}

	results := runBatch(cmd.Context(), pipeline, files)

	fmt.Printf("PromptVal Report: %s\n\n", args[0])
	renderTable(os.Stdout, results)
	renderIssues(os.Stdout, results)

	if validateReportJSON != "" {
		if err := writeReportFile(validateReportJSON, results); err != nil {
			return err
		}
		fmt.Printf("JSON report written to %s\n", validateReportJSON)
	}

	if validateYes || confirmApply() {
		if err := applyFixes(results, validateOutDir, false); err != nil {
			return err
		}
		fmt.Printf("Corrected files written to %s\n", validateOutDir)
	}

	auditResults(cfg, redact.New(detect.New()), results)

	if totalIssues(results) > 0 {
		exitCode = 1
	}
	return nil
}

// confirmApply asks on an interactive terminal whether to write fixes.
// Non-interactive sessions never apply without --yes.
func confirmApply() bool {
	if !stdoutIsTerminal() {
		return false
	}
	fmt.Print("Apply fixes? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
