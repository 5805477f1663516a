package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/redact"
)

var (
	scanReportJSON string
	scanFix        bool
	scanOutDir     string
	scanInPlace    bool
	scanVerbose    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Validate all .txt prompt files under a directory",
	Long: `Scan walks a directory recursively, validates every .txt prompt file,
and prints a per-file summary. With --fix, corrected prompts are written to
--out-dir (or back to the originals with --in-place, keeping .bak backups).

  promptval scan ./prompts --report-json report.json --fix`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanReportJSON, "report-json", "", "Write JSON report to path")
	scanCmd.Flags().BoolVar(&scanFix, "fix", false, "Write corrected prompt files")
	scanCmd.Flags().StringVar(&scanOutDir, "out-dir", "corrected", "Directory for corrected files")
	scanCmd.Flags().BoolVar(&scanInPlace, "in-place", false, "Overwrite files in place with .bak backups")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "Print the full issue list")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil || !info.IsDir() {
		return fmt.Errorf("directory not found: %s", args[0])
	}

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
		return err
	}
	results := runBatch(cmd.Context(), pipeline, files)

	fmt.Printf("PromptVal Report: %s\n\n", args[0])
	renderTable(os.Stdout, results)
	if scanVerbose {
		renderIssues(os.Stdout, results)
	}

	if scanReportJSON != "" {
		if err := writeReportFile(scanReportJSON, results); err != nil {
			return err
		}
		fmt.Printf("JSON report written to %s\n", scanReportJSON)
	}

	if scanFix {
		if err := applyFixes(results, scanOutDir, scanInPlace); err != nil {
			return err
		}
		fmt.Println("Applied fixes.")
	}

	auditResults(cfg, redact.New(detect.New()), results)

	if totalIssues(results) > 0 {
		exitCode = 1
	}
	return nil
}
