package cli

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/promptsec/promptval/internal/config"
	"github.com/promptsec/promptval/internal/logger"
	"github.com/promptsec/promptval/internal/redact"
	"github.com/promptsec/promptval/internal/report"
	"github.com/promptsec/promptval/internal/validate"
)

// fileResult pairs one input file with its validation outcome.
type fileResult struct {
	path   string
	result *validate.ValidationResult
	err    error
}

// listPromptFiles resolves a file or directory argument into the ordered
// list of prompt files to validate. Directories are walked recursively for
// .txt files, sorted for stable output.
func listPromptFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".txt") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// runBatch validates every file, one pipeline run in flight per file.
// Results come back in input order regardless of completion order.
func runBatch(ctx context.Context, p *validate.Pipeline, files []string) []fileResult {
	outcomes := make([]<-chan validate.Outcome, len(files))
	results := make([]fileResult, len(files))

	for i, path := range files {
		results[i].path = path
		data, err := os.ReadFile(path)
		if err != nil {
			results[i].err = err
			continue
		}
		outcomes[i] = p.Go(ctx, string(data))
	}
	for i, ch := range outcomes {
		if ch == nil {
			continue
		}
		out := <-ch
		results[i].result = out.Result
		results[i].err = out.Err
	}
	return results
}

// renderTable prints the per-file summary.
func renderTable(w io.Writer, results []fileResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSCORE\tISSUES\tERRORS\tWARNINGS")
	for _, fr := range results {
		if fr.err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t(%v)\n", filepath.Base(fr.path), fr.err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n",
			filepath.Base(fr.path), fr.result.Score, len(fr.result.Issues),
			fr.result.ErrorCount(), fr.result.WarningCount())
	}
	tw.Flush()
}

// renderIssues prints the detailed issue list for files that have any.
func renderIssues(w io.Writer, results []fileResult) {
	for _, fr := range results {
		if fr.err != nil || fr.result == nil || len(fr.result.Issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", fr.path)
		for _, issue := range fr.result.Issues {
			fmt.Fprintf(w, "- [%s] %s: %s\n", issue.Severity, issue.Kind, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "  Suggestion: %s\n", issue.Suggestion)
			}
		}
		if fr.result.Degraded {
			fmt.Fprintf(w, "  (degraded: %s)\n", fr.result.DegradedReason)
		}
	}
}

// writeReportFile writes the JSON report for all successfully validated files.
func writeReportFile(path string, results []fileResult) error {
	records := make([]report.Record, 0, len(results))
	for _, fr := range results {
		if fr.err != nil || fr.result == nil {
			continue
		}
		records = append(records, report.FromResult(fr.path, fr.result))
	}
	return report.WriteFile(path, records)
}

// applyFixes writes each result's corrected text. With inPlace the source
// file is overwritten after a .bak copy; otherwise files land in outDir
// under their original names.
func applyFixes(results []fileResult, outDir string, inPlace bool) error {
	for _, fr := range results {
		if fr.err != nil || fr.result == nil {
			continue
		}
		if inPlace {
			orig, err := os.ReadFile(fr.path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(fr.path+".bak", orig, 0644); err != nil {
				return err
			}
			if err := os.WriteFile(fr.path, []byte(fr.result.FixedText), 0644); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return err
		}
		target := filepath.Join(outDir, filepath.Base(fr.path))
		if err := os.WriteFile(target, []byte(fr.result.FixedText), 0644); err != nil {
			return err
		}
	}
	return nil
}

// auditResults appends one audit event per validated file. Audit failures
// are reported but never fail the run.
func auditResults(cfg *config.Config, r *redact.Redactor, results []fileResult) {
	log, err := logger.New(cfg.LogPath, r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audit log unavailable: %v\n", err)
		return
	}
	defer log.Close()

	for _, fr := range results {
		event := logger.AuditEvent{
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Identifier: fr.path,
			Provider:   cfg.Provider,
		}
		if fr.err != nil {
			event.Error = fr.err.Error()
		} else if fr.result != nil {
			event.Score = fr.result.Score
			event.IssueCount = len(fr.result.Issues)
			event.ErrorCount = fr.result.ErrorCount()
			event.WarningCount = fr.result.WarningCount()
			event.Degraded = fr.result.Degraded
			event.DegradedReason = fr.result.DegradedReason
		}
		if err := log.Log(event); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audit write failed: %v\n", err)
			return
		}
	}
}

func totalIssues(results []fileResult) int {
	n := 0
	for _, fr := range results {
		if fr.result != nil {
			n += len(fr.result.Issues)
		}
	}
	return n
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
