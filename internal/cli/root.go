package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptsec/promptval/internal/config"
	"github.com/promptsec/promptval/internal/detect"
	"github.com/promptsec/promptval/internal/evaluator"
	"github.com/promptsec/promptval/internal/policy"
	"github.com/promptsec/promptval/internal/redact"
	"github.com/promptsec/promptval/internal/structure"
	"github.com/promptsec/promptval/internal/validate"
)

var (
	policyPath  string
	logPath     string
	provider    string
	model       string
	baseURL     string
	timeoutSecs float64
	temperature float64
	offline     bool

	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "promptval",
	Short: "PromptVal - validate and repair prompt files",
	Long: `PromptVal inspects natural-language prompt files for redundancy,
conflicting constraints, missing structure, and leaked sensitive data.
Sensitive content is detected and redacted locally; redundancy, conflict,
and completeness review is delegated to an LLM evaluator that only ever
sees redacted text. When no evaluator is reachable, PromptVal degrades to
local-only results instead of failing.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&policyPath, "policy", "", "Path to severity policy YAML (default: ~/.promptval/policy.yaml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to audit log file (default: ~/.promptval/audit.jsonl)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "LLM provider: openai, openai_compatible, xai, anthropic, gemini")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Model name for the provider")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL for openai_compatible providers")
	rootCmd.PersistentFlags().Float64Var(&timeoutSecs, "timeout", 0, "Evaluator request timeout in seconds")
	rootCmd.PersistentFlags().Float64Var(&temperature, "temperature", 0, "Sampling temperature")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Skip external evaluation; local detection and fallback fix only")
}

// Execute runs the CLI and returns the process exit code:
// 0 clean, 1 issues found, 2 usage or runtime error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}
	return exitCode
}

// loadConfig resolves flags + env into a config.
func loadConfig() (*config.Config, error) {
	return config.Load(policyPath, logPath, provider, model, baseURL,
		time.Duration(timeoutSecs*float64(time.Second)), temperature)
}

// buildPipeline assembles the validation pipeline from config. An
// unavailable evaluator (missing key, unknown provider) is a warning, not
// a failure: the pipeline runs with local detection and the structural
// fallback instead.
func buildPipeline(cfg *config.Config) (*validate.Pipeline, error) {
	pol, err := policy.Load(cfg.PolicyPath)
	if err != nil {
		return nil, err
	}

	var eval validate.Evaluator
	if !offline {
		eval, err = evaluator.New(evaluator.Options{
			Provider:    cfg.Provider,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: external evaluation unavailable (%v); continuing with local checks only\n", err)
			eval = nil
		}
	}

	detector := detect.New()
	return validate.NewPipeline(detector, redact.New(detector), eval, pol.SeverityTable(), structure.Fix), nil
}
