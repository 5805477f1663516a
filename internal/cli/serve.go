package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptsec/promptval/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run promptval as an HTTP validation service",
	Long: `Serve exposes the validation pipeline over HTTP:

  POST /v1/validate  {"identifier": "...", "text": "..."}
  GET  /healthz

Each request runs its own pipeline invocation; requests are independent
and handled concurrently.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8422", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           api.New(pipeline).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	fmt.Printf("promptval listening on %s\n", serveAddr)
	return srv.ListenAndServe()
}
