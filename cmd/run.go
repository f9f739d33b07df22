// cmd/run.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aceteam-ai/gobatch/batch"
)

var runCmd = &cobra.Command{
	Use:   "run <job.yaml>",
	Short: "Run a single batch job to completion from a declarative job definition",
	Long: `run loads a job definition YAML file, builds the job, and runs it once.
Reader and writer "type" fields are resolved against the built-in component
registry (currently: queuebridge.reader, queuebridge.writer).`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	job, err := batch.NewBuilder().FromYAML(args[0], defaultRegistry()).Build()
	if err != nil {
		return fmt.Errorf("build job: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if sig, ok := <-sigs; ok {
			Debug("received signal %v, canceling job", sig)
			cancel()
		}
	}()

	report := job.Run(ctx)

	fmt.Printf("job %q finished: status=%s read=%d write=%d filtered=%d errors=%d duration=%s\n",
		report.Name, report.Status, report.Metrics.ReadCount, report.Metrics.WriteCount,
		report.Metrics.FilterCount, report.Metrics.ErrorCount, report.Metrics.Duration())

	if report.Status == batch.JobStatusFailed {
		return fmt.Errorf("job failed: %w", report.LastError)
	}
	return nil
}
