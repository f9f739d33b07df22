// cmd/serve.go
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aceteam-ai/gobatch/batch"
)

var serveCmd = &cobra.Command{
	Use:   "serve <job.yaml>",
	Short: "Run a batch job definition repeatedly against a queue-bridging reader until canceled",
	Long: `serve rebuilds and runs the job definition in a loop: a queue-bridging
reader reports end-of-stream whenever its block timeout elapses with
nothing delivered, so a completed run just means the queue went quiet
for a moment, not that the job is done for good. serve treats that as
"run again" and only stops on ctx cancellation (SIGINT/SIGTERM) or when
the job definition fails to build. A
fatal error restarts the job with exponential backoff, the same
recovery shape as the teacher's worker run loop.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	color.New(color.FgCyan, color.Bold).Println("--- gobatch serve ---")
	color.New(color.FgCyan).Printf("   - job definition: %s\n", args[0])

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if sig, ok := <-sigs; ok {
			Debug("received signal %v, shutting down", sig)
			cancel()
		}
	}()

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	for ctx.Err() == nil {
		job, err := batch.NewBuilder().FromYAML(args[0], defaultRegistry()).Build()
		if err != nil {
			color.New(color.FgRed).Printf("   - failed to build job: %v\n", err)
			return err
		}

		report := job.Run(ctx)
		color.New(color.FgCyan).Printf("   - run finished: status=%s read=%d write=%d errors=%d\n",
			report.Status, report.Metrics.ReadCount, report.Metrics.WriteCount, report.Metrics.ErrorCount)

		if report.Status != batch.JobStatusFailed {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		color.New(color.FgYellow).Printf("   - job failed, retrying in %s: %v\n", backoff, report.LastError)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	color.New(color.FgGreen).Println("   - shutdown complete")
	return nil
}
