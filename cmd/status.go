package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echoforge/echoforge-go/tracking"
)

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show a job's processing status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		client := tracking.NewClient(app.http)
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			return trackJob(cmd, app, client, args[0])
		}

		job, err := client.JobStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printUpdate(*job)
		if job.Status == tracking.StatusCompleted {
			printResults(*job)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("watch", false, "poll until the job finishes")
	rootCmd.AddCommand(statusCmd)
}

// trackJob follows the job until a terminal state, printing each
// observation. Poll failures are reported but do not stop the loop.
func trackJob(cmd *cobra.Command, app *app, fetcher tracking.Fetcher, jobID string) error {
	tracker := tracking.NewTracker(fetcher, app.cfg.Polling,
		tracking.WithLogger(app.log.With().Str("component", "tracking").Logger()))

	var failed error
	err := tracker.Track(cmd.Context(), jobID, tracking.Hooks{
		OnUpdate: printUpdate,
		OnPollError: func(err error) {
			fmt.Printf("poll failed: %v\n", err)
		},
		OnCompleted: func(job tracking.Job) {
			fmt.Println("Processing complete.")
			printResults(job)
			fmt.Printf("Run `echoforge download %s --all` to fetch the artifacts.\n", jobID)
		},
		OnFailed: func(job tracking.Job, msg string) {
			failed = fmt.Errorf("processing failed: %s (upload again to retry)", msg)
		},
	})
	if err != nil {
		return err
	}
	return failed
}

// printUpdate renders one status observation.
func printUpdate(job tracking.Job) {
	line := fmt.Sprintf("[%3d%%] %s", job.Progress, job.Status.Label())
	if job.CurrentStage != "" {
		line += " - " + job.CurrentStage
	}
	if job.EstimatedTimeRemaining != nil {
		line += fmt.Sprintf(" (~%.0fs remaining)", *job.EstimatedTimeRemaining)
	}
	fmt.Println(line)
}

// printResults renders the per-speaker results of a completed job.
func printResults(job tracking.Job) {
	fmt.Printf("Duration: %.0fs  Speakers: %d  DER: %.2f%%  Processing: %.1fs\n",
		job.Duration, len(job.Speakers), job.DERScore, job.ProcessingTime)
	for _, sp := range job.Speakers {
		fmt.Printf("  %s: %.1fs talk time, %d segments\n",
			sp.SpeakerID, sp.TotalDuration, len(sp.Segments))
	}
}
