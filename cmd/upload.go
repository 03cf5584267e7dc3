package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echoforge/echoforge-go/tracking"
	"github.com/echoforge/echoforge-go/upload"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Submit an audio file for diarization",
	Long: `Submit an audio file for speaker diarization.

Supported formats: .wav, .mp3, .m4a, .flac (max 500MB).
With --watch the command follows the job until it completes or fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		file, closeFile, err := upload.Open(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = closeFile() }()

		opts := upload.DefaultOptions()
		opts.NumSpeakers, _ = cmd.Flags().GetInt("speakers")
		opts.VADEnabled, _ = cmd.Flags().GetBool("vad")
		opts.HighAccuracy, _ = cmd.Flags().GetBool("high-accuracy")

		uploader := upload.NewUploader(app.http, upload.WithLogger(app.log))
		jobID, err := uploader.Submit(cmd.Context(), file, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Job submitted: %s\n", jobID)

		if watch, _ := cmd.Flags().GetBool("watch"); !watch {
			fmt.Printf("Run `echoforge status %s --watch` to follow it.\n", jobID)
			return nil
		}
		return trackJob(cmd, app, tracking.NewClient(app.http), jobID)
	},
}

func init() {
	uploadCmd.Flags().Int("speakers", 2, "expected number of speakers (1-5)")
	uploadCmd.Flags().Bool("vad", true, "enable voice activity detection")
	uploadCmd.Flags().Bool("high-accuracy", false, "high accuracy mode (slower)")
	uploadCmd.Flags().Bool("watch", false, "follow the job until it finishes")

	rootCmd.AddCommand(uploadCmd)
}
