package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echoforge/echoforge-go/download"
	"github.com/echoforge/echoforge-go/tracking"
)

var downloadCmd = &cobra.Command{
	Use:   "download <job-id>",
	Short: "Download result artifacts for a completed job",
	Long: `Download result artifacts for a completed job.

Pick artifacts with --speaker, --original and --metadata, or fetch
everything with --all.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		jobID := args[0]

		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" {
			dir = app.cfg.Download.Dir
		}
		manager := download.NewManager(app.http, download.DirSaver{Dir: dir},
			download.WithLogger(app.log))

		speakers, _ := cmd.Flags().GetStringArray("speaker")
		original, _ := cmd.Flags().GetBool("original")
		metadata, _ := cmd.Flags().GetBool("metadata")
		all, _ := cmd.Flags().GetBool("all")

		if all {
			job, err := tracking.NewClient(app.http).JobStatus(cmd.Context(), jobID)
			if err != nil {
				return err
			}
			ids := make([]string, 0, len(job.Speakers))
			for _, sp := range job.Speakers {
				ids = append(ids, sp.SpeakerID)
			}
			if err := manager.All(cmd.Context(), jobID, ids); err != nil {
				return err
			}
			fmt.Printf("Saved %d artifacts to %s\n", len(ids)+2, dir)
			return nil
		}

		if len(speakers) == 0 && !original && !metadata {
			return fmt.Errorf("nothing selected: use --speaker, --original, --metadata or --all")
		}

		for _, id := range speakers {
			if err := manager.SpeakerAudio(cmd.Context(), jobID, id); err != nil {
				return err
			}
		}
		if original {
			if err := manager.OriginalAudio(cmd.Context(), jobID); err != nil {
				return err
			}
		}
		if metadata {
			if err := manager.Metadata(cmd.Context(), jobID); err != nil {
				return err
			}
		}
		fmt.Printf("Saved artifacts to %s\n", dir)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringArray("speaker", nil, "speaker id to download (repeatable)")
	downloadCmd.Flags().Bool("original", false, "download the original audio")
	downloadCmd.Flags().Bool("metadata", false, "download the metadata document")
	downloadCmd.Flags().Bool("all", false, "download every artifact")
	downloadCmd.Flags().String("dir", "", "target directory (defaults to config download.dir)")

	rootCmd.AddCommand(downloadCmd)
}
