package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echoforge/echoforge-go/training"
	"github.com/echoforge/echoforge-go/upload"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Manage speaker model training",
}

var trainUploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a labeled audio sample as training data",
	Args:  cobra.ExactArgs(1),
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

		label, _ := cmd.Flags().GetString("label")
		client := training.NewClient(app.http, training.WithLogger(app.log))
		if err := client.UploadData(cmd.Context(), file, label); err != nil {
			return err
		}
		fmt.Printf("Uploaded %s as %q\n", file.Name, label)
		return nil
	},
}

var trainStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a training run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		label, _ := cmd.Flags().GetString("label")
		epochs, _ := cmd.Flags().GetInt("epochs")
		client := training.NewClient(app.http, training.WithLogger(app.log))
		jobID, err := client.Start(cmd.Context(), training.StartRequest{
			Label:  label,
			Epochs: epochs,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Training started: %s\n", jobID)
		return nil
	},
}

var trainStatusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show a training job's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		client := training.NewClient(app.http)
		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			return trackJob(cmd, app, client, args[0])
		}
		job, err := client.JobStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printUpdate(*job)
		return nil
	},
}

func init() {
	trainUploadCmd.Flags().String("label", "", "dataset label for the sample")
	_ = trainUploadCmd.MarkFlagRequired("label")
	trainStartCmd.Flags().String("label", "", "dataset label to train on")
	_ = trainStartCmd.MarkFlagRequired("label")
	trainStartCmd.Flags().Int("epochs", 0, "training epochs (0 = service default)")
	trainStatusCmd.Flags().Bool("watch", false, "poll until the job finishes")

	trainCmd.AddCommand(trainUploadCmd, trainStartCmd, trainStatusCmd)
	rootCmd.AddCommand(trainCmd)
}
