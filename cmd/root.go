package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/echoforge/echoforge-go/config"
	"github.com/echoforge/echoforge-go/logging"
	"github.com/echoforge/echoforge-go/session"
	"github.com/echoforge/echoforge-go/transport"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "echoforge",
	Short: "EchoForge speaker diarization client",
	Long: `EchoForge client - submit audio for speaker diarization and retrieve results

Upload an audio file, follow the job through the processing pipeline,
and download per-speaker audio and metadata once it completes.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().String("base-url", "", "service base URL (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// app bundles the wired client components a command needs.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *session.Session
	http    *transport.Client
}

// newApp loads configuration, applies flag overrides, and wires the
// session and transport.
func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		cfg.Transport.BaseURL = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if v, _ := cmd.Flags().GetBool("json-logs"); v {
		cfg.Logging.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(cfg.Logging)

	store, err := session.DefaultFileStore()
	if err != nil {
		return nil, fmt.Errorf("resolve credential store: %w", err)
	}
	sess, err := session.New(store)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	client, err := transport.New(cfg.Transport, sess,
		transport.WithLogger(log.With().Str("component", "transport").Logger()),
		transport.WithUnauthorizedHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Run `echoforge login` to sign in again.")
		}))
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, session: sess, http: client}, nil
}
