package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/echoforge/echoforge-go/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		client := auth.NewClient(app.http, app.session, auth.WithLogger(app.log))
		user, err := client.Login(cmd.Context(), auth.Credentials{
			Email:    args[0],
			Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Signed in as %s\n", user.Email)
		if exp, ok := app.session.ExpiresAt(); ok {
			fmt.Printf("Session valid until %s\n", exp.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		client := auth.NewClient(app.http, app.session, auth.WithLogger(app.log))
		user, err := client.Register(cmd.Context(), auth.Credentials{
			Email:    args[0],
			Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Registered %s\n", user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Erase the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		client := auth.NewClient(app.http, app.session)
		if err := client.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Verify the stored session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		client := auth.NewClient(app.http, app.session)
		user, err := client.Verify(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "account password")
	_ = loginCmd.MarkFlagRequired("password")
	registerCmd.Flags().String("password", "", "account password")
	_ = registerCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
