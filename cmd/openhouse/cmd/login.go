package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/openhouse-app/openhouse/account"
)

var loginType string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in to an existing account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()
		e.watchdog.NotifyActivity()

		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		if !e.store.Login(cmd.Context(), args[0], password, account.Type(loginType)) {
			return errors.New(e.store.Snapshot().Err)
		}
		a := e.store.Account()
		cmd.Printf("Logged in as %s %s (%s)\n", a.FirstName, a.LastName, a.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginType, "type", "seeker", `account type ("seeker" or "agent")`)
	rootCmd.AddCommand(loginCmd)
}
