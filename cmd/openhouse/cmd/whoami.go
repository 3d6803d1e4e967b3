package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openhouse-app/openhouse/account"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()
		e.watchdog.NotifyActivity()

		a := e.store.Account()
		if a == nil {
			cmd.Println("Not logged in.")
			return nil
		}
		cmd.Printf("%s %s <%s> (%s, id %s)\n", a.FirstName, a.LastName, a.Email, a.Type, a.ID)
		if a.Type == account.TypeAgent {
			cmd.Printf("  %s, license %s, %d years, %s\n",
				a.CompanyName, a.LicenseNumber, a.Experience, a.VerificationStatus)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
