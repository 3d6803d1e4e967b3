package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/openhouse-app/openhouse/account"
)

var (
	updateFirstName string
	updateLastName  string
	updatePhone     string
	updateCompany   string
	updateBio       string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the logged-in account's profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()
		e.watchdog.NotifyActivity()

		var patch account.Patch
		if cmd.Flags().Changed("first-name") {
			patch.FirstName = &updateFirstName
		}
		if cmd.Flags().Changed("last-name") {
			patch.LastName = &updateLastName
		}
		if cmd.Flags().Changed("phone") {
			patch.Phone = &updatePhone
		}
		if cmd.Flags().Changed("company") {
			patch.CompanyName = &updateCompany
		}
		if cmd.Flags().Changed("bio") {
			patch.Bio = &updateBio
		}
		if !e.store.UpdateProfile(cmd.Context(), patch) {
			return errors.New(e.store.Snapshot().Err)
		}
		cmd.Println("Profile updated.")
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateFirstName, "first-name", "", "first name")
	updateCmd.Flags().StringVar(&updateLastName, "last-name", "", "last name")
	updateCmd.Flags().StringVar(&updatePhone, "phone", "", "phone number")
	updateCmd.Flags().StringVar(&updateCompany, "company", "", "company name (agents)")
	updateCmd.Flags().StringVar(&updateBio, "bio", "", "short bio (agents)")
	rootCmd.AddCommand(updateCmd)
}
