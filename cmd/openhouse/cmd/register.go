package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/openhouse-app/openhouse/account"
	"github.com/openhouse-app/openhouse/auth"
)

var (
	registerType      string
	registerFirstName string
	registerLastName  string
	registerPhone     string
	registerCompany   string
	registerLicense   string
	registerYears     int
	registerBio       string
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Create an account and log in",
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
		ok := e.store.Register(cmd.Context(), auth.Registration{
			Email:     args[0],
			Password:  password,
			FirstName: registerFirstName,
			LastName:  registerLastName,
			Phone:     registerPhone,
			Type:      account.Type(registerType),
			Agent: account.AgentDetails{
				CompanyName:   registerCompany,
				LicenseNumber: registerLicense,
				Experience:    registerYears,
				Bio:           registerBio,
			},
		})
		if !ok {
			return errors.New(e.store.Snapshot().Err)
		}
		a := e.store.Account()
		cmd.Printf("Registered %s account %s (%s)\n", a.Type, a.Email, a.ID)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerType, "type", "seeker", `account type ("seeker" or "agent")`)
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&registerCompany, "company", "", "company name (agents)")
	registerCmd.Flags().StringVar(&registerLicense, "license", "", "license number (agents)")
	registerCmd.Flags().IntVar(&registerYears, "experience", 0, "years of experience (agents)")
	registerCmd.Flags().StringVar(&registerBio, "bio", "", "short bio (agents)")
	rootCmd.AddCommand(registerCmd)
}
