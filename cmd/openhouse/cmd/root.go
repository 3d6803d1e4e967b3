package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var dataDir string

var rootCmd = &cobra.Command{
	Use:   "openhouse",
	Short: "Openhouse is a real-estate listing app",
	Long: `Openhouse is a real-estate listing app for property seekers and agents.
This tool manages the device-local account database and session.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(),
		"directory holding the local database")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".openhouse"
	}
	return filepath.Join(home, ".openhouse")
}
