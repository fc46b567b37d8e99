package main

import (
	"github.com/spf13/cobra"

	"github.com/impactlab/aiboard/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "aiboardctl",
	Short: "aiboardctl is the aiboard command line tool",
	Long:  "aiboardctl manages api keys and talks to a running aiboard server",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(version.VersionCmd)
	rootCmd.AddCommand(apikeyCmd)
	rootCmd.AddCommand(projectsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
