package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/impactlab/aiboard/pkg/client"
)

var (
	serverURL string
	serverKey string

	listTeam     string
	listStatus   string
	listPriority string
	listSearch   string
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Query a running aiboard server",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(client.Conf{BaseURL: serverURL, APIKey: serverKey})
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		projects, err := c.ListProjects(ctx, client.Filter{
			Team:     listTeam,
			Status:   listStatus,
			Priority: listPriority,
			Search:   listSearch,
		})
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(projects, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var projectsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream project change events until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(client.Conf{BaseURL: serverURL, APIKey: serverKey})

		cancel, err := c.Subscribe(context.Background(), func(ev client.Event) {
			fmt.Printf("%s  %-8s %s (%s)\n", time.Now().Format(time.TimeOnly), ev.Type, ev.Project.Name, ev.Project.ProjectId)
		})
		if err != nil {
			return err
		}
		defer cancel()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		return nil
	},
}

var projectsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Download the CSV export",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := client.New(client.Conf{BaseURL: serverURL, APIKey: serverKey})
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		payload, err := c.ExportCSV(ctx)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return os.WriteFile(args[0], payload, 0o644)
		}
		_, err = os.Stdout.Write(payload)
		return err
	},
}

func init() {
	projectsCmd.PersistentFlags().StringVar(&serverURL, "server", "http://127.0.0.1:8080", "aiboard server base url")
	projectsCmd.PersistentFlags().StringVar(&serverKey, "api-key", "", "api key issued with 'aiboardctl apikey gen'")

	projectsListCmd.Flags().StringVar(&listTeam, "team", "", "filter by team")
	projectsListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	projectsListCmd.Flags().StringVar(&listPriority, "priority", "", "filter by priority")
	projectsListCmd.Flags().StringVar(&listSearch, "search", "", "substring search over name and description")

	projectsCmd.AddCommand(projectsListCmd, projectsWatchCmd, projectsExportCmd)
}
