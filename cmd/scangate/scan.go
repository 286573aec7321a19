package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/attendo-cloud/scangate/pkg/scanclient"
)

var (
	scanGateway string
	scanAPIKey  string
	scanTimeout time.Duration
)

// scanCmd submits one identifier through a running gateway, for smoke tests
// and manual check-in without a camera.
var scanCmd = &cobra.Command{
	Use:   "scan <id>",
	Short: "Submit one scanned identifier to a running gateway",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := scanclient.New(scanclient.Options{
			BaseURL: scanGateway,
			APIKey:  scanAPIKey,
		})
		if err != nil {
			return err
		}

		ctx, cancel := cobraContextWithTimeout(cmd, scanTimeout)
		defer cancel()

		res, err := client.Scan(ctx, args[0])
		if err != nil {
			if apiErr, ok := err.(*scanclient.APIError); ok && len(apiErr.Matches) > 0 {
				fmt.Fprintf(os.Stderr, "ambiguous id, matches:\n")
				for _, m := range apiErr.Matches {
					fmt.Fprintf(os.Stderr, "  %s  %s  %s\n", m.ID, m.Title, m.URL)
				}
			}
			return err
		}

		fmt.Printf("marked: %s (%s)\n", res.FullName, res.Title)
		if res.Doc != "" {
			fmt.Printf("doc:    %s\n", res.Doc)
		}
		fmt.Printf("page:   %s\n", res.PageID)
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanGateway, "gateway", "http://localhost:8080", "scangate base URL")
	scanCmd.Flags().StringVar(&scanAPIKey, "api-key", "", "API key (Bearer token)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 30*time.Second, "request timeout")
	rootCmd.AddCommand(scanCmd)
}

// cobraContextWithTimeout bounds a command's context.
func cobraContextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return cmd.Context(), func() {}
	}
	return context.WithTimeout(cmd.Context(), d)
}
