package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"ProductCatalog/internal/catalog"
	"ProductCatalog/internal/probe"
)

var (
	probeURL     string
	probeAPIKey  string
	probeTimeout time.Duration
)

var errProbeFailed = errors.New("probe failed")

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Check a deployed catalog over HTTP",
	Long: `Send an MCP initialize request and a get_categories call to a
running deployment (directly or through an API gateway) and report the
status of each.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), probeTimeout)
		defer cancel()

		c := probe.NewClient(probeURL, probeAPIKey)
		printInfo("Probing %s", c.BaseURL)

		failed := false

		_, resp, err := c.Initialize(ctx)
		if resp.StatusCode != 0 {
			printInfo("MCP initialize: %s", statusLine(resp.StatusCode))
		}
		if err != nil {
			printError("MCP initialize failed: %v", err)
			failed = true
		} else {
			printOK("MCP initialize succeeded")
		}

		res, resp, err := c.Call(ctx, catalog.OpGetCategories, nil)
		if resp.StatusCode != 0 {
			printInfo("RPC %s: %s", catalog.OpGetCategories, statusLine(resp.StatusCode))
		}
		if err != nil {
			printError("RPC call failed: %v", err)
			failed = true
		} else {
			printOK("Categories: %s", res.Text)
		}

		if failed {
			return errProbeFailed
		}
		return nil
	},
}

func init() {
	f := probeCmd.Flags()
	f.StringVar(&probeURL, "url", "http://localhost:8080", "Base URL of the deployment")
	f.StringVar(&probeAPIKey, "api-key", "", "Value for the api-key header")
	f.DurationVar(&probeTimeout, "timeout", 30*time.Second, "Overall probe timeout")
}
