package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	nftgo_mcp "github.com/kumolabai/nftgo-mcp/pkg/mcp"
	"github.com/kumolabai/nftgo-mcp/pkg/openapi"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the documented endpoints or the MCP tools",
}

var listEndpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the documented NFTGo endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openapi.LoadDefault()
		if err != nil {
			return fmt.Errorf("failed to load endpoint catalog: %w", err)
		}
		return renderEndpoints(cmd.OutOrStdout(), catalog)
	},
}

var listToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := openapi.LoadDefault()
		if err != nil {
			return fmt.Errorf("failed to load endpoint catalog: %w", err)
		}
		// Listing tools never forwards a request.
		adapter := nftgo_mcp.NewAdapter(catalog, nil, zerolog.Nop())
		return renderTools(cmd.OutOrStdout(), adapter)
	},
}

func renderEndpoints(w io.Writer, catalog *openapi.Catalog) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Method", "Path", "Name"})
	endpoints := catalog.ListEndpoints()
	for i, path := range catalog.Paths() {
		method, err := catalog.Method(path)
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{i + 1, method, path, endpoints[i].Name})
	}
	t.Render()
	return nil
}

func renderTools(w io.Writer, adapter *nftgo_mcp.Adapter) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Name", "Description"})
	for i, tool := range adapter.ListTools() {
		t.AppendRow(table.Row{
			i + 1, tool.Name, tool.Description,
		})
		t.AppendSeparator()
	}
	t.Render()
	return nil
}

func init() {
	listCmd.AddCommand(listEndpointsCmd)
	listCmd.AddCommand(listToolsCmd)
	rootCmd.AddCommand(listCmd)
}
