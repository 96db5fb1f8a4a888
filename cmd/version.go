package cmd

import (
	"fmt"
	"runtime"

	nftgo_mcp "github.com/kumolabai/nftgo-mcp/pkg/mcp"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X github.com/kumolabai/nftgo-mcp/cmd.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and MCP server identity",
	Long: `Print the nftgo-mcp build (version, commit, build date, platform) and the
identity the server reports to MCP clients during initialization.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nftgo-mcp %s\n", version)
		fmt.Fprintf(out, "  Commit:     %s\n", commit)
		fmt.Fprintf(out, "  Built:      %s\n", date)
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(out, "  Go:         %s\n", runtime.Version())
		fmt.Fprintf(out, "  MCP server: %s %s\n", nftgo_mcp.ServerName, nftgo_mcp.ServerVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
