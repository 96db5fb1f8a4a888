package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultServerName = "nftgo"

// MCPServerConfig represents a single MCP server configuration
type MCPServerConfig struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// MCPClientConfig represents the mcpServers section of a client configuration.
// Other top level keys of an existing file are kept as they are.
type MCPClientConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
	Extra      map[string]json.RawMessage `json:"-"`
}

func (c *MCPClientConfig) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if servers, ok := raw["mcpServers"]; ok {
		if err := json.Unmarshal(servers, &c.MCPServers); err != nil {
			return err
		}
		delete(raw, "mcpServers")
	}
	c.Extra = raw
	return nil
}

func (c MCPClientConfig) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Extra)+1)
	for k, v := range c.Extra {
		out[k] = v
	}
	out["mcpServers"] = c.MCPServers
	return json.Marshal(out)
}

var configureCmd = &cobra.Command{
	Use:   "configure <api-key> [server-name]",
	Short: "Generate MCP server configuration for LLM clients",
	Long: `Generate and optionally install the nftgo-mcp server configuration for an LLM client.

Supported clients:
- Claude Desktop (default)
- Cursor`,
	Example: `  # Install for Claude Desktop under the name "nftgo"
  nftgo-mcp configure <api-key>

  # Print the configuration without installing
  nftgo-mcp configure --dry-run <api-key> nft-data

  # Install for Cursor
  nftgo-mcp configure --client=cursor <api-key>`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigure,
}

var (
	dryRun bool
	client string
)

func init() {
	rootCmd.AddCommand(configureCmd)

	configureCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print configuration without installing")
	configureCmd.Flags().StringVar(&client, "client", "claude-desktop", "Target LLM client (claude-desktop, cursor)")
}

func runConfigure(cmd *cobra.Command, args []string) error {
	apiKey := strings.TrimSpace(args[0])
	if apiKey == "" {
		return fmt.Errorf("api key must not be empty")
	}

	serverName := defaultServerName
	if len(args) > 1 {
		serverName = args[1]
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate nftgo-mcp executable: %w", err)
	}

	var configDir, configFile, clientName string
	switch strings.ToLower(client) {
	case "claude-desktop":
		configDir = getClaudeDesktopConfigDir()
		configFile = filepath.Join(configDir, "claude_desktop_config.json")
		clientName = "Claude Desktop"
	case "cursor":
		configDir = getCursorConfigDir()
		configFile = filepath.Join(configDir, "mcp_config.json")
		clientName = "Cursor"
	default:
		return fmt.Errorf("unsupported client: %s", client)
	}

	config, err := getMCPClientConfig(configFile, executable, apiKey, serverName)
	if err != nil {
		return err
	}

	if dryRun {
		return printConfig(cmd.OutOrStdout(), config)
	}

	if err := writeConfig(configDir, configFile, config); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color.New(color.FgGreen).Fprintf(out, "Successfully configured MCP server '%s' for %s\n", serverName, clientName)
	fmt.Fprintf(out, "Please restart %s for changes to take effect.\n", clientName)

	return nil
}

func getClaudeDesktopConfigDir() string {
	return appConfigDir("Claude", "claude")
}

func getCursorConfigDir() string {
	return appConfigDir("Cursor", "cursor")
}

func appConfigDir(name, linuxName string) string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin": // macOS
		return filepath.Join(home, "Library", "Application Support", name)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, name)
	default: // Linux and others
		return filepath.Join(home, ".config", linuxName)
	}
}

func getMCPClientConfig(configFile, executable, apiKey, serverName string) (*MCPClientConfig, error) {
	// Read existing configuration
	var config MCPClientConfig
	if data, err := os.ReadFile(configFile); err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse existing config: %w", err)
		}
	}

	if config.MCPServers == nil {
		config.MCPServers = make(map[string]MCPServerConfig)
	}

	// Add or update the server
	config.MCPServers[serverName] = MCPServerConfig{
		Command: executable,
		Args:    []string{apiKey},
	}

	return &config, nil
}

func printConfig(w io.Writer, config *MCPClientConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	fmt.Fprintf(w, "%s\n", configJSON)
	return nil
}

func writeConfig(configDir, configFile string, config *MCPClientConfig) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	// The file holds the API key.
	if err := os.WriteFile(configFile, configJSON, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	return nil
}
