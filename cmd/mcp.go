package cmd

import (
	"github.com/redlinelab/redline/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Redline MCP server",
	Long:  `Launch an MCP server that allows AI agents to run readiness evaluations via standard tools.`,
	// No headers are printed in MCP mode; stdout carries the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
