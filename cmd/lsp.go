// Copyright © 2025 The declnav authors

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/declnav/declnav/lsp"
)

var (
	lspStdio bool
	lspPort  int
)

var lspCmd = &cobra.Command{
	Use:   "lsp [flags]",
	Short: "Start the declnav Language Server Protocol server",
	Long: `Start an LSP server over declaration fixture files.

The language server provides parse diagnostics, hover with resolved
target sets, go-to-definition, and find references.

Transport modes:
  --stdio      Use stdin/stdout for LSP communication (default)
  --port N     Listen for an LSP client on TCP port N

Editor configuration (VS Code):
  Install a generic LSP client extension and configure it to run
  "declnav lsp --stdio" for .decl files.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		srv := lsp.New()

		if !lspStdio && lspPort > 0 {
			addr := fmt.Sprintf("localhost:%d", lspPort)
			log.Printf("declnav LSP server listening on %s", addr)
			if err := srv.RunTCP(addr); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		} else {
			if err := srv.RunStdio(); err != nil {
				fmt.Fprintf(os.Stderr, "lsp server error: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	lspCmd.Flags().BoolVar(&lspStdio, "stdio", false,
		"Use stdin/stdout for LSP communication (default behavior)")
	lspCmd.Flags().IntVar(&lspPort, "port", 0,
		"TCP port for LSP server (use instead of --stdio)")

	rootCmd.AddCommand(lspCmd)
}
