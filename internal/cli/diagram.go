package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/existflow/catalyst/internal/client"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram [description]",
	Short: "Generate Mermaid markup from a description",
	Long: `Send a description to the configured language model and print the
Mermaid markup it returns. The description is read from stdin when it is
piped and no arguments are given.

Examples:
  catalyst diagram "Alice sends message to Bob"
  echo "A user logs in, then views dashboard" | catalyst diagram`,
	RunE: runDiagram,
}

var diagramServer string

func init() {
	diagramCmd.Flags().StringVar(&diagramServer, "server", "", "Generate through a running server instead of calling the model directly")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	if prompt == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		prompt = string(data)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return fmt.Errorf("a description is required")
	}

	var generate func(context.Context, string) (string, error)
	if diagramServer != "" {
		generate = client.New(diagramServer).GenerateMermaid
	} else {
		generator, err := newGenerator()
		if err != nil {
			return err
		}
		generate = generator.Generate
	}

	markup, err := generate(cmd.Context(), prompt)
	if err != nil {
		return fmt.Errorf("failed to generate diagram: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), markup)
	return nil
}
