package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/projinit/internal/engine"
	"github.com/danieljhkim/projinit/internal/project"
)

var (
	envAuth   string
	envSrc    string
	envDest   string
	envStrict bool
)

var envCmd = &cobra.Command{
	Use:   "env <fastapi|nestjs>",
	Short: "Generate an API environment file",
	Long: `Generate the API environment file for a backend variant and auth mode
from a base KEY=VALUE document.

The document is printed to stdout unless --dest is given. Keys missing
from the source resolve to an empty value or their documented default.`,
	Example: `  projinit env fastapi
  projinit env nestjs --auth supabase --source .env --dest api/.env`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: variantNames(),
	RunE:      runEnv,
}

func init() {
	envCmd.Flags().StringVar(&envAuth, "auth", "", "Authentication mode: token or supabase")
	envCmd.Flags().StringVar(&envSrc, "source", "", "Base KEY=VALUE document (default: configured env source)")
	envCmd.Flags().StringVar(&envDest, "dest", "", "File to write (default: stdout)")
	envCmd.Flags().BoolVar(&envStrict, "strict", false, "Fail when the source lacks any key the document reads")
}

func variantNames() []string {
	names := make([]string, 0, len(project.Variants))
	for _, v := range project.Variants {
		names = append(names, string(v))
	}
	return names
}

func runEnv(cmd *cobra.Command, args []string) error {
	variant, err := project.ParseVariant(args[0])
	if err != nil {
		return err
	}
	auth, err := project.ParseAuthMode(envAuth)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	eng, _, err := newEngine()
	if err != nil {
		return err
	}

	result, err := eng.GenerateEnv(cmd.Context(), &engine.EnvRequest{
		CWD:     cwd,
		Variant: variant,
		Auth:    auth,
		Source:  envSrc,
		Dest:    envDest,
		Strict:  envStrict,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), result)
	}
	if result.Path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), result.Content)
		return err
	}
	PrintSuccess("Generated: " + result.Path)
	return nil
}
