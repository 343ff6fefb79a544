package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/projinit/internal/engine"
	"github.com/danieljhkim/projinit/internal/project"
)

var (
	initForce   bool
	initFastAPI bool
	initNestJS  bool
	initAuth    string
	initDryRun  bool
)

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a new project from the templates",
	Long: `Create a new full-stack project in ./<name>, or in the current
directory when no name is given.

Template layers are copied in order, later layers replacing files of
earlier ones:

  templates/                    shared frontend and root configuration
  templates-api-<variant>/      FastAPI or NestJS API
  templates-<auth>-<variant>/   auth API overlay (with --auth)
  templates-<auth>-frontend/    auth frontend overlay (with --auth)

The API environment file api/.env is then generated from the base
configuration source. A non-empty destination asks for confirmation
unless --force is given.`,
	Example: `  projinit init my-app
  projinit init my-app --nestjs --auth token
  projinit init --auth supabase --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Write into a non-empty directory without prompting")
	initCmd.Flags().BoolVar(&initFastAPI, "fastapi", false, "Use the FastAPI backend (default)")
	initCmd.Flags().BoolVar(&initNestJS, "nestjs", false, "Use the NestJS backend")
	initCmd.MarkFlagsMutuallyExclusive("fastapi", "nestjs")
	initCmd.Flags().StringVar(&initAuth, "auth", "",
		"Include authentication scaffolding: token or supabase")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false,
		"Show the files that would be written without writing them")

	_ = initCmd.RegisterFlagCompletionFunc("auth", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, 0, len(project.AuthModes))
		for _, m := range project.AuthModes {
			modes = append(modes, string(m))
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
}

func runInit(cmd *cobra.Command, args []string) error {
	name := "."
	if len(args) == 1 {
		name = args[0]
	}

	variant := project.VariantFastAPI
	if initNestJS {
		variant = project.VariantNestJS
	}
	auth, err := project.ParseAuthMode(initAuth)
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

	req := &engine.InitRequest{
		CWD:     cwd,
		Name:    name,
		Variant: variant,
		Auth:    auth,
		Force:   initForce,
		DryRun:  initDryRun,
	}

	result, err := eng.Init(cmd.Context(), req)
	if errors.Is(err, engine.ErrDestinationNotEmpty) {
		dest := name
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(cwd, dest)
		}
		ok, promptErr := promptYesNo(cmd.InOrStdin(), stderr,
			fmt.Sprintf("Directory '%s' is not empty. Continue?", filepath.Clean(dest)))
		if promptErr != nil {
			return promptErr
		}
		if !ok {
			PrintInfo("Aborted.")
			return nil
		}
		req.Force = true
		result, err = eng.Init(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(cmd.OutOrStdout(), result)
	}

	printInitResult(result, name)
	return nil
}

func printInitResult(result *engine.InitResult, name string) {
	if result.DryRun {
		PrintSection("Dry run")
	} else {
		PrintSection("Project created")
	}
	PrintLabelValue("Destination", result.Destination)
	PrintLabelValue("Backend", string(result.Variant))
	PrintLabelValue("Auth", result.Auth.String())
	PrintLabelValue("Layers", fmt.Sprintf("%v", result.Layers))

	written := uniquePaths(result.Written)
	fmt.Fprintln(stdout)
	if len(written) == 0 {
		PrintEmptyState("No template files found")
	} else {
		PrintList(written, 1)
	}
	PrintList([]string{result.EnvFile + " (generated)"}, 1)
	fmt.Fprintln(stdout)

	verb := "Created"
	if result.DryRun {
		verb = "Would create"
	}
	PrintSuccess(fmt.Sprintf("%s %s in %s", verb,
		PrintCount(len(written)+1, "file", "files"),
		result.Duration.Round(time.Millisecond)))

	if len(result.MissingEnvKeys) > 0 {
		PrintWarning(fmt.Sprintf("%s not set in the env source: fill them in %s",
			PrintCount(len(result.MissingEnvKeys), "key", "keys"), result.EnvFile))
	}

	if result.DryRun {
		return
	}
	PrintSection("Next steps")
	PrintCommands(nextSteps(name, result.Variant, result.Auth), 1)
}

// uniquePaths drops repeated paths, keeping the first occurrence.
func uniquePaths(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// nextSteps returns the commands to start the generated project.
func nextSteps(name string, variant project.Variant, auth project.AuthMode) []string {
	var steps []string
	if name != "." {
		steps = append(steps, "cd "+name)
	}

	switch auth {
	case project.AuthToken:
		steps = append(steps, "# Auth is enabled: set AUTH_TOKEN in api/.env")
	case project.AuthSupabase:
		steps = append(steps, "# Supabase auth is enabled: set SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY in api/.env")
	}
	steps = append(steps, "docker-compose up -d", "")

	if variant == project.VariantNestJS {
		steps = append(steps,
			"# NestJS API development:",
			"cd api && npm install && npm run start:dev",
		)
	} else {
		steps = append(steps,
			"# FastAPI development:",
			"cd api && pip install -r requirements.txt && uvicorn app.main:app --reload",
		)
	}
	return steps
}
