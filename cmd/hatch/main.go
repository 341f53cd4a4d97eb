package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hatch-cli/internal/app"
	"hatch-cli/internal/resolve"
	"hatch-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "hatch <name>",
	Short: "Scaffold a new Go project",
	Long: `Hatch scaffolds a new Go project: a module with a README, LICENSE,
.gitignore and a buildable main.go, an initial git commit, and optionally a
matching repository on GitHub.

Every setting hatch needs (author, license, module path, ...) is resolved in
order from: values fixed on the command line, the configuration files, your
git configuration (when git.enable is set), and finally an interactive
prompt. Prompted answers are remembered for the rest of the run, so nothing
is asked twice.

Configuration is read from <user-config-dir>/hatch/config.yaml and then
~/.hatch.yaml; the latter wins on duplicate keys. --config replaces both.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("requires a project name, e.g. hatch mytool")
		}

		request, err := buildRequestFromFlags(cmd, args)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hatch version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var licensesCmd = &cobra.Command{
	Use:   "licenses",
	Short: "List the available licenses",
	Long:  "List the license identifiers accepted by defaults.license and --license.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ListLicenses()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  "Show the merged persisted configuration and the files it was loaded from.",
	RunE: func(cmd *cobra.Command, args []string) error {
		request := models.NewRequest()

		// Get config path from flag
		if configPath, err := cmd.Flags().GetString("config"); err == nil {
			request.ConfigPath = configPath
		}

		return app.ShowConfig(request)
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(licensesCmd)
	rootCmd.AddCommand(configCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (replaces the default search locations)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Main command flags
	rootCmd.Flags().StringP("author", "a", "", "author name (defaults.author)")
	rootCmd.Flags().StringP("email", "e", "", "author email (defaults.email)")
	rootCmd.Flags().StringP("license", "l", "", "license identifier (defaults.license, see `hatch licenses`)")
	rootCmd.Flags().StringP("module", "m", "", "module path for the generated go.mod (project.module)")
	rootCmd.Flags().StringP("description", "d", "", "one-line project description (project.description)")
	rootCmd.Flags().String("dir", "", "target directory (defaults to ./<name>)")
	rootCmd.Flags().Bool("create-repo", false, "create a GitHub repository after scaffolding (repo.create)")
	rootCmd.Flags().Bool("private", false, "make the created GitHub repository private (repo.private)")
	rootCmd.Flags().Bool("no-git", false, "skip git init and the initial commit")
}

// buildRequestFromFlags constructs a Request from command flags and
// arguments. Option flags only land in the override map when they were
// actually given: an untouched flag must not mask configured values.
func buildRequestFromFlags(cmd *cobra.Command, args []string) (*models.Request, error) {
	request := models.NewRequest()

	request.Name = strings.TrimSpace(args[0])
	if request.Name == "" {
		return nil, fmt.Errorf("project name must not be blank")
	}

	var err error

	if request.ConfigPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.Dir, err = cmd.Flags().GetString("dir"); err != nil {
		return nil, fmt.Errorf("invalid dir flag: %w", err)
	}

	stringFlags := []struct {
		flag string
		key  string
	}{
		{"author", resolve.KeyAuthor},
		{"email", resolve.KeyEmail},
		{"license", resolve.KeyLicense},
		{"module", resolve.KeyModule},
		{"description", resolve.KeyDescription},
	}
	for _, f := range stringFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		value, err := cmd.Flags().GetString(f.flag)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", f.flag, err)
		}
		request.Overrides[f.key] = value
	}

	boolFlags := []struct {
		flag string
		key  string
	}{
		{"create-repo", resolve.KeyRepoCreate},
		{"private", resolve.KeyRepoPrivate},
	}
	for _, f := range boolFlags {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		value, err := cmd.Flags().GetBool(f.flag)
		if err != nil {
			return nil, fmt.Errorf("invalid %s flag: %w", f.flag, err)
		}
		request.Overrides[f.key] = strconv.FormatBool(value)
	}

	noGit, err := cmd.Flags().GetBool("no-git")
	if err != nil {
		return nil, fmt.Errorf("invalid no-git flag: %w", err)
	}
	if noGit {
		request.Overrides[resolve.KeyGitInit] = "false"
	}

	return request, nil
}

// setupLogging installs the process-wide logger. Debug records only show
// up with --verbose; everything goes to stderr so prompts stay clean on
// stdout.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
