// Package cli assembles the bfrvc command tree.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BF667/bfrvc/internal/config"
	"github.com/BF667/bfrvc/internal/model"
	"github.com/BF667/bfrvc/internal/xfs"
)

// NewCommand creates the root Cobra command.
//
// Commands provided:
//   - fetch <url>
//   - install <archive.zip>
//   - watch
//
// Global flags: --config, --base, --quiet, --json
func NewCommand() *cobra.Command {
	var (
		configPath string
		basePath   string
		quiet      bool
		jsonOutput bool
	)

	// Manager is created in PersistentPreRunE once flags are parsed.
	var manager *model.Manager

	cmd := &cobra.Command{
		Use:   "bfrvc",
		Short: "Fetch and install voice model archives",
		Long:  "Download voice model archives from direct links, Google Drive, or repository pages, unpack them, and lay out their weight and index files.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := loadConfig(configPath, basePath)
			if err != nil {
				return err
			}

			manager, err = model.NewManager(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize manager: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringVar(&basePath, "base", "", "Base directory for models and staging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	cmd.AddCommand(fetchCmd(&manager, &quiet, &jsonOutput))
	cmd.AddCommand(installCmd(&manager, &jsonOutput))
	cmd.AddCommand(watchCmd(&manager))

	return cmd
}

func fetchCmd(manager **model.Manager, quiet, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download and install a model archive from a URL",
		Long:  "Download the archive behind the URL, unpack it under the models directory, and print the installed artifact paths.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			container := newProgressContainer(ctx, *quiet)
			bar := container.NewBar(barName(args[0]))

			artifacts, err := (*manager).Download(ctx, args[0], bar)
			bar.finish()
			container.Wait()
			if err != nil {
				return err
			}

			return outputArtifacts(cmd.OutOrStdout(), artifacts, *jsonOutput)
		},
	}
}

func installCmd(manager **model.Manager, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "install <archive.zip>",
		Short: "Install a local model archive",
		Long:  "Unpack a zip archive already on disk under the models directory and print the installed artifact paths.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			artifacts, err := (*manager).Install(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return outputArtifacts(cmd.OutOrStdout(), artifacts, *jsonOutput)
		},
	}
}

func watchCmd(manager **model.Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Install archives dropped into the staging directory",
		Long:  "Watch the staging directory and install every zip archive dropped into it. Runs until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return model.NewWatcher(*manager).Run(cmd.Context())
		},
	}
}

// loadConfig resolves the effective configuration: explicit file, then
// the default config file when present, then built-in defaults.
// Environment variables apply on top, and --base wins over everything.
func loadConfig(file, base string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	switch {
	case file != "":
		cfg, err = config.Load(file)
	default:
		defaultPath := filepath.Join(config.DefaultConfigPath(), "config.yaml")
		if _, statErr := os.Stat(defaultPath); statErr == nil {
			cfg, err = config.Load(defaultPath)
		} else {
			cfg = config.Default()
		}
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()

	if base != "" {
		cfg.BasePath = xfs.ExpandTilde(base)
	}

	return cfg, nil
}

func barName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "archive"
	}

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "archive"
	}
	return name
}

func outputArtifacts(w io.Writer, artifacts *model.Artifacts, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(artifacts)
	}

	if artifacts.Empty() {
		fmt.Fprintln(w, "No model artifacts found in archive")
		return nil
	}

	for _, p := range artifacts.Weights {
		fmt.Fprintf(w, "weight  %s\n", p)
	}
	for _, p := range artifacts.Indexes {
		fmt.Fprintf(w, "index   %s\n", p)
	}
	return nil
}
