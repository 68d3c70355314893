package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yourorg/kontentgen/internal/config"
	"github.com/yourorg/kontentgen/internal/generator"
	"github.com/yourorg/kontentgen/internal/management"
	"github.com/yourorg/kontentgen/internal/store"
	"github.com/yourorg/kontentgen/pkg/types"
)

const defaultConfigContent = `project:
  id: ""
  api_key: ""
  base_url: "https://manage.kontent.ai/v2"

output:
  dir: "./models"
  types_folder: "content-types"
  snippets_folder: "content-type-snippets"
  taxonomies_folder: "taxonomies"
  project_folder: "project"
  module_resolution: "node"
  add_timestamp: false
  barrel: true

# camelCase, pascalCase or snakeCase; empty keeps the default
naming:
  content_type: ""
  content_type_file: ""
  snippet: ""
  snippet_file: ""
  taxonomy: ""
  taxonomy_file: ""
  element: ""

format:
  indent_width: 4
  use_tabs: false
  max_blank_lines: 1

export:
  languages: true
  collections: true
  workflows: true
  roles: true
  asset_folders: true
  webhooks: true

log:
  level: "info"
`

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	cfgPath string
	verbose bool
	debug   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "kontentgen",
		Short:         "Generate strongly typed models from a content management schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       generator.Version,
	}

	root.PersistentFlags().StringVar(&opts.cfgPath, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug output")

	root.AddCommand(newInitCmd())
	root.AddCommand(newGenerateCmd(opts))
	root.AddCommand(newFetchCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newDeleteCmd(opts))

	return root
}

func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg.Log.Level, o.debug), nil
}

func newLogger(level string, debug bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
		return nil, err
	}
	return store.NewSQLiteStore(cfg.Store.Path)
}

func newClient(cfg *config.Config, logger *slog.Logger) *management.Client {
	return &management.Client{
		BaseURL:   cfg.Project.BaseURL,
		ProjectID: cfg.Project.ID,
		APIKey:    cfg.Project.APIKey,
		Logger:    logger,
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize ~/.kontentgen directory and default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			baseDir, err := config.DefaultDir()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(baseDir, 0o755); err != nil {
				return err
			}

			cfgFile := filepath.Join(baseDir, "config.yaml")
			if _, err := os.Stat(cfgFile); errors.Is(err, os.ErrNotExist) {
				if err := os.WriteFile(cfgFile, []byte(defaultConfigContent), 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "created", cfgFile)
			} else if err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "exists", cfgFile)
			} else {
				return err
			}

			cfg := config.Default()
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "database ready", cfg.Store.Path)
			fmt.Fprintln(cmd.OutOrStdout(), "please update project.id and project.api_key in", cfgFile)
			return nil
		},
	}
}

// generateFlags override config values when set on the command line.
type generateFlags struct {
	projectID        string
	apiKey           string
	output           string
	moduleResolution string
	addTimestamp     bool
	barrel           bool
	snapshot         string
	saveSnapshot     bool
	languages        bool
	collections      bool
	workflows        bool
	roles            bool
	assetFolders     bool
	webhooks         bool
}

func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("project-id") {
		cfg.Project.ID = f.projectID
	}
	if changed("api-key") {
		cfg.Project.APIKey = f.apiKey
	}
	if changed("output") {
		cfg.Output.Dir = f.output
	}
	if changed("module-resolution") {
		cfg.Output.ModuleResolution = f.moduleResolution
	}
	if changed("add-timestamp") {
		cfg.Output.AddTimestamp = f.addTimestamp
	}
	if changed("barrel") {
		cfg.Output.Barrel = f.barrel
	}
	facets := []struct {
		flag string
		src  bool
		dst  *bool
	}{
		{"languages", f.languages, &cfg.Export.Languages},
		{"collections", f.collections, &cfg.Export.Collections},
		{"workflows", f.workflows, &cfg.Export.Workflows},
		{"roles", f.roles, &cfg.Export.Roles},
		{"asset-folders", f.assetFolders, &cfg.Export.AssetFolders},
		{"webhooks", f.webhooks, &cfg.Export.Webhooks},
	}
	for _, facet := range facets {
		if changed(facet.flag) {
			*facet.dst = facet.src
		}
	}
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.projectID, "project-id", "", "project id")
	cmd.Flags().StringVar(&f.apiKey, "api-key", "", "management API key")
	cmd.Flags().StringVar(&f.output, "output", "", "output directory")
	cmd.Flags().StringVar(&f.moduleResolution, "module-resolution", "", "import path style: node or browser")
	cmd.Flags().BoolVar(&f.addTimestamp, "add-timestamp", false, "stamp generated files with the generation time")
	cmd.Flags().BoolVar(&f.barrel, "barrel", true, "write index.ts barrel files")
	cmd.Flags().BoolVar(&f.languages, "languages", true, "generate project languages")
	cmd.Flags().BoolVar(&f.collections, "collections", true, "generate project collections")
	cmd.Flags().BoolVar(&f.workflows, "workflows", true, "generate project workflows")
	cmd.Flags().BoolVar(&f.roles, "roles", true, "generate project roles")
	cmd.Flags().BoolVar(&f.assetFolders, "asset-folders", true, "generate project asset folders")
	cmd.Flags().BoolVar(&f.webhooks, "webhooks", true, "generate project webhooks")
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{Use: "generate", Short: "Generate models from the project schema", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := root.load()
		if err != nil {
			return err
		}
		flags.apply(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		opts, err := cfg.GeneratorOptions()
		if err != nil {
			return err
		}
		opts.Logger = logger

		snap, err := loadSnapshot(cmd.Context(), cfg, logger, flags)
		if err != nil {
			return err
		}

		rep := &generator.ConsoleReporter{Out: cmd.OutOrStdout(), Verbose: root.verbose}
		res, err := generator.Generate(snap, opts, rep)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "generated %d files in %s\n", len(res.Filenames()), cfg.Output.Dir)
		return nil
	}}
	flags.register(cmd)
	cmd.Flags().StringVar(&flags.snapshot, "snapshot", "", "generate from a stored snapshot instead of the API")
	cmd.Flags().BoolVar(&flags.saveSnapshot, "save-snapshot", false, "store the fetched snapshot")
	return cmd
}

// loadSnapshot reads a stored snapshot when one is named, otherwise fetches
// the schema and optionally stores it.
func loadSnapshot(ctx context.Context, cfg *config.Config, logger *slog.Logger, flags *generateFlags) (*types.Snapshot, error) {
	if flags.snapshot != "" {
		s, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.GetSnapshot(flags.snapshot)
	}

	if err := cfg.ValidateFetch(); err != nil {
		return nil, err
	}
	snap, err := newClient(cfg, logger).FetchSnapshot(ctx, cfg.Export)
	if err != nil {
		return nil, err
	}
	if flags.saveSnapshot {
		s, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		info, err := s.SaveSnapshot(snap)
		if err != nil {
			return nil, err
		}
		logger.Info("snapshot saved", "id", info.ID)
	}
	return snap, nil
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{Use: "fetch", Short: "Fetch the project schema and store it as a snapshot", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := root.load()
		if err != nil {
			return err
		}
		flags.apply(cmd, cfg)
		if err := cfg.ValidateFetch(); err != nil {
			return err
		}
		snap, err := newClient(cfg, logger).FetchSnapshot(cmd.Context(), cfg.Export)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		info, err := s.SaveSnapshot(snap)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.ID)
		return nil
	}}
	cmd.Flags().StringVar(&flags.projectID, "project-id", "", "project id")
	cmd.Flags().StringVar(&flags.apiKey, "api-key", "", "management API key")
	return cmd
}

func newListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{Use: "list", Short: "List stored snapshots", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := root.load()
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		list, err := s.ListSnapshots()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPROJECT\tTYPES\tSNIPPETS\tTAXONOMIES\tCREATED")
		for _, info := range list {
			name := info.ProjectName
			if name == "" {
				name = info.ProjectID
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n", info.ID, name, info.TypeCount, info.SnippetCount, info.TaxonomyCount,
				info.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	}}
}

func newShowCmd(root *rootOptions) *cobra.Command {
	var id string
	cmd := &cobra.Command{Use: "show", Short: "Show snapshot details", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := root.load()
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		snap, err := s.GetSnapshot(id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "project: %s\n", snap.ProjectID)
		if snap.Project != nil {
			fmt.Fprintf(out, "name: %s\n", snap.Project.Name)
		}
		fmt.Fprintf(out, "fetched: %s\n", snap.FetchedAt.Format("2006-01-02 15:04:05"))
		printCodenames(out, "content types", len(snap.Types), func(i int) string { return snap.Types[i].Codename })
		printCodenames(out, "snippets", len(snap.Snippets), func(i int) string { return snap.Snippets[i].Codename })
		printCodenames(out, "taxonomies", len(snap.Taxonomies), func(i int) string { return snap.Taxonomies[i].Codename })
		return nil
	}}
	cmd.Flags().StringVar(&id, "snapshot", "", "snapshot id")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func printCodenames(out io.Writer, label string, n int, codename func(int) string) {
	names := make([]string, n)
	for i := range names {
		names[i] = codename(i)
	}
	sort.Strings(names)
	fmt.Fprintf(out, "%s (%d):\n", label, n)
	for _, name := range names {
		fmt.Fprintf(out, "  - %s\n", name)
	}
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	var id string
	cmd := &cobra.Command{Use: "delete", Short: "Delete snapshot", RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := root.load()
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.DeleteSnapshot(id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
		return nil
	}}
	cmd.Flags().StringVar(&id, "snapshot", "", "snapshot id")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
