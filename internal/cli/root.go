// Package cli implements the image-gradient-mcp command-line interface.
//
// # Commands
//
//   - serve: Run the MCP server over stdin/stdout (the default when no
//     command is given)
//   - compute: Run the gradient filter on one image file and write the
//     result as PNG
//
// # Logging
//
// All commands log to stderr through charmbracelet/log, stdout being the
// MCP channel. The level comes from the config file's [log] section or
// IMAGE_MCP_LOG_LEVEL; --verbose (-v) forces debug.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-gradient-mcp/internal/config"
)

const appName = "image-gradient-mcp"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version. The main
// package calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// configFromContext returns the config attached to ctx, or config.Default().
func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configKey).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

// NewRootCommand builds the command tree. The MCP server reads requests
// from in and writes responses to out; logs go to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:   appName,
		Short: "MCP server computing gradient magnitude images",
		Long: `image-gradient-mcp computes the gradient magnitude of images with central
differences scaled by pixel spacing. Without a command it serves the MCP
protocol on stdin/stdout so that MCP clients can call its tools.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := cfg.LogLevel()
			if err != nil {
				return err
			}
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(errOut, level))
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), in, out)
		},
	}

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\n", appName, version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")

	root.AddCommand(newServeCmd(in, out))
	root.AddCommand(newComputeCmd())

	return root
}

// Execute runs the CLI on the process's standard streams.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
}
