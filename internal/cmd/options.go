package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrison/rfopener/internal/config"
	"github.com/harrison/rfopener/internal/fileutil"
	"github.com/harrison/rfopener/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// loadConfig reads the config file and applies the flags that were set on
// the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	cfg.MergeWithFlags(config.FlagOverrides{
		Root:       changedString(flags, "root"),
		Depth:      changedInt(flags, "depth"),
		Exclude:    changedString(flags, "exclude"),
		Extensions: changedString(flags, "extensions"),
		NoCap:      changedBool(flags, "nocap"),
		Playlist:   changedBool(flags, "playlist"),
		LogLevel:   changedString(flags, "log-level"),
		NoHistory:  changedBool(flags, "no-history"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetString(name)
	return &v
}

func changedInt(flags *pflag.FlagSet, name string) *int {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetInt(name)
	return &v
}

func changedBool(flags *pflag.FlagSet, name string) *bool {
	if flags.Lookup(name) == nil || !flags.Changed(name) {
		return nil
	}
	v, _ := flags.GetBool(name)
	return &v
}

// newLogger builds the console logger and, when log_dir is set, a run log
// file next to it. The returned close function is never nil.
func newLogger(cfg *config.Config, w io.Writer) (logger.Logger, func() error, error) {
	console := logger.NewConsoleLogger(w, cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() error { return nil }, nil
	}

	file, err := logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	console.LogDebug(fmt.Sprintf("Run log: %s", file.RunFile()))
	return logger.NewMultiLogger(console, file), file.Close, nil
}

// scan resolves the configured root, filter and limits and walks the tree.
// skipFiles are canonical paths that are never collected, in addition to the
// running executable.
func scan(ctx context.Context, cfg *config.Config, log logger.Logger, skipFiles ...string) (*fileutil.ScanResult, error) {
	root, err := fileutil.ResolveRoot(cfg.Root)
	if err != nil {
		return nil, err
	}

	checkCaps := cfg.CheckCaps()
	depth, clamped := fileutil.AdjustDepth(cfg.Depth, checkCaps)
	if clamped {
		log.LogDepthClamped(cfg.Depth, depth)
	}

	excluded, err := fileutil.CanonicalizeDirs(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	filter := fileutil.NewFilter(depth, excluded, fileutil.NormalizeExtensions(cfg.Extensions))

	log.LogScanStart(root, depth, checkCaps)
	result, err := fileutil.Scan(ctx, root, filter, fileutil.ScanOptions{
		MaxPaths:     fileutil.MaxPaths,
		CheckCaps:    checkCaps,
		SkipFiles:    append(selfPaths(), skipFiles...),
		OnCapReached: log.LogCapReached,
	})
	if err != nil {
		return nil, err
	}

	log.LogScanSummary(result.FileCount, result.DirCount)
	headers, strs := result.MemoryUsage()
	log.LogMemoryUsage(headers, strs)
	return result, nil
}

// selfPaths returns the running executable so it is never collected.
func selfPaths() []string {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return []string{exe}
}
