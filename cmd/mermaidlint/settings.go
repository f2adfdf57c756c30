package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"mermaidlint/internal/config"
	"mermaidlint/internal/prof"
	"mermaidlint/internal/project"
	"mermaidlint/internal/trace"
)

// settings are the persistent flags resolved against .mermaidlint.toml.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	manifest       *project.Manifest
	config         *config.Config
	tracer         trace.Tracer
	logger         *slog.Logger
	cleanup        func()
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	pf := cmd.Root().PersistentFlags()

	colorMode, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := pf.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := pf.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	logLevel, err := pf.GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cpuProfile, err := pf.GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := pf.GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}

	s := &settings{quiet: quiet, timings: timings, maxDiagnostics: maxDiagnostics, cleanup: func() {}}

	s.color, err = resolveColor(colorMode, cmd.OutOrStdout())
	if err != nil {
		return nil, newExitError(ExitUsage, err)
	}
	color.NoColor = !s.color

	level, err := parseLogLevel(logLevel)
	if err != nil {
		return nil, newExitError(ExitUsage, err)
	}
	stderr := cmd.ErrOrStderr()
	s.logger = newLogger(stderr, level, s.color && writerIsTerminal(stderr))

	manifest, found, err := project.LoadManifest(".")
	if err != nil {
		return nil, newExitError(ExitUsage, err)
	}
	cfg := config.Config{}
	if found {
		s.manifest = manifest
		s.logger.Debug("project file loaded", "path", manifest.Path)
		for _, key := range manifest.Unknown {
			s.logger.Warn("unknown key in project file", "path", manifest.Path, "key", key)
		}
		if !pf.Changed("max-diagnostics") && manifest.Config.Lint.MaxDiagnostics > 0 {
			s.maxDiagnostics = manifest.Config.Lint.MaxDiagnostics
		}
		cfg = manifest.Config.Config
	}
	if configPath != "" {
		fileCfg, err := readConfigFile(configPath)
		if err != nil {
			return nil, newExitError(ExitUsage, err)
		}
		cfg = cfg.Merge(fileCfg)
	}
	s.config = &cfg

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, newExitError(ExitUsage, err)
	}
	s.tracer = tracer

	session, err := prof.Start(cpuProfile, memProfile)
	if err != nil {
		cleanup()
		return nil, newExitError(ExitUsage, err)
	}
	s.cleanup = func() {
		if err := session.Stop(); err != nil {
			s.logger.Error("profiling failed", "error", err)
		}
		cleanup()
	}
	return s, nil
}

func resolveColor(mode string, out any) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		return writerIsTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func writerIsTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// readConfigFile принимает YAML; JSON подходит как его подмножество.
func readConfigFile(path string) (config.Config, error) {
	// #nosec G304 -- path is provided by the user
	raw, err := os.ReadFile(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return config.Config{}, fmt.Errorf("%s: invalid config: %w", path, err)
	}
	if doc.Kind == 0 {
		return config.Config{}, nil // пустой файл
	}
	cfg, errs := config.Decode(&doc)
	if len(errs) > 0 {
		var ve *config.ValueError
		if errors.As(errs[0], &ve) && ve.Node != nil {
			return config.Config{}, fmt.Errorf("%s:%d:%d: %w", path, ve.Node.Line, ve.Node.Column, errors.Join(errs...))
		}
		return config.Config{}, fmt.Errorf("%s: %w", path, errors.Join(errs...))
	}
	return cfg, nil
}
