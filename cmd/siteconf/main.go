package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/statickit/siteconf/internal/config"
	"github.com/statickit/siteconf/internal/daemon"
	"github.com/statickit/siteconf/internal/lint"
	"github.com/statickit/siteconf/internal/version"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"site.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Show version and exit"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Write an example configuration file"`

	Validate struct{} `cmd:"" help:"Load and validate the configuration"`

	Show struct {
		Format string `short:"f" help:"Output format" enum:"yaml,toml,json" default:"yaml"`
	} `cmd:"" help:"Print the effective configuration with defaults applied"`

	Convert struct {
		Output string `arg:"" help:"Destination file; format follows its extension"`
	} `cmd:"" help:"Convert the configuration to another format"`

	Diff struct {
		Other string `arg:"" help:"Configuration file to compare against"`
	} `cmd:"" help:"Show effective differences between two configuration files"`

	Lint struct {
		Content string `help:"Content directory override" type:"existingdir"`
	} `cmd:"" help:"Check the configuration against the content tree"`

	Daemon struct{} `cmd:"" help:"Serve the configuration and reload it on change"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("siteconf"),
		kong.Description("Configuration toolkit for static sites"),
		kong.Vars{"version": fmt.Sprintf("siteconf %s (%s)", version.Version, version.GitCommit)},
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	switch ctx.Command() {
	case "init":
		err = runInit()
	case "validate":
		err = runValidate()
	case "show":
		err = runShow()
	case "convert <output>":
		err = runConvert()
	case "diff <other>":
		err = runDiff()
	case "lint":
		err = runLint()
	case "daemon":
		err = runDaemon()
	}

	ctx.FatalIfErrorf(err)
}

func runInit() error {
	if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", CLI.Config)
	return nil
}

func runValidate() error {
	_, warnings, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}
	fmt.Printf("%s: OK\n", CLI.Config)
	return nil
}

func runShow() error {
	cfg, _, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	format := config.NormalizeFormat(CLI.Show.Format)
	data, err := config.Encode(cfg, format)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(data)
	return err
}

func runConvert() error {
	cfg, _, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	data, err := config.Encode(cfg, config.FormatForPath(CLI.Convert.Output))
	if err != nil {
		return err
	}

	if err := os.WriteFile(CLI.Convert.Output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", CLI.Convert.Output, err)
	}

	fmt.Printf("Wrote %s\n", CLI.Convert.Output)
	return nil
}

// runDiff compares the effective configurations, so two files that differ
// only in omitted defaults or formatting diff as equal.
func runDiff() error {
	left, _, err := config.Load(CLI.Config)
	if err != nil {
		return fmt.Errorf("load %s: %w", CLI.Config, err)
	}
	right, _, err := config.Load(CLI.Diff.Other)
	if err != nil {
		return fmt.Errorf("load %s: %w", CLI.Diff.Other, err)
	}

	diff := cmp.Diff(left, right)
	if diff == "" {
		fmt.Println("Configurations are equivalent")
		return nil
	}

	fmt.Printf("--- %s\n+++ %s\n%s", CLI.Config, CLI.Diff.Other, diff)
	return fmt.Errorf("configurations differ")
}

func runLint() error {
	cfg, warnings, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Printf("warning: %s\n", w)
	}

	baseDir := filepath.Dir(CLI.Config)
	linter := lint.NewLinter(cfg, baseDir)
	if CLI.Lint.Content != "" {
		linter.SetContentDir(CLI.Lint.Content)
	}
	result := linter.Run()

	for _, issue := range result.Issues {
		fmt.Printf("%s [%s] %s: %s\n", issue.Severity, issue.Rule, issue.Subject, issue.Message)
	}

	if result.HasErrors() {
		return fmt.Errorf("%d error(s), %d warning(s)", result.ErrorCount(), result.WarningCount())
	}

	fmt.Printf("OK: %d warning(s)\n", result.WarningCount())
	return nil
}

func runDaemon() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	d, err := daemon.New(CLI.Config)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- d.Start(ctx)
	}()

	slog.Info("Daemon started, waiting for shutdown signal...")

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("daemon error: %w", err)
		}
		<-ctx.Done()
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping daemon...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := d.Stop(stopCtx); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}

	slog.Info("Daemon stopped successfully")
	return nil
}
