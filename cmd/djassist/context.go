package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/handiism/djassist/internal/config"
	"github.com/handiism/djassist/internal/logging"
	"github.com/handiism/djassist/internal/pipeline"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	root      string
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

// configPath returns --config, or djassist.toml in the library root.
func (c *commandContext) configPath() string {
	if p := strings.TrimSpace(c.flags.config); p != "" {
		return p
	}
	root := strings.TrimSpace(c.flags.root)
	if root == "" {
		root = "."
	}
	return filepath.Join(root, config.FileName)
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		settings, err := config.Load(c.configPath())
		if err != nil {
			c.settingsErr = err
			return
		}
		c.settings = settings.WithRoot(strings.TrimSpace(c.flags.root))
	})
	return c.settings, c.settingsErr
}

// newLogger builds the logger of one invocation, tagged with a fresh run id.
func (c *commandContext) newLogger(cmd *cobra.Command, settings *config.Settings) (*slog.Logger, error) {
	logger, err := logging.NewFromSettings(settings, c.flags.logLevel, c.flags.logFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return logger.With(logging.FieldRunID, uuid.NewString()), nil
}

// newManager builds a pipeline manager whose progress events go to the
// invocation logger.
func (c *commandContext) newManager(cmd *cobra.Command) (*pipeline.Manager, *slog.Logger, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.newLogger(cmd, settings)
	if err != nil {
		return nil, nil, err
	}

	manager := pipeline.NewManager(settings, func(e pipeline.ProgressEvent) {
		logProgress(logger, e)
	})
	return manager, logger, nil
}

func logProgress(logger *slog.Logger, e pipeline.ProgressEvent) {
	level := slog.LevelInfo
	switch e.Level {
	case pipeline.LevelVerbose:
		level = slog.LevelDebug
	case pipeline.LevelWarning:
		level = slog.LevelWarn
	case pipeline.LevelError:
		level = slog.LevelError
	}

	attrs := []any{}
	if e.Stage != "" {
		attrs = append(attrs, "stage", e.Stage)
	}
	if e.Level == pipeline.LevelSuccess {
		attrs = append(attrs, "result", "success")
	}
	logger.Log(context.Background(), level, e.Message, attrs...)
}
