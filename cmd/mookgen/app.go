package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/mookgen/internal/config"
	"github.com/cory-johannsen/mookgen/internal/game/dice"
	"github.com/cory-johannsen/mookgen/internal/game/generator"
	"github.com/cory-johannsen/mookgen/internal/game/npc"
	"github.com/cory-johannsen/mookgen/internal/observability"
	"github.com/cory-johannsen/mookgen/internal/storage/postgres"
)

// app carries the state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	configPath     string
	templatesDir   string
	generationFile string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mookgen",
		Short: "Generate GURPS mook statblocks",
		Long: `mookgen rolls randomized non-player characters from mook templates: attributes,
weapons with damage, skills, spells, traits and pocket money.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to configuration file (defaults and MOOK_ environment variables when empty)")
	root.PersistentFlags().StringVar(&a.templatesDir, "templates-dir", "", "directory of template YAML files (overrides generator.templates_dir)")
	root.PersistentFlags().StringVar(&a.generationFile, "generation", "", "generation config YAML (overrides generator.generation_file)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newTemplatesCmd(a))
	root.AddCommand(newHistoryCmd(a))
	root.AddCommand(newRollCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.templatesDir != "" {
		cfg.Generator.TemplatesDir = a.templatesDir
	}
	if a.generationFile != "" {
		cfg.Generator.GenerationFile = a.generationFile
	}
	a.cfg = cfg

	logger, err := observability.NewLoggerTo(cfg.Logging, zapcore.AddSync(cmd.ErrOrStderr()))
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) library() (*npc.Library, error) {
	lib, err := npc.NewLibrary(npc.NewDirSource(a.cfg.Generator.TemplatesDir))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("templates loaded",
		zap.String("dir", a.cfg.Generator.TemplatesDir),
		zap.Int("count", lib.Len()),
	)
	return lib, nil
}

func (a *app) generationConfig() (generator.GenerationConfig, error) {
	if a.cfg.Generator.GenerationFile == "" {
		return generator.DefaultGenerationConfig(), nil
	}
	return generator.LoadGenerationConfig(a.cfg.Generator.GenerationFile)
}

// source returns a seeded source when seed is non-zero, else a crypto source.
func (a *app) source(seed uint64) dice.Source {
	if seed == 0 {
		return dice.NewCryptoSource()
	}
	a.logger.Info("using seeded dice", zap.Uint64("seed", seed))
	return dice.NewSeededSource(seed)
}

// repository connects to the history database. The returned func closes the pool.
func (a *app) repository(ctx context.Context) (*postgres.StatblockRepository, func(), error) {
	if !a.cfg.Database.Enabled {
		return nil, nil, errors.New("statblock history requires database.enabled: true")
	}
	pool, err := postgres.NewPool(ctx, a.cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	version, err := pool.SchemaVersion(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("checking history schema: %w", err)
	}
	a.logger.Debug("history database ready",
		zap.String("host", a.cfg.Database.Host),
		zap.Uint("schema_version", version),
	)
	return pool.Statblocks(), pool.Close, nil
}
