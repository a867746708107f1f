package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/patrickprogramme/ttmlyrics/internal/app"
	"github.com/patrickprogramme/ttmlyrics/internal/assets"
	"github.com/patrickprogramme/ttmlyrics/internal/bootstrap"
	"github.com/patrickprogramme/ttmlyrics/internal/config"
	"github.com/patrickprogramme/ttmlyrics/internal/logging"
	"github.com/patrickprogramme/ttmlyrics/internal/preview"
	"github.com/patrickprogramme/ttmlyrics/internal/ui"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &app.CLIFlags{}

	rootCmd := &cobra.Command{
		Use:   "ttmlyrics [fichier.ttml]",
		Short: "Convertit des paroles TTML synchronisées en JSON pour l'éditeur de paroles",
		Long: "Sans argument, convertit le fichier input_file de la configuration vers output_file.\n" +
			"Avec un chemin, le JSON est écrit à côté de la source (ou dans output_dir).",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.Input = args[0]
			}
			return runConvert(cmd, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Fichier de configuration (défaut: ttmlyrics.yaml à côté du binaire)")

	f := rootCmd.Flags()
	f.StringVarP(&flags.Output, "output", "o", "", "Fichier JSON de sortie")
	f.StringVar(&flags.URL, "url", "", "Télécharger le TTML depuis une URL")
	f.BoolVar(&flags.FromClipboard, "clipboard", false, "Lire le TTML depuis le presse-papier")
	f.BoolVar(&flags.Auto, "auto", false, "Exécution automatique sans confirmation")
	f.BoolVar(&flags.Copy, "copy", false, "Copier le JSON dans le presse-papier")
	f.BoolVar(&flags.Preview, "preview", false, "Générer aussi une fiche Markdown")
	f.BoolVar(&flags.NoSummary, "no-summary", false, "Ne pas afficher le tableau récapitulatif")
	f.BoolVarP(&flags.Verbose, "verbose", "v", false, "Journalisation détaillée (debug)")
	rootCmd.MarkFlagsMutuallyExclusive("url", "clipboard")

	rootCmd.AddCommand(newDefaultsCommand(flags))

	return rootCmd
}

// executablePaths retourne le chemin du binaire et son dossier ("." si inconnu).
func executablePaths() (exePath, binDir string) {
	exe, err := os.Executable()
	if err != nil {
		return "", "."
	}
	return exe, filepath.Dir(exe)
}

func configPath(flagValue, binDir string) string {
	if flagValue != "" {
		return flagValue
	}
	return filepath.Join(binDir, config.DefaultFileName)
}

func runConvert(cmd *cobra.Command, flags *app.CLIFlags) error {
	exePath, binDir := executablePaths()
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load(configPath(flags.ConfigPath, binDir))
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	app.ApplyFlags(cfg, flags)

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger.Debug("démarrage", slog.String("exe", exePath), slog.String("config", cfg.FilePath()))

	warnings, err := cfg.Validate()
	if err != nil {
		return fmt.Errorf("configuration invalide: %w", err)
	}
	// les avertissements sur input_file ne concernent que l'entrée configurée
	level := slog.LevelDebug
	if flags.Input == "" && flags.URL == "" && !flags.FromClipboard {
		level = slog.LevelWarn
	}
	for _, w := range warnings {
		logger.Log(parent, level, w)
	}

	var renderer *preview.Renderer
	if cfg.SavePreview {
		tplDir := filepath.Join(binDir, assets.TemplatesDir)
		if err := bootstrap.EnsureTemplatesPresent(tplDir, assets.Embedded, assets.DefaultTemplatePaths); err != nil {
			logger.Warn("templates non copiés", slog.String("dir", tplDir), slog.Any("error", err))
		}
		renderer, err = preview.DefaultRenderer(exePath)
		if err != nil {
			return fmt.Errorf("impossible de construire le renderer: %w", err)
		}
		logger.Debug("templates chargés", slog.Any("names", renderer.TemplateNames()))
	}

	// root context qui s'annule sur SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	tui := ui.NewTerminalIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	err = app.New(cfg, tui, flags, renderer, logger).Run(ctx)
	if errors.Is(err, app.ErrCancelled) {
		tui.PrintInfo(ctx, "Conversion annulée, aucun fichier écrit.")
		return nil
	}
	return err
}
