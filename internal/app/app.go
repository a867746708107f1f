package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickprogramme/ttmlyrics/internal/clipboard"
	"github.com/patrickprogramme/ttmlyrics/internal/config"
	"github.com/patrickprogramme/ttmlyrics/internal/fetch"
	"github.com/patrickprogramme/ttmlyrics/internal/fsutil"
	"github.com/patrickprogramme/ttmlyrics/internal/logging"
	"github.com/patrickprogramme/ttmlyrics/internal/lyrics"
	"github.com/patrickprogramme/ttmlyrics/internal/preview"
	"github.com/patrickprogramme/ttmlyrics/internal/ui"
)

const filePerm = 0o644

var (
	ErrMissingInput = errors.New("fichier d'entrée introuvable")
	ErrRead         = errors.New("lecture de l'entrée impossible")
	ErrWrite        = errors.New("écriture du fichier de sortie impossible")
	ErrCancelled    = errors.New("conversion annulée")
)

// CLIFlags contient les information venant des flags de l'app
type CLIFlags struct {
	ConfigPath    string
	Input         string // chemin positionnel, prioritaire sur input_file
	Output        string // -o
	URL           string
	FromClipboard bool
	Auto          bool
	Copy          bool
	Preview       bool
	NoSummary     bool
	Verbose       bool
}

// ClipboardIO : accès au presse-papier (remplacé par un faux dans les tests).
type ClipboardIO interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Fetcher télécharge une URL (fetch.FetchBytesWithTimeout par défaut).
type Fetcher func(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error)

// App orchestre les différentes dépendances (UI, presse-papier, FS...)
type App struct {
	cfg      *config.Config
	ui       ui.Interface
	flags    *CLIFlags
	renderer *preview.Renderer
	logger   *slog.Logger
	clip     ClipboardIO
	fetcher  Fetcher
}

// Result décrit ce qui a été produit par une conversion.
type Result struct {
	Document    lyrics.Document
	OutputPath  string
	PreviewPath string // "" si pas de fiche
}

// New construit l'application avec les dépendances par défaut.
// Pour les tests, on remplace clip/fetcher directement dans le package.
func New(cfg *config.Config, uiClient ui.Interface, flags *CLIFlags, renderer *preview.Renderer, logger *slog.Logger) *App {
	if flags == nil {
		flags = &CLIFlags{}
	}
	return &App{
		cfg:      cfg,
		ui:       uiClient,
		flags:    flags,
		renderer: renderer,
		logger:   logging.NewComponentLogger(logger, "app"),
		clip:     systemClipboard{},
		fetcher:  fetch.FetchBytesWithTimeout,
	}
}

// ApplyFlags reporte les flags booléens par-dessus la config chargée.
func ApplyFlags(cfg *config.Config, flags *CLIFlags) {
	if cfg == nil || flags == nil {
		return
	}
	if flags.Auto {
		cfg.AutoMode = true
	}
	if flags.Copy {
		cfg.CopyToClipboard = true
	}
	if flags.Preview {
		cfg.SavePreview = true
	}
	if flags.NoSummary {
		cfg.ShowSummary = false
	}
	if flags.Verbose {
		cfg.Log.Level = "debug"
	}
}

// Run exécute la conversion puis, si demandé, attend Ctrl+C avant de rendre la main.
func (a *App) Run(ctx context.Context) error {
	if _, err := a.Convert(ctx); err != nil {
		return err
	}
	if !a.cfg.PauseOnExit {
		return nil
	}
	if err := a.ui.WaitForExit(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Convert : lecture de la source, conversion, écriture atomique du JSON, puis extras
// (presse-papier, fiche Markdown, résumé). Si la lecture ou la conversion échoue,
// aucun fichier de sortie n'est créé.
func (a *App) Convert(ctx context.Context) (Result, error) {
	var res Result

	src, err := a.readSource(ctx)
	if err != nil {
		return res, err
	}
	a.logger.Debug("source lue",
		slog.String("source", src.kind.String()),
		slog.String("origin", src.origin),
		slog.Int("bytes", len(src.data)),
	)

	lines, err := lyrics.Convert(src.data)
	if err != nil {
		return res, fmt.Errorf("conversion de %s: %w", src.label(), err)
	}
	doc := lyrics.NewDocument(src.origin, src.kind, lines)
	res.Document = doc

	out, err := a.outputPath(doc, src)
	if err != nil {
		return res, err
	}

	// encodage complet avant toute écriture
	payload, err := doc.JSON(a.cfg.Indent)
	if err != nil {
		return res, fmt.Errorf("encodage JSON: %w", err)
	}
	if err := fsutil.WriteFileAtomic(out, payload, filePerm); err != nil {
		return res, fmt.Errorf("%w: %s: %v", ErrWrite, out, err)
	}
	res.OutputPath = out

	a.logger.Info("conversion terminée",
		slog.Int("lines", len(lines)),
		slog.Int("phrases", lines.PhraseCount()),
		slog.String("output", out),
	)
	if len(lines) == 0 {
		a.ui.PrintWarning(ctx, "Aucune ligne synchronisée trouvée, tableau vide écrit.")
	}
	a.ui.PrintSuccess(ctx, fmt.Sprintf("%d lignes converties -> %s", len(lines), out))

	if a.cfg.CopyToClipboard {
		if err := a.clip.WriteAll(string(payload)); err != nil {
			a.ui.PrintWarning(ctx, fmt.Sprintf("copie dans le presse-papier impossible: %v", err))
		} else {
			a.ui.PrintInfo(ctx, "JSON copié dans le presse-papier.")
		}
	}

	if a.cfg.SavePreview {
		p, err := a.savePreview(doc, out)
		if err != nil {
			a.ui.PrintWarning(ctx, fmt.Sprintf("fiche Markdown non générée: %v", err))
		} else {
			res.PreviewPath = p
			a.ui.PrintInfo(ctx, fmt.Sprintf("Fiche écrite: %s", p))
		}
	}

	if a.cfg.ShowSummary && len(lines) > 0 {
		a.ui.PrintInfo(ctx, lines.Pretty())
		a.ui.PrintTable(ctx, summaryTable(lines))
	}

	return res, nil
}
