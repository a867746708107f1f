package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/patrickprogramme/ttmlyrics/internal/clipboard"
	"github.com/patrickprogramme/ttmlyrics/internal/fsutil"
	"github.com/patrickprogramme/ttmlyrics/internal/lyrics"
	"github.com/patrickprogramme/ttmlyrics/internal/preview"
	"github.com/patrickprogramme/ttmlyrics/internal/ui"
	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

// largeur max de la colonne texte du résumé (en runes)
const summaryTextWidth = 48

type source struct {
	data       []byte
	origin     string // chemin ou URL, "" pour le presse-papier
	kind       model.SourceKind
	configured bool // input_file de la config (aucune entrée explicite)
}

func (s source) label() string {
	if s.origin == "" {
		return s.kind.String()
	}
	return s.origin
}

// readSource : priorité --url > chemin positionnel > --clipboard > input_file configuré.
func (a *App) readSource(ctx context.Context) (source, error) {
	switch {
	case a.flags.URL != "":
		timeout := time.Duration(a.cfg.Fetch.TimeoutSeconds) * time.Second
		data, err := a.fetcher(ctx, a.flags.URL, timeout, a.cfg.Fetch.MaxBytes)
		if err != nil {
			return source{}, fmt.Errorf("%w: %v", ErrRead, err)
		}
		return source{data: data, origin: a.flags.URL, kind: model.SourceURL}, nil

	case a.flags.Input != "":
		data, err := readInputFile(a.flags.Input)
		if err != nil {
			return source{}, err
		}
		if !hasMarkupExtension(a.flags.Input) {
			a.logger.Warn("extension inattendue pour un fichier TTML", slog.String("path", a.flags.Input))
		}
		return source{data: data, origin: a.flags.Input, kind: model.SourceFile}, nil

	case a.flags.FromClipboard:
		return a.readClipboard(ctx)

	default:
		p := a.cfg.InputPath()
		data, err := readInputFile(p)
		if err != nil {
			return source{}, err
		}
		return source{data: data, origin: p, kind: model.SourceFile, configured: true}, nil
	}
}

func readInputFile(p string) ([]byte, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, p)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrRead, p, err)
	}
	return data, nil
}

// hasMarkupExtension : .ttml ou .xml
func hasMarkupExtension(p string) bool {
	f, err := model.ParseFormat(strings.ToLower(strings.TrimPrefix(filepath.Ext(p), ".")))
	return err == nil && f.IsMarkup()
}

// readClipboard lit le TTML du presse-papier; hors mode auto, l'utilisateur confirme.
func (a *App) readClipboard(ctx context.Context) (source, error) {
	text, err := a.clip.ReadAll()
	if err != nil {
		return source{}, fmt.Errorf("%w: presse-papier: %v", ErrRead, err)
	}
	text = clipboard.Normalize(text)
	if strings.TrimSpace(text) == "" {
		return source{}, fmt.Errorf("%w: le presse-papier est vide", ErrMissingInput)
	}
	if !clipboard.LooksLikeMarkup(text) {
		return source{}, fmt.Errorf("%w: le presse-papier ne contient pas de TTML", ErrRead)
	}
	if !a.cfg.AutoMode {
		ok, err := a.ui.ConfirmClipboard(ctx, text)
		if err != nil {
			return source{}, fmt.Errorf("confirmation presse-papier: %w", err)
		}
		if !ok {
			return source{}, ErrCancelled
		}
	}
	return source{data: []byte(text), kind: model.SourceClipboard}, nil
}

// outputPath : -o > output_file (entrée configurée ou presse-papier) >
// <output_dir ou dossier de l'entrée>/<titre>.json
func (a *App) outputPath(doc lyrics.Document, src source) (string, error) {
	if a.flags.Output != "" {
		return a.flags.Output, nil
	}
	if src.configured || src.kind == model.SourceClipboard {
		return a.cfg.OutputPath(), nil
	}

	name, err := doc.Filename(model.FormatJSON)
	if err != nil {
		return "", err
	}
	dir := a.cfg.ResolvedOutputDir()
	if dir == "" {
		if src.kind == model.SourceFile {
			dir = filepath.Dir(src.origin)
		} else {
			dir = a.cfg.BaseDir()
		}
	}
	return filepath.Join(dir, name), nil
}

// savePreview rend la fiche Markdown et l'écrit à côté du JSON.
func (a *App) savePreview(doc lyrics.Document, jsonPath string) (string, error) {
	if a.renderer == nil {
		return "", errors.New("aucun renderer configuré")
	}
	data, err := preview.NewData(doc)
	if err != nil {
		return "", err
	}
	content, err := a.renderer.Render(preview.TemplateName, data)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return fsutil.SaveTextAtomic(filepath.Dir(jsonPath), data.Filename, model.FormatMARKDOWN.Extension(), content, true)
}

func summaryTable(lines model.LyricData) ui.Table {
	rows := make([][]string, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			l.Time,
			strconv.Itoa(len(l.Text)),
			l.TotalDuration().String(),
			truncateRunes(strings.TrimSpace(l.Joined()), summaryTextWidth),
		})
	}
	return ui.Table{
		Headers: []string{"#", "Temps", "Phrases", "Durée (cs)", "Texte"},
		Rows:    rows,
		Aligns:  []ui.ColumnAlignment{ui.AlignRight, ui.AlignLeft, ui.AlignRight, ui.AlignRight, ui.AlignLeft},
	}
}

func truncateRunes(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
