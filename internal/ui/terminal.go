package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

// nombre de lignes affichées dans l'aperçu du presse-papier
const previewLines = 5

type terminalUI struct {
	reader   *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	colorize bool
}

// NewTerminalIO construit l'UI terminal sur les flux donnés (os.Stdin/Stdout/Stderr en usage normal).
// La couleur n'est activée que si out est un vrai terminal.
func NewTerminalIO(in io.Reader, out, errOut io.Writer) Interface {
	return &terminalUI{
		reader:   bufio.NewReader(in),
		out:      out,
		errOut:   errOut,
		colorize: shouldColorize(out),
	}
}

func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (t *terminalUI) paint(color, s string) string {
	if !t.colorize {
		return s
	}
	return color + s + ansiReset
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Fprintln(t.out, "\n\nAppuyez sur Ctrl+C pour quitter.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-sigCh:
		return nil
	}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintSuccess(ctx context.Context, s string) {
	fmt.Fprintln(t.out, t.paint(ansiGreen, "✅ "+s))
}

func (t *terminalUI) PrintWarning(ctx context.Context, s string) {
	fmt.Fprintln(t.out, t.paint(ansiYellow, "⚠️  "+s))
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, t.paint(ansiRed, "❌ "+s))
}

func (t *terminalUI) PrintTable(ctx context.Context, tbl Table) {
	if r := RenderTable(tbl); r != "" {
		fmt.Fprintln(t.out, r)
	}
}

// ConfirmClipboard affiche les premières lignes de content puis lit la réponse [o/n].
// Une entrée fermée (EOF) sans réponse vaut refus.
func (t *terminalUI) ConfirmClipboard(ctx context.Context, content string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	lines := strings.Split(content, "\n")
	shown := lines[:min(len(lines), previewLines)]
	fmt.Fprintln(t.out, "Aperçu du presse-papier :")
	fmt.Fprintln(t.out, "────────────────────────")
	fmt.Fprintln(t.out, strings.Join(shown, "\n"))
	if len(lines) > previewLines {
		fmt.Fprintln(t.out, "...")
	}
	fmt.Fprintln(t.out, "────────────────────────")
	fmt.Fprint(t.out, "Convertir ce texte ? [o/n] : ")

	resp, err := t.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("lecture stdin: %w", err)
	}
	switch strings.TrimSpace(strings.ToLower(resp)) {
	case "o", "oui", "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
