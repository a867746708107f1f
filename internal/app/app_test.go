package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/patrickprogramme/ttmlyrics/internal/config"
	"github.com/patrickprogramme/ttmlyrics/internal/logging"
	"github.com/patrickprogramme/ttmlyrics/internal/preview"
	"github.com/patrickprogramme/ttmlyrics/internal/ttml"
	"github.com/patrickprogramme/ttmlyrics/internal/ui"
	"github.com/patrickprogramme/ttmlyrics/pkg/model"
)

const sampleTTML = `<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttm="http://www.w3.org/ns/ttml#metadata">
<body><div>
<p begin="9.408" end="11.000" ttm:agent="v1"><span begin="9.408" end="10.408">Hello </span><span begin="10.408" end="11.000">world</span></p>
<p begin="1:00.628" end="1:02.000"><span begin="1:00.628" end="1:02.000">Again</span></p>
</div></body></tt>`

type fakeUI struct {
	infos    []string
	warnings []string
	tables   []ui.Table
	confirm  bool
	asked    int
	waited   bool
}

func (f *fakeUI) WaitForExit(ctx context.Context) error         { f.waited = true; return nil }
func (f *fakeUI) PrintInfo(ctx context.Context, s string)       { f.infos = append(f.infos, s) }
func (f *fakeUI) PrintSuccess(ctx context.Context, s string)    { f.infos = append(f.infos, s) }
func (f *fakeUI) PrintWarning(ctx context.Context, s string)    { f.warnings = append(f.warnings, s) }
func (f *fakeUI) PrintError(ctx context.Context, s string)      { f.warnings = append(f.warnings, s) }
func (f *fakeUI) PrintTable(ctx context.Context, t ui.Table)    { f.tables = append(f.tables, t) }
func (f *fakeUI) ConfirmClipboard(ctx context.Context, content string) (bool, error) {
	f.asked++
	return f.confirm, nil
}

type fakeClipboard struct {
	content string
	written string
	err     error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.content, c.err }
func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.written = text
	return nil
}

// newTestApp charge une config dans un dossier temporaire (BaseDir = ce dossier).
func newTestApp(t *testing.T, flags *CLIFlags) (*App, *fakeUI, *fakeClipboard, string) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := config.Load(filepath.Join(dir, config.DefaultFileName))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.ShowSummary = false
	fui := &fakeUI{confirm: true}
	clip := &fakeClipboard{}
	a := New(cfg, fui, flags, nil, logging.NewNop())
	a.clip = clip
	a.fetcher = func(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
		return nil, errors.New("network disabled in tests")
	}
	return a, fui, clip, dir
}

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func decodeLines(t *testing.T, p string) model.LyricData {
	t.Helper()
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var out model.LyricData
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, raw)
	}
	return out
}

func TestConvert_ConfiguredInputToConfiguredOutput(t *testing.T) {
	a, fui, _, dir := newTestApp(t, nil)
	writeFile(t, filepath.Join(dir, "input.xml"), sampleTTML)

	res, err := a.Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := filepath.Join(dir, "output.json")
	if res.OutputPath != want {
		t.Fatalf("OutputPath = %q, want %q", res.OutputPath, want)
	}
	lines := decodeLines(t, want)
	if len(lines) != 2 || lines[0].Time != "00:09.41" || lines[1].Time != "01:00.63" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
	if lines[0].Text[0].Phrase != "Hello " || lines[0].Text[0].Duration != 100 {
		t.Errorf("first phrase = %#v", lines[0].Text[0])
	}
	raw, _ := os.ReadFile(want)
	if !strings.Contains(string(raw), `"duration": 100.0`) {
		t.Errorf("durations must keep one decimal:\n%s", raw)
	}
	if len(fui.infos) == 0 {
		t.Error("expected a success message")
	}
}

func TestConvert_MissingInputWritesNothing(t *testing.T) {
	a, _, _, dir := newTestApp(t, nil)

	_, err := a.Convert(context.Background())
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if _, serr := os.Stat(filepath.Join(dir, "output.json")); !os.IsNotExist(serr) {
		t.Fatalf("output must not exist, stat err = %v", serr)
	}
}

func TestConvert_MalformedInputWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(error) bool
	}{
		{
			name:    "markup",
			content: `<tt><p begin="1" end="2"><span>`,
			check: func(err error) bool {
				var pe *ttml.ParseError
				return errors.As(err, &pe)
			},
		},
		{
			name:    "timestamp",
			content: `<tt><p begin="x" end="2"><span begin="1" end="2">a</span></p></tt>`,
			check:   func(err error) bool { return err != nil && !errors.Is(err, ErrWrite) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _, dir := newTestApp(t, nil)
			writeFile(t, filepath.Join(dir, "input.xml"), tt.content)
			out := filepath.Join(dir, "output.json")
			writeFile(t, out, "previous")

			_, err := a.Convert(context.Background())
			if !tt.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			got, _ := os.ReadFile(out)
			if string(got) != "previous" {
				t.Errorf("existing output was modified: %q", got)
			}
		})
	}
}

func TestConvert_NoLinesWritesEmptyArray(t *testing.T) {
	a, fui, _, dir := newTestApp(t, nil)
	writeFile(t, filepath.Join(dir, "input.xml"), `<tt><body><div/></body></tt>`)

	if _, err := a.Convert(context.Background()); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(dir, "output.json"))
	if string(raw) != "[]" {
		t.Fatalf("output = %q, want []", raw)
	}
	if len(fui.warnings) != 1 {
		t.Errorf("expected one warning, got %v", fui.warnings)
	}
}

func TestOutputPathDerivation(t *testing.T) {
	t.Run("positional input next to source", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "songs", "my song.ttml")
		writeFile(t, in, sampleTTML)
		a, _, _, _ := newTestApp(t, &CLIFlags{Input: in})

		res, err := a.Convert(context.Background())
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if want := filepath.Join(dir, "songs", "My song.json"); res.OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
		}
	})

	t.Run("output_dir", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "track.xml")
		writeFile(t, src, sampleTTML)
		a, _, _, dir := newTestApp(t, &CLIFlags{Input: src})
		a.cfg.OutputDir = "out"

		res, err := a.Convert(context.Background())
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if want := filepath.Join(dir, "out", "Track.json"); res.OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
		}
	})

	t.Run("explicit -o wins", func(t *testing.T) {
		src := filepath.Join(t.TempDir(), "track.xml")
		writeFile(t, src, sampleTTML)
		explicit := filepath.Join(t.TempDir(), "custom.json")
		a, _, _, _ := newTestApp(t, &CLIFlags{Input: src, Output: explicit})
		a.cfg.OutputDir = "out"

		res, err := a.Convert(context.Background())
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if res.OutputPath != explicit {
			t.Errorf("OutputPath = %q, want %q", res.OutputPath, explicit)
		}
	})
}

func TestConvert_FromURL(t *testing.T) {
	a, _, _, dir := newTestApp(t, &CLIFlags{URL: "https://example.com/lyrics/song.ttml?x=1"})
	var gotTimeout time.Duration
	a.fetcher = func(ctx context.Context, rawURL string, timeout time.Duration, maxBytes int64) ([]byte, error) {
		gotTimeout = timeout
		return []byte(sampleTTML), nil
	}

	res, err := a.Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if want := filepath.Join(dir, "Song.json"); res.OutputPath != want {
		t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
	}
	if gotTimeout != 15*time.Second {
		t.Errorf("timeout = %v", gotTimeout)
	}
	if res.Document.Source != model.SourceURL {
		t.Errorf("Source = %v", res.Document.Source)
	}
}

func TestConvert_FromURLFailure(t *testing.T) {
	a, _, _, _ := newTestApp(t, &CLIFlags{URL: "https://example.com/a.ttml"})
	if _, err := a.Convert(context.Background()); !errors.Is(err, ErrRead) {
		t.Fatalf("expected ErrRead, got %v", err)
	}
}

func TestConvert_FromClipboard(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		auto      bool
		confirm   bool
		wantErr   error
		wantAsked int
	}{
		{name: "confirmed", content: sampleTTML, confirm: true, wantAsked: 1},
		{name: "declined", content: sampleTTML, confirm: false, wantErr: ErrCancelled, wantAsked: 1},
		{name: "auto skips confirmation", content: "\ufeff" + sampleTTML, auto: true, wantAsked: 0},
		{name: "empty", content: "  \n", wantErr: ErrMissingInput},
		{name: "not markup", content: "just some words", wantErr: ErrRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, fui, clip, dir := newTestApp(t, &CLIFlags{FromClipboard: true})
			clip.content = tt.content
			fui.confirm = tt.confirm
			a.cfg.AutoMode = tt.auto

			res, err := a.Convert(context.Background())
			if fui.asked != tt.wantAsked {
				t.Errorf("confirmation asked %d times, want %d", fui.asked, tt.wantAsked)
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if want := filepath.Join(dir, "output.json"); res.OutputPath != want {
				t.Errorf("OutputPath = %q, want %q", res.OutputPath, want)
			}
		})
	}
}

func TestConvert_Extras(t *testing.T) {
	a, fui, clip, dir := newTestApp(t, nil)
	writeFile(t, filepath.Join(dir, "input.xml"), sampleTTML)
	a.cfg.CopyToClipboard = true
	a.cfg.SavePreview = true
	a.cfg.ShowSummary = true

	r, err := preview.DefaultRenderer(filepath.Join(dir, "bin", "ttmlyrics"))
	if err != nil {
		t.Fatalf("DefaultRenderer: %v", err)
	}
	a.renderer = r

	res, err := a.Convert(context.Background())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	raw, _ := os.ReadFile(res.OutputPath)
	if clip.written != string(raw) {
		t.Errorf("clipboard content differs from output file")
	}

	if want := filepath.Join(dir, "Input.md"); res.PreviewPath != want {
		t.Errorf("PreviewPath = %q, want %q", res.PreviewPath, want)
	}
	md, err := os.ReadFile(res.PreviewPath)
	if err != nil || !strings.Contains(string(md), "Hello ·world") {
		t.Errorf("preview content = %q, err = %v", md, err)
	}

	if len(fui.tables) != 1 {
		t.Fatalf("expected one summary table, got %d", len(fui.tables))
	}
	rows := fui.tables[0].Rows
	if len(rows) != 2 || rows[0][2] != "2" || rows[0][3] != "159.2" || rows[0][4] != "Hello world" {
		t.Errorf("summary rows = %v", rows)
	}
}

func TestConvert_ClipboardCopyFailureIsNotFatal(t *testing.T) {
	a, fui, clip, dir := newTestApp(t, nil)
	writeFile(t, filepath.Join(dir, "input.xml"), sampleTTML)
	a.cfg.CopyToClipboard = true
	a.cfg.SavePreview = true // pas de renderer -> avertissement
	clip.err = errors.New("no clipboard")

	if _, err := a.Convert(context.Background()); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(fui.warnings) != 2 {
		t.Errorf("expected two warnings, got %v", fui.warnings)
	}
}

func TestRun_PauseOnExit(t *testing.T) {
	a, fui, _, dir := newTestApp(t, nil)
	writeFile(t, filepath.Join(dir, "input.xml"), sampleTTML)
	a.cfg.PauseOnExit = true

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !fui.waited {
		t.Error("WaitForExit not called")
	}
}

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	ApplyFlags(cfg, &CLIFlags{Auto: true, Copy: true, Preview: true, NoSummary: true, Verbose: true})
	if !cfg.AutoMode || !cfg.CopyToClipboard || !cfg.SavePreview || cfg.ShowSummary || cfg.Log.Level != "debug" {
		t.Errorf("flags not applied: %+v", cfg)
	}

	cfg = config.Default()
	ApplyFlags(cfg, &CLIFlags{})
	if cfg.AutoMode || !cfg.ShowSummary || cfg.Log.Level != "info" {
		t.Errorf("empty flags changed config: %+v", cfg)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo", 10); got != "héllo" {
		t.Errorf("got %q", got)
	}
	if got := truncateRunes("héllo wörld", 5); got != "héll…" {
		t.Errorf("got %q", got)
	}
}

func TestHasMarkupExtension(t *testing.T) {
	tests := map[string]bool{
		"a/song.ttml": true,
		"song.XML":    true,
		"song.json":   false,
		"song":        false,
	}
	for in, want := range tests {
		if got := hasMarkupExtension(in); got != want {
			t.Errorf("hasMarkupExtension(%q) = %v, want %v", in, got, want)
		}
	}
}
