package preview

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/patrickprogramme/ttmlyrics/internal/assets"
	"github.com/patrickprogramme/ttmlyrics/internal/fsutil"
)

// motif des templates de fiche, sur disque comme dans l'embed
const templatePattern = "lyrics_*.tmpl"

// Renderer gère parsing paresseux (lazy) des templates et fournit des méthodes de rendu.
type Renderer struct {
	templates *template.Template // templates parsés
	fsys      fs.FS              // source des templates (embed.FS ou os.DirFS)
	patterns  []string           // patterns relatifs au fsys
	once      sync.Once
	err       error // erreur d'initialisation mémorisée
}

// NewRendererFromFS construit un Renderer configuré pour parser ultérieurement les patterns
// fournis depuis le fsys (ne parse pas immédiatement).
func NewRendererFromFS(fsys fs.FS, patterns []string) (*Renderer, error) {
	if fsys == nil {
		return nil, fmt.Errorf("fsys est nil")
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("aucun template fourni")
	}
	cp := append([]string(nil), patterns...)
	return &Renderer{
		fsys:     fsys,
		patterns: cp,
	}, nil
}

// DefaultRenderer : templates du dossier "templates" à côté du binaire s'il en contient,
// sinon les templates embarqués. Le parsing est fait tout de suite.
func DefaultRenderer(exePath string) (*Renderer, error) {
	tplDir := filepath.Join(filepath.Dir(exePath), assets.TemplatesDir)

	var fsys fs.FS
	onDisk, err := fsutil.DirHasMatchingFiles(tplDir, []string{templatePattern})
	if err == nil && onDisk {
		fsys = os.DirFS(tplDir)
	} else {
		sub, serr := fs.Sub(assets.Embedded, assets.TemplatesDir)
		if serr != nil {
			return nil, fmt.Errorf("templates embarqués: %w", serr)
		}
		fsys = sub
	}

	r, err := NewRendererFromFS(fsys, []string{templatePattern})
	if err != nil {
		return nil, err
	}
	if err := r.ParseNow(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) parseTemplates() error {
	r.once.Do(func() {
		t := template.New("root").Funcs(baseFuncMap())
		for _, p := range r.patterns {
			var parseErr error
			t, parseErr = t.ParseFS(r.fsys, p)
			if parseErr != nil {
				r.err = fmt.Errorf("parse pattern %q: %w", p, parseErr)
				return
			}
		}
		r.templates = t
	})
	return r.err
}

// ParseNow force le parsing immédiat et retourne l'erreur si problème.
func (r *Renderer) ParseNow() error {
	if r == nil {
		return fmt.Errorf("nil renderer")
	}
	return r.parseTemplates()
}

// Render exécute le template nommé tmplName (basename du fichier .tmpl) avec data.
func (r *Renderer) Render(tmplName string, data Data) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is nil")
	}
	if err := r.parseTemplates(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return buf.Bytes(), nil
}

// TemplateNames retourne les noms des templates parsés (basenames des patterns sinon).
func (r *Renderer) TemplateNames() []string {
	if r == nil {
		return nil
	}
	if r.templates == nil {
		out := make([]string, 0, len(r.patterns))
		for _, p := range r.patterns {
			out = append(out, filepath.Base(p))
		}
		return out
	}
	names := make([]string, 0, len(r.templates.Templates()))
	for _, t := range r.templates.Templates() {
		if n := t.Name(); n != "" && n != "root" {
			names = append(names, n)
		}
	}
	return names
}

func baseFuncMap() template.FuncMap {
	return template.FuncMap{
		"quoteBlock":  quoteBlockPure,
		"warning":     warningFunc,
		"phrases":     phrasesPure,
		"durationSum": durationSumPure,
		"inc":         inc,
	}
}
