package bootstrap

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/patrickprogramme/ttmlyrics/internal/fsutil"
)

// Statuts retournés par ExportDefaults
const (
	StatusWritten     = "written"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped (different)"
	StatusOverwritten = "overwritten"
)

// ExportDefaults copie récursivement tous les fichiers sous srcPrefix (dans fsys)
// vers destDir en préservant la hiérarchie relative.
// - force : si true, écrase les fichiers différents (avec backup .bak.<timestamp>)
//
// Retourne une map[embeddedPath]status et une erreur globale si Walk échoue.
func ExportDefaults(fsys fs.FS, srcPrefix, destDir string, force bool) (map[string]string, error) {
	status := make(map[string]string)

	err := fs.WalkDir(fsys, srcPrefix, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		// chemins de fs.FS : toujours des slashs
		rel := strings.TrimPrefix(strings.TrimPrefix(p, srcPrefix), "/")
		if rel == "" {
			if d.IsDir() {
				return nil
			}
			rel = path.Base(p)
		}
		destPath := filepath.Join(destDir, filepath.FromSlash(rel))

		if d.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			status[p] = "error: read embedded failed"
			return err
		}

		existing, err := os.ReadFile(destPath)
		if err != nil {
			if !os.IsNotExist(err) {
				status[p] = "error: read destination failed"
				return err
			}
			if err := fsutil.WriteFileAtomic(destPath, data, 0o644); err != nil {
				status[p] = "error: write failed"
				return err
			}
			status[p] = StatusWritten
			return nil
		}

		if bytes.Equal(existing, data) {
			status[p] = StatusUnchanged
			return nil
		}
		if !force {
			status[p] = StatusSkipped
			return nil
		}
		backup := destPath + ".bak." + time.Now().Format("20060102T150405")
		if err := os.WriteFile(backup, existing, 0o644); err != nil {
			status[p] = "error: backup failed"
			return fmt.Errorf("backup failed for %s: %w", destPath, err)
		}
		if err := fsutil.WriteFileAtomic(destPath, data, 0o644); err != nil {
			status[p] = "error: overwrite failed"
			return err
		}
		status[p] = StatusOverwritten
		return nil
	})

	return status, err
}

// EnsureTemplatesPresent s'assure que les templates listés existent sur disque.
//
// - tplDir  : dossier destination sur disque (ex: "./templates")
// - srcFiles: liste explicite de chemins DANS fsys (ex: "templates/lyrics_preview.md.tmpl")
//
// Crée tplDir si besoin et copie les fichiers manquants. NE REMPLACE JAMAIS
// un fichier existant (les templates modifiés par l'utilisateur sont conservés).
func EnsureTemplatesPresent(tplDir string, fsys fs.FS, srcFiles []string) error {
	parent := filepath.Dir(tplDir)
	if st, err := os.Stat(parent); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("le répertoire parent n'existe pas : %s", parent)
		}
		return fmt.Errorf("échec lors du test du répertoire parent %s : %w", parent, err)
	} else if !st.IsDir() {
		return fmt.Errorf("le parent existe mais n'est pas un répertoire : %s", parent)
	}

	if err := os.MkdirAll(tplDir, 0o755); err != nil {
		return fmt.Errorf("échec de création du répertoire de templates %s : %w", tplDir, err)
	}

	for _, src := range srcFiles {
		dest := filepath.Join(tplDir, path.Base(src))
		if _, err := os.Stat(dest); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("échec lors du test du fichier %s : %w", dest, err)
		}
		data, err := fs.ReadFile(fsys, src)
		if err != nil {
			return fmt.Errorf("fichier embarqué introuvable %s : %w", src, err)
		}
		if err := fsutil.WriteFileAtomic(dest, data, 0o644); err != nil {
			return fmt.Errorf("échec d'écriture du template %s : %w", dest, err)
		}
	}
	return nil
}
