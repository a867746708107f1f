package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileExists renvoie true si path existe et n'est pas un répertoire.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirHasMatchingFiles vérifie si le répertoire path contient au moins un fichier
// correspondant à l'un des motifs fournis dans patterns.
// - patterns utilise la syntaxe de filepath.Match/glob (ex: "*.md.tmpl").
// - La recherche n'est pas récursive.
// Un répertoire absent n'est pas une erreur : (false, nil).
func DirHasMatchingFiles(path string, patterns []string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if !info.IsDir() {
		return false, errors.New("path exists but is not a directory")
	}

	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(path, pat))
		if err != nil {
			// motif invalide
			return false, err
		}
		if len(matches) > 0 {
			return true, nil
		}
	}
	return false, nil
}

// WriteFileAtomic écrit data dans destPath de manière atomique : écriture dans
// un fichier temporaire du même répertoire puis os.Rename(tmp -> dest).
// Crée les répertoires parents si nécessaire. En cas d'échec, destPath n'est
// pas touché et le fichier temporaire est supprimé.
func WriteFileAtomic(destPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(destPath)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// cleanup si échec (sans effet après le rename)
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	// best-effort : certains systèmes de fichiers ne supportent pas fsync
	_ = tmp.Sync()

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	_ = os.Chmod(tmpName, perm)

	if err := os.Rename(tmpName, destPath); err != nil {
		return fmt.Errorf("rename tmp -> dest: %w", err)
	}
	return nil
}

// SaveTextAtomic écrit content dans outDir sous baseName+ext (ext avec le point, ex: ".md").
// - overwrite=false : si le fichier existe, on ajoute un suffixe _1, _2, ...
// - overwrite=true  : on écrase directement.
// Retourne le chemin final du fichier.
func SaveTextAtomic(outDir, baseName, ext string, content []byte, overwrite bool) (string, error) {
	if baseName == "" {
		return "", fmt.Errorf("baseName empty")
	}
	if outDir == "" {
		outDir = "."
	}

	final := filepath.Join(outDir, baseName+ext)

	if !overwrite && FileExists(final) {
		const maxAttempts = 1000
		for i := 1; i <= maxAttempts; i++ {
			candidate := filepath.Join(outDir, fmt.Sprintf("%s_%d%s", baseName, i, ext))
			if _, err := os.Stat(candidate); os.IsNotExist(err) {
				final = candidate
				break
			}
		}
		// si au bout des essais le fichier existe encore, fallback timestamp
		if FileExists(final) {
			final = filepath.Join(outDir, fmt.Sprintf("%s_%d%s", baseName, time.Now().Unix(), ext))
		}
	}

	if err := WriteFileAtomic(final, content, 0o644); err != nil {
		return "", err
	}
	return final, nil
}
