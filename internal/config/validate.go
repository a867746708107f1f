package config

import (
	"fmt"
	"os"
)

// Validate vérifie la configuration de manière statique.
// Retourne des warnings (non-fataux) et une erreur si c'est critique.
func (c *Config) Validate() (warnings []string, err error) {
	if c == nil {
		return nil, fmt.Errorf("config nil")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return warnings, fmt.Errorf("format de log inconnu : %q (console ou json)", c.Log.Format)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("niveau de log inconnu %q, info utilisé", c.Log.Level))
	}

	if dir := c.ResolvedOutputDir(); dir != "" {
		if st, serr := os.Stat(dir); serr != nil {
			if os.IsNotExist(serr) {
				warnings = append(warnings, fmt.Sprintf("le dossier de sortie n'existe pas encore : %s", dir))
			} else {
				return warnings, fmt.Errorf("impossible d'accéder au dossier de sortie %s : %w", dir, serr)
			}
		} else if !st.IsDir() {
			return warnings, fmt.Errorf("le dossier de sortie n'est pas un répertoire : %s", dir)
		}
	}

	in := c.InputPath()
	if info, serr := os.Stat(in); serr != nil {
		if os.IsNotExist(serr) {
			warnings = append(warnings, fmt.Sprintf("fichier d'entrée par défaut introuvable : %s", in))
		} else {
			return warnings, fmt.Errorf("erreur lors du test du fichier %s : %w", in, serr)
		}
	} else if info.IsDir() {
		return warnings, fmt.Errorf("le fichier d'entrée configuré est un répertoire : %s", in)
	}

	return warnings, nil
}
