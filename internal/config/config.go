package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickprogramme/ttmlyrics/internal/assets"
	"github.com/patrickprogramme/ttmlyrics/internal/fsutil"
	"gopkg.in/yaml.v3"
)

const CurrentConfigVersion = 1

// Nom du fichier de configuration par défaut (à côté du binaire)
const DefaultFileName = "ttmlyrics.yaml"

const (
	defaultIndent         = 4
	maxIndent             = 8
	defaultFetchTimeout   = 15
	defaultFetchMaxBytes  = 10_000_000
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultInputFileName  = "input.xml"
	defaultOutputFileName = "output.json"
)

// struct pour les paramètres de configuration
type Config struct {
	// Chemins
	InputFile  string `yaml:"input_file"`
	OutputFile string `yaml:"output_file"`
	OutputDir  string `yaml:"output_dir"`

	// Sortie JSON
	Indent int `yaml:"indent"`

	// Extras
	CopyToClipboard bool `yaml:"copy_to_clipboard"`
	SavePreview     bool `yaml:"save_preview"`
	ShowSummary     bool `yaml:"show_summary"`

	// Mode automatique
	AutoMode    bool `yaml:"auto_mode"`
	PauseOnExit bool `yaml:"pause_on_exit"`

	// Téléchargement (--url)
	Fetch struct {
		TimeoutSeconds int   `yaml:"timeout_seconds"`
		MaxBytes       int64 `yaml:"max_bytes"`
	} `yaml:"fetch"`

	// Journalisation
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	ConfigVersion int `yaml:"config_version"`

	configFilePath string
}

// Configuration par défaut (fallback si l'asset embarqué est manquant)
func defaultConfig() *Config {
	c := &Config{}

	c.InputFile = defaultInputFileName
	c.OutputFile = defaultOutputFileName
	c.OutputDir = ""

	c.Indent = defaultIndent

	c.CopyToClipboard = false
	c.SavePreview = false
	c.ShowSummary = true

	c.AutoMode = false
	c.PauseOnExit = false

	c.Fetch.TimeoutSeconds = defaultFetchTimeout
	c.Fetch.MaxBytes = defaultFetchMaxBytes

	c.Log.Level = defaultLogLevel
	c.Log.Format = defaultLogFormat

	c.ConfigVersion = CurrentConfigVersion

	return c
}

// Default retourne la configuration par défaut, sans fichier associé.
// Les chemins relatifs sont alors résolus depuis le répertoire courant.
func Default() *Config {
	c := defaultConfig()
	c.normalizeConfig()
	return c
}

// Load lit la config; si le fichier n'existe pas, on copie l'exemple embarqué depuis internal/assets
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfigFromEmbedded(path); err != nil {
			return nil, fmt.Errorf("échec de création du fichier de configuration par défaut : %w", err)
		}
	}

	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du fichier de configuration %s impossible : %w", path, err)
	}

	// corriger les chemins Windows avec des backslashes
	data = bytes.ReplaceAll(data, []byte(`\`), []byte(`/`))

	// les champs absents conservent les valeurs par défaut
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("analyse du fichier de configuration %s impossible : %w", path, err)
	}
	cfg.configFilePath = path

	cfg.normalizeConfig()

	if cfg.ConfigVersion < CurrentConfigVersion {
		if err := orchestrateConfigUpgrade(cfg, cfg.ConfigVersion); err != nil {
			return nil, fmt.Errorf("échec de mise à niveau de la configuration : %w", err)
		}
		cfg.normalizeConfig()
	}

	return cfg, nil
}

func createDefaultConfigFromEmbedded(dstPath string) error {
	b, err := assets.Embedded.ReadFile(assets.DefaultConfigAsset)
	if err != nil {
		return fmt.Errorf("lecture du modèle de configuration embarqué impossible : %w", err)
	}
	// écrire atomiquement sur disque (évite les fichiers partiels)
	if err := fsutil.WriteFileAtomic(dstPath, b, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du fichier de configuration %s : %w", dstPath, err)
	}
	return nil
}

func (c *Config) normalizeConfig() {
	c.InputFile = strings.TrimSpace(c.InputFile)
	if c.InputFile == "" {
		c.InputFile = defaultInputFileName
	}
	c.OutputFile = strings.TrimSpace(c.OutputFile)
	if c.OutputFile == "" {
		c.OutputFile = defaultOutputFileName
	}
	if d := strings.TrimSpace(c.OutputDir); d != "" {
		c.OutputDir = filepath.Clean(d)
	} else {
		c.OutputDir = ""
	}

	if c.Indent < 0 {
		c.Indent = defaultIndent
	}
	if c.Indent > maxIndent {
		c.Indent = maxIndent
	}

	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeout
	}
	if c.Fetch.MaxBytes <= 0 {
		c.Fetch.MaxBytes = defaultFetchMaxBytes
	}

	c.Log.Level = strings.TrimSpace(strings.ToLower(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
	c.Log.Format = strings.TrimSpace(strings.ToLower(c.Log.Format))
	if c.Log.Format == "" {
		c.Log.Format = defaultLogFormat
	}
}

// FilePath retourne le chemin du fichier de configuration chargé ("" si Default()).
func (c *Config) FilePath() string {
	if c == nil {
		return ""
	}
	return c.configFilePath
}

// BaseDir est le répertoire de référence des chemins relatifs :
// le dossier du fichier de config, sinon le répertoire courant.
func (c *Config) BaseDir() string {
	if c == nil || c.configFilePath == "" {
		return "."
	}
	return filepath.Dir(c.configFilePath)
}

// ResolvePath rend p absolu par rapport à BaseDir si p est relatif.
func (c *Config) ResolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir(), filepath.FromSlash(p))
}

// InputPath / OutputPath : fichiers par défaut, résolus.
func (c *Config) InputPath() string  { return c.ResolvePath(c.InputFile) }
func (c *Config) OutputPath() string { return c.ResolvePath(c.OutputFile) }

// ResolvedOutputDir : dossier de sortie résolu, "" si non configuré.
func (c *Config) ResolvedOutputDir() string {
	if c.OutputDir == "" {
		return ""
	}
	return c.ResolvePath(c.OutputDir)
}
