package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/patrickprogramme/ttmlyrics/internal/app"
	"github.com/patrickprogramme/ttmlyrics/internal/assets"
	"github.com/patrickprogramme/ttmlyrics/internal/bootstrap"
	"github.com/patrickprogramme/ttmlyrics/internal/config"
	"github.com/patrickprogramme/ttmlyrics/internal/ui"
	"github.com/spf13/cobra"
)

func newDefaultsCommand(flags *app.CLIFlags) *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Exporte la configuration et les templates par défaut",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				_, dir = executablePaths()
			}
			out := cmd.OutOrStdout()

			cfgPath := flags.ConfigPath
			if cfgPath == "" {
				cfgPath = filepath.Join(dir, config.DefaultFileName)
			}
			created, err := bootstrap.EnsureConfigPresent(cfgPath, assets.Embedded, assets.DefaultConfigAsset)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(out, "Configuration créée: %s\n", cfgPath)
			} else {
				fmt.Fprintf(out, "Configuration existante conservée: %s\n", cfgPath)
			}

			tplDir := filepath.Join(dir, assets.TemplatesDir)
			status, err := bootstrap.ExportDefaults(assets.Embedded, assets.TemplatesDir, tplDir, force)
			if err != nil {
				return fmt.Errorf("export des templates: %w", err)
			}

			names := make([]string, 0, len(status))
			for name := range status {
				names = append(names, name)
			}
			sort.Strings(names)
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				rows = append(rows, []string{name, status[name]})
			}
			fmt.Fprintln(out, ui.RenderTable(ui.Table{
				Headers: []string{"Template", "Statut"},
				Rows:    rows,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Dossier de destination (défaut: dossier du binaire)")
	cmd.Flags().BoolVar(&force, "force", false, "Écraser les templates modifiés (une sauvegarde .bak est créée)")
	return cmd
}
