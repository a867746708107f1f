package ui

import "context"

type Interface interface {
	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintSuccess(ctx context.Context, s string)
	PrintWarning(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)

	// PrintTable affiche un tableau (résumé des lignes converties).
	PrintTable(ctx context.Context, t Table)

	// ConfirmClipboard affiche un aperçu de content et demande confirmation.
	// Retourne true si l'utilisateur accepte d'utiliser ce texte.
	ConfirmClipboard(ctx context.Context, content string) (bool, error)
}
