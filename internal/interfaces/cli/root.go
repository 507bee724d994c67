// Package cli implementa importctl: importación de hojas sin pasar por el servidor HTTP.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
)

// Backend lo que los comandos necesitan de la base de datos ya conectada.
type Backend interface {
	ImportFile(ctx context.Context, path, shapeKey string, actorID int64) (importer.RunResult, error)
	BucketLabels(ctx context.Context, bucketID int64) ([]byte, error)
	Close()
}

// Connector abre el backend bajo demanda: "shapes" no toca la base de datos.
type Connector func(ctx context.Context) (Backend, error)

// TokenIssuer firma un token de acceso para una cuenta (ver pkg/jwt).
type TokenIssuer func(accountID int64, role string) (string, error)

// NewRootCommand crea el comando raíz con todos los subcomandos registrados.
func NewRootCommand(shapes *importer.ShapeRegistry, connect Connector, issue TokenIssuer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "importctl",
		Short: "Importación de hojas de proveedor al catálogo y al libro de inventario",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newShapesCommand(shapes))
	rootCmd.AddCommand(newRunCommand(connect))
	rootCmd.AddCommand(newLabelsCommand(connect))
	rootCmd.AddCommand(newTokenCommand(issue))

	return rootCmd
}
