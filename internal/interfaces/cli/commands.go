package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
)

func newShapesCommand(shapes *importer.ShapeRegistry) *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "Lista los formatos de hoja aceptados",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CÓDIGO\tNOMBRE\tFILA\tIMÁGENES\tDESCRIPCIÓN")
			for _, s := range shapes.List() {
				images := "no"
				if s.HasImages() {
					images = "sí"
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", s.Code, s.Name, s.FirstRow, images, s.Description)
			}
			return w.Flush()
		},
	}
}

func newRunCommand(connect Connector) *cobra.Command {
	var (
		file  string
		shape string
		actor int64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Importa un libro .xlsx como una entrada de inventario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if actor <= 0 {
				return fmt.Errorf("--actor debe ser un id de cuenta positivo")
			}
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("abriendo %s: %w", file, err)
			}
			backend, err := connect(cmd.Context())
			if err != nil {
				return fmt.Errorf("conectando: %w", err)
			}
			defer backend.Close()

			res, err := backend.ImportFile(cmd.Context(), file, shape, actor)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "libro .xlsx (requerido)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&shape, "shape", "items", "formato: nombre o código")
	cmd.Flags().Int64Var(&actor, "actor", 0, "cuenta que registra el movimiento (requerido)")
	_ = cmd.MarkFlagRequired("actor")

	return cmd
}

func newLabelsCommand(connect Connector) *cobra.Command {
	var (
		bucket int64
		out    string
	)

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "Genera el PDF de etiquetas de un movimiento",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = fmt.Sprintf("etiquetas-%d.pdf", bucket)
			}
			backend, err := connect(cmd.Context())
			if err != nil {
				return fmt.Errorf("conectando: %w", err)
			}
			defer backend.Close()

			doc, err := backend.BucketLabels(cmd.Context(), bucket)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil {
				return fmt.Errorf("escribiendo %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", out, len(doc))
			return nil
		},
	}

	cmd.Flags().Int64Var(&bucket, "bucket", 0, "id del movimiento (requerido)")
	_ = cmd.MarkFlagRequired("bucket")
	cmd.Flags().StringVar(&out, "out", "", "archivo de salida (por defecto etiquetas-<id>.pdf)")

	return cmd
}

func newTokenCommand(issue TokenIssuer) *cobra.Command {
	var (
		account int64
		role    string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un token de acceso para la API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if account <= 0 {
				return fmt.Errorf("--account debe ser un id de cuenta positivo")
			}
			tok, err := issue(account, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().Int64Var(&account, "account", 0, "cuenta (requerido)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&role, "role", "bodeguero", "admin | bodeguero | vendedor")

	return cmd
}
