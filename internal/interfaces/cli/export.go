package cli

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/backup"
)

func newExportCommand(opts *RootOptions, setup Setup) *cobra.Command {
	var (
		outDir string
		toS3   bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta todas las colecciones a un archivo de backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withEnv(ctx, setup, func(env *Env) error {
				target, err := env.Archive(ctx, outDir, toS3)
				if err != nil {
					return err
				}
				bundle, err := env.Engine.Export(ctx)
				if err != nil {
					return err
				}
				data, err := backup.Marshal(bundle)
				if err != nil {
					return err
				}
				location, err := target.Store(ctx, backup.FileName(opts.Now()), data)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), opts.Format, Result{
					Action:   "exportado",
					Location: location,
					Counts:   bundle.Counts(),
				})
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "./backups", "directorio local de destino")
	cmd.Flags().BoolVar(&toS3, "s3", false, "subir también al bucket S3 configurado")
	return cmd
}
