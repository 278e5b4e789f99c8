package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/domain/document"
)

// ErrConfirmationRequired el import reemplaza colecciones enteras y exige --yes.
var ErrConfirmationRequired = errors.New("el import reemplaza los datos actuales: confirme con --yes")

func readBundle(path string) (document.Bundle, error) {
	if path == "" {
		return nil, errors.New("--file es obligatorio")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir backup: %w", err)
	}
	defer f.Close()
	return document.ParseBundle(f)
}

func newInspectCommand(opts *RootOptions, setup Setup) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Valida un archivo de backup sin modificar datos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := readBundle(file)
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), setup, func(env *Env) error {
				summary, err := env.Engine.Inspect(bundle)
				if err != nil {
					return err
				}
				return writeResult(cmd.OutOrStdout(), opts.Format, Result{
					Action:  "válido",
					File:    file,
					Counts:  summary.Counts,
					Ignored: summary.Unknown,
				})
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "archivo de backup (.json)")
	return cmd
}

func newImportCommand(opts *RootOptions, setup Setup) *cobra.Command {
	var (
		file string
		yes  bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restaura un archivo de backup reemplazando las colecciones presentes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return ErrConfirmationRequired
			}
			bundle, err := readBundle(file)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return withEnv(ctx, setup, func(env *Env) error {
				summary, err := env.Engine.Inspect(bundle)
				if err != nil {
					return err
				}
				if err := env.Engine.Import(ctx, bundle); err != nil {
					return err
				}
				if env.AfterImport != nil {
					if err := env.AfterImport(ctx); err != nil {
						return err
					}
				}
				return writeResult(cmd.OutOrStdout(), opts.Format, Result{
					Action:  "restaurado",
					File:    file,
					Counts:  summary.Counts,
					Ignored: summary.Unknown,
				})
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "archivo de backup (.json)")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirma el reemplazo de los datos")
	return cmd
}
