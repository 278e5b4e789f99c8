// Package cli implementa backupctl: exportar, inspeccionar e importar backups
// desde la línea de comandos, sin pasar por la API HTTP.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Taller-api/internal/application/backup"
	"github.com/jhoicas/Taller-api/internal/application/ports"
	"github.com/jhoicas/Taller-api/internal/domain/document"
)

// Formatos de salida.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// BackupEngine es lo que backupctl usa de backup.Engine.
type BackupEngine interface {
	Export(ctx context.Context) (document.Bundle, error)
	Inspect(b document.Bundle) (*backup.Summary, error)
	Import(ctx context.Context, b document.Bundle) error
}

// Env son las dependencias ya abiertas (almacén, motor, destinos).
type Env struct {
	Engine BackupEngine
	// Archive devuelve el destino del export: el directorio local y, con s3, también el bucket.
	Archive func(ctx context.Context, dir string, s3 bool) (ports.BackupArchive, error)
	// AfterImport corre tras un import exitoso (p. ej. recrear el administrador).
	AfterImport func(ctx context.Context) error
	Close       func()
}

// Setup abre el entorno. Se invoca recién al ejecutar un subcomando.
type Setup func(ctx context.Context) (*Env, error)

// RootOptions flags globales.
type RootOptions struct {
	Format string
	Now    func() time.Time
}

// NewRootCommand arma backupctl con sus subcomandos.
func NewRootCommand(setup Setup) *cobra.Command {
	opts := &RootOptions{Now: time.Now}

	cmd := &cobra.Command{
		Use:   "backupctl",
		Short: "Backup y restauración de los datos del taller",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains([]string{FormatText, FormatJSON}, opts.Format) {
				return fmt.Errorf("formato inválido %q: use text o json", opts.Format)
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "formato de salida (text|json)")

	cmd.AddCommand(newExportCommand(opts, setup))
	cmd.AddCommand(newInspectCommand(opts, setup))
	cmd.AddCommand(newImportCommand(opts, setup))
	return cmd
}

// withEnv abre el entorno, ejecuta fn y lo cierra.
func withEnv(ctx context.Context, setup Setup, fn func(env *Env) error) error {
	env, err := setup(ctx)
	if err != nil {
		return err
	}
	if env.Close != nil {
		defer env.Close()
	}
	return fn(env)
}
