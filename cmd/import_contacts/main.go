// import_contacts carga contactos de un partner desde un .xlsx (primera hoja) o un .csv en ISO-8859-1.
//
// Uso: go run ./cmd/import_contacts --partner 5 --file contactos.csv [--encoding utf8] [--dry-run]
// Encabezado: nombre,empresa,email,telefono,cargo,industria,notas
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/bcs-blackbox/internal/application/crm"
	"github.com/jhoicas/bcs-blackbox/internal/infrastructure/sqlite"
	"github.com/jhoicas/bcs-blackbox/pkg/config"
	"github.com/jhoicas/bcs-blackbox/pkg/logger"
	"github.com/jhoicas/bcs-blackbox/pkg/password"
	"github.com/spf13/cobra"
)

type options struct {
	partnerID int64
	file      string
	encoding  string
	dryRun    bool
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "import_contacts",
		Short: "Importa contactos de un partner desde .xlsx o .csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().Int64Var(&opts.partnerID, "partner", 0, "ID del partner dueño de los contactos")
	cmd.Flags().StringVar(&opts.file, "file", "", "ruta del archivo .xlsx o .csv")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "latin1", "codificación del CSV: latin1 o utf8")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "solo valida el archivo, no escribe")
	_ = cmd.MarkFlagRequired("partner")
	_ = cmd.MarkFlagRequired("file")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "import_contacts"})

	f, err := os.Open(opts.file)
	if err != nil {
		return fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()

	rows, err := readRows(opts.file, f, opts.encoding)
	if err != nil {
		return err
	}
	contacts, skipped, err := parseRows(rows)
	if err != nil {
		return err
	}
	for _, line := range skipped {
		log.Warn().Int("fila", line).Msg("fila sin nombre, se omite")
	}
	if opts.dryRun {
		log.Info().Int("validos", len(contacts)).Int("omitidos", len(skipped)).Msg("dry-run: nada escrito")
		return nil
	}

	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := sqlite.Migrate(db); err != nil {
		return err
	}

	repos := sqlite.NewRepositories(db)
	partner, err := repos.Partners.GetByID(ctx, opts.partnerID)
	if err != nil {
		return err
	}
	if partner == nil {
		return fmt.Errorf("partner %d no existe", opts.partnerID)
	}

	hasher, err := password.NewHasher(cfg.Security.PasswordScheme)
	if err != nil {
		return err
	}
	uc := crm.NewContactUseCase(repos.Contacts, repos.Activities, sqlite.NewTxRunner(db), hasher, log)

	imported, failed := 0, 0
	for _, row := range contacts {
		if _, err := uc.Create(ctx, partner.ID, row.Contact); err != nil {
			failed++
			log.Warn().Err(err).Int("fila", row.Line).Str("nombre", row.Contact.Name).Msg("contacto rechazado")
			continue
		}
		imported++
	}
	log.Info().
		Int64("partner_id", partner.ID).
		Int("importados", imported).
		Int("rechazados", failed).
		Int("omitidos", len(skipped)).
		Msg("importación terminada")
	if failed > 0 {
		return fmt.Errorf("%d filas rechazadas", failed)
	}
	return nil
}
