package ports

import (
	"context"

	"github.com/jhoicas/bcs-blackbox/internal/application/dto"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una única transacción.
// Si fn retorna error se hace rollback de todo; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(r repository.Repositories) error) error
}

// PasswordHasher puerto de hash de contraseñas (pkg/password lo implementa).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// StatementRenderer genera el estado de comisiones de un partner (PDF).
type StatementRenderer interface {
	RenderCommissionStatement(st *dto.CommissionStatement) ([]byte, error)
}

// SpreadsheetExporter exporta listados a hojas de cálculo (xlsx).
type SpreadsheetExporter interface {
	ExportContacts(contacts []dto.ContactResponse) ([]byte, error)
	ExportLeads(leads []dto.LeadResponse) ([]byte, error)
}
