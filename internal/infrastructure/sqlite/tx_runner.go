package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/bcs-blackbox/internal/application/ports"
	"github.com/jhoicas/bcs-blackbox/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner con la conexión.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepositories construye todos los repos sobre el mismo Querier (conexión o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Users:         NewUserRepository(q),
		Roles:         NewRoleRepository(q),
		Partners:      NewPartnerRepository(q),
		Registrations: NewPartnerRegistrationRepository(q),
		Contacts:      NewContactRepository(q),
		Activities:    NewActivityRepository(q),
		ClientSubBCS:  NewClientSubBCSRepository(q),
		PartnerSubBCS: NewPartnerSubBCSRepository(q),
		Apps:          NewUserAppRepository(q),
		Leads:         NewLeadRepository(q),
		Opportunities: NewOpportunityRepository(q),
		Commissions:   NewCommissionRepository(q),
	}
}
