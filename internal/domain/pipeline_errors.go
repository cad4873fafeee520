package domain

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-lakehouse/internal/schema"
)

// Erros base da pipeline
var (
	ErrCoercion             = errors.New("coercion error")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	ErrViewComputation      = errors.New("view computation error")
	ErrEntityUnavailable    = errors.New("entity unavailable")
	ErrDependencyFailed     = errors.New("dependency failed")
	ErrJoinPrecondition     = errors.New("join precondition failed")
	ErrInvalidOptions       = errors.New("invalid pipeline options")
)

// CoercionError é uma falha de conversão ou validação de um campo
type CoercionError struct {
	Entity schema.Entity
	Field  string
	Raw    string
	Row    int
	Source string
	Reason string
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: entity=%s field=%s row=%d raw=%q: %s",
		ErrCoercion.Error(), e.Entity, e.Field, e.Row, e.Raw, e.Reason)
}

func (e *CoercionError) Unwrap() error {
	return ErrCoercion
}

// MalformedRowError é uma linha da origem descartada antes da conversão.
// Segue a política de coerção.
type MalformedRowError struct {
	Entity schema.Entity
	Source string
	Line   int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("%s: entity=%s source=%s line=%d: malformed row: %s",
		ErrCoercion.Error(), e.Entity, e.Source, e.Line, e.Reason)
}

func (e *MalformedRowError) Unwrap() error {
	return ErrCoercion
}

// ReferentialIntegrityWarning indica uma chave estrangeira sem correspondência.
// Não é fatal na política padrão: a linha é excluída e o aviso registrado.
type ReferentialIntegrityWarning struct {
	Entity schema.Entity
	Field  string
	Key    int64
	Row    int
	Source string
}

func (e *ReferentialIntegrityWarning) Error() string {
	return fmt.Sprintf("%s: entity=%s field=%s key=%d row=%d",
		ErrReferentialIntegrity.Error(), e.Entity, e.Field, e.Key, e.Row)
}

func (e *ReferentialIntegrityWarning) Unwrap() error {
	return ErrReferentialIntegrity
}

// ViewComputationError isola a falha de uma visão Gold
type ViewComputationError struct {
	View  string
	Cause error
}

func (e *ViewComputationError) Error() string {
	return fmt.Sprintf("%s: view=%s: %v", ErrViewComputation.Error(), e.View, e.Cause)
}

func (e *ViewComputationError) Unwrap() []error {
	return []error{ErrViewComputation, e.Cause}
}

// EntityError associa uma falha fatal à entidade que a causou
type EntityError struct {
	Entity schema.Entity
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("entity %s: %v", e.Entity, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}
