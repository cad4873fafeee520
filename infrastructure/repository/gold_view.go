package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-lakehouse/infrastructure/database/postgres"
	"github.com/vfg2006/sales-lakehouse/internal/domain"
)

const (
	goldViewRowsTable = "gold_view_rows"

	// 4 parâmetros por linha, abaixo do limite de 65535 do protocolo
	insertBatchSize = 1000
)

const goldViewRowsSchema = `
CREATE TABLE IF NOT EXISTS gold_view_rows (
	view_name    TEXT        NOT NULL,
	position     INTEGER     NOT NULL,
	run_id       TEXT        NOT NULL,
	payload      JSONB       NOT NULL,
	published_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (view_name, position)
)`

type GoldViewRepository interface {
	EnsureSchema(ctx context.Context) error
	PublishView(ctx context.Context, runID string, table domain.ViewTable) error
}

type goldViewRepository struct {
	conn postgres.Conn
}

func NewGoldViewRepository(conn postgres.Conn) GoldViewRepository {
	return &goldViewRepository{
		conn: conn,
	}
}

func (r *goldViewRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.conn.ExecContext(ctx, goldViewRowsSchema); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %w", goldViewRowsTable, err)
	}
	return nil
}

// PublishView substitui atomicamente todas as linhas publicadas da visão
func (r *goldViewRepository) PublishView(ctx context.Context, runID string, table domain.ViewTable) error {
	payloads, err := rowPayloads(table)
	if err != nil {
		return err
	}

	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		return replaceView(ctx, q, runID, table.ViewName(), payloads)
	})
}

func replaceView(ctx context.Context, q postgres.Queryer, runID, view string, payloads []jsoniter.RawMessage) error {
	query, args, err := buildDeleteView(view)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return wrapExecError(err)
	}

	for start := 0; start < len(payloads); start += insertBatchSize {
		end := min(start+insertBatchSize, len(payloads))

		query, args, err := buildInsertRows(runID, view, start, payloads[start:end])
		if err != nil {
			return fmt.Errorf("erro ao construir a query: %w", err)
		}

		if _, err := q.ExecContext(ctx, query, args...); err != nil {
			return wrapExecError(err)
		}
	}

	return nil
}

func buildDeleteView(view string) (string, []any, error) {
	return squirrel.
		Delete(goldViewRowsTable).
		Where(squirrel.Eq{"view_name": view}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func buildInsertRows(runID, view string, offset int, payloads []jsoniter.RawMessage) (string, []any, error) {
	query := squirrel.StatementBuilder.
		Insert(goldViewRowsTable).
		Columns("view_name", "position", "run_id", "payload").
		PlaceholderFormat(squirrel.Dollar)

	for i, payload := range payloads {
		query = query.Values(view, offset+i, runID, string(payload))
	}

	return query.ToSql()
}

// rowPayloads serializa cada linha da visão, preservando a ordem
func rowPayloads(table domain.ViewTable) ([]jsoniter.RawMessage, error) {
	data, err := jsoniter.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar visão %s para JSON: %w", table.ViewName(), err)
	}

	var payloads []jsoniter.RawMessage
	if err := jsoniter.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("erro ao separar linhas da visão %s: %w", table.ViewName(), err)
	}

	return payloads, nil
}

func wrapExecError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("erro ao executar a query: %w", err)
}
