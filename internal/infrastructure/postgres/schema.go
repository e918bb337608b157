package postgres

import (
	"context"
	"fmt"
)

// schema una tabla por colección. Cantidades enteras; saldos pueden ser negativos.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS funcionarios (
		id         TEXT PRIMARY KEY,
		nome       TEXT NOT NULL,
		cargo      TEXT NOT NULL DEFAULT '',
		email      TEXT NOT NULL DEFAULT '',
		telefone   TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categorias (
		id         TEXT PRIMARY KEY,
		nome       TEXT NOT NULL,
		descricao  TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS produtos (
		id              TEXT PRIMARY KEY,
		nome            TEXT NOT NULL,
		codigo          TEXT,
		categoria_id    TEXT,
		validade_padrao INTEGER NOT NULL DEFAULT 0,
		status_padrao   TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'active',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS produtos_codigo_uq ON produtos (lower(codigo)) WHERE codigo IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS saldos (
		produto_id TEXT PRIMARY KEY,
		quantidade BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS movimentacoes (
		id         TEXT PRIMARY KEY,
		produto_id TEXT NOT NULL,
		tipo       TEXT NOT NULL CHECK (tipo IN ('entrada', 'saida')),
		quantidade BIGINT NOT NULL CHECK (quantidade > 0),
		data       TIMESTAMPTZ NOT NULL,
		observacao TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS perdas (
		id         TEXT PRIMARY KEY,
		produto_id TEXT NOT NULL,
		quantidade BIGINT NOT NULL CHECK (quantidade > 0),
		data       TIMESTAMPTZ NOT NULL,
		motivo     TEXT NOT NULL DEFAULT '',
		observacao TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS producao (
		id               TEXT PRIMARY KEY,
		produto_id       TEXT NOT NULL,
		quantidade       BIGINT NOT NULL CHECK (quantidade > 0),
		data             TIMESTAMPTZ NOT NULL,
		responsavel_id   TEXT,
		responsavel_nome TEXT,
		observacao       TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS producao_data_idx ON producao (data)`,
	`CREATE TABLE IF NOT EXISTS producao_insumos (
		producao_id TEXT NOT NULL REFERENCES producao (id) ON DELETE CASCADE,
		posicao     INTEGER NOT NULL,
		produto_id  TEXT NOT NULL,
		quantidade  BIGINT NOT NULL,
		PRIMARY KEY (producao_id, posicao)
	)`,
	`CREATE TABLE IF NOT EXISTS contagens (
		id               TEXT PRIMARY KEY,
		produto_id       TEXT NOT NULL,
		produto_nome     TEXT NOT NULL,
		responsavel_id   TEXT,
		responsavel_nome TEXT,
		quantidade       BIGINT NOT NULL CHECK (quantidade >= 0),
		saldo_anterior   BIGINT NOT NULL,
		diferenca        BIGINT NOT NULL,
		ajustar_estoque  BOOLEAN NOT NULL DEFAULT false,
		observacao       TEXT NOT NULL DEFAULT '',
		"timestamp"      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS contagens_timestamp_idx ON contagens ("timestamp")`,
	`CREATE TABLE IF NOT EXISTS etiquetas (
		id                TEXT PRIMARY KEY,
		produto_id        TEXT NOT NULL,
		produto_nome      TEXT NOT NULL,
		validade          INTEGER NOT NULL,
		armazenamento     TEXT NOT NULL DEFAULT '',
		responsavel_id    TEXT NOT NULL,
		responsavel_nome  TEXT NOT NULL,
		data_manipulacao  TIMESTAMPTZ NOT NULL,
		data_validade     TIMESTAMPTZ NOT NULL,
		quantidade        INTEGER NOT NULL DEFAULT 1,
		medida_valor      NUMERIC CHECK (medida_valor >= 0),
		medida_unidade    TEXT,
		validade_original TEXT NOT NULL DEFAULT '',
		sif               TEXT NOT NULL DEFAULT '',
		lote              TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS etiquetas_validade_idx ON etiquetas (data_validade)`,
}

// Migrate crea las tablas que falten. Idempotente.
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
