// import_snapshot copia un snapshot JSON del almacenamiento local (funcionarios, produtos,
// saldos, movimentacoes...) a PostgreSQL en una sola transacción.
//
// Uso: go run ./cmd/import_snapshot [-latin1] ruta/snapshot.json
// La conexión se toma de la misma configuración que cmd/api (DATABASE_URL o DB_*).
// Movimentacoes, perdas y producoes con quantidade <= 0 (datos viejos coercionados a 0) se
// omiten con un aviso: el esquema exige quantidade > 0.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/nicklvs1307/stockfy/internal/infrastructure/memory"
	"github.com/nicklvs1307/stockfy/internal/infrastructure/postgres"
	"github.com/nicklvs1307/stockfy/pkg/config"
	"github.com/nicklvs1307/stockfy/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el archivo está en ISO-8859-1")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_snapshot [-latin1] snapshot.json")
		os.Exit(2)
	}

	if err := run(context.Background(), flag.Arg(0), *latin1); err != nil {
		fmt.Fprintf(os.Stderr, "import_snapshot: %v\n", err)
		os.Exit(1)
	}
}

// run devuelve el error en vez de terminar el proceso para que los defers (archivo, pool, rollback) se ejecuten.
func run(ctx context.Context, path string, latin1 bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir snapshot: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	src, err := memory.Load(r)
	if err != nil {
		return fmt.Errorf("leer snapshot: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := copyAll(ctx, memoryRepos(src), postgresRepos(tx), log)
	if err != nil {
		return fmt.Errorf("importar snapshot: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("confirmar importación: %w", err)
	}
	for table, count := range res.copied {
		log.Info().Str("tabla", table).Int("registros", count).Int("omitidos", res.skipped[table]).Msg("importado")
	}
	return nil
}
