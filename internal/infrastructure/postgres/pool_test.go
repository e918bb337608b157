package postgres

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicklvs1307/stockfy/pkg/config"
)

func TestPoolConfigFrom_UsesDBConfig(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL:            "postgres://u:p@db.local:5432/stockfy?sslmode=disable",
		MaxConns:               25,
		MinConns:               3,
		MaxConnLifetimeMinutes: 15,
		MaxConnIdleMinutes:     5,
	}

	pc, err := poolConfigFrom(cfg)
	require.NoError(t, err)

	assert.EqualValues(t, 25, pc.MaxConns)
	assert.EqualValues(t, 3, pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.NotNil(t, pc.AfterConnect, "el codec NUMERIC se registra en cada conexión")
}

func TestPoolConfigFrom_ZeroKeepsPgxDefaults(t *testing.T) {
	base, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://u@localhost/db"})
	require.NoError(t, err)

	assert.Positive(t, base.MaxConns)
	assert.Zero(t, base.MinConns)
}

func TestPoolConfigFrom_MinAboveMaxIgnored(t *testing.T) {
	pc, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://u@localhost/db", MaxConns: 2, MinConns: 8})
	require.NoError(t, err)

	assert.EqualValues(t, 2, pc.MaxConns)
	assert.Zero(t, pc.MinConns)
}

func TestPoolConfigFrom_ForceIPv4(t *testing.T) {
	plain, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://u@localhost/db"})
	require.NoError(t, err)
	forced, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://u@localhost/db", ForceIPv4: true})
	require.NoError(t, err)

	// ParseConfig siempre instala un dialer; con ForceIPv4 se reemplaza por dialIPv4.
	ipv4 := reflect.ValueOf(dialIPv4).Pointer()
	assert.Equal(t, ipv4, reflect.ValueOf(forced.ConnConfig.DialFunc).Pointer())
	assert.NotEqual(t, ipv4, reflect.ValueOf(plain.ConnConfig.DialFunc).Pointer())
}

func TestPoolConfigFrom_InvalidDSN(t *testing.T) {
	_, err := poolConfigFrom(config.DBConfig{DatabaseURL: "postgres://u@localhost:notaport/db"})
	assert.Error(t, err)
}
