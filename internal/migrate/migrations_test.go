package migrate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"departamento/internal/db"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.Config{DSN: "file:migrate-idempotent?mode=memory&cache=shared"})
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, Migrate(ctx, conn, nil))
	require.NoError(t, Migrate(ctx, conn, nil))

	var version int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT version FROM schema_version`).Scan(&version))
	migrations, err := loadMigrations()
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, version)

	var n int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM eventos`).Scan(&n))
	assert.Zero(t, n)
}
