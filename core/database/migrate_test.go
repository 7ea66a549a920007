package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListMigrationFilesSortsUpScripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000002_seed_cities.up.sql",
		"000001_create_cities.up.sql",
		"000001_create_cities.down.sql",
		"README.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql"), 0o600))
	}

	require.Equal(t,
		[]string{"000001_create_cities.up.sql", "000002_seed_cities.up.sql"},
		listMigrationFiles(dir),
	)
}

func TestSelectApplied(t *testing.T) {
	files := []string{"000001_a.up.sql", "000002_b.up.sql", "000003_c.up.sql"}
	require.Equal(t, []string{"000002_b.up.sql", "000003_c.up.sql"}, selectApplied(files, 1, 3))
	require.Nil(t, selectApplied(files, 3, 3))
	require.EqualValues(t, 0, parseVersion("garbage.up.sql"))
}

func TestConfigConnectionStrings(t *testing.T) {
	cfg := Config{Host: "db", User: "bot", Password: "secret", Name: "travel", SSLMode: "disable"}
	require.Equal(t, "user=bot password=secret host=db port=5432 dbname=travel sslmode=disable", cfg.DSN())
	require.Equal(t, "postgres://bot:secret@db:5432/travel?sslmode=disable", cfg.URL())
}
