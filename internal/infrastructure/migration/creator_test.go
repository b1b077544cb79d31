package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add expenses index", "add_expenses_index"},
		{"Add-Expenses-Index", "add_expenses_index"},
		{"ADD_EXPENSES_INDEX", "add_expenses_index"},
		{"add__expenses__index", "add_expenses_index"},
		{"Add Units 123", "add_units_123"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"وحدات units", "units"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	t.Run("first migration is 000001", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		mf, err := CreateMigration(dir, "add expenses index", "Index expenses by period")
		require.NoError(t, err)

		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, "000001_add_expenses_index.up.sql", filepath.Base(mf.UpPath))
		assert.Equal(t, "000001_add_expenses_index.down.sql", filepath.Base(mf.DownPath))

		up, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(up), "Index expenses by period")

		down, err := os.ReadFile(mf.DownPath)
		require.NoError(t, err)
		assert.Contains(t, string(down), "rollback")
	})

	t.Run("continues after the highest existing version", func(t *testing.T) {
		dir := t.TempDir()
		for _, f := range []string{"000001_init.up.sql", "000001_init.down.sql", "000007_units.up.sql"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
		}

		mf, err := CreateMigration(dir, "next", "")
		require.NoError(t, err)
		assert.Equal(t, "000008", mf.Version)
		assert.True(t, strings.HasSuffix(mf.UpPath, "000008_next.up.sql"))
	})

	t.Run("rejects names without usable characters", func(t *testing.T) {
		_, err := CreateMigration(t.TempDir(), "!!!", "")
		assert.Error(t, err)
	})
}

func TestListMigrations(t *testing.T) {
	t.Run("lists up files only, in version order", func(t *testing.T) {
		dir := t.TempDir()
		files := []string{
			"000002_add_units.up.sql",
			"000002_add_units.down.sql",
			"000001_init.up.sql",
			"000001_init.down.sql",
			"README.md",
			".gitkeep",
		}
		for _, f := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("-- test"), 0o644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init", "000002_add_units"}, migrations)
	})

	t.Run("missing directory is empty", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}

func TestRepositoryMigrations(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for _, m := range migrations {
		_, err := os.Stat(filepath.Join(dir, m+".down.sql"))
		assert.NoError(t, err, "%s has no rollback", m)
	}

	up, err := os.ReadFile(filepath.Join(dir, "000001_init.up.sql"))
	require.NoError(t, err)
	for _, table := range []string{"units", "payment_methods", "sessions", "contracts", "contract_payments", "daily_reports", "daily_report_visits", "expenses"} {
		assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" ", table)
	}
}
