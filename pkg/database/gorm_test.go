package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"tutor.db", "tutor.db?_foreign_keys=1"},
		{"file:x?mode=memory", "file:x?mode=memory&_foreign_keys=1"},
		{"file:x?_foreign_keys=0", "file:x?_foreign_keys=0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SQLiteDSN(tt.in))
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(Config{Driver: "oracle"})
	assert.Error(t, err)

	_, err = Open(Config{Driver: DriverPostgres})
	assert.Error(t, err)
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(Config{Driver: DriverSQLite, DSN: "file:migrate_test?mode=memory&cache=shared", LogLevel: logger.Silent})
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	for _, table := range []string{"users", "sessions", "chats", "messages"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
