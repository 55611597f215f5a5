package template

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigIsValidJSON(t *testing.T) {
	for _, dbType := range []DatabaseType{SQLite, PostgreSQL, MySQL} {
		var cfg map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(NewProjectTemplate(dbType).GetConfig()), &cfg), dbType)

		db := cfg["database"].(map[string]interface{})
		assert.Equal(t, string(dbType), db["provider"])
		assert.Equal(t, "DATABASE_URL", db["url_env"])
	}
}

func TestGetEnvTemplate(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewProjectTemplate(SQLite).GetEnvTemplate(), "DATABASE_URL=sqlite://"))
	assert.True(t, strings.HasPrefix(NewProjectTemplate(MySQL).GetEnvTemplate(), "DATABASE_URL=mysql://"))
	assert.True(t, strings.HasPrefix(NewProjectTemplate(PostgreSQL).GetEnvTemplate(), "DATABASE_URL=postgres://"))
}

func TestGetSchemaPerDialect(t *testing.T) {
	assert.Contains(t, NewProjectTemplate(PostgreSQL).GetSchema(), "CREATE SCHEMA IF NOT EXISTS")
	assert.Contains(t, NewProjectTemplate(SQLite).GetSchema(), "AUTOINCREMENT")
	assert.Contains(t, NewProjectTemplate(MySQL).GetSchema(), "AUTO_INCREMENT")
}

func TestValidateDatabaseType(t *testing.T) {
	assert.Equal(t, PostgreSQL, ValidateDatabaseType("postgres"))
	assert.Equal(t, SQLite, ValidateDatabaseType("sqlite3"))
	assert.Equal(t, MySQL, ValidateDatabaseType("mysql"))
	assert.Equal(t, PostgreSQL, ValidateDatabaseType("oracle"))
}
