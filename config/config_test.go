package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodSecret = "a-perfectly-long-random-secret-value-0123"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", goodSecret)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.ServerAddr())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "console", cfg.Mail.Backend)
	assert.False(t, cfg.BootstrapAdmin())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", goodSecret)
	t.Setenv("PORT", "9000")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_EMAIL", "root@x.com")
	t.Setenv("ADMIN_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.ServerAddr())
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "/tmp/x.db", cfg.Database.DSN())
	assert.True(t, cfg.BootstrapAdmin())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			JWTSecret: goodSecret,
			PageSize:  10,
			Database:  DatabaseConfig{Driver: DriverSQLite},
			Mail:      MailConfig{Backend: "console"},
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(c *Config){
		"short secret":       func(c *Config) { c.JWTSecret = "short" },
		"example secret":     func(c *Config) { c.JWTSecret = knownWeakSecrets[0] },
		"zero page size":     func(c *Config) { c.PageSize = 0 },
		"unknown driver":     func(c *Config) { c.Database.Driver = "mysql" },
		"smtp without host":  func(c *Config) { c.Mail.Backend = "smtp" },
		"unknown mail":       func(c *Config) { c.Mail.Backend = "pigeon" },
		"admin w/o password": func(c *Config) { c.AdminUsername = "root"; c.AdminEmail = "root@x.com" },
	}
	for name, mutate := range cases {
		c := valid()
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}

func TestPostgresDSN(t *testing.T) {
	c := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: 5432, User: "u", Password: "p", Name: "yamdb", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=yamdb sslmode=disable TimeZone=UTC", c.DSN())
}

func TestInitDBSQLite(t *testing.T) {
	db, err := InitDB(DatabaseConfig{Driver: DriverSQLite, SQLitePath: "file:config_test?mode=memory&cache=shared"}, false)
	require.NoError(t, err)
	defer CloseDB(db)

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	_, err = InitDB(DatabaseConfig{Driver: "mysql"}, false)
	assert.Error(t, err)
}
