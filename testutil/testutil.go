// Package testutil holds fixtures shared by package tests: an in-memory
// database, a recording mailer and a ready configuration.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"yamdb-api/config"
	"yamdb-api/mailer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const Secret = "test-secret-that-is-long-enough-for-hs256"

// NewDB opens a private in-memory sqlite database with the schema migrated.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := config.InitDB(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}, false)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = config.CloseDB(db)
	})
	return db
}

// Config returns settings for tests: sqlite, console mail, no rate limit.
func Config() *config.Config {
	return &config.Config{
		Port:          8080,
		Env:           "test",
		LogLevel:      "CRITICAL",
		JWTSecret:     Secret,
		JWTExpiration: time.Hour,
		PageSize:      10,
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
		},
		Mail: config.MailConfig{
			Backend:  "console",
			From:     "noreply@yamdb.local",
			TokenURL: "http://localhost/v1/auth/token/",
		},
	}
}

// Mailer records every message. When Err is set, Send fails with it.
type Mailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	Err  error
}

func (m *Mailer) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *Mailer) Sent() []mailer.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mailer.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// SentTo returns the messages addressed to email.
func (m *Mailer) SentTo(email string) []mailer.Message {
	var out []mailer.Message
	for _, msg := range m.Sent() {
		for _, to := range msg.To {
			if to == email {
				out = append(out, msg)
				break
			}
		}
	}
	return out
}
