package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithStatementTimeout(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		timeout time.Duration
		want    string
	}{
		{
			name:    "url without query",
			dsn:     "postgres://u:p@localhost:5432/cramr",
			timeout: 5 * time.Second,
			want:    "postgres://u:p@localhost:5432/cramr?statement_timeout=5000",
		},
		{
			name:    "url with query",
			dsn:     "postgresql://localhost/cramr?sslmode=disable",
			timeout: 250 * time.Millisecond,
			want:    "postgresql://localhost/cramr?sslmode=disable&statement_timeout=250",
		},
		{
			name:    "keyword dsn",
			dsn:     "host=localhost user=cramr dbname=cramr ",
			timeout: time.Second,
			want:    "host=localhost user=cramr dbname=cramr statement_timeout=1000",
		},
		{
			name:    "disabled",
			dsn:     "postgres://localhost/cramr",
			timeout: 0,
			want:    "postgres://localhost/cramr",
		},
		{
			name:    "already set",
			dsn:     "postgres://localhost/cramr?statement_timeout=10",
			timeout: time.Second,
			want:    "postgres://localhost/cramr?statement_timeout=10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithStatementTimeout(tt.dsn, tt.timeout))
		})
	}
}
