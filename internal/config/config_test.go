package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Helper function tests
// ---------------------------------------------------------------------------

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string // nil = don't set; pointer to distinguish "" from unset
		fallback string
		want     string
	}{
		{name: "returns fallback when unset", key: "AGRISETU_TEST_GETENV_UNSET", setVal: nil, fallback: "default", want: "default"},
		{name: "returns env value when set", key: "AGRISETU_TEST_GETENV_SET", setVal: strPtr("custom"), fallback: "default", want: "custom"},
		{name: "returns fallback when empty string", key: "AGRISETU_TEST_GETENV_EMPTY", setVal: strPtr(""), fallback: "default", want: "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got := getEnv(tc.key, tc.fallback)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback int
		want     int
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "AGRISETU_TEST_INT_UNSET", setVal: nil, fallback: 42, want: 42},
		{name: "parses valid int", key: "AGRISETU_TEST_INT_VALID", setVal: strPtr("8080"), fallback: 0, want: 8080},
		{name: "returns fallback for empty string", key: "AGRISETU_TEST_INT_EMPTY", setVal: strPtr(""), fallback: 25, want: 25},
		{name: "errors on non-numeric", key: "AGRISETU_TEST_INT_NAN", setVal: strPtr("abc"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvInt(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setVal   *string
		fallback time.Duration
		want     time.Duration
		wantErr  bool
	}{
		{name: "returns fallback when unset", key: "AGRISETU_TEST_DUR_UNSET", setVal: nil, fallback: time.Minute, want: time.Minute},
		{name: "parses duration", key: "AGRISETU_TEST_DUR_VALID", setVal: strPtr("45s"), fallback: 0, want: 45 * time.Second},
		{name: "errors on bare number", key: "AGRISETU_TEST_DUR_BARE", setVal: strPtr("45"), fallback: 0, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setVal != nil {
				t.Setenv(tc.key, *tc.setVal)
			}

			got, err := getEnvDuration(tc.key, tc.fallback)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("AGRISETU_TEST_LIST", "https://a.example, https://b.example ,, ")

	got := getEnvList("AGRISETU_TEST_LIST", nil)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, got)

	fallback := []string{"http://localhost:5173"}
	assert.Equal(t, fallback, getEnvList("AGRISETU_TEST_LIST_UNSET", fallback))
}

// ---------------------------------------------------------------------------
// Load validation
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Run("requires_jwt_secret", func(t *testing.T) {
		t.Setenv("AGRISETU_JWT_SECRET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AGRISETU_JWT_SECRET")
	})

	t.Run("rejects_short_jwt_secret", func(t *testing.T) {
		t.Setenv("AGRISETU_JWT_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32")
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AGRISETU_JWT_SECRET", "0123456789abcdef0123456789abcdef")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxConns)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
		assert.Equal(t, 30*time.Second, cfg.Redis.RoleTTL)
		assert.Empty(t, cfg.Redis.Addr, "role cache is opt-in")
		assert.Equal(t, "google/gemini-2.5-pro", cfg.Gateway.Model)
	})

	t.Run("invalid_port_rejected", func(t *testing.T) {
		t.Setenv("AGRISETU_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("AGRISETU_DB_PORT", "70000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AGRISETU_DB_PORT")
	})
}
