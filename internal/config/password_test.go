package config

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name       string
		bcryptCost string
		pepper     string
		wantCost   int
		wantErr    bool
	}{
		{name: "default cost", wantCost: 12},
		{name: "boundary cost 10", bcryptCost: "10", wantCost: 10},
		{name: "boundary cost 14", bcryptCost: "14", wantCost: 14},
		{name: "with pepper", bcryptCost: "11", pepper: "pepper", wantCost: 11},
		{name: "cost too low", bcryptCost: "9", wantErr: true},
		{name: "cost too high", bcryptCost: "15", wantErr: true},
		{name: "non-numeric cost", bcryptCost: "twelve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", tt.bcryptCost)
			t.Setenv("PASSWORD_PEPPER", tt.pepper)

			cfg, err := NewPasswordConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
			assert.Equal(t, tt.pepper, cfg.Pepper)
		})
	}
}

func testPasswordConfig(pepper string) *PasswordConfig {
	return &PasswordConfig{BcryptCost: 10, Pepper: pepper}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := testPasswordConfig("")

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	again, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "bcrypt salts each hash")

	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse", hash))
	assert.False(t, cfg.VerifyPassword("correct horse", "not-a-hash"))
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := testPasswordConfig("server-secret")
	hash, err := peppered.HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, peppered.VerifyPassword("hunter2", hash))
	assert.False(t, testPasswordConfig("").VerifyPassword("hunter2", hash), "missing pepper must fail")
	assert.False(t, testPasswordConfig("rotated").VerifyPassword("hunter2", hash), "different pepper must fail")
}

func TestPasswordConfig_TooLong(t *testing.T) {
	_, err := testPasswordConfig("").HashPassword(strings.Repeat("a", 100))
	assert.Error(t, err, "bcrypt rejects passwords over 72 bytes")
}

func TestPasswordConfig_ConcurrentVerify(t *testing.T) {
	cfg := testPasswordConfig("p")
	hash, err := cfg.HashPassword("pw")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, cfg.VerifyPassword("pw", hash))
		}()
	}
	wg.Wait()
}
