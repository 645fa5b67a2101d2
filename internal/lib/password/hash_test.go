package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompareHash(t *testing.T) {
	cases := []struct {
		name     string
		password string
	}{
		{name: "Обычный пароль", password: "secret123"},
		{name: "Пароль с пробелами и символами", password: "p@ss word!#%"},
		{name: "Пароль с юникодом", password: "пароль123"},
		{name: "Пустой пароль", password: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hash, err := GetHash(tc.password)
			require.NoError(t, err)
			assert.NotEqual(t, tc.password, hash)

			assert.NoError(t, CompareHash(hash, tc.password))
			assert.Error(t, CompareHash(hash, tc.password+"x"))
		})
	}
}

func TestGetHash_SamePasswordDifferentSalt(t *testing.T) {
	first, err := GetHash("secret123")
	require.NoError(t, err)
	second, err := GetHash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, CompareHash(first, "secret123"))
	assert.NoError(t, CompareHash(second, "secret123"))
}

func TestCompareHash_MalformedHash(t *testing.T) {
	err := CompareHash("not-a-bcrypt-hash", "secret123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password.CompareHash")
}

func TestGetHash_TooLongPassword(t *testing.T) {
	// bcrypt ограничивает вход 72 байтами.
	_, err := GetHash(strings.Repeat("a", 100))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password.GetHash")
}
