package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     Strength
	}{
		{"", Strength{Level: StrengthEmpty}},
		{"abc", Strength{Level: StrengthWeak, Percentage: 0}},
		{"abcdefgh", Strength{Level: StrengthWeak, Percentage: 25}},
		{"abcdefgh1", Strength{Level: StrengthFair, Percentage: 40}},
		{"abcdefghijkl", Strength{Level: StrengthFair, Percentage: 50}},
		{"Abcdefghijkl", Strength{Level: StrengthGood, Percentage: 75}},
		{"Abcdefghijk1", Strength{Level: StrengthStrong, Percentage: 100}},
		{"correct horse", Strength{Level: StrengthFair, Percentage: 50}},
		{"Ab1!", Strength{Level: StrengthFair, Percentage: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrength([]byte(tt.password)))
		})
	}
}

func TestGetPasswordFromEnv(t *testing.T) {
	t.Setenv(EnvPassword, "from-env")
	assert.Equal(t, []byte("from-env"), GetPasswordFromEnv())

	t.Setenv(EnvPassword, "")
	got := GetPasswordFromEnv()
	assert.NotNil(t, got, "set but empty is an empty password")
	assert.Empty(t, got)
}
