package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEgyptianMobile(t *testing.T) {
	ok := []string{
		"01012345678",
		"01112345678",
		"01212345678",
		"01512345678",
	}
	for _, p := range ok {
		assert.True(t, IsEgyptianMobile(p), "expected %q to be accepted", p)
	}

	bad := []string{
		"0101234567",    // too short
		"010123456789",  // too long
		"01312345678",   // 013 is not a carrier prefix
		"02012345678",   // landline-style prefix
		"+201012345678", // country code not accepted
		"01o12345678",   // letter
		"",
	}
	for _, p := range bad {
		assert.False(t, IsEgyptianMobile(p), "expected %q to be rejected", p)
	}
}

func TestIsISODate(t *testing.T) {
	assert.True(t, IsISODate("2025-03-14"))
	assert.True(t, IsISODate("1999-12-31"))

	assert.False(t, IsISODate("2025-3-14"))
	assert.False(t, IsISODate("14-03-2025"))
	assert.False(t, IsISODate("2025/03/14"))
	assert.False(t, IsISODate(""))
}

func TestIsTimeOfDay(t *testing.T) {
	assert.True(t, IsTimeOfDay("09:00"))
	assert.True(t, IsTimeOfDay("9:05"))
	assert.True(t, IsTimeOfDay("23:59"))
	assert.True(t, IsTimeOfDay("00:00"))

	assert.False(t, IsTimeOfDay("24:00"))
	assert.False(t, IsTimeOfDay("12:60"))
	assert.False(t, IsTimeOfDay("12h30"))
	assert.False(t, IsTimeOfDay("noon"))
	assert.False(t, IsTimeOfDay(""))
}
