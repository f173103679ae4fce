package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Caracas"))
	assert.True(t, IsValid("Europe/Madrid"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Olympus"))
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "America/Bogota", Location("America/Bogota").String())
	assert.Equal(t, DefaultTimezone, Location("no-such-zone").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
}

func TestNowIn(t *testing.T) {
	now := NowIn("America/Caracas")
	assert.Equal(t, "America/Caracas", now.Location().String())
}
