package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBadgeIcon(t *testing.T) {
	assert.Equal(t, IconStar, ParseBadgeIcon("star"))
	assert.Equal(t, IconOcean, ParseBadgeIcon("ocean"))
	assert.Equal(t, IconRunner, ParseBadgeIcon("runner"))

	// Unrecognized keys fall back to the default icon — never an error.
	assert.Equal(t, IconDefault, ParseBadgeIcon(""))
	assert.Equal(t, IconDefault, ParseBadgeIcon("trophy"))
	assert.Equal(t, IconDefault, ParseBadgeIcon("STAR"))
}
