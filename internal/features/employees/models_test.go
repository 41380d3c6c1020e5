package employees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice", (&Employee{Name: "Alice"}).DisplayName())
	assert.Equal(t, "Someone", (&Employee{}).DisplayName())
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&Employee{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Employee{Role: RoleUser}).IsAdmin())
	assert.False(t, (&Employee{Role: ""}).IsAdmin())
}
