package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstanceScope(t *testing.T) {
	scope := NewInstanceScope(7)
	assert.Equal(t, RealmID(7), scope.ID())
	assert.Equal(t, "i_7_session", scope.PrefixedName("session"))
	assert.Equal(t, "badger", Badger.String())
}
