package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("empty ports returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingService)
	})

	t.Run("all ports creates server", func(t *testing.T) {
		server, err := NewServer(allPorts())
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing service is named in the error", func(t *testing.T) {
		ports := allPorts()
		ports.Deal = nil
		err := ports.Validate()
		require.ErrorIs(t, err, ErrMissingService)
		assert.Contains(t, err.Error(), "deal")
	})

	t.Run("all ports is valid", func(t *testing.T) {
		assert.NoError(t, allPorts().Validate())
	})
}
