package store

import (
	"context"
	"testing"

	"libraryapi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	set, err := Open(context.Background(), config.DBCfg{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer set.Close()

	assert.NotNil(t, set.Authors)
	assert.NotNil(t, set.Books)
	assert.NotNil(t, set.UnitOfWork)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DBCfg{Driver: "sqlite"})
	assert.Error(t, err)
}
