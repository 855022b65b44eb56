package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitPostgres_InvalidDSN(t *testing.T) {
	invalidDSN := "invalid-dsn-format"

	db, sqlDB, err := InitPostgres(invalidDSN)

	assert.Error(t, err, "InitPostgres should return error with invalid DSN")
	assert.Nil(t, db, "GORM DB should be nil on error")
	assert.Nil(t, sqlDB, "SQL DB should be nil on error")
}
