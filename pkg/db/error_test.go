package db

import (
	"errors"
	"testing"

	"github.com/stockswift/stockswift/internal/config"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsDuplicateKeyErr(errors.New("some other failure")))

	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: products.sku")))
	assert.True(t, IsDuplicateKeyErr(errors.New(`duplicate key value violates unique constraint "ux_products_sku"`)))
	assert.True(t, IsDuplicateKeyErr(errors.New("Error 1062: Duplicate entry")))
}

func TestStorageErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapStorage("sale finalize", cause)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "storage: sale finalize: disk full", err.Error())

	assert.NoError(t, WrapStorage("noop", nil))
}

func TestDialectRejectsUnknownType(t *testing.T) {
	_, err := Dialect(config.Config{DBType: "mongodb"})
	assert.Error(t, err)
}

func TestDialectSQLite(t *testing.T) {
	dialect, err := Dialect(config.Config{DBType: "sqlite", DBPath: "stockswift.db"})
	assert.NoError(t, err)
	assert.NotNil(t, dialect)
}
