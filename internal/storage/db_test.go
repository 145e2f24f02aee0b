package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenMemoryMigrates(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	assert.True(t, db.Migrator().HasTable(&User{}))
	assert.True(t, db.Migrator().HasIndex(&User{}, "Username"))
}

func TestUniqueUsernameIsTranslated(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, db.Create(&User{Username: "ada", PasswordHash: "x"}).Error)

	err = db.Create(&User{Username: "ada", PasswordHash: "y"}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	var u User
	require.NoError(t, db.Where("username = ?", "ada").First(&u).Error)
	assert.Equal(t, "x", u.PasswordHash)
}

func TestOpenFilePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Create(&User{Username: "grace", PasswordHash: "h"}).Error)
	require.NoError(t, Close(db))

	db, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	var count int64
	require.NoError(t, db.Model(&User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
