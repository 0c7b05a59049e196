package db

import (
	"path/filepath"
	"testing"

	"github.com/pokerjest/workshopTitleTool/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_FileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "workshop.db")
	conn, err := Open(path)
	require.NoError(t, err)

	item := model.WorkshopItem{WorkshopID: "42", Title: "(WIP) Thing", BaseTitle: "Thing"}
	require.NoError(t, conn.Create(&item).Error)

	var got model.WorkshopItem
	require.NoError(t, conn.Where("workshop_id = ?", "42").First(&got).Error)
	assert.Equal(t, "Thing", got.BaseTitle)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestInitDB_Memory(t *testing.T) {
	require.NoError(t, InitDB(":memory:"))
	defer func() {
		assert.NoError(t, CloseDB())
		DB = nil
	}()

	// unique workshop id
	require.NoError(t, DB.Create(&model.WorkshopItem{WorkshopID: "1"}).Error)
	assert.Error(t, DB.Create(&model.WorkshopItem{WorkshopID: "1"}).Error)
}

func TestCloseDB_Nil(t *testing.T) {
	DB = nil
	assert.NoError(t, CloseDB())
}
