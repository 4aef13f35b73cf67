package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Stowed/internal/config"
	"Stowed/internal/models"
	"Stowed/internal/repository"
)

func setupItemService(t *testing.T) ItemService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Folder{}, &models.File{}, &models.ShareGrant{}, &models.DownloadTicket{}, &models.ClipboardEntry{}))

	cfg := config.Default()
	cfg.Storage.Path = t.TempDir()
	return NewItemService(repository.NewFileRepository(db), repository.NewFolderRepository(db), NewBlobService(cfg))
}

func TestItemService_CreateFolderValidation(t *testing.T) {
	service := setupItemService(t)

	_, err := service.CreateFolder("   ", nil)
	assert.True(t, IsValidation(err))

	missing := uint(999)
	_, err = service.CreateFolder("orphan", &missing)
	assert.True(t, IsNotFound(err))

	folder, err := service.CreateFolder("  Documents  ", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Documents", folder.Name)
}

func TestItemService_SaveUploadFallsBackToExtension(t *testing.T) {
	service := setupItemService(t)

	file, err := service.SaveUpload("notes.txt", "", nil, strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", file.Format)
	assert.Equal(t, int64(5), file.Size)
	assert.NotEmpty(t, file.SHA256)

	blob, err := service.SaveUpload("mystery", "", nil, strings.NewReader("??"))
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", blob.Format)
}

func TestItemService_ListAllOrdersFoldersFirst(t *testing.T) {
	service := setupItemService(t)

	_, err := service.SaveUpload("z.txt", "text/plain", nil, strings.NewReader("z"))
	require.NoError(t, err)
	_, err = service.CreateFolder("A Folder", nil)
	require.NoError(t, err)

	items, err := service.ListAll()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "folder", items[0].Kind)
	assert.Equal(t, "file", items[1].Kind)
}

func TestItemService_MoveFolderCycleRefused(t *testing.T) {
	service := setupItemService(t)

	parent, err := service.CreateFolder("parent", nil)
	require.NoError(t, err)
	child, err := service.CreateFolder("child", &parent.ID)
	require.NoError(t, err)
	grandchild, err := service.CreateFolder("grandchild", &child.ID)
	require.NoError(t, err)

	_, err = service.MoveFolder(parent.ID, &parent.ID)
	assert.True(t, IsConflict(err))

	_, err = service.MoveFolder(parent.ID, &grandchild.ID)
	assert.True(t, IsConflict(err))

	moved, err := service.MoveFolder(grandchild.ID, &parent.ID)
	assert.NoError(t, err)
	assert.Equal(t, parent.ID, *moved.ParentID)
}

func TestItemService_DeleteFolderRequiresEmpty(t *testing.T) {
	service := setupItemService(t)

	folder, err := service.CreateFolder("full", nil)
	require.NoError(t, err)
	file, err := service.SaveUpload("inside.txt", "text/plain", &folder.ID, strings.NewReader("x"))
	require.NoError(t, err)

	err = service.DeleteFolder(folder.ID)
	assert.True(t, IsConflict(err))

	require.NoError(t, service.DeleteFile(file.ID))
	assert.NoError(t, service.DeleteFolder(folder.ID))
}

func TestItemService_DuplicateFileNaming(t *testing.T) {
	service := setupItemService(t)

	file, err := service.SaveUpload("report.pdf", "application/pdf", nil, strings.NewReader("pdf"))
	require.NoError(t, err)

	first, err := service.DuplicateFile(file.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "report (copy).pdf", first.Name)
	assert.Equal(t, file.SHA256, first.SHA256)

	second, err := service.DuplicateFile(file.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "report (copy 2).pdf", second.Name)
}

func TestItemService_CopyFolderTree(t *testing.T) {
	service := setupItemService(t)

	src, err := service.CreateFolder("src", nil)
	require.NoError(t, err)
	sub, err := service.CreateFolder("sub", &src.ID)
	require.NoError(t, err)
	_, err = service.SaveUpload("deep.txt", "text/plain", &sub.ID, strings.NewReader("deep"))
	require.NoError(t, err)
	dest, err := service.CreateFolder("dest", nil)
	require.NoError(t, err)

	clone, err := service.CopyFolderTree(src.ID, &dest.ID)
	require.NoError(t, err)
	assert.Equal(t, "src", clone.Name)
	assert.Equal(t, dest.ID, *clone.ParentID)

	items, err := service.ListAll()
	require.NoError(t, err)
	// src, sub, dest, clone of src, clone of sub, and two files
	assert.Len(t, items, 7)

	_, err = service.CopyFolderTree(src.ID, &sub.ID)
	assert.True(t, IsConflict(err))
}

func TestItemService_SearchSpansKinds(t *testing.T) {
	service := setupItemService(t)

	_, err := service.CreateFolder("Project Alpha", nil)
	require.NoError(t, err)
	_, err = service.SaveUpload("alpha-notes.txt", "text/plain", nil, strings.NewReader("a"))
	require.NoError(t, err)
	_, err = service.SaveUpload("beta.txt", "text/plain", nil, strings.NewReader("b"))
	require.NoError(t, err)

	results, err := service.Search("alpha")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}
