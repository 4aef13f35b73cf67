package viewmodel

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"Stowed/internal/dto"
	"Stowed/internal/gateway"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if resp, ok := args.Get(0).(*dto.LoginResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) Me(ctx context.Context) (*dto.User, error) {
	args := m.Called(ctx)
	if user, ok := args.Get(0).(*dto.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) ListItems(ctx context.Context, folderID *uint) ([]dto.Item, error) {
	args := m.Called(ctx, folderID)
	if items, ok := args.Get(0).([]dto.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) SearchItems(ctx context.Context, query string) ([]dto.Item, error) {
	args := m.Called(ctx, query)
	if items, ok := args.Get(0).([]dto.Item); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) CreateFolder(ctx context.Context, name string, parentID *uint) (*dto.Item, error) {
	args := m.Called(ctx, name, parentID)
	if item, ok := args.Get(0).(*dto.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) RenameItem(ctx context.Context, id uint, kind, newName string) (*dto.Item, error) {
	args := m.Called(ctx, id, kind, newName)
	if item, ok := args.Get(0).(*dto.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) MoveItem(ctx context.Context, id uint, kind string, targetFolderID *uint) (*dto.Item, error) {
	args := m.Called(ctx, id, kind, targetFolderID)
	if item, ok := args.Get(0).(*dto.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) DeleteItem(ctx context.Context, id uint, kind string) error {
	args := m.Called(ctx, id, kind)
	return args.Error(0)
}

func (m *MockGateway) UploadFile(ctx context.Context, name string, content io.Reader, size int64, folderID *uint, onProgress gateway.ProgressFunc) (*dto.Item, error) {
	args := m.Called(ctx, name, content, size, folderID, onProgress)
	if item, ok := args.Get(0).(*dto.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) DownloadItem(ctx context.Context, id uint, dst io.Writer, onProgress gateway.ProgressFunc) (*dto.DownloadResponse, error) {
	args := m.Called(ctx, id, dst, onProgress)
	if resp, ok := args.Get(0).(*dto.DownloadResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) ShareItem(ctx context.Context, id uint, req dto.ShareRequest) (*dto.ShareResponse, error) {
	args := m.Called(ctx, id, req)
	if resp, ok := args.Get(0).(*dto.ShareResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) ResolveShare(ctx context.Context, token string) (*dto.ResolveShareResponse, error) {
	args := m.Called(ctx, token)
	if resp, ok := args.Get(0).(*dto.ResolveShareResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) DownloadShared(ctx context.Context, token string, dst io.Writer, onProgress gateway.ProgressFunc) error {
	args := m.Called(ctx, token, dst, onProgress)
	return args.Error(0)
}

func (m *MockGateway) CopyToClipboard(ctx context.Context, id uint, kind string) error {
	args := m.Called(ctx, id, kind)
	return args.Error(0)
}

func (m *MockGateway) CutToClipboard(ctx context.Context, id uint, kind string) error {
	args := m.Called(ctx, id, kind)
	return args.Error(0)
}

func (m *MockGateway) PasteFromClipboard(ctx context.Context, targetFolderID *uint) (*dto.Item, error) {
	args := m.Called(ctx, targetFolderID)
	if item, ok := args.Get(0).(*dto.Item); ok {
		return item, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) GetClipboard(ctx context.Context) ([]dto.ClipboardEntry, error) {
	args := m.Called(ctx)
	if entries, ok := args.Get(0).([]dto.ClipboardEntry); ok {
		return entries, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGateway) SetToken(token string) {
	m.Called(token)
}

func uintPtr(v uint) *uint { return &v }

func sampleItems() []dto.Item {
	docs := uintPtr(1)
	return []dto.Item{
		{ID: 1, Name: "Documents", Kind: dto.KindFolder},
		{ID: 2, Name: "notes.txt", Kind: dto.KindFile, Format: "text/plain"},
		{ID: 3, Name: "report.pdf", Kind: dto.KindFile, Format: "application/pdf", FolderID: docs},
		{ID: 4, Name: "Photos", Kind: dto.KindFolder, ParentID: docs},
		{ID: 5, Name: "summary notes.md", Kind: dto.KindFile, Format: "text/markdown", FolderID: docs},
	}
}

func TestVisibleItems_ScopedToSelectedFolder(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("ListItems", mock.Anything, (*uint)(nil)).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.Refresh(context.Background()))

	visible := vm.VisibleItems()
	assert.Len(t, visible, 2)
	assert.Equal(t, "Documents", visible[0].Name)
	assert.Equal(t, "notes.txt", visible[1].Name)

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.SelectFolder(context.Background(), uintPtr(1)))

	visible = vm.VisibleItems()
	assert.Len(t, visible, 3)
	names := []string{visible[0].Name, visible[1].Name, visible[2].Name}
	assert.Equal(t, []string{"report.pdf", "Photos", "summary notes.md"}, names)
	mockGw.AssertExpectations(t)
}

func TestVisibleItems_SearchOverlayIgnoresScope(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.SelectFolder(context.Background(), uintPtr(1)))

	mockGw.On("SearchItems", mock.Anything, "NOTES").Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.Search(context.Background(), "NOTES"))

	// matches come from every folder, matched case-insensitively
	visible := vm.VisibleItems()
	assert.Len(t, visible, 2)
	assert.Equal(t, "notes.txt", visible[0].Name)
	assert.Equal(t, "summary notes.md", visible[1].Name)
	mockGw.AssertExpectations(t)
}

func TestSelectFolder_ClearsSearchQuery(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("SearchItems", mock.Anything, "pdf").Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.Search(context.Background(), "pdf"))
	assert.Equal(t, "pdf", vm.SearchQuery())

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.SelectFolder(context.Background(), uintPtr(1)))

	snap := vm.Snapshot()
	assert.Empty(t, snap.SearchQuery)
	assert.Equal(t, uint(1), *snap.SelectedFolderID)
	mockGw.AssertExpectations(t)
}

func TestSearch_EmptyQueryFallsBackToList(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.Search(context.Background(), ""))
	assert.Empty(t, vm.SearchQuery())
	mockGw.AssertNotCalled(t, "SearchItems", mock.Anything, mock.Anything)
	mockGw.AssertExpectations(t)
}

func TestBreadcrumbs_WalksToRoot(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.SelectFolder(context.Background(), uintPtr(4)))

	crumbs := vm.Breadcrumbs()
	assert.Len(t, crumbs, 3)
	assert.Equal(t, RootName, crumbs[0].Name)
	assert.Nil(t, crumbs[0].ID)
	assert.Equal(t, "Documents", crumbs[1].Name)
	assert.Equal(t, "Photos", crumbs[2].Name)
}

func TestBreadcrumbs_SurvivesFolderCycle(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	cyclic := []dto.Item{
		{ID: 1, Name: "A", Kind: dto.KindFolder, ParentID: uintPtr(2)},
		{ID: 2, Name: "B", Kind: dto.KindFolder, ParentID: uintPtr(1)},
	}
	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(cyclic, nil).Once()
	assert.NoError(t, vm.SelectFolder(context.Background(), uintPtr(1)))

	crumbs := vm.Breadcrumbs()
	assert.NotEmpty(t, crumbs)
	assert.LessOrEqual(t, len(crumbs), maxBreadcrumbHops+1)
}

func TestRefresh_DiscardsStaleResponse(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	slowStarted := make(chan struct{})
	release := make(chan struct{})
	stale := []dto.Item{{ID: 99, Name: "stale.txt", Kind: dto.KindFile}}
	fresh := []dto.Item{{ID: 100, Name: "fresh.txt", Kind: dto.KindFile}}

	mockGw.On("ListItems", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(slowStarted)
		<-release
	}).Return(stale, nil).Once()
	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(fresh, nil).Once()

	done := make(chan error, 1)
	go func() { done <- vm.Refresh(context.Background()) }()
	<-slowStarted

	// a later fetch wins the sequence race
	assert.NoError(t, vm.Refresh(context.Background()))
	close(release)
	assert.NoError(t, <-done)

	items := vm.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, "fresh.txt", items[0].Name)
}

func TestMutation_FailureLeavesStateUntouched(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.Refresh(context.Background()))
	before := vm.Snapshot()

	mockGw.On("RenameItem", mock.Anything, uint(2), dto.KindFile, "taken.txt").
		Return(nil, &gateway.Error{Kind: gateway.KindConflict, Message: "name already exists"}).Once()

	err := vm.Rename(context.Background(), 2, dto.KindFile, "taken.txt")
	assert.Error(t, err)
	assert.True(t, gateway.IsConflict(err))

	after := vm.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.SearchQuery, after.SearchQuery)
	mockGw.AssertExpectations(t)
}

func TestCreateFolder_RejectsBlankName(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	_, err := vm.CreateFolder(context.Background(), "   ")
	assert.Error(t, err)
	assert.True(t, gateway.IsKind(err, gateway.KindValidation))
	mockGw.AssertNotCalled(t, "CreateFolder", mock.Anything, mock.Anything, mock.Anything)
}

func TestClipboard_CutMarkerAndPaste(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("CutToClipboard", mock.Anything, uint(2), dto.KindFile).Return(nil).Once()
	assert.NoError(t, vm.Cut(context.Background(), 2, dto.KindFile))
	assert.True(t, vm.IsCut(2))
	assert.False(t, vm.IsCut(3))

	// a later copy replaces the pending cut
	mockGw.On("CopyToClipboard", mock.Anything, uint(3), dto.KindFile).Return(nil).Once()
	assert.NoError(t, vm.Copy(context.Background(), 3, dto.KindFile))
	assert.False(t, vm.IsCut(2))
	assert.Len(t, vm.Clipboard(), 1)

	pasted := &dto.Item{ID: 10, Name: "report (copy).pdf", Kind: dto.KindFile}
	mockGw.On("PasteFromClipboard", mock.Anything, (*uint)(nil)).Return(pasted, nil).Once()
	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()

	item, err := vm.Paste(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, uint(10), item.ID)
	assert.Empty(t, vm.Clipboard())
	mockGw.AssertExpectations(t)
}

func TestAuthFailure_ExpiresSession(t *testing.T) {
	mockGw := new(MockGateway)
	vm := New(mockGw, nil)

	mockGw.On("ListItems", mock.Anything, mock.Anything).Return(sampleItems(), nil).Once()
	assert.NoError(t, vm.Refresh(context.Background()))

	expired := false
	vm.OnSessionExpired(func() { expired = true })

	mockGw.On("ListItems", mock.Anything, mock.Anything).
		Return(nil, &gateway.Error{Kind: gateway.KindAuth, Status: 401, Message: "token expired"}).Once()

	err := vm.Refresh(context.Background())
	assert.Error(t, err)
	assert.True(t, expired)
	assert.Empty(t, vm.Items())
	assert.Nil(t, vm.SelectedFolderID())
	mockGw.AssertExpectations(t)
}
