// Package viewmodel reconciles the flat item collection fetched from
// the backend into folder-scoped, search-filtered views, and owns all
// navigational and clipboard state.
package viewmodel

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"Stowed/internal/dto"
	"Stowed/internal/gateway"
)

// RootName is the synthetic crumb shown for the nil folder.
const RootName = "My Drive"

// maxBreadcrumbHops caps the parent walk so malformed folder data
// (a cycle) cannot hang the client. The forest invariant is only
// enforced server-side.
const maxBreadcrumbHops = 1000

// Crumb is one hop of the ancestor path. A nil ID is the root.
type Crumb struct {
	ID   *uint
	Name string
}

// Snapshot is one consistent observation of the view state. Selection
// and search query always change together, so consumers reading a
// Snapshot can never see a half-applied navigation.
type Snapshot struct {
	Items            []dto.Item
	SelectedFolderID *uint
	SearchQuery      string
	Clipboard        []dto.ClipboardEntry
}

type ViewModel struct {
	gw  gateway.Gateway
	log *logrus.Logger

	mu               sync.Mutex
	items            []dto.Item
	selectedFolderID *uint
	searchQuery      string
	clipboard        []dto.ClipboardEntry
	issuedSeq        uint64
	onSessionExpired func()
}

func New(gw gateway.Gateway, log *logrus.Logger) *ViewModel {
	return &ViewModel{gw: gw, log: log}
}

// OnSessionExpired registers the hook fired when any gateway call
// comes back with an auth error.
func (vm *ViewModel) OnSessionExpired(fn func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.onSessionExpired = fn
}

func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return Snapshot{
		Items:            append([]dto.Item(nil), vm.items...),
		SelectedFolderID: vm.selectedFolderID,
		SearchQuery:      vm.searchQuery,
		Clipboard:        append([]dto.ClipboardEntry(nil), vm.clipboard...),
	}
}

func (vm *ViewModel) Items() []dto.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]dto.Item(nil), vm.items...)
}

func (vm *ViewModel) SelectedFolderID() *uint {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.selectedFolderID
}

func (vm *ViewModel) SearchQuery() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.searchQuery
}

// VisibleItems reduces the item collection to the sequence actually
// shown. A non-empty search query overlays the whole collection,
// matching names case-insensitively by substring and ignoring folder
// scope; otherwise items are scoped to the selected folder. Source
// order is preserved.
func (vm *ViewModel) VisibleItems() []dto.Item {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	out := make([]dto.Item, 0, len(vm.items))
	if vm.searchQuery != "" {
		needle := strings.ToLower(vm.searchQuery)
		for _, item := range vm.items {
			if strings.Contains(strings.ToLower(item.Name), needle) {
				out = append(out, item)
			}
		}
		return out
	}

	for _, item := range vm.items {
		if sameFolder(item.EffectiveParentID(), vm.selectedFolderID) {
			out = append(out, item)
		}
	}
	return out
}

func sameFolder(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Breadcrumbs derives the ancestor path of the selected folder, root
// first. The walk stops silently at the hop cap when the fetched
// folder list is inconsistent.
func (vm *ViewModel) Breadcrumbs() []Crumb {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	folders := make(map[uint]dto.Item, len(vm.items))
	for _, item := range vm.items {
		if item.Kind == dto.KindFolder {
			folders[item.ID] = item
		}
	}

	crumbs := []Crumb{}
	current := vm.selectedFolderID
	for hops := 0; current != nil && hops < maxBreadcrumbHops; hops++ {
		folder, ok := folders[*current]
		if !ok {
			break
		}
		id := folder.ID
		crumbs = append([]Crumb{{ID: &id, Name: folder.Name}}, crumbs...)
		current = folder.ParentID
	}
	return append([]Crumb{{ID: nil, Name: RootName}}, crumbs...)
}

// SelectFolder navigates into a folder (nil for root). Selection and
// search query change under one lock, then the folder contents are
// re-fetched.
func (vm *ViewModel) SelectFolder(ctx context.Context, folderID *uint) error {
	vm.mu.Lock()
	vm.selectedFolderID = folderID
	vm.searchQuery = ""
	vm.mu.Unlock()
	return vm.Refresh(ctx)
}

// Search sets the search overlay and pulls matches from the backend.
// An empty query clears the overlay and falls back to a plain list
// fetch, per the gateway contract.
func (vm *ViewModel) Search(ctx context.Context, query string) error {
	vm.mu.Lock()
	vm.searchQuery = query
	vm.mu.Unlock()

	if query == "" {
		return vm.Refresh(ctx)
	}

	seq := vm.nextSeq()
	results, err := vm.gw.SearchItems(ctx, query)
	if err != nil {
		return vm.fail("search", err)
	}
	vm.apply(seq, results)
	return nil
}

// Refresh re-fetches the item collection. Responses that lost the
// race to a later-issued fetch are discarded.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	seq := vm.nextSeq()
	items, err := vm.gw.ListItems(ctx, vm.SelectedFolderID())
	if err != nil {
		return vm.fail("list", err)
	}
	if !vm.apply(seq, items) && vm.log != nil {
		vm.log.WithFields(logrus.Fields{"seq": seq}).Debug("discarded stale fetch response")
	}
	return nil
}

func (vm *ViewModel) nextSeq() uint64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.issuedSeq++
	return vm.issuedSeq
}

func (vm *ViewModel) apply(seq uint64, items []dto.Item) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if seq != vm.issuedSeq {
		return false
	}
	vm.items = items
	return true
}

// fail surfaces a gateway failure without touching any view state.
// Auth errors additionally tear down the session.
func (vm *ViewModel) fail(op string, err error) error {
	if vm.log != nil {
		vm.log.WithFields(logrus.Fields{"op": op, "error": err.Error()}).Warn("gateway call failed")
	}
	if gateway.IsAuth(err) {
		vm.expireSession()
	}
	return err
}

func (vm *ViewModel) expireSession() {
	vm.mu.Lock()
	vm.items = nil
	vm.selectedFolderID = nil
	vm.searchQuery = ""
	vm.clipboard = nil
	hook := vm.onSessionExpired
	vm.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// CreateFolder creates a folder under the current selection and
// re-fetches on success.
func (vm *ViewModel) CreateFolder(ctx context.Context, name string) (*dto.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &gateway.Error{Kind: gateway.KindValidation, Message: "folder name must not be empty"}
	}
	folder, err := vm.gw.CreateFolder(ctx, name, vm.SelectedFolderID())
	if err != nil {
		return nil, vm.fail("create-folder", err)
	}
	return folder, vm.Refresh(ctx)
}

func (vm *ViewModel) Rename(ctx context.Context, id uint, kind, newName string) error {
	if _, err := vm.gw.RenameItem(ctx, id, kind, newName); err != nil {
		return vm.fail("rename", err)
	}
	return vm.Refresh(ctx)
}

func (vm *ViewModel) Move(ctx context.Context, id uint, kind string, targetFolderID *uint) error {
	if _, err := vm.gw.MoveItem(ctx, id, kind, targetFolderID); err != nil {
		return vm.fail("move", err)
	}
	return vm.Refresh(ctx)
}

func (vm *ViewModel) Delete(ctx context.Context, id uint, kind string) error {
	if err := vm.gw.DeleteItem(ctx, id, kind); err != nil {
		return vm.fail("delete", err)
	}
	return vm.Refresh(ctx)
}

// Copy marks an item for duplication on the next paste. The clipboard
// holds one pending set at a time; every copy or cut replaces it.
func (vm *ViewModel) Copy(ctx context.Context, id uint, kind string) error {
	if err := vm.gw.CopyToClipboard(ctx, id, kind); err != nil {
		return vm.fail("copy", err)
	}
	vm.setClipboard(dto.ClipboardEntry{ItemID: id, ItemKind: kind, Operation: dto.ClipboardCopy})
	return nil
}

// Cut marks an item for relocation. Shells should render cut items
// with reduced emphasis until pasted or superseded; IsCut reports the
// marker.
func (vm *ViewModel) Cut(ctx context.Context, id uint, kind string) error {
	if err := vm.gw.CutToClipboard(ctx, id, kind); err != nil {
		return vm.fail("cut", err)
	}
	vm.setClipboard(dto.ClipboardEntry{ItemID: id, ItemKind: kind, Operation: dto.ClipboardCut})
	return nil
}

func (vm *ViewModel) setClipboard(entries ...dto.ClipboardEntry) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.clipboard = entries
}

func (vm *ViewModel) Clipboard() []dto.ClipboardEntry {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return append([]dto.ClipboardEntry(nil), vm.clipboard...)
}

// IsCut reports whether an item carries a pending cut marker.
func (vm *ViewModel) IsCut(id uint) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	for _, entry := range vm.clipboard {
		if entry.ItemID == id && entry.Operation == dto.ClipboardCut {
			return true
		}
	}
	return false
}

// Paste applies the pending clipboard set to the selected folder. The
// pasted item is never spliced in optimistically: the server may have
// renamed on conflict or refused, so a full re-fetch follows.
func (vm *ViewModel) Paste(ctx context.Context) (*dto.Item, error) {
	item, err := vm.gw.PasteFromClipboard(ctx, vm.SelectedFolderID())
	if err != nil {
		return nil, vm.fail("paste", err)
	}
	vm.setClipboard()
	return item, vm.Refresh(ctx)
}

// SyncClipboard pulls the authoritative clipboard from the backend.
func (vm *ViewModel) SyncClipboard(ctx context.Context) error {
	entries, err := vm.gw.GetClipboard(ctx)
	if err != nil {
		return vm.fail("clipboard", err)
	}
	vm.setClipboard(entries...)
	return nil
}

// Upload sends a file into the currently selected folder and
// re-fetches on success. Progress flows through to the caller's
// callback untouched; the gateway already enforces monotonicity.
func (vm *ViewModel) Upload(ctx context.Context, name string, content io.Reader, size int64, onProgress gateway.ProgressFunc) (*dto.Item, error) {
	item, err := vm.gw.UploadFile(ctx, name, content, size, vm.SelectedFolderID(), onProgress)
	if err != nil {
		return nil, vm.fail("upload", err)
	}
	return item, vm.Refresh(ctx)
}

// Download streams an item's content into dst.
func (vm *ViewModel) Download(ctx context.Context, id uint, dst io.Writer, onProgress gateway.ProgressFunc) (*dto.DownloadResponse, error) {
	info, err := vm.gw.DownloadItem(ctx, id, dst, onProgress)
	if err != nil {
		return nil, vm.fail("download", err)
	}
	return info, nil
}

// Share creates a shareable link for a file.
func (vm *ViewModel) Share(ctx context.Context, id uint, req dto.ShareRequest) (*dto.ShareResponse, error) {
	resp, err := vm.gw.ShareItem(ctx, id, req)
	if err != nil {
		return nil, vm.fail("share", err)
	}
	return resp, nil
}
