package gateway_test

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stowed/cmd/cli"
	"Stowed/database"
	"Stowed/internal/config"
	"Stowed/internal/dto"
	"Stowed/internal/gateway"
	"Stowed/internal/routers"
)

var testDBSeq int

// startTestServer boots the full API on a random local port and
// returns a gateway client pointed at it.
func startTestServer(t *testing.T) gateway.Gateway {
	t.Helper()

	testDBSeq++
	cfg := config.Default()
	cfg.Server.Database.DSN = fmt.Sprintf("file:gwtest%d?mode=memory&cache=shared", testDBSeq)
	cfg.Storage.Path = t.TempDir()

	db, err := database.SetupDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { database.CloseDatabase(db) })

	server, err := cli.InitializeServer(cfg, db)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	routers.SetupRoutes(app, server)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	waitForServer(t, ln.Addr().String())

	clientCfg := cfg.Client
	clientCfg.BaseURL = "http://" + ln.Addr().String()
	return gateway.NewClient(clientCfg)
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not come up")
}

func login(t *testing.T, gw gateway.Gateway) {
	t.Helper()
	_, err := gw.Login(context.Background(), "admin@localhost", "admin")
	require.NoError(t, err)
}

func TestGateway_LoginAndMe(t *testing.T) {
	gw := startTestServer(t)

	_, err := gw.Login(context.Background(), "admin@localhost", "wrong")
	assert.True(t, gateway.IsAuth(err))

	resp, err := gw.Login(context.Background(), "admin@localhost", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	user, err := gw.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@localhost", user.Email)
}

func TestGateway_RequiresToken(t *testing.T) {
	gw := startTestServer(t)

	_, err := gw.ListItems(context.Background(), nil)
	assert.True(t, gateway.IsAuth(err))
}

func TestGateway_UploadDownloadRoundTrip(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)

	content := []byte("the quick brown fox jumps over the lazy dog")
	var sent []int
	item, err := gw.UploadFile(context.Background(), "fox.txt", bytes.NewReader(content), int64(len(content)), nil, func(pct int) {
		sent = append(sent, pct)
	})
	require.NoError(t, err)
	assert.Equal(t, "fox.txt", item.Name)
	assert.Equal(t, dto.KindFile, item.Kind)
	assert.Equal(t, int64(len(content)), item.Size)

	// progress is monotonic and finishes at 100
	require.NotEmpty(t, sent)
	for i := 1; i < len(sent); i++ {
		assert.GreaterOrEqual(t, sent[i], sent[i-1])
	}
	assert.Equal(t, 100, sent[len(sent)-1])

	var buf bytes.Buffer
	info, err := gw.DownloadItem(context.Background(), item.ID, &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "fox.txt", info.FileName)
	assert.Equal(t, content, buf.Bytes())
}

func TestGateway_FolderLifecycle(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	folder, err := gw.CreateFolder(ctx, "Documents", nil)
	require.NoError(t, err)
	assert.Equal(t, dto.KindFolder, folder.Kind)

	content := []byte("hello")
	file, err := gw.UploadFile(ctx, "hello.txt", bytes.NewReader(content), int64(len(content)), &folder.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, file.FolderID)
	assert.Equal(t, folder.ID, *file.FolderID)

	items, err := gw.ListItems(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// a populated folder refuses deletion
	err = gw.DeleteItem(ctx, folder.ID, dto.KindFolder)
	assert.True(t, gateway.IsConflict(err))

	renamed, err := gw.RenameItem(ctx, file.ID, dto.KindFile, "greeting.txt")
	require.NoError(t, err)
	assert.Equal(t, "greeting.txt", renamed.Name)

	moved, err := gw.MoveItem(ctx, file.ID, dto.KindFile, nil)
	require.NoError(t, err)
	assert.Nil(t, moved.FolderID)

	require.NoError(t, gw.DeleteItem(ctx, folder.ID, dto.KindFolder))
	require.NoError(t, gw.DeleteItem(ctx, file.ID, dto.KindFile))

	items, err = gw.ListItems(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGateway_SearchItems(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	_, err := gw.UploadFile(ctx, "report.pdf", strings.NewReader("x"), 1, nil, nil)
	require.NoError(t, err)
	_, err = gw.UploadFile(ctx, "notes.txt", strings.NewReader("y"), 1, nil, nil)
	require.NoError(t, err)

	results, err := gw.SearchItems(ctx, "REPORT")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "report.pdf", results[0].Name)
}

func TestGateway_NotFoundKind(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)

	_, err := gw.RenameItem(context.Background(), 9999, dto.KindFile, "ghost.txt")
	assert.True(t, gateway.IsNotFound(err))
}

func TestGateway_MoveFolderIntoItselfConflicts(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	parent, err := gw.CreateFolder(ctx, "parent", nil)
	require.NoError(t, err)
	child, err := gw.CreateFolder(ctx, "child", &parent.ID)
	require.NoError(t, err)

	_, err = gw.MoveItem(ctx, parent.ID, dto.KindFolder, &parent.ID)
	assert.True(t, gateway.IsConflict(err))

	_, err = gw.MoveItem(ctx, parent.ID, dto.KindFolder, &child.ID)
	assert.True(t, gateway.IsConflict(err))
}

func TestGateway_ShareFlow(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	content := []byte("shared payload")
	file, err := gw.UploadFile(ctx, "shared.txt", bytes.NewReader(content), int64(len(content)), nil, nil)
	require.NoError(t, err)

	resp, err := gw.ShareItem(ctx, file.ID, dto.ShareRequest{Role: "view", CanDownload: true, CanPreview: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ShareableLink)

	parts := strings.Split(resp.ShareableLink, "/share/")
	require.Len(t, parts, 2)
	token := parts[1]

	resolved, err := gw.ResolveShare(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "shared.txt", resolved.File.Name)
	assert.True(t, resolved.Permissions.CanDownload)

	var buf bytes.Buffer
	require.NoError(t, gw.DownloadShared(ctx, token, &buf, nil))
	assert.Equal(t, content, buf.Bytes())

	_, err = gw.ResolveShare(ctx, "no-such-token")
	assert.True(t, gateway.IsNotFound(err))
}

func TestGateway_ClipboardCopyPaste(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	content := []byte("copied bytes")
	file, err := gw.UploadFile(ctx, "orig.txt", bytes.NewReader(content), int64(len(content)), nil, nil)
	require.NoError(t, err)
	folder, err := gw.CreateFolder(ctx, "dest", nil)
	require.NoError(t, err)

	require.NoError(t, gw.CopyToClipboard(ctx, file.ID, dto.KindFile))

	entries, err := gw.GetClipboard(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, dto.ClipboardCopy, entries[0].Operation)

	pasted, err := gw.PasteFromClipboard(ctx, &folder.ID)
	require.NoError(t, err)
	assert.Equal(t, "orig.txt", pasted.Name)
	require.NotNil(t, pasted.FolderID)
	assert.Equal(t, folder.ID, *pasted.FolderID)
	assert.NotEqual(t, file.ID, pasted.ID)

	// paste consumes the clipboard
	entries, err = gw.GetClipboard(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = gw.PasteFromClipboard(ctx, nil)
	assert.True(t, gateway.IsConflict(err))
}

func TestGateway_ClipboardCutMoves(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	file, err := gw.UploadFile(ctx, "move-me.txt", strings.NewReader("z"), 1, nil, nil)
	require.NoError(t, err)
	folder, err := gw.CreateFolder(ctx, "dest", nil)
	require.NoError(t, err)

	require.NoError(t, gw.CutToClipboard(ctx, file.ID, dto.KindFile))
	pasted, err := gw.PasteFromClipboard(ctx, &folder.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, pasted.ID)
	require.NotNil(t, pasted.FolderID)
	assert.Equal(t, folder.ID, *pasted.FolderID)

	// the item moved, no duplicate exists
	items, err := gw.ListItems(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGateway_CopyPasteSameFolderRenames(t *testing.T) {
	gw := startTestServer(t)
	login(t, gw)
	ctx := context.Background()

	file, err := gw.UploadFile(ctx, "dup.txt", strings.NewReader("d"), 1, nil, nil)
	require.NoError(t, err)

	require.NoError(t, gw.CopyToClipboard(ctx, file.ID, dto.KindFile))
	pasted, err := gw.PasteFromClipboard(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "dup (copy).txt", pasted.Name)
}
