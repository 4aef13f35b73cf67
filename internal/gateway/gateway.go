// Package gateway is the HTTP boundary to the drive backend. Every
// observation and mutation of server-held state goes through it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"Stowed/internal/config"
	"Stowed/internal/dto"
)

// ProgressFunc receives transfer progress as a 0..100 percentage.
// Calls are monotonically non-decreasing and reach 100 only when the
// transfer succeeded.
type ProgressFunc func(percent int)

// Gateway is the remote item contract. Calls are single-shot: no
// retries happen at this layer.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Me(ctx context.Context) (*dto.User, error)
	Logout(ctx context.Context) error

	ListItems(ctx context.Context, folderID *uint) ([]dto.Item, error)
	SearchItems(ctx context.Context, query string) ([]dto.Item, error)
	CreateFolder(ctx context.Context, name string, parentID *uint) (*dto.Item, error)
	RenameItem(ctx context.Context, id uint, kind, newName string) (*dto.Item, error)
	MoveItem(ctx context.Context, id uint, kind string, targetFolderID *uint) (*dto.Item, error)
	DeleteItem(ctx context.Context, id uint, kind string) error

	UploadFile(ctx context.Context, name string, content io.Reader, size int64, folderID *uint, onProgress ProgressFunc) (*dto.Item, error)
	DownloadItem(ctx context.Context, id uint, dst io.Writer, onProgress ProgressFunc) (*dto.DownloadResponse, error)

	ShareItem(ctx context.Context, id uint, req dto.ShareRequest) (*dto.ShareResponse, error)
	ResolveShare(ctx context.Context, token string) (*dto.ResolveShareResponse, error)
	DownloadShared(ctx context.Context, token string, dst io.Writer, onProgress ProgressFunc) error

	CopyToClipboard(ctx context.Context, id uint, kind string) error
	CutToClipboard(ctx context.Context, id uint, kind string) error
	PasteFromClipboard(ctx context.Context, targetFolderID *uint) (*dto.Item, error)
	GetClipboard(ctx context.Context) ([]dto.ClipboardEntry, error)

	SetToken(token string)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(cfg config.ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		token:      cfg.Token,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) applyAuth(req *http.Request) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// do issues one JSON request and decodes the response into out when
// non-nil. Error bodies are surfaced verbatim inside *Error.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var errResp dto.ErrorResponse
	if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
		return statusError(resp.StatusCode, errResp.Error)
	}
	return statusError(resp.StatusCode, "")
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*dto.User, error) {
	var out dto.MeResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.SetToken("")
	return err
}

// ListItems fetches the account's full item collection. The backend
// collection endpoint is not folder-scoped; scoping happens in the
// view-model, so folderID only documents the caller's intent.
func (c *Client) ListItems(ctx context.Context, folderID *uint) ([]dto.Item, error) {
	_ = folderID
	var out dto.ItemsResponse
	if err := c.do(ctx, http.MethodGet, "/files/with-folders", nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// SearchItems queries by name substring. Callers must not pass an
// empty query; they fall back to ListItems instead.
func (c *Client) SearchItems(ctx context.Context, query string) ([]dto.Item, error) {
	var out dto.SearchResponse
	path := "/search?query=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

func (c *Client) CreateFolder(ctx context.Context, name string, parentID *uint) (*dto.Item, error) {
	req := struct {
		Name     string `json:"name"`
		ParentID *uint  `json:"parent_id"`
	}{Name: name, ParentID: parentID}
	var out dto.FolderResponse
	if err := c.do(ctx, http.MethodPost, "/folders/create", req, &out); err != nil {
		return nil, err
	}
	return &out.Folder, nil
}

func itemPath(id uint, kind string) string {
	if kind == dto.KindFolder {
		return fmt.Sprintf("/folders/%d", id)
	}
	return fmt.Sprintf("/files/%d", id)
}

func (c *Client) RenameItem(ctx context.Context, id uint, kind, newName string) (*dto.Item, error) {
	req := struct {
		Name string `json:"name"`
	}{Name: newName}
	return c.patchItem(ctx, id, kind, req)
}

func (c *Client) MoveItem(ctx context.Context, id uint, kind string, targetFolderID *uint) (*dto.Item, error) {
	if kind == dto.KindFolder {
		req := struct {
			ParentID *uint `json:"parent_id"`
		}{ParentID: targetFolderID}
		return c.patchItem(ctx, id, kind, req)
	}
	req := struct {
		FolderID *uint `json:"folder_id"`
	}{FolderID: targetFolderID}
	return c.patchItem(ctx, id, kind, req)
}

func (c *Client) patchItem(ctx context.Context, id uint, kind string, req any) (*dto.Item, error) {
	if kind == dto.KindFolder {
		var out dto.FolderResponse
		if err := c.do(ctx, http.MethodPatch, itemPath(id, kind), req, &out); err != nil {
			return nil, err
		}
		return &out.Folder, nil
	}
	var out dto.FileResponse
	if err := c.do(ctx, http.MethodPatch, itemPath(id, kind), req, &out); err != nil {
		return nil, err
	}
	return &out.File, nil
}

func (c *Client) DeleteItem(ctx context.Context, id uint, kind string) error {
	var out dto.MessageResponse
	return c.do(ctx, http.MethodDelete, itemPath(id, kind), nil, &out)
}

func (c *Client) ShareItem(ctx context.Context, id uint, req dto.ShareRequest) (*dto.ShareResponse, error) {
	var out dto.ShareResponse
	path := fmt.Sprintf("/files/%d/share", id)
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResolveShare(ctx context.Context, token string) (*dto.ResolveShareResponse, error) {
	var out dto.ResolveShareResponse
	if err := c.do(ctx, http.MethodGet, "/share/"+url.PathEscape(token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CopyToClipboard(ctx context.Context, id uint, kind string) error {
	var out dto.MessageResponse
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/clipboard/copy/%s/%d", kind, id), nil, &out)
}

func (c *Client) CutToClipboard(ctx context.Context, id uint, kind string) error {
	var out dto.MessageResponse
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/clipboard/cut/%s/%d", kind, id), nil, &out)
}

func (c *Client) PasteFromClipboard(ctx context.Context, targetFolderID *uint) (*dto.Item, error) {
	path := "/clipboard/paste"
	if targetFolderID != nil {
		path += "/" + strconv.FormatUint(uint64(*targetFolderID), 10)
	}
	var out dto.PasteResponse
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Item, nil
}

func (c *Client) GetClipboard(ctx context.Context) ([]dto.ClipboardEntry, error) {
	var out dto.ClipboardResponse
	if err := c.do(ctx, http.MethodGet, "/clipboard", nil, &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}
