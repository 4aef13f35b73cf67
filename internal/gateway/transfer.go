package gateway

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"Stowed/internal/dto"
)

// progressEmitter enforces the progress contract: percentages are
// clamped to 0..100, never decrease, and 100 is only emitted by the
// success path.
type progressEmitter struct {
	fn   ProgressFunc
	last int
}

func newProgressEmitter(fn ProgressFunc) *progressEmitter {
	return &progressEmitter{fn: fn, last: -1}
}

func (p *progressEmitter) emit(percent int) {
	if p.fn == nil {
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= p.last {
		return
	}
	p.last = percent
	p.fn(percent)
}

// countingReader reports progress as bytes pass through, holding back
// the final percent until the server has confirmed the transfer.
type countingReader struct {
	r     io.Reader
	total int64
	read  int64
	emit  *progressEmitter
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.read += int64(n)
	if cr.total > 0 {
		pct := int(cr.read * 100 / cr.total)
		if pct > 99 {
			pct = 99
		}
		cr.emit.emit(pct)
	}
	return n, err
}

// UploadFile streams a multipart upload. onProgress observes the send
// side and culminates in 100 once the server has acknowledged.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, size int64, folderID *uint, onProgress ProgressFunc) (*dto.Item, error) {
	emit := newProgressEmitter(onProgress)

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		var err error
		defer func() { pw.CloseWithError(err) }()
		if folderID != nil {
			if err = mw.WriteField("folder_id", strconv.FormatUint(uint64(*folderID), 10)); err != nil {
				return
			}
		}
		part, perr := mw.CreateFormFile("file", name)
		if perr != nil {
			err = perr
			return
		}
		if _, err = io.Copy(part, &countingReader{r: content, total: size, emit: emit}); err != nil {
			return
		}
		err = mw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files/upload", pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.applyAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp)
	}

	var out dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	emit.emit(100)
	return &out.File, nil
}

// DownloadItem resolves the item's signed URL and streams its content
// into dst, reporting receive progress.
func (c *Client) DownloadItem(ctx context.Context, id uint, dst io.Writer, onProgress ProgressFunc) (*dto.DownloadResponse, error) {
	var info dto.DownloadResponse
	path := "/files/" + strconv.FormatUint(uint64(id), 10) + "/download"
	if err := c.do(ctx, http.MethodGet, path, nil, &info); err != nil {
		return nil, err
	}
	if err := c.stream(ctx, info.SignedURL, info.FileSize, dst, onProgress); err != nil {
		return nil, err
	}
	return &info, nil
}

// DownloadShared streams a public share's content. No auth is sent:
// the token itself is the grant.
func (c *Client) DownloadShared(ctx context.Context, token string, dst io.Writer, onProgress ProgressFunc) error {
	return c.stream(ctx, "/share/"+token+"/download", -1, dst, onProgress)
}

func (c *Client) stream(ctx context.Context, rawURL string, total int64, dst io.Writer, onProgress ProgressFunc) error {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		rawURL = c.baseURL + rawURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if total <= 0 {
		total = resp.ContentLength
	}
	emit := newProgressEmitter(onProgress)
	if _, err := io.Copy(dst, &countingReader{r: resp.Body, total: total, emit: emit}); err != nil {
		return networkError(err)
	}
	emit.emit(100)
	return nil
}
