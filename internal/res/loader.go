// Package res fetches the images referenced by exported items. Paths may be
// local files, http(s) URLs or data URLs; every result is cached by its
// reference.
package res

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrNotImage is returned when a reference resolves to something that is not
// an image
var ErrNotImage = errors.New("resource is not an image")

// ErrTooLarge is returned when an image exceeds the loader's size limit
var ErrTooLarge = errors.New("image too large")

// MaxImageBytes is the default size limit of a single image
const MaxImageBytes = 32 << 20

// Resource represents a loaded image
type Resource struct {
	URL      string
	Data     []byte
	MimeType string
}

// IsSVG reports whether the resource holds SVG markup
func (r *Resource) IsSVG() bool {
	return r.MimeType == "image/svg+xml"
}

// Reader returns a reader over the resource bytes
func (r *Resource) Reader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// Loader handles loading images
type Loader struct {
	// BaseDir resolves relative file paths
	BaseDir string
	// MaxBytes caps every loaded image, whatever its source
	MaxBytes int64

	cache     map[string]*Resource
	cacheLock sync.RWMutex

	searchPaths []string

	client *http.Client
}

// NewLoader creates a new image loader rooted at baseDir
func NewLoader(baseDir string) *Loader {
	return &Loader{
		BaseDir:     baseDir,
		MaxBytes:    MaxImageBytes,
		cache:       make(map[string]*Resource),
		searchPaths: []string{},
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// AddSearchPath adds a directory to search for images missing from BaseDir
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// SetHTTPClient replaces the client used for remote images
func (l *Loader) SetHTTPClient(c *http.Client) {
	if c != nil {
		l.client = c
	}
}

// Load loads an image from a path, URL or data URL
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.New("empty image reference")
	}

	l.cacheLock.RLock()
	if res, ok := l.cache[ref]; ok {
		l.cacheLock.RUnlock()
		return res, nil
	}
	l.cacheLock.RUnlock()

	var (
		res *Resource
		err error
	)
	switch {
	case strings.HasPrefix(ref, "data:"):
		res, err = parseDataURL(ref, l.limit())
	case isRemote(ref):
		res, err = l.loadRemote(ctx, ref)
	default:
		res, err = l.loadLocal(l.resolvePath(ref))
	}
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(res.MimeType, "image/") {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, ref)
	}

	l.cacheLock.Lock()
	l.cache[ref] = res
	l.cacheLock.Unlock()
	return res, nil
}

func (l *Loader) limit() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return MaxImageBytes
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// parseDataURL parses a data URL (RFC 2397) such as
// data:image/png;base64,<base64>
func parseDataURL(u string, limit int64) (*Resource, error) {
	s := strings.TrimPrefix(u, "data:")
	meta, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL")
	}

	mime := "application/octet-stream"
	isBase64 := false
	comps := strings.Split(meta, ";")
	if comps[0] != "" {
		mime = strings.ToLower(comps[0])
	}
	for _, c := range comps[1:] {
		if strings.EqualFold(strings.TrimSpace(c), "base64") {
			isBase64 = true
		}
	}

	// base64 grows the payload by a third, percent escapes by up to three times
	maxPayload := 3 * limit
	if isBase64 {
		maxPayload = (limit + 2) / 3 * 4
	}
	if int64(len(payload)) > maxPayload {
		return nil, fmt.Errorf("%w: data URL over %d bytes", ErrTooLarge, limit)
	}

	var data []byte
	if isBase64 {
		d, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
		data = d
	} else if d, err := url.QueryUnescape(payload); err == nil {
		data = []byte(d)
	} else {
		data = []byte(payload)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: data URL over %d bytes", ErrTooLarge, limit)
	}
	return &Resource{URL: "data:" + mime, Data: data, MimeType: mime}, nil
}

func (l *Loader) resolvePath(ref string) string {
	if strings.HasPrefix(ref, "file://") {
		ref = strings.TrimPrefix(ref, "file://")
	}
	if filepath.IsAbs(ref) || l.BaseDir == "" {
		return ref
	}
	return filepath.Join(l.BaseDir, ref)
}

func (l *Loader) loadRemote(ctx context.Context, urlStr string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	limit := l.limit()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s over %d bytes", ErrTooLarge, urlStr, limit)
	}

	mime, _, _ := strings.Cut(resp.Header.Get("Content-Type"), ";")
	mime = strings.ToLower(strings.TrimSpace(mime))
	if !strings.HasPrefix(mime, "image/") {
		mime = determineMimeType(urlStr, data)
	}
	return &Resource{URL: urlStr, Data: data, MimeType: mime}, nil
}

// readFile reads a local image, refusing files over the size limit
func (l *Loader) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	limit := l.limit()
	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, fmt.Errorf("%w: %s over %d bytes", ErrTooLarge, path, limit)
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s over %d bytes", ErrTooLarge, path, limit)
	}
	return data, nil
}

func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := l.readFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return l.loadFromSearchPaths(path)
		}
		return nil, err
	}
	return &Resource{URL: path, Data: data, MimeType: determineMimeType(path, data)}, nil
}

func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	base := filepath.Base(filename)
	for _, dir := range l.searchPaths {
		path := filepath.Join(dir, base)
		data, err := l.readFile(path)
		if errors.Is(err, ErrTooLarge) {
			return nil, err
		}
		if err != nil {
			continue
		}
		return &Resource{URL: path, Data: data, MimeType: determineMimeType(path, data)}, nil
	}
	return nil, fmt.Errorf("image not found: %s", filename)
}

// determineMimeType guesses the MIME type from the extension, falling back
// to content sniffing
func determineMimeType(path string, data []byte) string {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		path = u.Path
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".tiff", ".tif":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".svg":
		return "image/svg+xml"
	}

	head := bytes.TrimSpace(data[:min(len(data), 512)])
	if bytes.HasPrefix(head, []byte("<svg")) || (bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg"))) {
		return "image/svg+xml"
	}
	mime, _, _ := strings.Cut(http.DetectContentType(data), ";")
	return mime
}
