package memory

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"fostercare/cmd/internal/backend"
)

type object struct {
	data        []byte
	contentType string
	createdAt   time.Time
}

// Files is an object store kept in a map.
type Files struct {
	mu      sync.Mutex
	objects map[string]object
	baseURL string

	FailWith error
}

// NewFiles returns an empty store whose public URLs are rooted at baseURL.
func NewFiles(baseURL string) *Files {
	return &Files{
		objects: make(map[string]object),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (f *Files) List(_ context.Context, prefix string) ([]backend.FileObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWith != nil {
		return nil, f.FailWith
	}

	var out []backend.FileObject
	for key, obj := range f.objects {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok || name == "" || strings.Contains(name, "/") {
			continue
		}
		out = append(out, backend.FileObject{
			Name:      name,
			Type:      obj.contentType,
			Size:      int64(len(obj.data)),
			CreatedAt: obj.createdAt,
		})
	}

	slices.SortFunc(out, func(a, b backend.FileObject) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, nil
}

func (f *Files) Upload(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWith != nil {
		return f.FailWith
	}

	f.objects[key] = object{data: data, contentType: contentType, createdAt: time.Now().UTC()}
	return nil
}

// Remove is idempotent, like S3 DeleteObjects.
func (f *Files) Remove(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailWith != nil {
		return f.FailWith
	}

	for _, key := range keys {
		delete(f.objects, key)
	}
	return nil
}

func (f *Files) PublicURL(key string) (string, error) {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return f.baseURL + "/" + strings.Join(segments, "/"), nil
}

// Get returns the stored bytes, used by the local file route and tests.
func (f *Files) Get(key string) ([]byte, string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.objects[key]
	if !ok {
		return nil, "", false
	}
	return bytes.Clone(obj.data), obj.contentType, true
}
