package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/viant/afs"
	"golang.org/x/oauth2"
)

// FileStore persists entries as a JSON snapshot at an afs URL
// (file://, mem:// or any storage afs supports). It is a lightweight way to
// survive process restarts in CLI or single-host services.
type FileStore struct {
	mu     sync.RWMutex
	url    string
	fs     afs.Service
	values map[string]string
}

// NewFileStore creates a Store persisted at URL, loading any existing snapshot.
func NewFileStore(ctx context.Context, URL string) (*FileStore, error) {
	ret := &FileStore{url: URL, fs: afs.New(), values: map[string]string{}}
	if err := ret.load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

func (f *FileStore) LookupToken() (*oauth2.Token, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	value, ok := f.values[TokenKey]
	if !ok || value == "" {
		return nil, false
	}
	return NewToken(value), true
}

func (f *FileStore) AddToken(token *oauth2.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[TokenKey] = token.AccessToken
	return f.save(context.Background())
}

func (f *FileStore) RemoveToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.values, key)
	}
	return f.save(context.Background())
}

func (f *FileStore) LookupProfile() (*Profile, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return decodeProfile(f.values)
}

func (f *FileStore) AddProfile(profile *Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range encodeProfile(profile) {
		f.values[k] = v
	}
	return f.save(context.Background())
}

func (f *FileStore) save(ctx context.Context) error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return err
	}
	if err = f.fs.Upload(ctx, f.url, 0o600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save credential store %v: %w", f.url, err)
	}
	return nil
}

func (f *FileStore) load(ctx context.Context) error {
	exists, err := f.fs.Exists(ctx, f.url)
	if err != nil || !exists {
		return nil
	}
	data, err := f.fs.DownloadWithURL(ctx, f.url)
	if err != nil {
		return fmt.Errorf("failed to load credential store %v: %w", f.url, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, &f.values); err != nil {
		return fmt.Errorf("invalid credential store %v: %w", f.url, err)
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	return nil
}
