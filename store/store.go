// store/store.go
package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kuberdock/kcli/models"
)

// file extension for stored drafts
const draftExt = ".kube"

// Store keeps one pending pod draft per name as a JSON file. Filenames are
// the urlsafe base64 encoding of the pod name, so any name round-trips.
// Cross-invocation state is shared only through these files; concurrent
// writers race last-writer-wins.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	encoded := base64.URLEncoding.EncodeToString([]byte(name)) + draftExt
	return filepath.Join(s.dir, encoded)
}

// Load reads the draft with the given name. A missing, unreadable or corrupt
// file means "no draft", never an error.
func (s *Store) Load(name string) (*models.PodDraft, bool) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, false
	}
	var draft models.PodDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, false
	}
	draft.Name = name
	return &draft, true
}

// Save writes the draft, creating the drafts directory if needed. The write
// goes through a temp file so a torn write never shadows a valid draft.
func (s *Store) Save(draft *models.PodDraft) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create drafts directory %q: %w", s.dir, err)
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft %q: %w", draft.Name, err)
	}
	path := s.path(draft.Name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write draft file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace draft file %q: %w", path, err)
	}
	return nil
}

// Delete removes the named draft. Unlike Load, a missing draft is reported.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("draft %q not found", name)
		}
		return fmt.Errorf("failed to delete draft %q: %w", name, err)
	}
	return nil
}

// DeleteAll removes every stored draft. Missing directory is fine.
func (s *Store) DeleteAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read drafts directory %q: %w", s.dir, err)
	}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), draftExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to delete draft file %q: %w", e.Name(), err)
		}
	}
	return nil
}

// List enumerates stored draft names by decoding filenames. Files that are
// not decodable drafts are skipped.
func (s *Store) List() []string {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	names := []string{}
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), draftExt) {
			continue
		}
		encoded := strings.TrimSuffix(e.Name(), draftExt)
		decoded, err := base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		names = append(names, string(decoded))
	}
	return names
}
