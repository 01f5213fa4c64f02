package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const sessionFile = "session.json"

// ErrNotLoggedIn 本地没有保存的身份，调用方应转去登录
var ErrNotLoggedIn = errors.New("not logged in")

// SessionStore 把登录返回的身份保存在本地目录，是唯一的"会话"机制
type SessionStore struct {
	dir string
}

func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// DefaultSessionDir 优先使用 FORO_HOME
func DefaultSessionDir() (string, error) {
	if dir := os.Getenv("FORO_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".foro-tematico"), nil
}

func (s *SessionStore) path() string {
	return filepath.Join(s.dir, sessionFile)
}

func (s *SessionStore) Load() (Identity, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Identity{}, ErrNotLoggedIn
		}
		return Identity{}, fmt.Errorf("error reading %s: %w", sessionFile, err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("error unmarshalling %s: %w", sessionFile, err)
	}
	if id.UserID == 0 {
		return Identity{}, ErrNotLoggedIn
	}
	return id, nil
}

func (s *SessionStore) Save(id Identity) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("error creating %s: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(), data, 0o600); err != nil {
		return fmt.Errorf("error writing %s: %w", sessionFile, err)
	}
	return nil
}

// Clear 删除保存的 userId、username、role
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing %s: %w", sessionFile, err)
	}
	return nil
}
