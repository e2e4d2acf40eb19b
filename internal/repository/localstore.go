package repository

import (
	"encoding/json"
	"log"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// LocalStore 键 → JSON 字符串的本地持久化存储
// 每个键一个文件，读取时容忍损坏数据：解析失败直接丢弃该键按空处理，
// 不向上层抛错。文件系统可注入，测试使用内存实现。
type LocalStore struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
}

// NewLocalStore 创建本地存储，dir 不存在时自动创建
func NewLocalStore(fs afero.Fs, dir string) (*LocalStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{fs: fs, dir: dir}, nil
}

// Get 读取键对应的原始字符串
func (s *LocalStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set 写入键值
func (s *LocalStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return afero.WriteFile(s.fs, s.path(key), []byte(value), 0o644)
}

// Delete 删除键，键不存在时视为成功
func (s *LocalStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exists, _ := afero.Exists(s.fs, s.path(key)); !exists {
		return nil
	}
	return s.fs.Remove(s.path(key))
}

// GetJSON 读取并解析 JSON 值，损坏的数据丢弃该键并返回 false
func (s *LocalStore) GetJSON(key string, target interface{}) bool {
	raw, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		log.Printf("[Store] 解析键 %s 失败，丢弃: %v", key, err)
		_ = s.Delete(key)
		return false
	}
	return true
}

// SetJSON 序列化并写入 JSON 值
func (s *LocalStore) SetJSON(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
