package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tide-cli/internal/agent"

	"github.com/google/uuid"
)

// Record 是一个持久化的会话转录。滚动位置不随会话保存。
type Record struct {
	ID       string          `json:"id"`
	Messages []agent.Message `json:"messages"`
	Updated  time.Time       `json:"updated"`
}

// Store 把会话转录以 JSON 存储在单个目录下，一个会话一个文件。
type Store struct {
	Dir string
}

func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tide", "sessions"), nil
}

func NewDefault() (*Store, error) {
	d, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: d}, nil
}

// Save 写入会话，id 为空时分配新的 uuid，返回实际使用的 id。
func (s *Store) Save(id string, messages []agent.Message) (string, error) {
	if s == nil || s.Dir == "" {
		return "", errors.New("session store dir is empty")
	}
	if id == "" {
		id = uuid.NewString()
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	rec := Record{ID: id, Messages: messages, Updated: time.Now()}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, id+".json"), data, 0o644); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Load(id string) (Record, error) {
	var rec Record
	if s == nil || s.Dir == "" {
		return rec, errors.New("session store dir is empty")
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, id+".json"))
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

// Last 返回最近更新的会话。
func (s *Store) Last() (Record, error) {
	ids, err := s.ListIDs()
	if err != nil {
		return Record{}, err
	}
	if len(ids) == 0 {
		return Record{}, errors.New("no sessions found")
	}
	recs := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Load(id)
		if err != nil {
			continue
		}
		recs = append(recs, rec)
	}
	if len(recs) == 0 {
		return Record{}, errors.New("no readable sessions found")
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Updated.After(recs[j].Updated)
	})
	return recs[0], nil
}

func (s *Store) ListIDs() ([]string, error) {
	if s == nil || s.Dir == "" {
		return nil, errors.New("session store dir is empty")
	}
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, e.Name()[:len(e.Name())-len(".json")])
	}
	return ids, nil
}
