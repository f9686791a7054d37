package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"doorbelld/internal/models"
	"doorbelld/internal/structures"
)

const cursorField = "lastTrackedEventId"

type CursorStoreInterface interface {
	Load() (models.TrackedEventCursor, error)
	Save(cursor models.TrackedEventCursor) error
}

// CursorStore keeps the tracked-event cursor in a small JSON file that
// other tooling may also write to; fields it does not own are kept.
type CursorStore struct {
	path string
	mu   sync.Mutex
}

func NewCursorStore(conf *structures.Config) CursorStoreInterface {
	return &CursorStore{path: conf.Store.CursorFile}
}

func (c *CursorStore) Load() (models.TrackedEventCursor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var cursor models.TrackedEventCursor
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cursor, nil
		}
		return cursor, err
	}
	if len(data) == 0 {
		return cursor, nil
	}
	if err := json.Unmarshal(data, &cursor); err != nil {
		return cursor, fmt.Errorf("cursor file %s: %w", c.path, err)
	}
	return cursor, nil
}

func (c *CursorStore) Save(cursor models.TrackedEventCursor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record := map[string]json.RawMessage{}
	if data, err := os.ReadFile(c.path); err == nil && len(data) > 0 {
		if err := json.Unmarshal(data, &record); err != nil {
			return fmt.Errorf("cursor file %s: %w", c.path, err)
		}
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	id, err := json.Marshal(cursor.LastTrackedEventId)
	if err != nil {
		return err
	}
	record[cursorField] = id

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(c.path, out)
}
