package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"doorbelld/internal/models"
)

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

// DirSize sums the size of every regular file below dir.
func DirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// CountMedia folds the tree below dir into image and video totals. Each
// level returns its own counts and the parent adds them up.
func CountMedia(dir string) (models.MediaCounts, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.MediaCounts{}, nil
		}
		return models.MediaCounts{}, err
	}

	var counts models.MediaCounts
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		if e.IsDir() {
			sub, err := CountMedia(filepath.Join(dir, e.Name()))
			if err != nil {
				return models.MediaCounts{}, err
			}
			counts = counts.Add(sub)
			continue
		}
		counts = counts.Add(classifyMedia(e.Name()))
	}
	return counts, nil
}

func classifyMedia(name string) models.MediaCounts {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExts[ext]:
		return models.MediaCounts{Images: 1}
	case ext == ".mp4":
		return models.MediaCounts{Videos: 1}
	}
	return models.MediaCounts{}
}
