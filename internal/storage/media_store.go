package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	mp4ff "github.com/Eyevinn/mp4ff/mp4"

	"doorbelld/internal/models"
	"doorbelld/internal/structures"
)

const (
	ImageExt  = ".webp"
	VideoName = "video.mp4"

	MediaModeBase64 = "base64"
	MediaModeUrl    = "url"
)

// VideoRecorder produces a finished recording of the requested length.
type VideoRecorder func(ctx context.Context, duration time.Duration) ([]byte, error)

type MediaStoreInterface interface {
	Root() string
	WriteImage(dir, name string, data []byte) (string, error)
	RecordVideo(ctx context.Context, dir string, record VideoRecorder, duration time.Duration) (string, error)
	ReadMedia(day, id, name string) (string, error)
}

type MediaStore struct {
	root    string
	mode    string
	baseUrl string
}

func NewMediaStore(conf *structures.Config) MediaStoreInterface {
	mode := conf.Media.Mode
	if mode == "" {
		mode = MediaModeUrl
	}
	return &MediaStore{
		root:    filepath.Clean(conf.Store.Root),
		mode:    mode,
		baseUrl: conf.Media.BaseUrl,
	}
}

func (m *MediaStore) Root() string {
	return m.root
}

// WriteImage stores one snapshot as <dir>/<name>.webp. The directory must
// already exist.
func (m *MediaStore) WriteImage(dir, name string, data []byte) (string, error) {
	if err := requireDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+ImageExt)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("write image %s: %w", path, err)
	}
	return path, nil
}

func (m *MediaStore) RecordVideo(ctx context.Context, dir string, record VideoRecorder, duration time.Duration) (string, error) {
	if err := requireDir(dir); err != nil {
		return "", err
	}
	data, err := record(ctx, duration)
	if err != nil {
		return "", fmt.Errorf("record video: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("record video: camera returned an empty recording")
	}
	path := filepath.Join(dir, VideoName)
	if err := writeAtomic(path, data); err != nil {
		return "", fmt.Errorf("write video %s: %w", path, err)
	}
	return path, nil
}

// ReadMedia copies a stored file out as either a base64 payload or a URL
// under media.baseUrl, depending on the configured mode.
func (m *MediaStore) ReadMedia(day, id, name string) (string, error) {
	path := filepath.Join(m.root, day, id, name)

	if m.mode == MediaModeBase64 {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", notFoundOr(err)
		}
		return base64.StdEncoding.EncodeToString(data), nil
	}

	if _, err := os.Stat(path); err != nil {
		return "", notFoundOr(err)
	}
	return url.JoinPath(m.baseUrl, filepath.Base(m.root), day, id, name)
}

// ProbeVideoDuration reads the movie header of an mp4 file and returns its
// length in seconds. Only the top-level boxes are walked and only moov is
// decoded, so truncated recordings and media payloads are never loaded.
func ProbeVideoDuration(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, notFoundOr(err)
	}
	defer f.Close()

	var pos uint64
	for {
		hdr, err := mp4ff.DecodeHeader(f)
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("decode %s: no movie header", path)
		}
		if err != nil {
			return 0, fmt.Errorf("decode %s: %w", path, err)
		}
		if hdr.Name == "moov" {
			if _, err := f.Seek(int64(pos), io.SeekStart); err != nil {
				return 0, fmt.Errorf("decode %s: %w", path, err)
			}
			mvhd, err := decodeMovieHeader(pos, f)
			if err != nil {
				return 0, fmt.Errorf("decode %s: %w", path, err)
			}
			if mvhd.Timescale == 0 {
				return 0, fmt.Errorf("decode %s: zero timescale", path)
			}
			return float64(mvhd.Duration) / float64(mvhd.Timescale), nil
		}
		pos += hdr.Size
		if _, err := f.Seek(int64(pos), io.SeekStart); err != nil {
			return 0, fmt.Errorf("decode %s: %w", path, err)
		}
	}
}

// decodeMovieHeader decodes the moov box at pos. mp4ff can panic on
// malformed children, which is reported as an error instead.
func decodeMovieHeader(pos uint64, r io.Reader) (mvhd *mp4ff.MvhdBox, err error) {
	defer func() {
		if p := recover(); p != nil {
			mvhd, err = nil, fmt.Errorf("malformed moov: %v", p)
		}
	}()

	box, err := mp4ff.DecodeBox(pos, r)
	if err != nil {
		return nil, err
	}
	moov, ok := box.(*mp4ff.MoovBox)
	if !ok || moov.Mvhd == nil {
		return nil, errors.New("no movie header")
	}
	return moov.Mvhd, nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("media dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media dir %s is not a directory", dir)
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, err)
	}
	return err
}
