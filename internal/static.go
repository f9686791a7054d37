package internal

import (
	"io/fs"
	"net/http"
	"strings"
)

// hiddenFilterFS hides dot files, such as in-flight temp writes, from the
// static media server.
type hiddenFilterFS struct {
	http.FileSystem
}

func (h hiddenFilterFS) Open(name string) (http.File, error) {
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return nil, fs.ErrNotExist
		}
	}
	f, err := h.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	return hiddenFilterFile{f}, nil
}

type hiddenFilterFile struct {
	http.File
}

func (f hiddenFilterFile) Readdir(n int) ([]fs.FileInfo, error) {
	files, err := f.File.Readdir(n)
	visible := files[:0]
	for _, file := range files {
		if !strings.HasPrefix(file.Name(), ".") {
			visible = append(visible, file)
		}
	}
	return visible, err
}

// staticMediaHandler serves the store under /<root base name>/, matching the
// URLs handed out in url media mode.
func staticMediaHandler(root string, prefix string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(hiddenFilterFS{http.Dir(root)}))
}
