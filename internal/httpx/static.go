/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package httpx

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	response404 = "HTTP/1.1 404 Page Not Found\r\n\r\n" +
		"<!DOCTYPE html><html lang=\"en\"><head><title>404</title></head>" +
		"<body><h1>404: Page Not Found</h1></body></html>"

	response500 = "HTTP/1.1 500 Internal Server Error\r\n\r\n" +
		"<!DOCTYPE html><html lang=\"en\"><head><title>500</title></head>" +
		"<body><h1>500: Internal Server Error</h1></body></html>"
)

var errOutsideRoot = errors.New("httpx: target escapes static root")

// ServeFile answers a non-upgrade request from the static root: the
// target resolves under root, directories fall through to index.html,
// and anything escaping the root is refused. Missing or unreadable files
// get the canned 404, everything else unexpected gets the 500. An empty
// root serves nothing.
func ServeFile(w io.Writer, target, root string) error {
	if root == "" {
		_, err := io.WriteString(w, response404)
		return err
	}

	data, err := loadFile(target, root)
	switch {
	case err == nil:
		if _, err := io.WriteString(w, "HTTP/1.1 200 OK\r\n\r\n"); err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || errors.Is(err, errOutsideRoot):
		_, err = io.WriteString(w, response404)
		return err
	default:
		_, err = io.WriteString(w, response500)
		return err
	}
}

func loadFile(target, root string) ([]byte, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	target = strings.TrimPrefix(target, "/")
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}

	path, err := filepath.Abs(filepath.Join(rootAbs, filepath.FromSlash(target)))
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		path = filepath.Join(path, "index.html")
	}

	// the join above collapses any ../ segments; re-check the result
	// still lives under the root before touching it
	if path != rootAbs && !strings.HasPrefix(path, rootAbs+string(filepath.Separator)) {
		return nil, errOutsideRoot
	}

	return os.ReadFile(path)
}
