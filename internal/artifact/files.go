package artifact

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FirstWithSuffix returns the path of the first regular file in dir whose
// name ends in suffix, scanning a single directory level in lexicographic
// order. It returns "" when no name matches.
func FirstWithSuffix(dir, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.Wrapf(err, "unable to list directory %s", dir)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", nil
}

// MD5Sum returns the hex md5 digest of the file contents.
func MD5Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	h := md5.New()
	_, err = io.Copy(h, f)
	if err != nil {
		return "", errors.Wrapf(err, "unable to checksum %s", path)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
