package osm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

var ErrFileExists = errors.New("file already exists")

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo. serializes every object, one field per line, in model order.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	for _, obj := range m.objects {
		fmt.Fprintf(bw, "\n%s,\n", obj.Type)
		for i, field := range obj.Fields {
			sep := ","
			if i == len(obj.Fields)-1 {
				sep = ";"
			}
			fmt.Fprintf(bw, "  %s%s\n", field, sep)
		}
		if len(obj.Fields) == 0 {
			fmt.Fprintf(bw, "  ;\n")
		}
	}
	fmt.Fprintf(bw, "\n")

	if err := bw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

// Save. writes the model to path through a temporary sibling file, bzip2 compressed when path ends in ".bz2".
func (m *Model) Save(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrFileExists)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := m.writeFile(tmp, strings.EqualFold(filepath.Ext(path), ".bz2")); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (m *Model) writeFile(w io.Writer, compress bool) error {
	if !compress {
		_, err := m.WriteTo(w)
		return err
	}
	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if _, err := m.WriteTo(bz); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}
