package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Save writes the (possibly modified) EPUB to outputPath. Passing the path
// the book was opened from updates it in place.
//
// The rewrite is non-destructive: the original entry order is preserved
// (except mimetype, which must come first), every entry keeps its original
// compression method, and entries other than the OPF are raw-copied without
// recompression. Output goes to a temp file first and is moved into place
// with an atomic rename.
func (b *Book) Save(outputPath string) error {
	tempDir := filepath.Dir(outputPath)
	if tempDir == "." {
		tempDir = ""
	}
	tmpF, err := os.CreateTemp(tempDir, "epubstamp-*.epub")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpF.Name()

	success := false
	defer func() {
		tmpF.Close()
		if !success {
			os.Remove(tmpPath)
		}
	}()

	w := zip.NewWriter(tmpF)

	if err := writeMimetype(w); err != nil {
		return err
	}

	opfContent, err := b.Package.marshalOPF()
	if err != nil {
		return fmt.Errorf("marshal OPF: %w", err)
	}

	for _, f := range b.zipReader.File {
		if f.Name == "mimetype" {
			continue
		}
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}

		if f.Name == b.OpfPath {
			if err := writeEntry(w, f.Name, opfContent, f.Method); err != nil {
				return fmt.Errorf("write OPF: %w", err)
			}
			continue
		}
		if err := b.copyEntry(f, w); err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("close zip writer: %w", err)
	}

	// Close before rename; required on Windows.
	tmpF.Close()

	if err := os.Rename(tmpPath, outputPath); err != nil {
		return fmt.Errorf("move temp file into place: %w", err)
	}

	success = true
	return nil
}

// writeEntry writes content to the zip with the given compression method.
func writeEntry(w *zip.Writer, name string, content []byte, method uint16) error {
	fw, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return err
	}
	_, err = fw.Write(content)
	return err
}

// writeMimetype writes the mimetype entry. The EPUB OCF spec requires it to
// be the first entry, stored uncompressed, with no trailing bytes.
func writeMimetype(w *zip.Writer) error {
	fw, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("create mimetype header: %w", err)
	}
	if _, err := fw.Write([]byte("application/epub+zip")); err != nil {
		return fmt.Errorf("write mimetype: %w", err)
	}
	return nil
}

// copyEntry transfers an entry into the output zip using CreateRaw, so the
// compressed bytes move as-is without a decompress/recompress cycle.
func (b *Book) copyEntry(f *zip.File, w *zip.Writer) error {
	header := f.FileHeader
	fw, err := w.CreateRaw(&header)
	if err != nil {
		return err
	}

	offset, err := f.DataOffset()
	if err != nil {
		return fmt.Errorf("data offset: %w", err)
	}

	section := io.NewSectionReader(b.file, offset, int64(f.CompressedSize64))
	_, err = io.Copy(fw, section)
	return err
}
