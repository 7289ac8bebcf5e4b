package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Container mirrors META-INF/container.xml.
type Container struct {
	XMLName   xml.Name   `xml:"urn:oasis:names:tc:opendocument:xmlns:container container"`
	Version   string     `xml:"version,attr"`
	RootFiles []RootFile `xml:"rootfiles>rootfile"`
}

type RootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// Book is an open EPUB file. It holds the parsed package document and keeps
// the underlying file handle open so Save can raw-copy untouched zip entries.
type Book struct {
	file      *os.File
	zipReader *zip.Reader

	// OpfPath is the package document location relative to the zip root.
	OpfPath string

	// Package is the parsed OPF structure. Mutate it through the accessor
	// methods, then call Save.
	Package *Package
}

// Open opens an EPUB file and parses its package document.
func Open(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("not a zip archive: %w", err)
	}

	b := &Book{file: f, zipReader: zr}

	if err := b.parseContainer(); err != nil {
		b.Close()
		return nil, fmt.Errorf("parse container: %w", err)
	}
	if err := b.parseOPF(); err != nil {
		b.Close()
		return nil, fmt.Errorf("parse OPF: %w", err)
	}
	return b, nil
}

// Close releases the underlying file.
func (b *Book) Close() error {
	if b.file != nil {
		return b.file.Close()
	}
	return nil
}

// parseContainer reads META-INF/container.xml to locate the OPF file.
func (b *Book) parseContainer() error {
	f, err := b.openEntry("META-INF/container.xml")
	if err != nil {
		return fmt.Errorf("container.xml missing: %w", err)
	}
	defer f.Close()

	var c Container
	if err := xml.NewDecoder(f).Decode(&c); err != nil {
		return fmt.Errorf("malformed container.xml: %w", err)
	}
	if len(c.RootFiles) == 0 {
		return fmt.Errorf("no rootfile in container.xml")
	}

	// Prefer the rootfile with the standard package media type.
	for _, rf := range c.RootFiles {
		if rf.MediaType == "application/oebps-package+xml" {
			b.OpfPath = rf.FullPath
			return nil
		}
	}
	b.OpfPath = c.RootFiles[0].FullPath
	return nil
}

// parseOPF decodes the package document. The decoder runs non-strict with a
// charset fallback because EPUBs in the wild are frequently malformed.
func (b *Book) parseOPF() error {
	f, err := b.openEntry(b.OpfPath)
	if err != nil {
		return fmt.Errorf("OPF %s missing: %w", b.OpfPath, err)
	}
	defer f.Close()

	d := xml.NewDecoder(f)
	d.Strict = false
	d.CharsetReader = charsetReader

	var pkg Package
	if err := d.Decode(&pkg); err != nil {
		return fmt.Errorf("malformed OPF: %w", err)
	}
	b.Package = &pkg
	return nil
}

// openEntry finds a zip entry by exact name.
func (b *Book) openEntry(name string) (io.ReadCloser, error) {
	for _, f := range b.zipReader.File {
		if f.Name == name {
			return f.Open()
		}
	}
	return nil, fmt.Errorf("entry not found: %s", name)
}

// charsetReader handles the encodings that actually show up in OPF files.
// encoding/xml only speaks UTF-8 on its own.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch charset {
	case "UTF-8", "utf-8", "UTF8", "utf8":
		return input, nil
	case "ISO-8859-1", "iso-8859-1", "Latin1", "latin1", "Windows-1252", "windows-1252":
		// Latin-1 code points map 1:1 onto Unicode, so byte-wise expansion
		// to UTF-8 is enough. Windows-1252 is treated the same; its extra
		// range is control characters in Latin-1 and never legitimate OPF
		// content.
		return &latin1Reader{r: input}, nil
	default:
		return input, nil
	}
}

type latin1Reader struct {
	r   io.Reader
	buf []byte

	// pending holds the continuation byte of a two-byte expansion that
	// did not fit into the previous Read's buffer; err is a source error
	// deferred until pending has been delivered.
	pending    byte
	hasPending bool
	err        error
}

func (l *latin1Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if l.hasPending {
		p[n] = l.pending
		l.hasPending = false
		n++
		if n == len(p) {
			return n, nil
		}
	}
	if l.err != nil {
		err = l.err
		l.err = nil
		return n, err
	}
	if l.buf == nil {
		l.buf = make([]byte, 4096)
	}

	// Bytes >= 0x80 expand to two UTF-8 bytes, so read at most half the
	// remaining capacity from the source to guarantee the output fits.
	readSize := (len(p) - n) / 2
	if readSize == 0 {
		readSize = 1
	}
	if readSize > len(l.buf) {
		readSize = len(l.buf)
	}

	rn, rErr := l.r.Read(l.buf[:readSize])
	for i := 0; i < rn; i++ {
		c := l.buf[i]
		if c < 0x80 {
			p[n] = c
			n++
			continue
		}
		p[n] = 0xC0 | (c >> 6)
		n++
		if n == len(p) {
			// Only reachable when a single slot of p remained, which
			// forces readSize to 1; this is the last source byte, so
			// carrying its continuation byte loses nothing. Any source
			// error waits until the carried byte is delivered.
			l.pending = 0x80 | (c & 0x3F)
			l.hasPending = true
			l.err = rErr
			return n, nil
		}
		p[n] = 0x80 | (c & 0x3F)
		n++
	}
	return n, rErr
}
