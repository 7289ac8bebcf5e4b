package epub

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveRewritesOPF(t *testing.T) {
	srcPath := writeTestEpub(t, sampleOPF)

	book, err := Open(srcPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer book.Close()

	book.Package.SetTitle("New Title")

	outPath := filepath.Join(t.TempDir(), "out.epub")
	if err := book.Save(outPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	zr, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer zr.Close()

	if zr.File[0].Name != "mimetype" {
		t.Errorf("first entry is %s, want mimetype", zr.File[0].Name)
	}
	if zr.File[0].Method != zip.Store {
		t.Errorf("mimetype is compressed (method %d)", zr.File[0].Method)
	}

	foundOpf := false
	for _, f := range zr.File {
		switch f.Name {
		case "content.opf":
			foundOpf = true
			rc, _ := f.Open()
			b, _ := io.ReadAll(rc)
			rc.Close()
			content := string(b)
			if !strings.Contains(content, "New Title") {
				t.Errorf("OPF not updated: %s", content)
			}
			if !strings.Contains(content, "<dc:title>") {
				t.Errorf("OPF lost dc: prefix: %s", content)
			}
		case "chapter1.xhtml":
			rc, _ := f.Open()
			b, _ := io.ReadAll(rc)
			rc.Close()
			if string(b) != "<html><body>Chapter 1</body></html>" {
				t.Error("chapter content corrupted")
			}
		}
	}
	if !foundOpf {
		t.Error("content.opf missing from output")
	}
}

func TestSaveInPlace(t *testing.T) {
	path := writeTestEpub(t, sampleOPF)

	book, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	book.Package.SetTitle("In Place Title")
	if err := book.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	book.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("re-open failed: %v", err)
	}
	defer reopened.Close()
	if got := reopened.Package.GetTitle(); got != "In Place Title" {
		t.Errorf("title after in-place save = %q", got)
	}
}

const epub3OPF = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0" unique-identifier="pub-id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:identifier id="pub-id">urn:uuid:12345678-1234-1234-1234-123456789abc</dc:identifier>
    <dc:title id="t1">Structured Title</dc:title>
    <dc:language>en</dc:language>
    <meta refines="#t1" property="title-type">main</meta>
    <meta property="dcterms:modified">2024-01-01T00:00:00Z</meta>
  </metadata>
  <manifest>
    <item id="chapter1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine><itemref idref="chapter1"/></spine>
</package>`

func TestSaveRoundTripsEpub3(t *testing.T) {
	path := writeTestEpub(t, epub3OPF)

	book, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if got := book.Package.Version; got != "3.0" {
		t.Fatalf("version = %q, want 3.0", got)
	}
	book.Package.SetDescription("Round-tripped description")
	if err := book.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	book.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("re-open failed: %v", err)
	}
	defer reopened.Close()

	pkg := reopened.Package
	if got := pkg.Version; got != "3.0" {
		t.Errorf("version after save = %q, want 3.0", got)
	}
	if got := pkg.GetDescription(); got != "Round-tripped description" {
		t.Errorf("GetDescription = %q", got)
	}
	if len(pkg.Metadata.Titles) != 1 || pkg.Metadata.Titles[0].ID != "t1" {
		t.Errorf("title id lost: %+v", pkg.Metadata.Titles)
	}

	var titleType, modified *Meta
	for i := range pkg.Metadata.Meta {
		m := &pkg.Metadata.Meta[i]
		switch m.Property {
		case "title-type":
			titleType = m
		case "dcterms:modified":
			modified = m
		}
	}
	if titleType == nil {
		t.Fatal("title-type meta lost in round trip")
	}
	if titleType.Refines != "#t1" || titleType.Value != "main" {
		t.Errorf("title-type meta corrupted: %+v", titleType)
	}
	if modified == nil || modified.Value != "2024-01-01T00:00:00Z" {
		t.Errorf("dcterms:modified meta corrupted: %+v", modified)
	}
}

func TestSavePreservesEntryOrderAndMethod(t *testing.T) {
	// Build a source EPUB with mixed compression methods and a nested layout.
	srcPath := filepath.Join(t.TempDir(), "order.epub")
	f, err := os.Create(srcPath)
	if err != nil {
		t.Fatal(err)
	}

	z := zip.NewWriter(f)

	m, _ := z.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	m.Write([]byte("application/epub+zip"))

	c, _ := z.CreateHeader(&zip.FileHeader{Name: "META-INF/container.xml", Method: zip.Deflate})
	c.Write([]byte(`<?xml version="1.0"?><container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container"><rootfiles><rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/></rootfiles></container>`))

	o, _ := z.CreateHeader(&zip.FileHeader{Name: "OEBPS/content.opf", Method: zip.Store})
	o.Write([]byte(`<?xml version="1.0"?><package xmlns="http://www.idpf.org/2007/opf" version="2.0"><metadata xmlns:dc="http://purl.org/dc/elements/1.1/"><dc:title>Order Test</dc:title></metadata><manifest/><spine/></package>`))

	ch1, _ := z.CreateHeader(&zip.FileHeader{Name: "OEBPS/chapter1.xhtml", Method: zip.Deflate})
	ch1.Write([]byte("<html><body>Chapter 1</body></html>"))

	img, _ := z.CreateHeader(&zip.FileHeader{Name: "OEBPS/images/cover.jpg", Method: zip.Store})
	img.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46})

	z.Close()
	f.Close()

	origMethods := make(map[string]uint16)
	var origOrder []string
	zrOrig, _ := zip.OpenReader(srcPath)
	for _, e := range zrOrig.File {
		origMethods[e.Name] = e.Method
		origOrder = append(origOrder, e.Name)
	}
	zrOrig.Close()

	book, err := Open(srcPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer book.Close()
	book.Package.SetTitle("Modified Title")

	outPath := filepath.Join(t.TempDir(), "out.epub")
	if err := book.Save(outPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	zr, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != len(origOrder) {
		t.Fatalf("entry count mismatch: got %d, want %d", len(zr.File), len(origOrder))
	}
	for i, e := range zr.File {
		if e.Name != origOrder[i] {
			t.Errorf("entry %d: got %s, want %s", i, e.Name, origOrder[i])
		}
		if e.Method != origMethods[e.Name] {
			t.Errorf("compression method changed for %s: got %d, want %d", e.Name, e.Method, origMethods[e.Name])
		}
	}
}
