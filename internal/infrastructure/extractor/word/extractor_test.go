package word

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/binary"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>Professional Summary</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Backend engineer, </w:t></w:r><w:r><w:t>7 years</w:t></w:r></w:p>
    <w:p><w:r><w:t>Skills</w:t><w:tab/><w:t>Go</w:t><w:br/><w:t>SQL</w:t></w:r></w:p>
    <w:p><w:r><w:instrText>HYPERLINK "x"</w:instrText></w:r></w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// buildCFB writes a version 3 compound file holding a single WordDocument stream. The
// stream is padded to 4096 bytes so it lives in regular sectors instead of the mini stream.
func buildCFB(stream []byte) []byte {
	const sector = 512
	const endOfChain, freeSect, fatSect, noStream = 0xFFFFFFFE, 0xFFFFFFFF, 0xFFFFFFFD, 0xFFFFFFFF

	data := make([]byte, 4096)
	copy(data, stream)
	streamSectors := len(data) / sector

	header := make([]byte, sector)
	copy(header, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	binary.LittleEndian.PutUint16(header[24:], 0x003E)
	binary.LittleEndian.PutUint16(header[26:], 0x0003)
	binary.LittleEndian.PutUint16(header[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(header[30:], 0x0009)
	binary.LittleEndian.PutUint16(header[32:], 0x0006)
	binary.LittleEndian.PutUint32(header[44:], 1) // FAT sectors
	binary.LittleEndian.PutUint32(header[48:], 1) // first directory sector
	binary.LittleEndian.PutUint32(header[56:], 4096)
	binary.LittleEndian.PutUint32(header[60:], endOfChain)
	binary.LittleEndian.PutUint32(header[68:], endOfChain)
	for i := 76; i < sector; i += 4 {
		binary.LittleEndian.PutUint32(header[i:], freeSect)
	}
	binary.LittleEndian.PutUint32(header[76:], 0) // FAT lives in sector 0

	fat := make([]byte, sector)
	for i := 0; i < sector; i += 4 {
		binary.LittleEndian.PutUint32(fat[i:], freeSect)
	}
	binary.LittleEndian.PutUint32(fat[0:], fatSect)
	binary.LittleEndian.PutUint32(fat[4:], endOfChain)
	for s := 2; s < 2+streamSectors; s++ {
		next := uint32(s + 1)
		if s == 1+streamSectors {
			next = endOfChain
		}
		binary.LittleEndian.PutUint32(fat[s*4:], next)
	}

	dir := make([]byte, sector)
	entry := func(idx int, name string, objType byte, child, start, size uint32) {
		e := dir[idx*128 : (idx+1)*128]
		units := utf16.Encode([]rune(name))
		for i, u := range units {
			binary.LittleEndian.PutUint16(e[i*2:], u)
		}
		binary.LittleEndian.PutUint16(e[64:], uint16((len(units)+1)*2))
		e[66] = objType
		e[67] = 1
		binary.LittleEndian.PutUint32(e[68:], noStream)
		binary.LittleEndian.PutUint32(e[72:], noStream)
		binary.LittleEndian.PutUint32(e[76:], child)
		binary.LittleEndian.PutUint32(e[116:], start)
		binary.LittleEndian.PutUint32(e[120:], size)
	}
	entry(0, "Root Entry", 5, 1, endOfChain, 0)
	entry(1, "WordDocument", 2, noStream, 2, uint32(len(data)))
	for i := 2; i < 4; i++ {
		e := dir[i*128 : (i+1)*128]
		binary.LittleEndian.PutUint32(e[68:], noStream)
		binary.LittleEndian.PutUint32(e[72:], noStream)
		binary.LittleEndian.PutUint32(e[76:], noStream)
	}

	var out bytes.Buffer
	out.Write(header)
	out.Write(fat)
	out.Write(dir)
	out.Write(data)
	return out.Bytes()
}

func utf16le(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}
	return out
}

func TestExtractDOCX(t *testing.T) {
	data := buildDOCX(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   documentXML,
	})
	out, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.docx", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "Professional Summary\nBackend engineer, 7 years\nSkills\tGo\nSQL\n\n"
	if out.Text != want {
		t.Fatalf("unexpected text %q, want %q", out.Text, want)
	}
	if out.Strategy != StrategyDOCX || out.PageCount != 0 {
		t.Fatalf("unexpected metadata %+v", out)
	}
}

func TestExtractDOCXWithoutDocumentPart(t *testing.T) {
	data := buildDOCX(t, map[string]string{"word/styles.xml": `<w:styles/>`})
	_, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.docx", data))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractDocThatIsReallyDOCX(t *testing.T) {
	data := buildDOCX(t, map[string]string{"word/document.xml": documentXML})
	out, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.doc", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Strategy != StrategyDOCX || !strings.Contains(out.Text, "Professional Summary") {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestExtractLegacyDocUTF16(t *testing.T) {
	stream := append(make([]byte, 64), utf16le("Work Experience\rSenior developer at Acme since 2015\r")...)
	data := buildCFB(stream)

	out, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.doc", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Strategy != StrategyOLE {
		t.Fatalf("unexpected strategy %q", out.Strategy)
	}
	if out.Text != "Work Experience\nSenior developer at Acme since 2015" {
		t.Fatalf("unexpected text %q", out.Text)
	}
}

func TestExtractLegacyDoc8Bit(t *testing.T) {
	stream := append(make([]byte, 64), []byte("Education\rB.Sc in Physics, caf\xe9 owner\r")...)
	data := buildCFB(stream)

	out, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.doc", data))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if out.Text != "Education\nB.Sc in Physics, café owner" {
		t.Fatalf("unexpected text %q", out.Text)
	}
}

func TestExtractLegacyDocGarbage(t *testing.T) {
	_, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.doc", []byte("not a compound file at all")))
	if !domain.IsKind(err, domain.ErrExtraction) {
		t.Fatalf("expected ErrExtraction, got %v", err)
	}
}

func TestExtractRejectsOtherFormats(t *testing.T) {
	_, err := NewExtractor().Extract(context.Background(), domain.NewDocument("cv.txt", []byte("plain")))
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
