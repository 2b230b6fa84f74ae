package client

import (
	"io"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/stretchr/testify/assert"
)

func TestDecodeContentStream(t *testing.T) {
	stream := []byte(`BT
/F1 10 Tf
72 720 Td
(1. Remove wet drywall) Tj
0 -12 Td
[(1 120.00 SF) -300 (1.25)] TJ
T*
T*
(150.00 \(30.00\) 120.00) Tj
ET
BT (KITCHEN) ' ET
`)

	got := decodeContentStream(stream)

	assert.Equal(t, "1. Remove wet drywall\n1 120.00 SF 1.25\n150.00 (30.00) 120.00\nKITCHEN\n", got)
}

func TestDecodeContentStreamEscapesAndHex(t *testing.T) {
	stream := []byte("BT <48656C6C6F> Tj ( w\\157rld\\)) Tj % comment (ignored) Tj\nET")

	assert.Equal(t, "Hello world)\n", decodeContentStream(stream))
}

func TestDecodeContentStreamKerningBelowThreshold(t *testing.T) {
	stream := []byte("BT [(Bath) -50 (room)] TJ ET")

	assert.Equal(t, "Bathroom\n", decodeContentStream(stream))
}

func TestDecodeContentStreamIgnoresDictionaries(t *testing.T) {
	stream := []byte("/Span <</MCID 0>> BDC BT (Text) Tj ET EMC")

	assert.Equal(t, "Text\n", decodeContentStream(stream))
}

func TestDecodeContentStreamEmpty(t *testing.T) {
	assert.Equal(t, "", decodeContentStream(nil))
	assert.Equal(t, "", decodeContentStream([]byte("q 1 0 0 1 0 0 cm Q")))
}

func TestContentStreamClientRejectsGarbage(t *testing.T) {
	_, err := NewContentStreamClient().ExtractText([]byte("not a pdf"))

	assert.ErrorContains(t, err, "pdfcpu read")
}

func TestContentStreamClientRecoversPanic(t *testing.T) {
	c := &ContentStreamClient{
		read: func(io.ReadSeeker, *model.Configuration) (*model.Context, error) {
			panic("malformed xref")
		},
	}

	text, err := c.ExtractText([]byte("%PDF-1.4"))

	assert.Empty(t, text)
	assert.ErrorContains(t, err, "pdf reader panic: malformed xref")
}
