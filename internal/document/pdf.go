// Package document checks downloaded invoice PDFs before a submission is
// reported successful. The portal occasionally serves truncated or empty
// downloads; catching that here keeps bad files out of the report.
package document

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var pdfHeader = []byte("%PDF-")

// IsPDF reports whether the data carries a PDF header
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfHeader)
}

// Verify checks that the downloaded bytes are a structurally valid PDF.
// Relaxed validation mode matches what desktop viewers accept.
func Verify(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty download")
	}
	if !IsPDF(data) {
		return fmt.Errorf("download is not a PDF")
	}

	conf := pdfmodel.NewDefaultConfiguration()
	conf.ValidationMode = pdfmodel.ValidationRelaxed
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("invalid PDF: %w", err)
	}
	return nil
}

// placeholderPDF is a minimal one-page document. Byte offsets in the xref
// table are exact; do not reformat.
const placeholderPDF = "%PDF-1.4\n" +
	"1 0 obj\n<</Type/Catalog/Pages 2 0 R>>\nendobj\n" +
	"2 0 obj\n<</Type/Pages/Kids[3 0 R]/Count 1>>\nendobj\n" +
	"3 0 obj\n<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>\nendobj\n" +
	"xref\n0 4\n" +
	"0000000000 65535 f \n" +
	"0000000009 00000 n \n" +
	"0000000054 00000 n \n" +
	"0000000105 00000 n \n" +
	"trailer\n<</Size 4/Root 1 0 R>>\n" +
	"startxref\n170\n%%EOF\n"

// PlaceholderPDF returns a minimal valid one-page PDF, used by the portal
// simulator as its canned download
func PlaceholderPDF() []byte {
	return []byte(placeholderPDF)
}
