package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/afip-submitter/internal/document"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, document.IsPDF([]byte("%PDF-1.4\nrest")))
	assert.False(t, document.IsPDF([]byte("<html>")))
	assert.False(t, document.IsPDF(nil))
}

func TestVerify_PlaceholderPDF(t *testing.T) {
	assert.NoError(t, document.Verify(document.PlaceholderPDF()))
}

func TestVerify_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"html error page", []byte("<html><body>error</body></html>")},
		{"truncated", document.PlaceholderPDF()[:40]},
		{"header only", []byte("%PDF-1.4\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, document.Verify(tt.data))
		})
	}
}
