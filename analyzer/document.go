/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// MaxDocumentSize is the largest accepted upload.
const MaxDocumentSize = 20 << 20

const mimePDF = "application/pdf"

var allowedMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
	mimePDF:      true,
}

// Document is an uploaded lab report.
type Document struct {
	Name     string
	MIMEType string
	Data     []byte
}

// LoadDocument sniffs the content type of data and accepts images and PDFs.
func LoadDocument(name string, data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, errEmptyDocument
	}

	if len(data) > MaxDocumentSize {
		return Document{}, errDocumentTooLarge
	}

	mtype := mimetype.Detect(data)

	mime := mtype.String()
	if idx := strings.IndexByte(mime, ';'); idx != -1 {
		mime = mime[:idx]
	}

	if !allowedMIMETypes[mime] {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedDocument, mime)
	}

	return Document{Name: name, MIMEType: mime, Data: data}, nil
}

// IsPDF reports whether the document is a PDF.
func (d Document) IsPDF() bool {
	return d.MIMEType == mimePDF
}

// Supported reports whether the document type can be sent to a provider.
func (d Document) Supported() bool {
	return allowedMIMETypes[d.MIMEType] && len(d.Data) > 0
}

// Base64 returns the standard base64 encoding of the document.
func (d Document) Base64() string {
	return base64.StdEncoding.EncodeToString(d.Data)
}

// DataURI returns the document as a data URI.
func (d Document) DataURI() string {
	return "data:" + d.MIMEType + ";base64," + d.Base64()
}

// Text extracts the plain text of a PDF for providers that only accept
// images and text.
func (d Document) Text() (string, error) {
	if !d.IsPDF() {
		return "", fmt.Errorf("%w: text extraction needs a PDF, got %s", ErrUnsupportedDocument, d.MIMEType)
	}

	reader, err := pdf.NewReader(bytes.NewReader(d.Data), int64(len(d.Data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", errPDFHasNoText
	}

	return text, nil
}
