// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package extract turns documents into the plain text that's compared by
// [znkr.io/docdiff.ComputeDiff].
//
// Only plain text is supported. Text files may be UTF-8 (with or without byte order mark) or
// UTF-16 with a byte order mark. Other formats, like PDF or DOCX, are reported as
// [ErrUnsupported]; [Placeholder] provides the text that is compared in their place.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnsupported is returned for documents that can't be turned into text.
var ErrUnsupported = errors.New("unsupported document format")

// Extractor extracts the text of a document.
type Extractor interface {
	Extract(path string) (string, error)
}

// PlainText extracts text files.
type PlainText struct{}

var _ Extractor = PlainText{}

// unsupportedExts are document formats that are known not to be plain text.
var unsupportedExts = map[string]string{
	".pdf":  "PDF",
	".doc":  "Word",
	".docx": "Word",
	".odt":  "OpenDocument",
	".rtf":  "RTF",
}

// Extract reads the file at path and returns its content as UTF-8.
func (PlainText) Extract(path string) (string, error) {
	if kind, ok := unsupportedExts[strings.ToLower(filepath.Ext(path))]; ok {
		return "", fmt.Errorf("%s: %s documents: %w", path, kind, ErrUnsupported)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads r and returns its content as UTF-8. A byte order mark selects UTF-8 or UTF-16
// and is removed, without a byte order mark the content is read as UTF-8. Invalid byte sequences
// are replaced with U+FFFD.
func Decode(r io.Reader) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(r, dec))
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	if bytes.IndexByte(b, 0) >= 0 {
		return "", fmt.Errorf("binary content: %w", ErrUnsupported)
	}
	return string(b), nil
}

// Placeholder returns the text shown in place of a document that couldn't be extracted.
func Placeholder(err error) string {
	return "[unreadable: " + err.Error() + "]"
}
