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

package extract

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "empty", in: "", want: ""},
		{name: "utf8", in: "héllo\nwörld", want: "héllo\nwörld"},
		{name: "utf8-bom", in: "\xef\xbb\xbfhi", want: "hi"},
		{name: "utf16le-bom", in: "\xff\xfeh\x00i\x00\n\x00", want: "hi\n"},
		{name: "utf16be-bom", in: "\xfe\xff\x00h\x00i", want: "hi"},
		{name: "invalid-utf8", in: "a\xffb", want: "a�b"},
		{name: "binary", in: "a\x00b", wantErr: ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.in))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Decode(%q) returned error %v, want %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(%q) differs [-want,+got]:\n%s", tt.in, diff)
			}
		})
	}
}

func TestPlainText(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	txt := write("a.txt", "\xef\xbb\xbfline 1\nline 2\n")
	got, err := PlainText{}.Extract(txt)
	if err != nil {
		t.Fatalf("Extract(%q) failed: %v", txt, err)
	}
	if want := "line 1\nline 2\n"; got != want {
		t.Errorf("Extract(%q) = %q, want %q", txt, got, want)
	}

	pdf := write("b.PDF", "%PDF-1.7")
	if _, err := (PlainText{}).Extract(pdf); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Extract(%q) returned error %v, want %v", pdf, err, ErrUnsupported)
	}

	missing := filepath.Join(dir, "missing.txt")
	if _, err := (PlainText{}).Extract(missing); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Extract(%q) returned error %v, want %v", missing, err, fs.ErrNotExist)
	}
}
