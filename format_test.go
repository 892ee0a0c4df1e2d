// seehuhn.de/go/raster - a 2D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package ctx

import (
	"strings"
	"testing"
)

func TestIsTextualOpcode(t *testing.T) {
	if !isTextualOpcode(OpMoveTo) {
		t.Error("OpMoveTo should be textual")
	}
	if !isTextualOpcode(OpFill) {
		t.Error("OpFill should be textual")
	}
	if isTextualOpcode(OpGlobalAlpha) {
		t.Error("OpGlobalAlpha (a property setter) should not be textual")
	}
}

func TestFormatNumberShortestForm(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{3.0, "3"},
		{3.5, "3.5"},
		{0, "0"},
		{-2.5, "-2.5"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatStringEscaping(t *testing.T) {
	got := FormatString("a'b\"c\\d")
	if !strings.Contains(got, "\\\\") {
		t.Errorf("FormatString(%q) = %q, want escaped backslash", "a'b\"c\\d", got)
	}
}

func TestFormatColorModelPreferences(t *testing.T) {
	gray := RGBA(0.5, 0.5, 0.5, 1)
	if got := FormatColor(gray); !strings.Contains(got, "gray") {
		t.Errorf("FormatColor(equal RGB channels) = %q, want gray shortcut", got)
	}

	red := RGBA(1, 0, 0, 1)
	if got := FormatColor(red); !strings.Contains(got, "rgb") {
		t.Errorf("FormatColor(red) = %q, want rgb form", got)
	}
}

func TestEncodeDataBlockAscii85(t *testing.T) {
	payload := []byte("hello world")
	encoded := EncodeDataBlock(payload)
	if encoded == "" {
		t.Errorf("EncodeDataBlock(%q) produced empty output", payload)
	}
}

func TestFormatOpcodeAndParseOpcodeWordRoundTrip(t *testing.T) {
	word := FormatOpcode(OpFill)
	if word == "" {
		t.Fatal("expected OpFill to format to a non-empty word")
	}
	op, ok := ParseOpcodeWord(word)
	if !ok || op != OpFill {
		t.Errorf("ParseOpcodeWord(%q) = (%v, %v), want (OpFill, true)", word, op, ok)
	}
}

func TestFormatOpcodeNonTextual(t *testing.T) {
	if got := FormatOpcode(OpGlobalAlpha); got != "" {
		t.Errorf("FormatOpcode(OpGlobalAlpha) = %q, want \"\"", got)
	}
}

func TestParseOpcodeWordUnknown(t *testing.T) {
	if _, ok := ParseOpcodeWord("not-a-real-word"); ok {
		t.Error("expected unknown word to fail to parse")
	}
}
