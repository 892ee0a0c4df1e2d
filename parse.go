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
	"encoding/ascii85"
	"strconv"
	"strings"
)

// parserState names one state of the byte-fed parser's state machine
// (§4.3).
type parserState int

const (
	stateNeutral parserState = iota
	stateNumber
	stateNegativeNumber
	stateWord
	stateComment
	stateStringApos
	stateStringQuot
	stateStringA85
	stateStringAposEscaped
	stateStringQuotEscaped
)

// argSentinel marks how many numeric arguments a word command expects,
// beyond a fixed count (§4.3): some commands consume "however many
// numbers follow before the next word", others tie the count to a
// color model read as the first argument.
type argSentinel int

const (
	argFixed argSentinel = iota
	argCollectNumbers
	argStringOrNumber
	argNumberOfComponents
	argNumberOfComponentsPlusOne
)

// wordCommand describes one recognized bare word's argument-count rule
// and the opcode it resolves to.
type wordCommand struct {
	op       Opcode
	sentinel argSentinel
	fixed    int
}

var parserWords = map[string]wordCommand{
	"moveto": {op: OpMoveTo, fixed: 2}, "m": {op: OpRelMoveTo, fixed: 2},
	"lineto": {op: OpLineTo, fixed: 2}, "l": {op: OpRelLineTo, fixed: 2},
	"curveto": {op: OpCurveTo, fixed: 6}, "c": {op: OpRelCurveTo, fixed: 6},
	"quadto": {op: OpQuadTo, fixed: 4}, "q": {op: OpRelQuadTo, fixed: 4},
	"arc": {op: OpArc, fixed: 5}, "arcto": {op: OpArcTo, fixed: 5},
	"rect": {op: OpRectangle, fixed: 4}, "roundrect": {op: OpRoundRectangle, fixed: 5},
	"closepath": {op: OpClosePath, fixed: 0}, "newpath": {op: OpBeginPath, fixed: 0},
	"fill": {op: OpFill, fixed: 0}, "stroke": {op: OpStroke, fixed: 0},
	"preserve": {op: OpPreserve, fixed: 0}, "clip": {op: OpClip, fixed: 0},
	"save": {op: OpSave, fixed: 0}, "restore": {op: OpRestore, fixed: 0},
	"startgroup": {op: OpStartGroup, fixed: 0}, "endgroup": {op: OpEndGroup, fixed: 0},
	"reset": {op: OpReset, fixed: 0},
	"linewidth": {op: OpLineWidth, fixed: 1}, "linecap": {op: OpLineCap, fixed: 1},
	"linejoin": {op: OpLineJoin, fixed: 1}, "miterlimit": {op: OpMiterLimit, fixed: 1},
	"dash": {op: OpLineDash, sentinel: argCollectNumbers},
	"dashoffset": {op: OpLineDashOffset, fixed: 1},
	"globalalpha": {op: OpGlobalAlpha, fixed: 1},
	"compositingmode": {op: OpCompositingMode, fixed: 1}, "blendmode": {op: OpBlendMode, fixed: 1},
	"fillrule": {op: OpFillRule, fixed: 1},
	"gray":  {op: OpColor, sentinel: argNumberOfComponents, fixed: 1},
	"graya": {op: OpColor, sentinel: argNumberOfComponents, fixed: 2},
	"rgb":   {op: OpColor, sentinel: argNumberOfComponents, fixed: 3},
	"rgba":  {op: OpColor, sentinel: argNumberOfComponents, fixed: 4},
	"cmyk":  {op: OpColor, sentinel: argNumberOfComponents, fixed: 4},
	"cmyka": {op: OpColor, sentinel: argNumberOfComponents, fixed: 5},
	"lab":   {op: OpColor, sentinel: argNumberOfComponents, fixed: 3},
	"laba":  {op: OpColor, sentinel: argNumberOfComponents, fixed: 4},
	"lch":   {op: OpColor, sentinel: argNumberOfComponents, fixed: 3},
	"lcha":  {op: OpColor, sentinel: argNumberOfComponents, fixed: 4},
	"identity": {op: OpIdentity, fixed: 0}, "translate": {op: OpTranslate, fixed: 2},
	"scale": {op: OpScale, fixed: 2}, "rotate": {op: OpRotate, fixed: 1},
	"transform": {op: OpApplyTransform, fixed: 6}, "settransform": {op: OpSetTransform, fixed: 6},
}

// parserMaxLen bounds a single token's accumulated length (§7: a
// malformed or adversarial stream cannot grow one token without bound).
const parserMaxLen = 4096

// Parser is the byte-fed textual-format parser state machine (§4.3): feed
// it bytes one at a time (or via Parse for a whole buffer) and it appends
// completed Entries to its DrawList as commands resolve.
type Parser struct {
	List *DrawList

	state   parserState
	tok     strings.Builder
	numbers []float64
	pending string // word collected in stateWord, resolved once a delimiter is seen
}

// NewParser returns a parser appending onto list.
func NewParser(list *DrawList) *Parser {
	return &Parser{List: list}
}

// Parse feeds an entire buffer through the state machine.
func (p *Parser) Parse(buf []byte) {
	for _, c := range buf {
		p.Feed(c)
	}
	p.Flush()
}

// Flush forces completion of whatever token is in progress, as if a
// delimiter had just been seen; call this once at end of input.
func (p *Parser) Flush() {
	switch p.state {
	case stateNumber, stateNegativeNumber:
		p.completeNumber()
	case stateWord:
		p.completeWord()
	}
	p.state = stateNeutral
}

// Feed advances the state machine by one byte.
func (p *Parser) Feed(c byte) {
	switch p.state {
	case stateNeutral:
		p.feedNeutral(c)
	case stateNumber, stateNegativeNumber:
		p.feedNumber(c)
	case stateWord:
		p.feedWord(c)
	case stateComment:
		if c == '\n' {
			p.state = stateNeutral
		}
	case stateStringApos, stateStringQuot:
		p.feedString(c)
	case stateStringAposEscaped, stateStringQuotEscaped:
		p.tok.WriteByte(c)
		p.state = unescapedStringState(p.state)
	case stateStringA85:
		p.feedA85(c)
	}
}

func unescapedStringState(esc parserState) parserState {
	if esc == stateStringAposEscaped {
		return stateStringApos
	}
	return stateStringQuot
}

func (p *Parser) feedNeutral(c byte) {
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		return
	case c == '#':
		p.state = stateComment
	case c == '\'':
		p.state = stateStringApos
		p.tok.Reset()
	case c == '"':
		p.state = stateStringQuot
		p.tok.Reset()
	case c == '<':
		p.state = stateStringA85
		p.tok.Reset()
	case c == '-' || c == '.' || (c >= '0' && c <= '9'):
		p.tok.Reset()
		p.tok.WriteByte(c)
		if c == '-' {
			p.state = stateNegativeNumber
		} else {
			p.state = stateNumber
		}
	case isWordStart(c):
		p.tok.Reset()
		p.tok.WriteByte(c)
		p.state = stateWord
	}
}

func isWordStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

// numberSuffixScale maps the scaling suffixes §4.3 describes (@ = /100,
// % = /100, ^ = *72, ~ = /1000) to a multiplier applied to the just-parsed
// number.
func numberSuffixScale(c byte) (float64, bool) {
	switch c {
	case '@', '%':
		return 0.01, true
	case '^':
		return 72, true
	case '~':
		return 0.001, true
	default:
		return 0, false
	}
}

func (p *Parser) feedNumber(c byte) {
	if c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
		if p.tok.Len() < parserMaxLen {
			p.tok.WriteByte(c)
		}
		return
	}
	if scale, ok := numberSuffixScale(c); ok {
		p.completeNumberScaled(scale)
		p.state = stateNeutral
		return
	}
	p.completeNumber()
	p.state = stateNeutral
	p.feedNeutral(c)
}

func (p *Parser) completeNumber() { p.completeNumberScaled(1) }

func (p *Parser) completeNumberScaled(scale float64) {
	v, err := strconv.ParseFloat(p.tok.String(), 64)
	if err == nil {
		p.numbers = append(p.numbers, v*scale)
	}
	p.tok.Reset()
}

func (p *Parser) feedWord(c byte) {
	if isWordStart(c) || (c >= '0' && c <= '9') {
		if p.tok.Len() < parserMaxLen {
			p.tok.WriteByte(c)
		}
		return
	}
	p.completeWord()
	p.state = stateNeutral
	p.feedNeutral(c)
}

func (p *Parser) completeWord() {
	word := p.tok.String()
	p.tok.Reset()
	p.resolveWord(word)
}

// resolveWord looks up word, determines how many of the pending numbers
// belong to it per its argSentinel, emits the corresponding Entry (plus
// continuations), and leaves any unconsumed numbers (there should be
// none for a well-formed stream) in place.
func (p *Parser) resolveWord(word string) {
	cmd, ok := parserWords[word]
	if !ok {
		p.numbers = p.numbers[:0]
		return
	}
	var n int
	switch cmd.sentinel {
	case argCollectNumbers:
		n = len(p.numbers)
	case argNumberOfComponents:
		n = cmd.fixed
	default:
		n = cmd.fixed
	}
	if n > len(p.numbers) {
		n = len(p.numbers)
	}
	args := p.numbers[:n]
	p.emitWordEntry(cmd, word, args)
	p.numbers = p.numbers[n:]
	if len(p.numbers) == 0 {
		p.numbers = p.numbers[:0]
	}
}

// emitWordEntry packs args into an Entry (+ continuations as needed) and
// appends it to the list. Colors encode the model (with StrokeSourceBit
// unset here; callers distinguish stroke vs fill at a higher layer) into
// the leading entry itself via encodeColorEntry, and the dash array packs
// its own length into the leading entry via encodeCountedFloats, since
// both are variable-width forms ContsForEntry must be able to size from
// the entry's own payload.
func (p *Parser) emitWordEntry(cmd wordCommand, word string, args []float64) {
	switch cmd.op {
	case OpColor:
		model := colorModelForWord(word)
		e, conts := encodeColorEntry(OpColor, model, false, args)
		p.List.Append(e, conts...)
	case OpLineDash:
		e, conts := encodeCountedFloats(OpLineDash, args)
		p.List.Append(e, conts...)
	default:
		e := Entry{Op: cmd.op}
		conts := packFloatsIntoEntry(&e, args)
		p.List.Append(e, conts...)
	}
}

func colorModelForWord(word string) ColorModel {
	switch word {
	case "gray":
		return ModelGray
	case "graya":
		return ModelGrayAlpha
	case "rgb":
		return ModelRGB
	case "rgba":
		return ModelRGBA
	case "cmyk":
		return ModelCMYK
	case "cmyka":
		return ModelCMYKA
	case "lab":
		return ModelLab
	case "laba":
		return ModelLabAlpha
	case "lch":
		return ModelLCH
	case "lcha":
		return ModelLCHAlpha
	default:
		return ModelGray
	}
}

// packFloatsIntoEntry writes vals two-per-slot into e's payload first,
// then into as many continuation Entries as needed, returning those
// continuations.
func packFloatsIntoEntry(e *Entry, vals []float64) []Entry {
	var conts []Entry
	slot := 0
	cur := e
	for _, v := range vals {
		if slot == 2 {
			conts = append(conts, Entry{Op: OpCont})
			cur = &conts[len(conts)-1]
			slot = 0
		}
		cur.SetF32(slot, float32(v))
		slot++
	}
	return conts
}

func (p *Parser) feedString(c byte) {
	switch c {
	case '\\':
		if p.state == stateStringApos {
			p.state = stateStringAposEscaped
		} else {
			p.state = stateStringQuotEscaped
		}
	case '\'':
		if p.state == stateStringApos {
			p.completeString()
			p.state = stateNeutral
			return
		}
		p.tok.WriteByte(c)
	case '"':
		if p.state == stateStringQuot {
			p.completeString()
			p.state = stateNeutral
			return
		}
		p.tok.WriteByte(c)
	default:
		if p.tok.Len() < parserMaxLen {
			p.tok.WriteByte(c)
		}
	}
}

func (p *Parser) completeString() {
	s := p.tok.String()
	p.tok.Reset()
	p.emitStringData(s)
}

func (p *Parser) feedA85(c byte) {
	if c == '>' {
		raw := p.tok.String()
		p.tok.Reset()
		decoded := make([]byte, len(raw))
		n, _, _ := ascii85.Decode(decoded, []byte(raw), true)
		p.emitStringData(string(decoded[:n]))
		p.state = stateNeutral
		return
	}
	if p.tok.Len() < parserMaxLen {
		p.tok.WriteByte(c)
	}
}

// emitStringData appends a DATA header entry plus continuation entries
// holding s's raw bytes 8 per continuation (§4.1/§4.3): strings don't
// resolve an opcode themselves, they supply the operand a following word
// like `text` or `font` consumes, which the caller (ParseAndBind or an
// equivalent higher layer) is responsible for associating — this parser
// only guarantees the bytes reach the list as a well-formed DATA block.
func (p *Parser) emitStringData(s string) {
	data := []byte(s)
	header := Entry{Op: OpData}
	var conts []Entry
	for i := 0; i < len(data); i += 8 {
		var c Entry
		end := i + 8
		if end > len(data) {
			end = len(data)
		}
		copy(c.Payload[:], data[i:end])
		conts = append(conts, c)
	}
	header.SetU32(1, uint32(len(conts)+1))
	p.List.Append(header, conts...)
}
