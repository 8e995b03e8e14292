package nagp1250

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Font selects the international variant of the 20h-7Fh glyphs.
type Font uint8

// International fonts.
const (
	FontAmerica      Font = 0x00
	FontFrance       Font = 0x01
	FontGermany      Font = 0x02
	FontEngland      Font = 0x03
	FontDenmark1     Font = 0x04
	FontSweden       Font = 0x05
	FontItaly        Font = 0x06
	FontSpain1       Font = 0x07
	FontJapan        Font = 0x08
	FontNorway       Font = 0x09
	FontDenmark2     Font = 0x0A
	FontSpain2       Font = 0x0B
	FontLatinAmerica Font = 0x0C
	FontKorea        Font = 0x0D
)

// CodePage selects the glyph table for character codes 80h-FFh.
type CodePage uint8

// Character code pages.
const (
	PagePC437    CodePage = 0x00 // US / European, power-on default
	PageKatakana CodePage = 0x01 // JIS X 0201 halfwidth kana
	PagePC850    CodePage = 0x02 // Multilingual
	PagePC860    CodePage = 0x03 // Portuguese
	PagePC863    CodePage = 0x04 // Canadian French
	PagePC865    CodePage = 0x05 // Nordic
	PageWPC1252  CodePage = 0x10
	PagePC866    CodePage = 0x11 // Cyrillic #2
	PagePC852    CodePage = 0x12 // Latin #2
	PagePC858    CodePage = 0x13
)

// codePages maps each supported page to its single-byte character map.
// The Katakana page has no charmap table and is handled separately.
var codePages = map[CodePage]*charmap.Charmap{
	PagePC437:   charmap.CodePage437,
	PagePC850:   charmap.CodePage850,
	PagePC860:   charmap.CodePage860,
	PagePC863:   charmap.CodePage863,
	PagePC865:   charmap.CodePage865,
	PageWPC1252: charmap.Windows1252,
	PagePC866:   charmap.CodePage866,
	PagePC852:   charmap.CodePage852,
	PagePC858:   charmap.CodePage858,
}

// SetCodePage selects the glyph table for character codes 80h-FFh and for
// all subsequent Encode and WriteText calls.
func (d *Dev) SetCodePage(p CodePage) error {
	if _, ok := codePages[p]; !ok && p != PageKatakana {
		return fmt.Errorf("%w: code page %#02x", ErrInvalidArgument, uint8(p))
	}
	if err := d.exec(cmdCodePage, int(p)); err != nil {
		return err
	}
	d.codePage = p
	return nil
}

// EncodeRune maps r to a device byte under the active code page. The
// cursor motion runes \b, \t, \n and \r map to their control bytes on
// every page.
func (d *Dev) EncodeRune(r rune) (byte, bool) {
	switch r {
	case '\b':
		return 0x08, true
	case '\t':
		return 0x09, true
	case '\n':
		return 0x0A, true
	case '\r':
		return 0x0D, true
	}
	if d.codePage == PageKatakana {
		if r >= 0x20 && r <= 0x7E {
			return byte(r), true
		}
		// JIS X 0201 halfwidth kana is a contiguous block.
		if r >= '｡' && r <= 'ﾟ' {
			return byte(r-'｡') + 0xA1, true
		}
		return 0, false
	}
	cm := codePages[d.codePage]
	b, ok := cm.EncodeRune(r)
	if !ok || (b < 0x20 && b != 0x08 && b != 0x09 && b != 0x0A && b != 0x0D) {
		return 0, false
	}
	return b, true
}

// Encode maps s to device bytes under the active code page. The first rune
// without a mapping aborts with an UnsupportedCharError; the caller decides
// whether to skip it, substitute and retry, or give up.
func (d *Dev) Encode(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	i := 0
	for _, r := range s {
		b, ok := d.EncodeRune(r)
		if !ok {
			return nil, &UnsupportedCharError{Rune: r, Pos: i}
		}
		out = append(out, b)
		i++
	}
	return out, nil
}

// WriteText encodes s under the active code page and writes it at the
// active window's cursor with the window's magnification, reverse and
// write-mode attributes. An unsupported character aborts before anything
// is transmitted.
func (d *Dev) WriteText(s string) error {
	if d.halted {
		return ErrHalted
	}
	seq, err := d.Encode(s)
	if err != nil {
		return err
	}
	if err := d.link.SendBytes(seq); err != nil {
		return err
	}
	return d.link.WaitReady(d.busyTimeout)
}
