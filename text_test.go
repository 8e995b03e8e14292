package nagp1250

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeASCII(t *testing.T) {
	d, _ := newTestDev(t)
	got, err := d.Encode("Hello VFD!")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(got, []byte("Hello VFD!")) {
		t.Errorf("Encode() = %x", got)
	}
}

func TestEncodePC437(t *testing.T) {
	d, _ := newTestDev(t)
	tests := []struct {
		in   string
		want []byte
	}{
		{"é", []byte{0x82}},
		{"ü", []byte{0x81}},
		{"°", []byte{0xF8}},
		{"café", []byte{'c', 'a', 'f', 0x82}},
	}
	for _, tt := range tests {
		got, err := d.Encode(tt.in)
		if err != nil {
			t.Errorf("Encode(%q) error: %v", tt.in, err)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("Encode(%q) = %x, want %x", tt.in, got, tt.want)
		}
	}
}

func TestEncodeControlRunes(t *testing.T) {
	d, _ := newTestDev(t)
	got, err := d.Encode("a\nb\rc\td\be")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := []byte{'a', 0x0A, 'b', 0x0D, 'c', 0x09, 'd', 0x08, 'e'}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = %x, want %x", got, want)
	}
}

func TestEncodeKatakana(t *testing.T) {
	d, l := newTestDev(t)
	if err := d.SetCodePage(PageKatakana); err != nil {
		t.Fatal(err)
	}
	l.take()

	got, err := d.Encode("ｱｲｳ 1")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := []byte{0xB1, 0xB2, 0xB3, ' ', '1'}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = %x, want %x", got, want)
	}

	// Punctuation at the block edges.
	got, err = d.Encode("｡ﾟ")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{0xA1, 0xDF}) {
		t.Errorf("Encode() = %x, want a1df", got)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	d, _ := newTestDev(t)
	_, err := d.Encode("ok日")
	var uce *UnsupportedCharError
	if !errors.As(err, &uce) {
		t.Fatalf("error = %v, want UnsupportedCharError", err)
	}
	if uce.Rune != '日' || uce.Pos != 2 {
		t.Errorf("UnsupportedCharError = %+v", uce)
	}

	// Katakana page rejects Latin-1 extras that PC437 accepts.
	if err := d.SetCodePage(PageKatakana); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Encode("é"); !errors.As(err, &uce) {
		t.Errorf("Encode(é) on Katakana page = %v, want UnsupportedCharError", err)
	}
}

func TestEncodeRejectsStrayControls(t *testing.T) {
	d, _ := newTestDev(t)
	// ESC would be interpreted as a command prefix; it must never pass
	// through as text.
	if _, err := d.Encode("a\x1bb"); err == nil {
		t.Error("Encode() accepted a raw escape byte")
	}
}

func TestWriteText(t *testing.T) {
	d, l := newTestDev(t)
	if err := d.WriteText("VFD"); err != nil {
		t.Fatalf("WriteText() error: %v", err)
	}
	if !bytes.Equal(l.take(), []byte("VFD")) {
		t.Error("WriteText sent wrong bytes")
	}
	if l.waits != 1 {
		t.Errorf("WriteText waited %d times, want 1", l.waits)
	}
}

func TestWriteTextAbortsBeforeSending(t *testing.T) {
	d, l := newTestDev(t)
	err := d.WriteText("abc日def")
	var uce *UnsupportedCharError
	if !errors.As(err, &uce) {
		t.Fatalf("error = %v, want UnsupportedCharError", err)
	}
	if got := l.take(); len(got) != 0 {
		t.Errorf("partial text transmitted %x", got)
	}
}

func TestCodePageSwitching(t *testing.T) {
	d, l := newTestDev(t)
	for _, p := range []CodePage{PagePC850, PageWPC1252, PagePC866, PagePC437} {
		if err := d.SetCodePage(p); err != nil {
			t.Fatalf("SetCodePage(%#02x) error: %v", uint8(p), err)
		}
		want := []byte{0x1B, 0x74, byte(p)}
		if !bytes.Equal(l.take(), want) {
			t.Errorf("SetCodePage(%#02x) sent wrong bytes", uint8(p))
		}
		if d.CodePage() != p {
			t.Errorf("CodePage() = %#02x, want %#02x", uint8(d.CodePage()), uint8(p))
		}
	}
}

func TestCyrillicPage(t *testing.T) {
	d, _ := newTestDev(t)
	if err := d.SetCodePage(PagePC866); err != nil {
		t.Fatal(err)
	}
	got, err := d.Encode("Да")
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !bytes.Equal(got, []byte{0x84, 0xA0}) {
		t.Errorf("Encode() = %x, want 84a0", got)
	}
}
