package pokeclock

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/xyzrian/PokeClock/model"
)

func TestFontMetrics(t *testing.T) {
	f := testFont()
	if f.Height() != 13 {
		t.Errorf("Expected a 13 pixel line, got %d", f.Height())
	}
	if w := f.Measure("12:34"); w != 35 {
		t.Errorf("Expected 35 pixels, got %d", w)
	}
}

func TestDrawOutlinedText(t *testing.T) {
	f := model.NewFrame(64, 32)
	DrawOutlinedText(f, testFont(), "12:34", OutlineColor, TextColor)

	// 7 pixel wide glyphs centered on the panel occupy columns 14 to 48
	main, outline := 0, 0
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			switch f.Pixel(x, y) {
			case TextColor:
				main++
				if x < 14 || x >= 49 {
					t.Errorf("Text drawn outside of the centered box at %d,%d", x, y)
				}
			case OutlineColor:
				outline++
				if x < 13 || x >= 50 {
					t.Errorf("Outline drawn outside of the centered box at %d,%d", x, y)
				}
			}
		}
	}
	if main == 0 {
		t.Error("Expected text pixels to be drawn")
	}
	if outline == 0 {
		t.Error("Expected outline pixels to be drawn")
	}

	// Every text pixel is surrounded by text or outline
	for y := 1; y < f.Height()-1; y++ {
		for x := 1; x < f.Width()-1; x++ {
			if f.Pixel(x, y) != TextColor {
				continue
			}
			for _, n := range []model.Color{f.Pixel(x-1, y), f.Pixel(x+1, y), f.Pixel(x, y-1), f.Pixel(x, y+1)} {
				if n != TextColor && n != OutlineColor {
					t.Fatalf("Expected the text at %d,%d to be outlined, found %v", x, y, n)
				}
			}
		}
	}
}

func TestLoadFontErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFont(filepath.Join(dir, "absent.bdf"), 8); err == nil {
		t.Error("Expected an error for a missing font")
	}
	woff := filepath.Join(dir, "font.woff")
	if err := os.WriteFile(woff, []byte("wOFF"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFont(woff, 8); err == nil {
		t.Error("Expected an error for an unsupported font format")
	}
}

func TestLoadTrueTypeFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFont(path, 8)
	if err != nil {
		t.Fatalf("Expected the font to load, got %v", err)
	}
	if f.Height() <= 0 || f.Measure("00:00") <= 0 {
		t.Errorf("Expected a usable font, got height %d width %d", f.Height(), f.Measure("00:00"))
	}
}

// testBDF is a two glyph 6x10 bitmap font covering "1" and ":"
const testBDF = `STARTFONT 2.1
FONT -test-fixed-medium-r-normal--10-100-75-75-c-60-iso10646-1
SIZE 10 75 75
FONTBOUNDINGBOX 6 10 0 -2
STARTPROPERTIES 2
FONT_ASCENT 8
FONT_DESCENT 2
ENDPROPERTIES
CHARS 2
STARTCHAR one
ENCODING 49
SWIDTH 600 0
DWIDTH 6 0
BBX 6 8 0 0
BITMAP
30
70
30
30
30
30
30
78
ENDCHAR
STARTCHAR colon
ENCODING 58
SWIDTH 600 0
DWIDTH 6 0
BBX 6 8 0 0
BITMAP
00
30
30
00
00
30
30
00
ENDCHAR
ENDFONT
`

func TestLoadBDFFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "6x10.bdf")
	if err := os.WriteFile(path, []byte(testBDF), 0o600); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFont(path, 8)
	if err != nil {
		t.Fatalf("Expected the font to load, got %v", err)
	}
	if f.Height() != 10 {
		t.Errorf("Expected a 10 pixel line, got %d", f.Height())
	}
	if w := f.Measure("11:11"); w != 30 {
		t.Errorf("Expected 30 pixels, got %d", w)
	}

	frame := model.NewFrame(64, 32)
	DrawOutlinedText(frame, f, "11:11", OutlineColor, TextColor)

	main := 0
	for y := 0; y < frame.Height(); y++ {
		for x := 0; x < frame.Width(); x++ {
			if frame.Pixel(x, y) == TextColor {
				main++
				// centered at x = (64 - 30) / 2 = 17, baseline 16 + 5 - 1 = 20
				if x < 17 || x >= 47 || y < 12 || y >= 20 {
					t.Fatalf("Text drawn outside of its box at %d,%d", x, y)
				}
			}
		}
	}
	if main == 0 {
		t.Error("Expected text pixels to be drawn")
	}
}
