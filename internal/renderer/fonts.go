package renderer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSet is the explicit font capability handed to the engine. Both the
// measure pass and the paint pass share the same faces; measuring with
// one face and painting with another would desynchronize the layout.
type FontSet struct {
	Title   font.Face // restaurant name, grand total
	Bold    font.Face // column headers, line totals
	Regular font.Face // body text, detail rows
	Small   font.Face // options, struck-through prices, chip detail
}

const (
	titleSize   = 30
	boldSize    = 22
	regularSize = 20
	smallSize   = 16
)

// LoadFontSet builds a FontSet from TTF files. boldPath may be empty, in
// which case the regular font serves all weights.
func LoadFontSet(regularPath, boldPath string) (*FontSet, error) {
	regular, err := parseTTF(regularPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load regular font: %w", err)
	}

	bold := regular
	if boldPath != "" {
		bold, err = parseTTF(boldPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load bold font: %w", err)
		}
	}

	return &FontSet{
		Title:   truetype.NewFace(bold, &truetype.Options{Size: titleSize}),
		Bold:    truetype.NewFace(bold, &truetype.Options{Size: boldSize}),
		Regular: truetype.NewFace(regular, &truetype.Options{Size: regularSize}),
		Small:   truetype.NewFace(regular, &truetype.Options{Size: smallSize}),
	}, nil
}

// LoadFontDir looks for regular/bold TTFs in dir by conventional names.
func LoadFontDir(dir string) (*FontSet, error) {
	regular := firstExisting(
		filepath.Join(dir, "Regular.ttf"),
		filepath.Join(dir, "regular.ttf"),
	)
	if regular == "" {
		return nil, fmt.Errorf("no Regular.ttf found in %s", dir)
	}
	bold := firstExisting(
		filepath.Join(dir, "Bold.ttf"),
		filepath.Join(dir, "bold.ttf"),
	)
	return LoadFontSet(regular, bold)
}

// DefaultFontSet tries well-known system fonts and falls back to a
// built-in bitmap face, so rendering works on any machine. The fallback
// keeps the engine deterministic for tests.
func DefaultFontSet() *FontSet {
	systemFonts := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"C:\\Windows\\Fonts\\arial.ttf",
	}

	for _, path := range systemFonts {
		if _, err := os.Stat(path); err == nil {
			if fs, err := LoadFontSet(path, ""); err == nil {
				return fs
			}
		}
	}

	face := basicfont.Face7x13
	return &FontSet{Title: face, Bold: face, Regular: face, Small: face}
}

func parseTTF(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(data)
}

func firstExisting(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
