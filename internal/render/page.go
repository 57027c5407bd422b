package render

import "math"

const (
	mmPerInch = 25.4
	cssDPI    = 96
)

// PageConfig fixes the printed page geometry.
type PageConfig struct {
	WidthMM         float64
	HeightMM        float64
	MarginMM        float64
	PrintBackground bool
	Scale           float64
}

// A4 is the page every resume is printed on: 210mm x 297mm, no margins,
// backgrounds printed, scale 1.
func A4() PageConfig {
	return PageConfig{
		WidthMM:         210,
		HeightMM:        297,
		MarginMM:        0,
		PrintBackground: true,
		Scale:           1,
	}
}

// WidthInches is the paper width in inches as the DevTools protocol expects.
func (p PageConfig) WidthInches() float64 { return p.WidthMM / mmPerInch }

// HeightInches is the paper height in inches.
func (p PageConfig) HeightInches() float64 { return p.HeightMM / mmPerInch }

// MarginInches is the uniform margin in inches.
func (p PageConfig) MarginInches() float64 { return p.MarginMM / mmPerInch }

// ViewportWidth is the page width in CSS pixels.
func (p PageConfig) ViewportWidth() int {
	return int(math.Round(p.WidthMM / mmPerInch * cssDPI))
}

// ViewportHeight is the page height in CSS pixels.
func (p PageConfig) ViewportHeight() int {
	return int(math.Round(p.HeightMM / mmPerInch * cssDPI))
}
