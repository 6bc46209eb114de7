package gauge

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/christophergentle/weton-predictor/internal/config"
	"github.com/christophergentle/weton-predictor/internal/weton"
	"github.com/fogleman/gg"
)

// Segment is a coloured arc of the dial between two scores.
type Segment struct {
	From  float64
	To    float64
	Color color.RGBA
}

// GaugeConfig holds configuration for gauge generation
type GaugeConfig struct {
	Width       int
	Height      int
	Padding     int
	ArcWidth    float64
	NeedleWidth float64
	FontPath    string
	FontSize    float64
	Background  color.RGBA
	NeedleColor color.RGBA
	TextColor   color.RGBA
	Segments    []Segment
}

// DefaultConfig returns a default gauge configuration
func DefaultConfig() *GaugeConfig {
	return &GaugeConfig{
		Width:       600,
		Height:      400,
		Padding:     30,
		ArcWidth:    40,
		NeedleWidth: 4,
		FontSize:    14,
		Background:  color.RGBA{255, 255, 255, 255},
		NeedleColor: color.RGBA{0, 0, 0, 255},
		TextColor:   color.RGBA{33, 37, 41, 255},
		Segments: []Segment{
			{From: 0, To: 50, Color: color.RGBA{0xff, 0x4b, 0x4b, 255}},   // Bahaya
			{From: 50, To: 75, Color: color.RGBA{0xf9, 0xd4, 0x23, 255}},  // Cukup
			{From: 75, To: 100, Color: color.RGBA{0x00, 0xd0, 0x84, 255}}, // Baik
		},
	}
}

// FromConfig applies the size and font settings from the application config
// on top of DefaultConfig.
func FromConfig(cfg config.GaugeConfig) *GaugeConfig {
	c := DefaultConfig()
	if cfg.Width > 0 {
		c.Width = cfg.Width
	}
	if cfg.Height > 0 {
		c.Height = cfg.Height
	}
	c.FontPath = cfg.FontPath
	return c
}

// GaugeGenerator renders compatibility scores as a semicircular dial
type GaugeGenerator struct {
	config *GaugeConfig
}

// NewGaugeGenerator creates a new gauge generator
func NewGaugeGenerator(config *GaugeConfig) *GaugeGenerator {
	if config == nil {
		config = DefaultConfig()
	}
	return &GaugeGenerator{config: config}
}

// Config returns the generator's configuration.
func (g *GaugeGenerator) Config() GaugeConfig {
	return *g.config
}

// GenerateGauge draws the dial with the needle at score (0-100) and returns a PNG.
// Scores outside 0-100 are pinned to the nearest end.
func (g *GaugeGenerator) GenerateGauge(score float64, status string) ([]byte, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, fmt.Errorf("invalid score %v", score)
	}
	if g.config.Width <= 0 || g.config.Height <= 0 {
		return nil, fmt.Errorf("invalid gauge size %dx%d", g.config.Width, g.config.Height)
	}

	dc := gg.NewContext(g.config.Width, g.config.Height)
	dc.SetColor(g.config.Background)
	dc.Clear()

	if g.config.FontPath != "" {
		if err := dc.LoadFontFace(g.config.FontPath, g.config.FontSize); err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
	}

	cx, cy, radius := g.geometry()

	g.drawTitle(dc, score, status)
	g.drawSegments(dc, cx, cy, radius)
	g.drawTicks(dc, cx, cy, radius)
	g.drawNeedle(dc, cx, cy, radius, clamp(score))

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode gauge: %w", err)
	}
	return buf.Bytes(), nil
}

// geometry places the dial centre in the lower part of the image, leaving room
// above for the title and around the arc for tick labels.
func (g *GaugeGenerator) geometry() (cx, cy, radius float64) {
	w := float64(g.config.Width)
	h := float64(g.config.Height)
	pad := float64(g.config.Padding)
	titleSpace := 3 * g.lineHeight()

	cx = w / 2
	cy = h - pad - g.lineHeight()
	radius = math.Min(w/2-pad-g.config.ArcWidth, cy-titleSpace-pad)
	return cx, cy, math.Max(radius, 1)
}

func (g *GaugeGenerator) lineHeight() float64 {
	if g.config.FontPath != "" {
		return g.config.FontSize * 1.4
	}
	return 16 // gg's built-in face is 13px tall
}

// angleFor maps 0..100 onto the upper half circle, left to right.
func angleFor(score float64) float64 {
	return math.Pi + math.Pi*score/100
}

func (g *GaugeGenerator) drawTitle(dc *gg.Context, score float64, status string) {
	dc.SetColor(g.config.TextColor)
	x := float64(g.config.Width) / 2
	y := float64(g.config.Padding)
	dc.DrawStringAnchored(fmt.Sprintf("Relationship Score: %.1f%%", score), x, y, 0.5, 0.5)
	dc.DrawStringAnchored("Status: "+status, x, y+g.lineHeight(), 0.5, 0.5)
}

func (g *GaugeGenerator) drawSegments(dc *gg.Context, cx, cy, radius float64) {
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineWidth(g.config.ArcWidth)
	for _, seg := range g.config.Segments {
		dc.SetColor(seg.Color)
		dc.DrawArc(cx, cy, radius, angleFor(clamp(seg.From)), angleFor(clamp(seg.To)))
		dc.Stroke()
	}
}

func (g *GaugeGenerator) drawTicks(dc *gg.Context, cx, cy, radius float64) {
	dc.SetColor(g.config.TextColor)
	labelRadius := radius + g.config.ArcWidth/2 + g.lineHeight()/2 + 4
	for _, level := range weton.Levels {
		a := angleFor(level.Threshold)
		x := cx + labelRadius*math.Cos(a)
		y := cy + labelRadius*math.Sin(a)

		// Anchor away from the dial so labels at the ends do not overlap the arc.
		ax := 0.5 - 0.5*math.Cos(a)
		dc.DrawStringAnchored(level.Name, x, y, ax, 0.5)
	}
}

func (g *GaugeGenerator) drawNeedle(dc *gg.Context, cx, cy, radius, score float64) {
	a := angleFor(score)
	length := radius + g.config.ArcWidth/2

	dc.SetColor(g.config.NeedleColor)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineWidth(g.config.NeedleWidth)
	dc.DrawLine(cx, cy, cx+length*math.Cos(a), cy+length*math.Sin(a))
	dc.Stroke()

	dc.DrawCircle(cx, cy, g.config.NeedleWidth*2)
	dc.Fill()
}

func clamp(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
