package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the injected colour configuration for the renderer.
// Alternate themes swap the palette without touching painting code.
type Palette struct {
	// Clusters assigns outline/tint colours by cluster id, modulo.
	Clusters []color.RGBA

	Background         color.RGBA // detail-mode base, under the texture
	BackgroundClusters color.RGBA // flat clusters-mode background

	Card          color.RGBA // card paper fill
	CardFold      color.RGBA // folded-corner shade
	CardPin       color.RGBA // pinned-note accent
	CardSilhouete color.RGBA // person silhouette

	Label         color.RGBA
	LabelPill     color.RGBA // weight-label backing pill
	LabelPillText color.RGBA

	Link          color.RGBA
	SelectionGlow color.RGBA
}

// DefaultPalette returns the stock theme.
func DefaultPalette() Palette {
	return Palette{
		Clusters: []color.RGBA{
			{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
			{R: 0xf2, G: 0x8e, B: 0x2b, A: 0xff},
			{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
			{R: 0x76, G: 0xb7, B: 0xb2, A: 0xff},
			{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
			{R: 0xed, G: 0xc9, B: 0x48, A: 0xff},
			{R: 0xb0, G: 0x7a, B: 0xa1, A: 0xff},
			{R: 0xff, G: 0x9d, B: 0xa7, A: 0xff},
		},
		Background:         color.RGBA{R: 0x2b, G: 0x26, B: 0x20, A: 0xff},
		BackgroundClusters: color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 0xff},
		Card:               color.RGBA{R: 0xf5, G: 0xef, B: 0xdc, A: 0xff},
		CardFold:           color.RGBA{R: 0xd8, G: 0xcf, B: 0xb4, A: 0xff},
		CardPin:            color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff},
		CardSilhouete:      color.RGBA{R: 0x6b, G: 0x63, B: 0x55, A: 0xff},
		Label:              color.RGBA{R: 0x33, G: 0x2f, B: 0x28, A: 0xff},
		LabelPill:          color.RGBA{R: 0x11, G: 0x11, B: 0x18, A: 0xdd},
		LabelPillText:      color.RGBA{R: 0xee, G: 0xee, B: 0xf2, A: 0xff},
		Link:               color.RGBA{R: 0x8a, G: 0x86, B: 0x7c, A: 0xb0},
		SelectionGlow:      color.RGBA{R: 0xff, G: 0xd4, B: 0x3b, A: 0xff},
	}
}

// ClusterColor returns the palette colour for a cluster id.
func (p Palette) ClusterColor(clusterID int) color.RGBA {
	if len(p.Clusters) == 0 {
		return color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	}
	if clusterID < 0 {
		clusterID = -clusterID
	}
	return p.Clusters[clusterID%len(p.Clusters)]
}

// Tint blends a colour toward white by the given fraction in [0,1].
func Tint(c color.RGBA, fraction float64) color.RGBA {
	base, _ := colorful.MakeColor(c)
	white := colorful.Color{R: 1, G: 1, B: 1}
	return toRGBA(base.BlendLab(white, fraction), c.A)
}

// Shade blends a colour toward black by the given fraction in [0,1].
func Shade(c color.RGBA, fraction float64) color.RGBA {
	base, _ := colorful.MakeColor(c)
	black := colorful.Color{}
	return toRGBA(base.BlendLab(black, fraction), c.A)
}

// ContrastText picks a legible text colour for the given background.
func ContrastText(bg color.RGBA) color.RGBA {
	c, _ := colorful.MakeColor(bg)
	if luminance(c) > 0.5 {
		return color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff}
	}
	return color.RGBA{R: 0xf2, G: 0xf2, B: 0xf5, A: 0xff}
}

// blendPaper washes the card paper with a hint of the owning cluster's
// colour so neighbouring clusters read differently on the board.
func blendPaper(paper, tint color.RGBA) color.RGBA {
	a, _ := colorful.MakeColor(paper)
	b, _ := colorful.MakeColor(tint)
	return toRGBA(a.BlendLab(b, 0.12), paper.A)
}

func luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func toRGBA(c colorful.Color, alpha uint8) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}
