// Package render paints laid out tables to an image with gg.
package render

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"

	"rtable/pkg/css"
	"rtable/pkg/layout"
	"rtable/pkg/text"
)

type Renderer struct {
	context *gg.Context
	fonts   *text.GoFont
}

func NewRenderer(width, height int, fonts *text.GoFont) *Renderer {
	return &Renderer{context: gg.NewContext(width, height), fonts: fonts}
}

// Render clears the canvas and paints the tables in order.
func (r *Renderer) Render(tables []*layout.TableInfo) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	for _, t := range tables {
		r.drawBox(t.Box)
		for _, cell := range t.Box.Children {
			r.drawBox(cell)
			for _, tb := range cell.Children {
				r.drawText(tb)
			}
		}
	}
}

func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGB255(int(c.R), int(c.G), int(c.B))
}

func (r *Renderer) drawBox(box *layout.Box) {
	if box.Width <= 0 || box.Height <= 0 {
		return
	}
	if bg, ok := box.Style.GetBackgroundColor(); ok {
		r.setColor(bg)
		r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
		r.context.Fill()
	}
	r.drawBorder(box)
}

// drawBorder fills each side of the border area as a solid band.
func (r *Renderer) drawBorder(box *layout.Box) {
	b := box.Border
	sides := []struct {
		name       string
		width      float64
		x, y, w, h float64
	}{
		{"top", b.Top, box.X, box.Y, box.Width, b.Top},
		{"bottom", b.Bottom, box.X, box.Y + box.Height - b.Bottom, box.Width, b.Bottom},
		{"left", b.Left, box.X, box.Y, b.Left, box.Height},
		{"right", b.Right, box.X + box.Width - b.Right, box.Y, b.Right, box.Height},
	}
	for _, s := range sides {
		if s.width <= 0 {
			continue
		}
		r.setColor(box.Style.GetBorderColor(s.name))
		r.context.DrawRectangle(s.x, s.y, s.w, s.h)
		r.context.Fill()
	}
}

// drawText paints one text box. Vertical boxes are rotated so the text
// reads bottom to top.
func (r *Renderer) drawText(box *layout.Box) {
	if box.Text == "" {
		return
	}
	r.setColor(box.Style.GetColor())
	if r.fonts != nil {
		r.context.SetFontFace(r.fonts.Face(box.FontSize, box.Bold))
	}
	if !box.Vertical {
		r.context.DrawString(box.Text, box.X, box.Y+box.FontSize)
		return
	}
	r.context.Push()
	defer r.context.Pop()
	r.context.Translate(box.X+box.FontSize, box.Y+box.Height)
	r.context.Rotate(-math.Pi / 2)
	r.context.DrawString(box.Text, 0, 0)
}
