package main

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"rtable/pkg/page"
)

// tableView draws a page and keeps it fitted to the widget's width.
// Tapping a trigger glyph toggles its column.
type tableView struct {
	widget.BaseWidget

	// OnChanged is called after every refit or toggle.
	OnChanged func(*page.Page)

	mu    sync.Mutex
	page  *page.Page
	img   *canvas.Image
	width int
}

var _ fyne.Tappable = (*tableView)(nil)

func newTableView(p *page.Page) *tableView {
	v := &tableView{page: p}
	v.img = canvas.NewImageFromImage(p.Render(1))
	v.img.FillMode = canvas.ImageFillOriginal
	v.img.ScaleMode = canvas.ImageScalePixels
	v.ExtendBaseWidget(v)
	return v
}

func (v *tableView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *tableView) MinSize() fyne.Size {
	return fyne.NewSize(1, 1)
}

// Resize runs a fit cycle whenever the width changes.
func (v *tableView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	v.mu.Lock()
	w := int(size.Width)
	changed := w > 0 && w != v.width
	if changed {
		v.width = w
		v.page.Resize(float64(w))
	}
	v.mu.Unlock()
	if changed || v.img.Image.Bounds().Dy() != int(size.Height) {
		v.redraw()
	}
}

func (v *tableView) Tapped(e *fyne.PointEvent) {
	v.mu.Lock()
	clicked := v.page.ClickAt(float64(e.Position.X), float64(e.Position.Y))
	v.mu.Unlock()
	if clicked {
		v.redraw()
	}
}

// SetPage replaces the displayed page, fitting it to the current width.
func (v *tableView) SetPage(p *page.Page) {
	v.mu.Lock()
	v.page = p
	if v.width > 0 {
		p.Resize(float64(v.width))
	}
	v.mu.Unlock()
	v.redraw()
}

func (v *tableView) redraw() {
	h := int(v.Size().Height)
	if h < 1 {
		h = 1
	}
	v.mu.Lock()
	p := v.page
	v.img.Image = p.Render(h)
	v.mu.Unlock()
	v.img.Refresh()
	if v.OnChanged != nil {
		v.OnChanged(p)
	}
}
