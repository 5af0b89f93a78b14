// Package export renders tree views to static image files. Both backends
// implement treeview.Painter, one over a gg raster context (PNG) and one
// over an svgo canvas (SVG), so snapshots run the exact draw path the
// interactive UI uses.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// SnapshotOptions controls snapshot export behaviour.
type SnapshotOptions struct {
	Path   string // Output path; format inferred from extension when Format empty
	Format string // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	CellW  int    // Pixels per horizontal view unit. Default 8.
	CellH  int    // Pixels per vertical view unit. Default 16.
}

const (
	defaultCellW = 8
	defaultCellH = 16
)

var (
	colorBackdrop = color.RGBA{R: 0x10, G: 0x12, B: 0x16, A: 0xff}
	colorInk      = color.RGBA{R: 0xd8, G: 0xdc, B: 0xe2, A: 0xff}
)

// SaveSnapshot renders the view's current viewport to opts.Path. The caller
// decides what the snapshot covers: for a full-content image, switch the
// view to ModeUnroll and size the viewport to its SizeHint first.
func SaveSnapshot[T any](v *treeview.View[T], opts SnapshotOptions) error {
	if v == nil {
		return fmt.Errorf("no view to export")
	}
	size := v.Viewport()
	if size.W <= 0 || size.H <= 0 {
		return fmt.Errorf("view has no viewport; call SetViewport first")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".svg":
			format = "svg"
		case ".png":
			format = "png"
		default:
			format = "svg" // safe default
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path = opts.Path + ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	cw, ch := opts.CellW, opts.CellH
	if cw <= 0 {
		cw = defaultCellW
	}
	if ch <= 0 {
		ch = defaultCellH
	}

	switch format {
	case "svg":
		return renderViewSVG(v, opts.Path, size, cw, ch)
	case "png":
		return renderViewPNG(v, opts.Path, size, cw, ch)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

func renderViewPNG[T any](v *treeview.View[T], path string, size treeview.Size, cw, ch int) error {
	dc := gg.NewContext(size.W*cw, size.H*ch)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	p := newPNGPainter(dc, cw, ch, colorInk)
	p.SetClip(treeview.Rect{W: size.W, H: size.H})
	v.Draw(p, treeview.Rect{W: size.W, H: size.H})

	return dc.SavePNG(path)
}

func renderViewSVG[T any](v *treeview.View[T], path string, size treeview.Size, cw, ch int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return renderViewSVGToWriter(file, v, size, cw, ch)
}

func renderViewSVGToWriter[T any](w io.Writer, v *treeview.View[T], size treeview.Size, cw, ch int) error {
	canvas := svg.New(w)
	canvas.Start(size.W*cw, size.H*ch)
	canvas.Rect(0, 0, size.W*cw, size.H*ch, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	p := newSVGPainter(canvas, cw, ch, colorInk)
	p.SetClip(treeview.Rect{W: size.W, H: size.H})
	v.Draw(p, treeview.Rect{W: size.W, H: size.H})
	p.close()

	canvas.End()
	return nil
}

// css renders a color as a CSS hex string for SVG style attributes.
func css(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
