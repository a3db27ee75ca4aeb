package export

import (
	"fmt"
	"image/color"
	"io"
	"unicode/utf8"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/bwtree/pkg/loader"
	"github.com/vanderheijden86/bwtree/pkg/tree"
)

// Snapshot geometry, in pixels.
const (
	margin    = 16
	headerH   = 40
	rowH      = 22
	indentW   = 20
	markerW   = 10
	charW     = 7 // basicfont.Face7x13
	maxLabel  = 60
	minWidth  = 320
	textShift = 4
)

var (
	colorBackdrop = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorText     = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorEdge     = color.RGBA{0x6b, 0x80, 0xbf, 0xff}
	colorOpen     = color.RGBA{0xc8, 0xe6, 0xc9, 0xff}
	colorClosed   = color.RGBA{0xff, 0xf3, 0xe0, 0xff}
	colorLeaf     = color.RGBA{0xcf, 0xd8, 0xdc, 0xff}
	colorStroke   = color.RGBA{0x22, 0x22, 0x22, 0xff}
)

type layoutRow struct {
	X, Y   int // marker top-left
	Label  string
	Kind   color.RGBA
	Parent int // index of the parent row, -1 for roots
}

type layoutResult struct {
	Width, Height int
	Title         string
	Rows          []layoutRow
}

// buildLayout places one row per line, indented by depth. A visible row's
// parent is always visible and listed before it.
func buildLayout(title string, rows []tree.Row[string, loader.Entry]) layoutResult {
	l := layoutResult{Title: title, Rows: make([]layoutRow, len(rows))}
	index := make(map[string]int, len(rows))
	width := minWidth
	for i, row := range rows {
		key := row.Path.String()
		index[key] = i

		parent := -1
		if p := row.Path.Parent(); p != nil {
			if j, ok := index[p.String()]; ok {
				parent = j
			}
		}
		kind := colorLeaf
		if row.HasChildren {
			kind = colorClosed
			if row.IsOpen {
				kind = colorOpen
			}
		}
		label := truncate(rowLabel(row), maxLabel)
		lr := layoutRow{
			X:      margin + row.Depth*indentW,
			Y:      headerH + i*rowH,
			Label:  label,
			Kind:   kind,
			Parent: parent,
		}
		l.Rows[i] = lr
		width = max(width, lr.X+markerW+8+utf8.RuneCountInString(label)*charW+margin)
	}
	l.Width = max(width, margin*2+utf8.RuneCountInString(title)*charW)
	l.Height = headerH + len(rows)*rowH + margin
	return l
}

// elbow returns the connector from a row's parent marker down and across to
// the row's marker.
func (l layoutResult) elbow(r layoutRow) (x1, y1, x2, y2, x3 int) {
	p := l.Rows[r.Parent]
	x1 = p.X + markerW/2
	y1 = p.Y + markerW
	y2 = r.Y + markerW/2
	x2 = x1
	x3 = r.X
	return
}

// WriteSVG renders rows as an SVG outline.
func WriteSVG(w io.Writer, title string, rows []tree.Row[string, loader.Entry]) {
	renderSVG(w, buildLayout(title, rows))
}

func renderSVG(w io.Writer, layout layoutResult) {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	if layout.Title != "" {
		canvas.Text(margin, 26, layout.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	}

	edge := fmt.Sprintf("stroke:%s;stroke-width:1.5;fill:none", css(colorEdge))
	for _, r := range layout.Rows {
		if r.Parent < 0 {
			continue
		}
		x1, y1, x2, y2, x3 := layout.elbow(r)
		canvas.Polyline([]int{x1, x2, x3}, []int{y1, y2, y2}, edge)
	}

	for _, r := range layout.Rows {
		canvas.Roundrect(r.X, r.Y, markerW, markerW, 2, 2,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(r.Kind), css(colorStroke)))
		canvas.Text(r.X+markerW+6, r.Y+markerW-1, r.Label,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorText)))
	}
	canvas.End()
}

// SavePNG renders rows as a PNG image at path.
func SavePNG(path, title string, rows []tree.Row[string, loader.Entry]) error {
	return renderPNG(path, buildLayout(title, rows))
}

func renderPNG(path string, layout layoutResult) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if layout.Title != "" {
		dc.SetColor(colorText)
		dc.DrawStringAnchored(layout.Title, margin, 22, 0, 0.5)
	}

	dc.SetColor(colorEdge)
	dc.SetLineWidth(1.5)
	for _, r := range layout.Rows {
		if r.Parent < 0 {
			continue
		}
		x1, y1, x2, y2, x3 := layout.elbow(r)
		dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
		dc.DrawLine(float64(x2), float64(y2), float64(x3), float64(y2))
		dc.Stroke()
	}

	for _, r := range layout.Rows {
		x, y := float64(r.X), float64(r.Y)
		dc.SetColor(r.Kind)
		dc.DrawRoundedRectangle(x, y, markerW, markerW, 2)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1)
		dc.DrawRoundedRectangle(x, y, markerW, markerW, 2)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(r.Label, x+markerW+6, y+markerW/2+textShift/2, 0, 0.5)
	}

	return dc.SavePNG(path)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
