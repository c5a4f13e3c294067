package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"

	"codeberg.org/go-pdf/fpdf"
	"github.com/gompdf/shotpdf/internal/item"
	"github.com/gompdf/shotpdf/internal/res"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// pixelsPerPoint sets the resolution images are resampled to
const pixelsPerPoint = 2.0

// svgRasterWidth is the pixel width SVG sources are rasterized at
const svgRasterWidth = 1024

// CoverCrop returns the part of a srcW x srcH image that fills a boxW x boxH
// box without distortion. The crop is centred on the focus point, given in
// percent of the source size, and shifted only as far as needed to stay
// inside the source. Zoom values above 1 shrink the crop.
func CoverCrop(srcW, srcH int, boxW, boxH, focusX, focusY, zoom float64) image.Rectangle {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 {
		return image.Rect(0, 0, max(srcW, 0), max(srcH, 0))
	}
	zoom = math.Max(zoom, 1)
	box := boxW / boxH
	sw, sh := float64(srcW), float64(srcH)

	cw, ch := sw, sw/box
	if sw/sh > box {
		cw, ch = sh*box, sh
	}
	cw, ch = math.Max(cw/zoom, 1), math.Max(ch/zoom, 1)

	cx := sw * clampPercent(focusX) / 100
	cy := sh * clampPercent(focusY) / 100
	x0 := math.Min(math.Max(cx-cw/2, 0), sw-cw)
	y0 := math.Min(math.Max(cy-ch/2, 0), sh-ch)

	r := image.Rect(
		int(math.Floor(x0)), int(math.Floor(y0)),
		int(math.Ceil(x0+cw)), int(math.Ceil(y0+ch)),
	)
	return r.Intersect(image.Rect(0, 0, srcW, srcH))
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 50
	}
	return math.Max(0, math.Min(100, v))
}

// decodeImage turns a loaded resource into pixels. SVG sources are
// rasterized; everything else goes through the registered decoders.
func decodeImage(r *res.Resource) (image.Image, bool, error) {
	if r.IsSVG() {
		img, err := rasterizeSVG(r)
		return img, true, err
	}
	img, _, err := image.Decode(r.Reader())
	return img, false, err
}

func rasterizeSVG(r *res.Resource) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r.Reader(), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = 1, 1
	}
	w := svgRasterWidth
	h := max(int(math.Round(float64(w)*vh/vw)), 1)

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return rgba, nil
}

// prepareImage crops src to cover the box and resamples it to the output
// resolution, returning encoded bytes and the fpdf image type
func prepareImage(src image.Image, transparent bool, boxW, boxH float64, img *item.Image) ([]byte, string, error) {
	b := src.Bounds()
	crop := CoverCrop(b.Dx(), b.Dy(), boxW, boxH, img.FocusX, img.FocusY, img.Zoom)
	crop = crop.Add(b.Min)

	dw := max(int(math.Round(boxW*pixelsPerPoint)), 1)
	dh := max(int(math.Round(boxH*pixelsPerPoint)), 1)
	if crop.Dx() < dw {
		dw, dh = crop.Dx(), crop.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)

	var buf bytes.Buffer
	if transparent {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "PNG", nil
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "JPG", nil
}

// registerImage loads, crops and registers an item image for a box of the
// given size. The returned name is passed to ImageOptions.
func (r *Renderer) registerImage(ctx context.Context, doc *fpdf.Fpdf, img *item.Image, boxW, boxH float64) (string, error) {
	name := fmt.Sprintf("%s|%.1fx%.1f|%.1f,%.1f|%.2f", img.Path, boxW, boxH, img.FocusX, img.FocusY, img.Zoom)
	if _, ok := r.registered[name]; ok {
		return name, nil
	}

	resource, err := r.loader.Load(ctx, img.Path)
	if err != nil {
		return "", err
	}
	src, transparent, err := decodeImage(resource)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", img.Path, err)
	}
	data, kind, err := prepareImage(src, transparent, boxW, boxH, img)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", img.Path, err)
	}

	doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(data))
	if doc.Err() {
		return "", doc.Error()
	}
	r.registered[name] = struct{}{}
	return name, nil
}

// drawImage places an item image in a box. Load or decode failures draw a
// placeholder, or fail the render when images are strict.
func (r *Renderer) drawImage(ctx context.Context, doc *fpdf.Fpdf, img *item.Image, x, y, w, h float64) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if img == nil || img.Path == "" {
		r.drawPlaceholder(doc, x, y, w, h, "")
		return nil
	}
	name, err := r.registerImage(ctx, doc, img, w, h)
	if err != nil {
		if ctx.Err() != nil || r.StrictImages {
			return fmt.Errorf("image %s: %w", img.Path, err)
		}
		r.logger.Warn("image unavailable, drawing placeholder", "path", img.Path, "error", err)
		r.drawPlaceholder(doc, x, y, w, h, "No image")
		return nil
	}
	doc.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
	return nil
}

func (r *Renderer) drawPlaceholder(doc *fpdf.Fpdf, x, y, w, h float64, label string) {
	setFill(doc, colorPlaceholder)
	doc.Rect(x, y, w, h, "F")
	if label == "" {
		return
	}
	setText(doc, colorMuted)
	doc.SetFont(bodyFont, "", 7)
	doc.SetXY(x, y)
	doc.CellFormat(w, h, label, "", 0, "CM", false, 0, "")
}
