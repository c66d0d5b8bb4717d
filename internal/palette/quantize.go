package palette

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	"github.com/soniakeys/quant/median"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"kindnessconnect-backend/internal/clients"
)

const sampleSize = 100

// DominantColors decodes an image, scales it to 100x100 and reduces it to at most n
// colors with median cut. Colors are ordered by how many pixels they cover.
func DominantColors(data []byte, n int) ([]clients.RGB, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, sampleSize, sampleSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	opaque := opaquePixels(dst)
	if opaque == nil {
		return nil, fmt.Errorf("%s image has no opaque pixels", format)
	}
	return quantize(opaque, n), nil
}

// opaquePixels packs the non-transparent pixels of img into a single row, or returns nil
// when there are none.
func opaquePixels(img *image.RGBA) *image.RGBA {
	pixels := make([]color.RGBA, 0, len(img.Pix)/4)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] == 0 {
			continue
		}
		pixels = append(pixels, color.RGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], 255})
	}
	if len(pixels) == 0 {
		return nil
	}
	row := image.NewRGBA(image.Rect(0, 0, len(pixels), 1))
	for x, c := range pixels {
		row.SetRGBA(x, 0, c)
	}
	return row
}

func quantize(img *image.RGBA, n int) []clients.RGB {
	pal := median.Quantizer(n).Palette(img).ColorPalette()
	if len(pal) == 0 {
		return nil
	}

	counts := make([]int, len(pal))
	for i := 0; i < len(img.Pix); i += 4 {
		counts[pal.Index(color.RGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], 255})]++
	}

	type entry struct {
		rgb   clients.RGB
		count int
	}
	seen := make(map[clients.RGB]int, len(pal))
	entries := make([]entry, 0, len(pal))
	for i, c := range pal {
		if counts[i] == 0 {
			continue
		}
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		rgb := clients.RGB{rgba.R, rgba.G, rgba.B}
		if j, ok := seen[rgb]; ok {
			entries[j].count += counts[i]
			continue
		}
		seen[rgb] = len(entries)
		entries = append(entries, entry{rgb: rgb, count: counts[i]})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
	colors := make([]clients.RGB, len(entries))
	for i, e := range entries {
		colors[i] = e.rgb
	}
	return colors
}
