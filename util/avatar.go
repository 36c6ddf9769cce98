package util

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

const halfBlock = "▀"

// DefaultSkin is the avatar id used when a record has no player behind it.
const DefaultSkin = "steve"

// AvatarURL builds the head image URL for a player id on the avatar service.
func AvatarURL(base, id string, size int) string {
	if id == "" {
		id = DefaultSkin
	}
	return fmt.Sprintf("%s/avatar/%s/%d", strings.TrimRight(base, "/"), id, size)
}

// DecodeAvatar decodes a PNG or JPEG head image.
func DecodeAvatar(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding avatar: %w", err)
	}
	return img, nil
}

// RenderHalfBlocks draws img into cols x rows terminal cells. Each cell holds
// two vertical pixels: the top one as foreground, the bottom one as background.
// Player heads are pixel art, so scaling is nearest-neighbour.
func RenderHalfBlocks(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := dst.RGBAAt(col, row*2)
			bot := dst.RGBAAt(col, row*2+1)
			fmt.Fprintf(&sb, "\033[38;5;%dm\033[48;5;%dm%s",
				rgbToAnsi256(top.R, top.G, top.B),
				rgbToAnsi256(bot.R, bot.G, bot.B),
				halfBlock)
		}
		sb.WriteString("\033[0m")
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// rgbToAnsi256 picks the closer of the 6x6x6 cube entry and the grayscale
// ramp entry for an RGB colour.
func rgbToAnsi256(r, g, b uint8) int {
	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)
	cubeDist := colorDist(r, g, b, cubeValue(cr), cubeValue(cg), cubeValue(cb))

	gray := float64(r)*0.299 + float64(g)*0.587 + float64(b)*0.114
	grayIdx := int(math.Round((gray - 8.0) / 10.0))
	grayIdx = max(0, min(23, grayIdx))
	gv := uint8(8 + 10*grayIdx)

	if colorDist(r, g, b, gv, gv, gv) < cubeDist {
		return 232 + grayIdx
	}
	return 16 + 36*cr + 6*cg + cb
}

// cube levels: 0, 95, 135, 175, 215, 255
func cubeIndex(v uint8) int {
	switch {
	case v < 48:
		return 0
	case v < 115:
		return 1
	case v < 155:
		return 2
	case v < 195:
		return 3
	case v < 235:
		return 4
	}
	return 5
}

func cubeValue(idx int) uint8 {
	if idx == 0 {
		return 0
	}
	return uint8(55 + 40*idx)
}

func colorDist(r1, g1, b1, r2, g2, b2 uint8) float64 {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return dr*dr + dg*dg + db*db
}
