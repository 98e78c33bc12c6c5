// Package gif renders games as animated gifs, one frame per move.
package gif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/gorgonia/noughts/game"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

var regular *truetype.Font

const (
	dpi        = 144.0
	fontsize   = 12.0
	glyphsize  = 28.0
	lineheight = 1.2
	endDelay   = 300 // hundredths of a second on the last frame of a game

	dummyLongString = `Epoch 100000, Game Number: 10000`
)

func init() {
	var err error
	if regular, err = truetype.Parse(gomono.TTF); err != nil {
		panic(err)
	}
}

var (
	background = color.Gray{253}
	ink        = color.Gray{0}
	crossInk   = color.RGBA{R: 0xc0, G: 0x20, B: 0x20, A: 0xff}
	noughtInk  = color.RGBA{R: 0x20, G: 0x40, B: 0xc0, A: 0xff}
	gridInk    = color.Gray{160}
)

var globPalette = color.Palette{background, ink, crossInk, noughtInk, gridInk}

// Encoder draws each state it is given as a frame of a gif. It satisfies noughts.OutputEncoder.
type Encoder struct {
	H, W int
	font.Drawer
	io.Writer

	out   *gif.GIF
	face  font.Face
	glyph font.Face

	maxH, maxW  int // maxHeight and maxWidth
	padH, padW  int // padding so everything don't start at the topleft
	cell        int // side of a cell in pixels
	rows, cols  int
	initialized bool
}

// NewGifEncoder creates an encoder whose frames are no larger than h by w.
func NewGifEncoder(h, w int) *Encoder {
	return &Encoder{
		H:    -1,
		W:    -1,
		maxH: h,
		maxW: w,
		padH: 10,
		padW: 10,

		Drawer: font.Drawer{
			Src: image.NewUniform(ink),
		},
		out: &gif.GIF{LoopCount: -1},
	}
}

// Frames returns the number of frames encoded so far.
func (enc *Encoder) Frames() int { return len(enc.out.Image) }

func (enc *Encoder) init(g game.State) {
	enc.face = truetype.NewFace(regular, &truetype.Options{
		Size:    fontsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	enc.glyph = truetype.NewFace(regular, &truetype.Options{
		Size:    glyphsize,
		DPI:     dpi,
		Hinting: font.HintingFull,
	})
	enc.Face = enc.face

	enc.rows, enc.cols = g.BoardSize()
	enc.cell = int(math.Ceil(glyphsize * lineheight * dpi / 72))
	dy := lineHeight()
	textW := font.MeasureString(enc.face, dummyLongString).Ceil()
	w := maxInt(enc.cols*enc.cell, textW) + 2*enc.padW
	h := enc.rows*enc.cell + 3*dy + 2*enc.padH // 3 lines of text: name, epoch and winner

	w = minInt(w, enc.maxW)
	h = minInt(h, enc.maxH)
	if w == enc.maxW {
		enc.padW = 0
	}
	if h == enc.maxH {
		enc.padH = 0
	}
	enc.H = h
	enc.W = w
	enc.initialized = true
}

// Encode draws the current state of the game as a new frame.
func (enc *Encoder) Encode(ms game.MetaState) error {
	g := ms.State()
	if !enc.initialized {
		enc.init(g)
	}
	if r, c := g.BoardSize(); r != enc.rows || c != enc.cols {
		return errors.Errorf("Board size changed from %dx%d to %dx%d", enc.rows, enc.cols, r, c)
	}

	im := image.NewPaletted(image.Rect(0, 0, enc.W, enc.H), globPalette)
	draw.Draw(im, im.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	enc.Dst = im

	dy := lineHeight()
	y := enc.padH + dy
	enc.text(ms.Name(), y)
	y += dy
	enc.text(fmt.Sprintf("Epoch %d, Game Number: %d", ms.Epoch(), ms.GameNumber()), y)

	top := y + dy/2
	enc.grid(im, top)
	enc.Face = enc.glyph
	for i, cl := range g.Board() {
		var src color.Color
		switch cl {
		case game.Black:
			src = crossInk
		case game.White:
			src = noughtInk
		default:
			continue
		}
		r, c := i/enc.cols, i%enc.cols
		glyph := fmt.Sprintf("%s", cl)
		gw := font.MeasureString(enc.glyph, glyph).Ceil()
		enc.Src = image.NewUniform(src)
		enc.Dot = fixed.P(enc.padW+c*enc.cell+(enc.cell-gw)/2, top+(r+1)*enc.cell-enc.cell/5)
		enc.DrawString(glyph)
	}
	enc.Face = enc.face
	enc.Src = image.NewUniform(ink)

	var delay int
	if ended, winner := g.Ended(); ended {
		delay = endDelay
		msg := "Draw"
		if winner != game.Player(game.None) {
			msg = fmt.Sprintf("Winner: %s", winner)
		}
		enc.text(msg, top+enc.rows*enc.cell+dy)
	}
	enc.out.Image = append(enc.out.Image, im)
	enc.out.Delay = append(enc.out.Delay, delay)
	return nil
}

// Flush writes the gif into the writer.
func (enc *Encoder) Flush() error {
	if enc.Writer == nil {
		return errors.New("No writer to flush the gif to")
	}
	if len(enc.out.Image) == 0 {
		return errors.New("No frames to write")
	}
	return errors.WithStack(gif.EncodeAll(enc.Writer, enc.out))
}

func (enc *Encoder) text(s string, y int) {
	enc.Dot = fixed.P(enc.padW, y)
	enc.DrawString(s)
}

func (enc *Encoder) grid(im *image.Paletted, top int) {
	line := image.NewUniform(gridInk)
	for c := 1; c < enc.cols; c++ {
		x := enc.padW + c*enc.cell
		draw.Draw(im, image.Rect(x-1, top, x+1, top+enc.rows*enc.cell), line, image.Point{}, draw.Src)
	}
	for r := 1; r < enc.rows; r++ {
		y := top + r*enc.cell
		draw.Draw(im, image.Rect(enc.padW, y-1, enc.padW+enc.cols*enc.cell, y+1), line, image.Point{}, draw.Src)
	}
}

func lineHeight() int { return int(math.Ceil(fontsize * lineheight * dpi / 72)) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
