package palette

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kindnessconnect-backend/internal/clients"
	"kindnessconnect-backend/internal/domain"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, seeds []clients.RGB) ([]clients.RGB, error) {
	args := m.Called(ctx, seeds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]clients.RGB), args.Error(1)
}

// twoTonePNG is 70% red on the left and 30% blue on the right.
func twoTonePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 220, G: 20, B: 20, A: 255}
			if x >= w*7/10 {
				c = color.RGBA{R: 20, G: 20, B: 220, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDominantColors(t *testing.T) {
	colors, err := DominantColors(twoTonePNG(t, 400, 200), 5)
	require.NoError(t, err)
	require.NotEmpty(t, colors)
	assert.LessOrEqual(t, len(colors), 5)

	assert.InDelta(t, 220, int(colors[0][0]), 25)
	assert.InDelta(t, 20, int(colors[0][2]), 25)
}

func TestDominantColors_Invalid(t *testing.T) {
	_, err := DominantColors([]byte("not an image"), 5)
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))
	_, err = DominantColors(buf.Bytes(), 5)
	assert.Error(t, err, "fully transparent image")
}

func TestDominantColors_Uniform(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: 9, G: 9, B: 9, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	colors, err := DominantColors(buf.Bytes(), 5)
	require.NoError(t, err)
	assert.Equal(t, []clients.RGB{{9, 9, 9}}, colors)
}

func TestDominantColors_IgnoresTransparentPixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if x < 10 {
				img.Set(x, y, color.NRGBA{R: 0, G: 160, B: 0, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	colors, err := DominantColors(buf.Bytes(), 5)
	require.NoError(t, err)
	require.NotEmpty(t, colors)
	assert.InDelta(t, 160, int(colors[0][1]), 25)
	assert.InDelta(t, 0, int(colors[0][0]), 25)
}

func TestGenerator_GenerateTheme(t *testing.T) {
	ctx := context.Background()
	logo := twoTonePNG(t, 100, 100)

	t.Run("UsesPaletteSlots", func(t *testing.T) {
		completer := new(mockCompleter)
		completer.On("Complete", ctx, mock.MatchedBy(func(seeds []clients.RGB) bool { return len(seeds) <= 2 && len(seeds) > 0 })).
			Return([]clients.RGB{{239, 246, 255}, {1, 1, 1}, {2, 2, 2}, {29, 78, 216}, {3, 3, 3}}, nil).Once()

		theme := NewGenerator(completer).GenerateTheme(ctx, logo)
		assert.Equal(t, domain.Theme{PrimaryColorHex: "#1d4ed8", LightBgHex: "#eff6ff"}, theme)
		completer.AssertExpectations(t)
	})

	t.Run("ShortPaletteFallsBack", func(t *testing.T) {
		completer := new(mockCompleter)
		completer.On("Complete", ctx, mock.Anything).Return([]clients.RGB{{1, 1, 1}}, nil).Once()
		assert.Equal(t, domain.DefaultTheme, NewGenerator(completer).GenerateTheme(ctx, logo))
	})

	t.Run("APIFailureFallsBack", func(t *testing.T) {
		completer := new(mockCompleter)
		completer.On("Complete", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()
		assert.Equal(t, domain.DefaultTheme, NewGenerator(completer).GenerateTheme(ctx, logo))
	})

	t.Run("UndecodableFallsBack", func(t *testing.T) {
		completer := new(mockCompleter)
		assert.Equal(t, domain.DefaultTheme, NewGenerator(completer).GenerateTheme(ctx, []byte{0x00, 0x01}))
		completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
	})
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#00ff0a", Hex(clients.RGB{0, 255, 10}))
}
