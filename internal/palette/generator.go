package palette

import (
	"context"
	"fmt"

	"kindnessconnect-backend/internal/clients"
	"kindnessconnect-backend/internal/domain"
	"kindnessconnect-backend/internal/logger"
)

const dominantColorCount = 5

// Completer turns seed colors into a full five-color palette.
type Completer interface {
	Complete(ctx context.Context, seeds []clients.RGB) ([]clients.RGB, error)
}

// Generator derives a sponsor theme from a logo. Every failure degrades to
// domain.DefaultTheme.
type Generator struct {
	completer Completer
}

func NewGenerator(completer Completer) *Generator {
	return &Generator{completer: completer}
}

func (g *Generator) GenerateTheme(ctx context.Context, logo []byte) domain.Theme {
	colors, err := DominantColors(logo, dominantColorCount)
	if err != nil || len(colors) == 0 {
		logger.Warn("No dominant colors extracted, using default theme", "error", err)
		return domain.DefaultTheme
	}

	seeds := colors
	if len(seeds) > 2 {
		seeds = seeds[:2]
	}
	logger.ExternalServiceCall("colormind", "Complete", "seeds", len(seeds))
	palette, err := g.completer.Complete(ctx, seeds)
	logger.ExternalServiceResult("colormind", "Complete", err, "entries", len(palette))
	if err != nil || len(palette) < 5 {
		return domain.DefaultTheme
	}

	return domain.Theme{
		PrimaryColorHex: Hex(palette[3]),
		LightBgHex:      Hex(palette[0]),
	}
}

// Hex formats a color as #rrggbb.
func Hex(c clients.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
