package renderer

import (
	"crypto/rand"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/domain/history"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

// Renderer turns an encoded payload string plus a style snapshot into a
// styled PNG. It is the only component that interprets history.Style.
type Renderer struct {
	uploadDir string
}

// New creates a renderer resolving embedded logos against uploadDir.
func New(uploadDir string) *Renderer {
	return &Renderer{uploadDir: uploadDir}
}

// Render produces the PNG bytes for the given data string and style.
func (r *Renderer) Render(data string, style history.Style) ([]byte, error) {
	// The encoder's level type is unexported, so the L/M/Q/H mapping is
	// inlined here rather than in a helper with a named return type.
	level := qrcode.ErrorCorrectionMedium
	switch style.ErrorLevel {
	case "L":
		level = qrcode.ErrorCorrectionLow
	case "Q":
		level = qrcode.ErrorCorrectionQuart
	case "H":
		level = qrcode.ErrorCorrectionHighest
	}
	logoPath := r.logoPath(style)
	if logoPath != "" {
		// A logo hides modules, so always render with the highest level.
		level = qrcode.ErrorCorrectionHighest
	}

	qrc, err := qrcode.NewWith(data, qrcode.WithErrorCorrectionLevel(level))
	if err != nil {
		return nil, fmt.Errorf("encode QR matrix: %w", err)
	}

	opts := []standard.ImageOption{
		standard.WithQRWidth(moduleWidth(style.QRSize)),
	}

	bg := parseColor(style.BgColor, color.RGBA{255, 255, 255, 255})
	if bg.A == 0 {
		opts = append(opts,
			standard.WithBgTransparent(),
			standard.WithBuiltinImageEncoder(standard.PNG_FORMAT))
	} else {
		opts = append(opts, standard.WithBgColor(bg))
	}

	if shapeOpt := dotShapeOption(style.DotType); shapeOpt != nil {
		opts = append(opts, shapeOpt)
	}

	if style.UseGradient && len(style.GradientColors) >= 2 {
		start := parseColor(style.GradientColors[0], color.RGBA{0, 0, 0, 255})
		end := parseColor(style.GradientColors[1], color.RGBA{255, 0, 0, 255})
		gradient := standard.NewGradient(45, []standard.ColorStop{
			{T: 0, Color: start},
			{T: 1, Color: end},
		}...)
		opts = append(opts, standard.WithFgGradient(gradient))
	} else {
		opts = append(opts, standard.WithFgColor(parseColor(style.FgColor, color.RGBA{0, 0, 0, 255})))
	}

	if logoPath != "" {
		opts = append(opts, standard.WithLogoImageFilePNG(logoPath))
	}

	tmpFile := filepath.Join(os.TempDir(), uniqueFilename("qrstudio", ".png"))
	defer os.Remove(tmpFile)

	writer, err := standard.New(tmpFile, opts...)
	if err != nil {
		return nil, fmt.Errorf("create QR writer: %w", err)
	}

	if err := qrc.Save(writer); err != nil {
		writer.Close()
		return nil, fmt.Errorf("render QR image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close QR writer: %w", err)
	}

	png, err := os.ReadFile(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("read rendered QR: %w", err)
	}

	appLogger.Debug("QR image rendered", appLogger.LoggerInfo{
		ContextFunction: constant.CtxRenderer,
		Data: map[string]interface{}{
			constant.DataSize: len(png),
		},
	})

	return png, nil
}

// logoPath resolves a style's logo reference to a file under uploadDir.
// Only the base name is honored so stored styles cannot point outside it.
func (r *Renderer) logoPath(style history.Style) string {
	if style.LogoURL == "" {
		return ""
	}
	path := filepath.Join(r.uploadDir, filepath.Base(style.LogoURL))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// errorCorrectionLevel maps the L/M/Q/H wire values to the encoder's levels.
// The encoder's level type is unexported, so the result is returned as any;
// Render uses an inlined copy of this mapping where the typed value is needed.
func errorCorrectionLevel(level string) any {
	switch level {
	case "L":
		return qrcode.ErrorCorrectionLow
	case "Q":
		return qrcode.ErrorCorrectionQuart
	case "H":
		return qrcode.ErrorCorrectionHighest
	default:
		return qrcode.ErrorCorrectionMedium
	}
}

// moduleWidth derives a per-module pixel width from the requested image
// size, assuming a typical version-3 (29 module) symbol.
func moduleWidth(qrSize int) uint8 {
	if qrSize <= 0 {
		qrSize = 240
	}
	w := qrSize / 29
	if w < 2 {
		w = 2
	}
	if w > 120 {
		w = 120
	}
	return uint8(w)
}

// dotShapeOption maps the styling vocabulary used by the UI to the writer's
// block shapes. Square is the writer default and needs no option.
func dotShapeOption(dotType string) standard.ImageOption {
	switch dotType {
	case "dots":
		return standard.WithCircleShape()
	case "rounded", "extra-rounded":
		return standard.WithCustomShape(&blockShape{drawFunc: shapes.LiquidBlock()})
	case "classy", "classy-rounded":
		return standard.WithCustomShape(&blockShape{drawFunc: shapes.ChainBlock()})
	default:
		return nil
	}
}

// blockShape adapts a shapes draw function to the writer's IShape interface
type blockShape struct {
	drawFunc func(ctx *standard.DrawContext)
}

// Draw implements the IShape interface
func (b *blockShape) Draw(ctx *standard.DrawContext) {
	b.drawFunc(ctx)
}

// DrawFinder implements the IShape interface for finder patterns
func (b *blockShape) DrawFinder(ctx *standard.DrawContext) {
	b.drawFunc(ctx)
}

// parseColor parses "#RRGGBB" (or "transparent") into an RGBA color,
// falling back to defaultColor on anything unparseable.
func parseColor(param string, defaultColor color.RGBA) color.RGBA {
	if param == "" {
		return defaultColor
	}

	if strings.ToLower(param) == "transparent" {
		return color.RGBA{0, 0, 0, 0}
	}

	param = strings.TrimPrefix(param, "#")
	if len(param) != 6 {
		return defaultColor
	}

	r, err1 := strconv.ParseUint(param[0:2], 16, 8)
	g, err2 := strconv.ParseUint(param[2:4], 16, 8)
	b, err3 := strconv.ParseUint(param[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return defaultColor
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// uniqueFilename builds a collision-resistant temp file name.
func uniqueFilename(prefix, extension string) string {
	randomBytes := make([]byte, 4)
	rand.Read(randomBytes)
	return fmt.Sprintf("%s_%d_%x%s", prefix, time.Now().UnixNano(), randomBytes, extension)
}
