package report

import (
	"fmt"
	"io"
	"strconv"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"

	"github.com/shopspring/decimal"
)

// Renderer writes a sales report in one output format
type Renderer interface {
	Render(w io.Writer, r *models.SalesReport) error
	Format() string
}

// NewRenderer returns the renderer for format (text, json or yaml)
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case config.FormatText, "":
		return &TextRenderer{}, nil
	case config.FormatJSON:
		return &JSONRenderer{Indent: "  "}, nil
	case config.FormatYAML:
		return &YAMLRenderer{}, nil
	default:
		return nil, apperrors.Newf(apperrors.ReportInvalidFormat, nil, "unsupported report format %q", format)
	}
}

// FormatAmount prints a decimal in its shortest exact form: 450, 7.25.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// FormatAverage prints the shortest float representation: 7.5, 20.
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', -1, 64)
}

func writeAll(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return apperrors.New(apperrors.ReportRenderFailed, fmt.Errorf("failed to write report: %w", err))
	}
	return nil
}
