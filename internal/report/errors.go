package report

import (
	"fmt"
	"io"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"

	"gopkg.in/yaml.v2"
)

// WriteError writes a fatal error for the given format. The structured
// formats get an ErrorResponse document; text gets a single line.
func WriteError(w io.Writer, format string, resp *apperrors.ErrorResponse) error {
	var data []byte
	var err error

	switch format {
	case config.FormatJSON:
		data, err = resp.ToJSON()
		data = append(data, '\n')
	case config.FormatYAML:
		data, err = yaml.Marshal(resp)
	default:
		data = []byte(resp.String() + "\n")
		for _, d := range resp.Error.Details {
			data = append(data, fmt.Sprintf("  %s\n", d)...)
		}
	}
	if err != nil {
		return apperrors.New(apperrors.ReportRenderFailed, err)
	}

	return writeAll(w, data)
}
