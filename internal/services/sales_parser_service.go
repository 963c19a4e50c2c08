package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"
	"sales-report/internal/validation"

	"github.com/shopspring/decimal"
)

// Sales CSV dialect:
//   - the first line is a header and is always discarded
//   - each remaining line is date,item,quantity,price split on ',' into
//     exactly four fields; surrounding whitespace is trimmed per field
//   - there is no quoting or escaping; a line containing '"' is malformed
//   - blank lines are ignored
const (
	fieldSeparator  = ","
	salesFieldCount = 4
	maxLineBytes    = 1 << 20
	ctxCheckEvery   = 1024
)

var ErrInvalidPolicy = errors.New("invalid malformed row policy")

type salesParserService struct {
	validator *validation.Validator
	failFast  bool
	metrics   MetricsRecorderInterface
}

// NewSalesParserService creates a parser for the given malformed-row policy:
// config.PolicySkip drops and counts bad rows, config.PolicyFail stops at the
// first one.
func NewSalesParserService(policy string, metrics MetricsRecorderInterface) (SalesParserServiceInterface, error) {
	var failFast bool
	switch policy {
	case config.PolicySkip:
	case config.PolicyFail:
		failFast = true
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, policy)
	}

	return &salesParserService{
		validator: validation.GetValidator(),
		failFast:  failFast,
		metrics:   metrics,
	}, nil
}

func (s *salesParserService) Parse(ctx context.Context, r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	result := &ParseResult{
		Records: []models.SaleRecord{},
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if lineNo == 1 {
			continue
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		record, rowErr := s.parseLine(lineNo, text)
		if rowErr != nil {
			s.recordRejected(rowErr)
			if s.failFast {
				return nil, rowErr
			}
			slog.Warn("skipping malformed sales row",
				"line", rowErr.Line,
				"code", rowErr.Code,
				"reason", rowErr.Reason)
			result.Skipped = append(result.Skipped, rowErr)
			continue
		}

		s.increment("sales.row.parsed", nil)
		result.Records = append(result.Records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, apperrors.Newf(apperrors.InputUnreadable, err, "failed to read sales data at line %d", lineNo+1)
	}

	result.Lines = lineNo

	slog.Debug("sales data parsed",
		"lines", result.Lines,
		"records", len(result.Records),
		"skipped", len(result.Skipped))

	return result, nil
}

func (s *salesParserService) parseLine(lineNo int, text string) (models.SaleRecord, *apperrors.RowError) {
	if strings.Contains(text, `"`) {
		return models.SaleRecord{}, apperrors.NewRowError(lineNo, apperrors.RowQuotedField, "", nil)
	}

	fields := strings.Split(text, fieldSeparator)
	if len(fields) != salesFieldCount {
		return models.SaleRecord{}, apperrors.NewRowError(lineNo, apperrors.RowFieldCount,
			fmt.Sprintf("expected %d fields, got %d", salesFieldCount, len(fields)), nil)
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	quantity, err := strconv.Atoi(fields[2])
	if err != nil {
		return models.SaleRecord{}, apperrors.NewRowError(lineNo, apperrors.RowInvalidQuantity,
			fmt.Sprintf("quantity %q is not an integer", fields[2]), err)
	}

	price, err := decimal.NewFromString(fields[3])
	if err != nil {
		return models.SaleRecord{}, apperrors.NewRowError(lineNo, apperrors.RowInvalidPrice,
			fmt.Sprintf("price %q is not a decimal number", fields[3]), err)
	}

	record := models.SaleRecord{
		Date:     fields[0],
		Item:     fields[1],
		Quantity: quantity,
		Price:    price,
		Line:     lineNo,
	}

	if err := s.validator.Struct(record); err != nil {
		return models.SaleRecord{}, rowErrorFromValidation(lineNo, err)
	}

	return record, nil
}

func rowErrorFromValidation(lineNo int, err error) *apperrors.RowError {
	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewRowError(lineNo, apperrors.RowValidation, err.Error(), err)
	}

	code := apperrors.RowValidation
	switch fieldErrs.First().Field {
	case "date":
		code = apperrors.RowInvalidDate
	case "quantity":
		code = apperrors.RowInvalidQuantity
	case "price":
		code = apperrors.RowInvalidPrice
	}

	return apperrors.NewRowError(lineNo, code, fieldErrs.Error(), err)
}

func (s *salesParserService) recordRejected(rowErr *apperrors.RowError) {
	s.increment("sales.row.rejected", map[string]string{"code": string(rowErr.Code)})
}

func (s *salesParserService) increment(name string, tags map[string]string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(name, tags)
	}
}
