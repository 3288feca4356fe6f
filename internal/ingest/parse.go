package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"ticketlens/internal/profile"
	"ticketlens/internal/ticket"

	"github.com/rs/zerolog/log"
)

// Result is the outcome of parsing one export.
type Result struct {
	Headers        []string
	Fields         FieldMap
	CommentColumns []int
	Tickets        []ticket.Ticket
	BlankRows      int
	BadRows        int
}

// ReadHeaders returns the first CSV record of text, or nil for empty input.
func ReadHeaders(text string) ([]string, error) {
	r := newReader(text)
	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	return headers, nil
}

// Parse reads decoded CSV text and builds one ticket per non-blank row.
// Empty input yields an empty result, not an error. Rows the CSV reader cannot
// split are counted and skipped.
func Parse(text string, p profile.Profile) (*Result, error) {
	r := newReader(text)
	res := &Result{}

	headers, err := r.Read()
	if errors.Is(err, io.EOF) {
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	res.Headers = headers
	res.Fields = ResolveFields(headers, p.Aliases)
	res.CommentColumns = CommentColumns(headers, p.Comments.Matches)

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				log.Warn().Int("line", pe.Line).Err(pe.Err).Msg("Skipping malformed CSV row")
				res.BadRows++
				continue
			}
			return nil, fmt.Errorf("failed to read export: %w", err)
		}
		if IsBlank(row) {
			res.BlankRows++
			continue
		}
		res.Tickets = append(res.Tickets, BuildTicket(headers, row, res.Fields, res.CommentColumns, p))
	}

	log.Debug().
		Str("source", p.Name).
		Int("tickets", len(res.Tickets)).
		Int("blankRows", res.BlankRows).
		Strs("mapped", res.Fields.Mapped()).
		Strs("unmapped", res.Fields.Unmapped()).
		Int("commentColumns", len(res.CommentColumns)).
		Msg("Parsed export")

	return res, nil
}

func newReader(text string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false
	return r
}
