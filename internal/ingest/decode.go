package ingest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode turns raw export bytes into text. A UTF-8 BOM is always stripped first,
// even when the body turns out to be Windows-1252. The fallback chain is
// UTF-8, Windows-1252, ISO-8859-1, then lossy UTF-8.
func Decode(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	if utf8.Valid(raw) {
		return string(raw)
	}

	// Windows-1252 leaves five code points undefined; treat their presence as a
	// decode failure so ISO-8859-1 gets its turn.
	if !hasUndefinedCP1252(raw) {
		if s, err := charmap.Windows1252.NewDecoder().Bytes(raw); err == nil {
			log.Debug().Msg("Decoded export as Windows-1252")
			return string(s)
		}
	}

	if s, err := charmap.ISO8859_1.NewDecoder().Bytes(raw); err == nil {
		log.Debug().Msg("Decoded export as ISO-8859-1")
		return string(s)
	}

	log.Warn().Msg("Export is not valid in any known encoding, replacing invalid bytes")
	return strings.ToValidUTF8(string(raw), "�")
}

func hasUndefinedCP1252(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
			return true
		}
	}
	return false
}

// ReadFile reads and decodes an export file.
func ReadFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read export: %w", err)
	}
	return Decode(raw), nil
}
