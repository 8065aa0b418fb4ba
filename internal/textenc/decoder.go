// Package textenc detects and normalizes the encoding of uploaded text.
package textenc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Candidate legacy encodings, tried in order after strict UTF-8. GBK covers
// GB2312 byte-for-byte; GB18030 supersedes both.
var legacyEncodings = []encoding.Encoding{
	simplifiedchinese.GBK,
	simplifiedchinese.GB18030,
}

// Decode converts raw uploaded bytes to UTF-8 text. Tried in order: strict
// UTF-8, then the legacy encodings, then a lossy UTF-8 fallback that
// replaces invalid bytes. Decode never fails; the fallback is terminal.
func Decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	for _, enc := range legacyEncodings {
		decoded, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			continue
		}
		// x/text substitutes U+FFFD instead of failing; treat any
		// substitution as a decode miss and move on.
		if !bytes.ContainsRune(decoded, utf8.RuneError) {
			return string(decoded)
		}
	}

	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}
