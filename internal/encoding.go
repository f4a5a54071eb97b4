package internal

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

type encodingKind int

const (
	kindTable encodingKind = iota
	kindASCII
	kindUTF8
	kindUTF16
)

// Encoding decodes the raw bytes of a string field.
type Encoding struct {
	Name string

	kind encodingKind
	enc  encoding.Encoding
}

var (
	// ASCII rejects any byte with the high bit set.
	ASCII = &Encoding{Name: "ascii", kind: kindASCII}
	// UTF8 rejects invalid sequences.
	UTF8 = &Encoding{Name: "utf-8", kind: kindUTF8}
	// UTF16LE is used for every Unicode field of the format.
	UTF16LE = &Encoding{Name: "utf-16le", kind: kindUTF16, enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
)

// windows codepage aliases that neither index knows about
var codepageAliases = map[string]string{
	"cp932":   "shift_jis",
	"mbcs":    "windows-1252",
	"ansi":    "windows-1252",
	"cp936":   "gbk",
	"cp949":   "euc-kr",
	"cp950":   "big5",
	"cp20127": "ascii",
	"cp65001": "utf-8",
}

var tableAliases = map[string]encoding.Encoding{
	"cp437": charmap.CodePage437,
	"cp850": charmap.CodePage850,
	"cp852": charmap.CodePage852,
	"cp855": charmap.CodePage855,
	"cp858": charmap.CodePage858,
	"cp860": charmap.CodePage860,
	"cp862": charmap.CodePage862,
	"cp863": charmap.CodePage863,
	"cp865": charmap.CodePage865,
	"cp866": charmap.CodePage866,
}

// LookupEncoding resolves a codepage name such as "cp1252", "windows-1251",
// "shift_jis" or "utf-8".
func LookupEncoding(name string) (*Encoding, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.Replace(normalized, "_", "-", -1)
	if normalized == "" {
		return nil, fmt.Errorf("empty encoding name")
	}
	if strings.HasPrefix(normalized, "shift-jis") {
		normalized = "shift_jis"
	}
	if alias, ok := codepageAliases[normalized]; ok {
		normalized = alias
	}

	switch normalized {
	case "ascii", "us-ascii", "ansi-x3.4-1968", "646":
		return ASCII, nil
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16le", "utf-16-le", "utf16le":
		return UTF16LE, nil
	}

	if table, ok := tableAliases[normalized]; ok {
		return &Encoding{Name: normalized, kind: kindTable, enc: table}, nil
	}
	if strings.HasPrefix(normalized, "cp") {
		normalized = "windows-" + strings.TrimPrefix(normalized, "cp")
	}

	if enc, err := htmlindex.Get(normalized); err == nil {
		canonical, nameErr := htmlindex.Name(enc)
		if nameErr != nil {
			canonical = normalized
		}
		if canonical == "utf-8" {
			return UTF8, nil
		}
		return &Encoding{Name: canonical, kind: kindTable, enc: enc}, nil
	}
	enc, err := ianaindex.IANA.Encoding(normalized)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return &Encoding{Name: normalized, kind: kindTable, enc: enc}, nil
}

// DecodeError reports bytes that are not valid under the encoding used to
// decode them. A misaligned offset is the usual cause.
type DecodeError struct {
	Offset   int
	Bytes    []byte
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("unable to decode bytes % x at offset %d (%d bytes) as %s", e.Bytes, e.Offset, len(e.Bytes), e.Encoding)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + "; the encoding or the offset may be wrong"
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode converts raw string bytes to a Go string. offset is only used to
// annotate errors.
func (e *Encoding) Decode(data []byte, offset int) (string, error) {
	switch e.kind {
	case kindASCII:
		for i, b := range data {
			if b >= 0x80 {
				return "", &DecodeError{Offset: offset, Bytes: data, Encoding: e.Name, Err: fmt.Errorf("byte 0x%02x at index %d is not ascii", b, i)}
			}
		}
		return string(data), nil
	case kindUTF8:
		if !utf8.Valid(data) {
			return "", &DecodeError{Offset: offset, Bytes: data, Encoding: e.Name, Err: fmt.Errorf("invalid utf-8 sequence")}
		}
		return string(data), nil
	case kindUTF16:
		if len(data)%2 != 0 {
			return "", &DecodeError{Offset: offset, Bytes: data, Encoding: e.Name, Err: fmt.Errorf("odd byte count")}
		}
	}
	decoded, err := e.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &DecodeError{Offset: offset, Bytes: data, Encoding: e.Name, Err: err}
	}
	return string(decoded), nil
}

// HostEncoding returns the name of the 8-bit encoding of the current host as
// advertised by the locale environment.
func HostEncoding() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		if value == "C" || value == "POSIX" {
			return "ascii"
		}
		if dot := strings.IndexByte(value, '.'); dot >= 0 {
			charset := value[dot+1:]
			if at := strings.IndexByte(charset, '@'); at >= 0 {
				charset = charset[:at]
			}
			if charset != "" {
				return charset
			}
		}
	}
	if runtime.GOOS == "windows" {
		// the ANSI codepage is not exposed without a syscall, assume western
		return "windows-1252"
	}
	return "utf-8"
}
