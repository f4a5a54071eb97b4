// Package lnkparse identifies and decodes Windows shortcut files.
package lnkparse

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"io"
	"unicode/utf8"

	"github.com/go-errors/errors"
	"github.com/h2non/filetype"
	sha256 "github.com/minio/sha256-simd"

	"github.com/andrewstucki/lnkparse/lnk"
)

// MIME is the media type of shell link files.
const MIME = "application/x-ms-shortcut"

// bytes needed to sniff a shortcut: header size and CLSID
const sniffSize = 20

func init() {
	filetype.AddMatcher(filetype.NewType("lnk", MIME), lnkMatcher)
}

func lnkMatcher(buf []byte) bool {
	if len(buf) < sniffSize {
		return false
	}
	return binary.LittleEndian.Uint32(buf) == lnk.HeaderSize && bytes.Equal(buf[4:20], lnk.LinkCLSID[:])
}

// IsShortcut reports whether the leading bytes of a file look like a shell
// link.
func IsShortcut(head []byte) bool {
	kind, err := filetype.Match(head)
	if err != nil {
		return false
	}
	return kind.MIME.Value == MIME
}

// Info contains the identification and decoded contents of a file.
type Info struct {
	MIME   string         `json:"mime"`
	MD5    string         `json:"md5"`
	SHA1   string         `json:"sha1"`
	SHA256 string         `json:"sha256"`
	SSDEEP string         `json:"ssdeep,omitempty"`
	Size   int            `json:"size"`
	LNK    *lnk.ShellLink `json:"lnk,omitempty"`
}

func mimeFallback(data []byte) string {
	if utf8.Valid(data) {
		return "text/plain"
	}
	return "application/octet-stream"
}

// Parse reads r to the end, sniffs and hashes it, and decodes it when it is
// a shell link. A decode failure is returned as an error.
func Parse(r io.Reader, opts ...lnk.Option) (*Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, 1)
	}

	mime := ""
	if len(data) > 0 {
		kind, err := filetype.Match(data)
		if err != nil {
			return nil, errors.Wrap(err, 1)
		}
		mime = kind.MIME.Value
	}
	if mime == "" {
		mime = mimeFallback(data)
	}

	md5hash := md5.New()
	sha1hash := sha1.New()
	sha256hash := sha256.New()
	hasher := io.MultiWriter(md5hash, sha1hash, sha256hash)
	if _, err := hasher.Write(data); err != nil {
		return nil, errors.Wrap(err, 1)
	}

	info := &Info{
		MIME:   mime,
		Size:   len(data),
		MD5:    hex.EncodeToString(md5hash.Sum(nil)),
		SHA1:   hex.EncodeToString(sha1hash.Sum(nil)),
		SHA256: hex.EncodeToString(sha256hash.Sum(nil)),
	}

	if len(data) > minFileSize {
		if info.SSDEEP, err = ssdeep(data); err != nil {
			return nil, errors.Wrap(err, 1)
		}
	}

	if mime == MIME {
		link, err := lnk.Decode(data, opts...)
		if err != nil {
			return nil, err
		}
		info.LNK = link
	}
	return info, nil
}
