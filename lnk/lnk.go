// Package lnk decodes Windows Shell Link (.lnk) files.
package lnk

import (
	"io"

	"github.com/go-errors/errors"
)

// ShellLink is a decoded shell link file.
type ShellLink struct {
	Header           *ShellLinkHeader  `json:"header"`
	LinkTargetIDList *LinkTargetIDList `json:"linkTargetIdList,omitempty"`
	LinkInfo         *LinkInfo         `json:"linkInfo,omitempty"`
	StringData
	ExtraData ExtraData `json:"extraData"`
}

// TargetPath is the relative path followed by the path of the target ID
// list. Links without a target ID list fall back to the link info path.
func (l *ShellLink) TargetPath() (string, bool) {
	if l.LinkTargetIDList != nil {
		if path, ok := l.LinkTargetIDList.Path(); ok {
			if l.RelativePath != nil {
				return *l.RelativePath + path, true
			}
			return path, true
		}
	}
	if l.LinkInfo != nil {
		return l.LinkInfo.Path()
	}
	return "", false
}

// Decode decodes a complete shell link held in data. No partial link is
// returned alongside an error.
func Decode(data []byte, opts ...Option) (*ShellLink, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, 1)
	}
	link, err := decode(data, o)
	if err != nil {
		return nil, errors.Wrap(err, 1)
	}
	return link, nil
}

// Parse reads r to the end and decodes it.
func Parse(r io.Reader, opts ...Option) (*ShellLink, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, 1)
	}
	return Decode(data, opts...)
}

func decode(data []byte, o *options) (*ShellLink, error) {
	header, err := decodeHeader(data, 0, o)
	if err != nil {
		return nil, err
	}
	link := &ShellLink{Header: header}
	offset := HeaderSize
	flags := header.LinkFlags

	if flags.Has(HasLinkTargetIDList) {
		list, consumed, err := decodeLinkTargetIDList(data, offset, o)
		if err != nil {
			return nil, err
		}
		link.LinkTargetIDList = list
		offset += consumed
	}

	if flags.Has(HasLinkInfo) {
		info, consumed, err := decodeLinkInfo(data, offset, o)
		if err != nil {
			return nil, err
		}
		link.LinkInfo = info
		offset += consumed
	}

	strings, consumed, err := decodeStringData(data, offset, flags, o)
	if err != nil {
		return nil, err
	}
	link.StringData = *strings
	offset += consumed

	extra, _, err := decodeExtraData(data, offset, o)
	if err != nil {
		return nil, err
	}
	link.ExtraData = extra

	o.logger.Debug().Int("size", len(data)).Int("extraDataBlocks", len(extra)).Msg("decoded shell link")
	return link, nil
}
