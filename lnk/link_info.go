package lnk

import (
	"github.com/andrewstucki/lnkparse/internal"
)

// link info headers of this size and above carry the offsets of the UTF-16
// copies of the path strings
const extendedLinkInfoHeaderSize = 0x24

// LinkInfo records where the link target lived when the link was created.
type LinkInfo struct {
	Size                      uint32                     `json:"size"`
	HeaderSize                uint32                     `json:"headerSize"`
	Flags                     LinkInfoFlags              `json:"flags"`
	VolumeID                  *VolumeID                  `json:"volumeId,omitempty"`
	LocalBasePath             *string                    `json:"localBasePath,omitempty"`
	CommonNetworkRelativeLink *CommonNetworkRelativeLink `json:"commonNetworkRelativeLink,omitempty"`
	CommonPathSuffix          *string                    `json:"commonPathSuffix,omitempty"`
	// Set only by extended headers.
	LocalBasePathUnicode    *string `json:"localBasePathUnicode,omitempty"`
	CommonPathSuffixUnicode *string `json:"commonPathSuffixUnicode,omitempty"`
}

// Path joins the base path, local or network, and the common path suffix.
// The UTF-16 strings of extended headers win over the 8-bit ones.
func (l *LinkInfo) Path() (string, bool) {
	suffix := ""
	if l.CommonPathSuffixUnicode != nil {
		suffix = *l.CommonPathSuffixUnicode
	} else if l.CommonPathSuffix != nil {
		suffix = *l.CommonPathSuffix
	}

	switch {
	case l.LocalBasePathUnicode != nil:
		return *l.LocalBasePathUnicode + suffix, true
	case l.LocalBasePath != nil:
		return *l.LocalBasePath + suffix, true
	case l.CommonNetworkRelativeLink != nil:
		if suffix == "" {
			return l.CommonNetworkRelativeLink.NetName, true
		}
		return joinWindowsPath([]string{l.CommonNetworkRelativeLink.NetName, suffix}), true
	}
	return "", false
}

// DecodeLinkInfo decodes the LinkInfo at offset and returns its declared
// size as the number of bytes consumed.
func DecodeLinkInfo(data []byte, offset int, opts ...Option) (*LinkInfo, int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, 0, wrap(err)
	}
	info, consumed, err := decodeLinkInfo(data, offset, o)
	return info, consumed, wrap(err)
}

func decodeLinkInfo(data []byte, offset int, o *options) (*LinkInfo, int, error) {
	size, err := internal.Uint32(data, offset)
	if err != nil {
		return nil, 0, err
	}
	if size < 0x1C {
		return nil, 0, formatError(offset, "link info size 0x%x is smaller than its header", size)
	}
	raw, err := internal.Slice(data, offset, int(size))
	if err != nil {
		return nil, 0, err
	}

	info, err := decodeLinkInfoRecord(raw, o)
	if err != nil {
		return nil, 0, rebase(err, offset)
	}
	o.logger.Debug().Int("offset", offset).Uint32("size", size).Str("flags", info.Flags.String()).Msg("decoded link info")
	return info, int(size), nil
}

func decodeLinkInfoRecord(raw []byte, o *options) (*LinkInfo, error) {
	info := &LinkInfo{Size: uint32(len(raw))}
	info.HeaderSize, _ = internal.Uint32(raw, 4)
	flags, _ := internal.Uint32(raw, 8)
	info.Flags = LinkInfoFlags(flags)
	volumeIDOffset, _ := internal.Uint32(raw, 12)
	localBasePathOffset, _ := internal.Uint32(raw, 16)
	networkLinkOffset, _ := internal.Uint32(raw, 20)
	commonPathSuffixOffset, _ := internal.Uint32(raw, 24)

	var localBasePathUnicodeOffset, commonPathSuffixUnicodeOffset uint32
	if info.HeaderSize >= extendedLinkInfoHeaderSize {
		var err error
		if localBasePathUnicodeOffset, err = internal.Uint32(raw, 28); err != nil {
			return nil, err
		}
		if commonPathSuffixUnicodeOffset, err = internal.Uint32(raw, 32); err != nil {
			return nil, err
		}
	}

	if info.Flags.Has(VolumeIDAndLocalBasePath) {
		volume, err := decodeVolumeID(raw, int(volumeIDOffset), o)
		if err != nil {
			return nil, err
		}
		info.VolumeID = volume

		path, _, err := internal.ReadString(raw, int(localBasePathOffset), o.encoding)
		if err != nil {
			return nil, err
		}
		info.LocalBasePath = &path

		if localBasePathUnicodeOffset != 0 {
			path, _, err := internal.ReadUnicode(raw, int(localBasePathUnicodeOffset))
			if err != nil {
				return nil, err
			}
			info.LocalBasePathUnicode = &path
		}
	}

	if info.Flags.Has(CommonNetworkRelativeLinkAndPathSuffix) {
		link, err := decodeCommonNetworkRelativeLink(raw, int(networkLinkOffset), o)
		if err != nil {
			return nil, err
		}
		info.CommonNetworkRelativeLink = link
	}

	if localBasePathOffset != 0 || localBasePathUnicodeOffset != 0 {
		suffix, _, err := internal.ReadString(raw, int(commonPathSuffixOffset), o.encoding)
		if err != nil {
			return nil, err
		}
		info.CommonPathSuffix = &suffix

		if commonPathSuffixUnicodeOffset != 0 {
			suffix, _, err := internal.ReadUnicode(raw, int(commonPathSuffixUnicodeOffset))
			if err != nil {
				return nil, err
			}
			info.CommonPathSuffixUnicode = &suffix
		}
	}
	return info, nil
}
