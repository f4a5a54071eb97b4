package lnk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andrewstucki/lnkparse/internal"
)

// CommonNetworkRelativeLinkFlags selects the optional fields of a network
// location record.
type CommonNetworkRelativeLinkFlags uint32

// Network location flags.
const (
	ValidDevice  CommonNetworkRelativeLinkFlags = 0x1
	ValidNetType CommonNetworkRelativeLinkFlags = 0x2
)

var networkLinkFlagNames = []flagName{
	{uint32(ValidDevice), "ValidDevice"},
	{uint32(ValidNetType), "ValidNetType"},
}

// Has reports whether every bit of flag is set.
func (f CommonNetworkRelativeLinkFlags) Has(flag CommonNetworkRelativeLinkFlags) bool {
	return f&flag == flag
}

func (f CommonNetworkRelativeLinkFlags) String() string {
	return strings.Join(flagNames(uint32(f), networkLinkFlagNames), "|")
}

// MarshalJSON renders the set flags by name.
func (f CommonNetworkRelativeLinkFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(f), networkLinkFlagNames))
}

// NetworkProviderType identifies the network redirector of a share.
type NetworkProviderType uint32

var networkProviderNames = map[NetworkProviderType]string{
	0x00020000: "WNNC_NET_LANMAN",
	0x001A0000: "WNNC_NET_AVID",
	0x001B0000: "WNNC_NET_DOCUSPACE",
	0x001C0000: "WNNC_NET_MANGOSOFT",
	0x001D0000: "WNNC_NET_SERNET",
	0x001E0000: "WNNC_NET_RIVERFRONT1",
	0x001F0000: "WNNC_NET_RIVERFRONT2",
	0x00200000: "WNNC_NET_DECORB",
	0x00210000: "WNNC_NET_PROTSTOR",
	0x00220000: "WNNC_NET_FJ_REDIR",
	0x00230000: "WNNC_NET_DISTINCT",
	0x00240000: "WNNC_NET_TWINS",
	0x00250000: "WNNC_NET_RDR2SAMPLE",
	0x00260000: "WNNC_NET_CSC",
	0x00270000: "WNNC_NET_3IN1",
	0x00290000: "WNNC_NET_EXTENDNET",
	0x002A0000: "WNNC_NET_STAC",
	0x002B0000: "WNNC_NET_FOXBAT",
	0x002C0000: "WNNC_NET_YAHOO",
	0x002D0000: "WNNC_NET_EXIFS",
	0x002E0000: "WNNC_NET_DAV",
	0x002F0000: "WNNC_NET_KNOWARE",
	0x00300000: "WNNC_NET_OBJECT_DIRE",
	0x00310000: "WNNC_NET_MASFAX",
	0x00320000: "WNNC_NET_HOB_NFS",
	0x00330000: "WNNC_NET_SHIVA",
	0x00340000: "WNNC_NET_IBMAL",
	0x00350000: "WNNC_NET_LOCK",
	0x00360000: "WNNC_NET_TERMSRV",
	0x00370000: "WNNC_NET_SRT",
	0x00380000: "WNNC_NET_QUINCY",
	0x00390000: "WNNC_NET_OPENAFS",
	0x003A0000: "WNNC_NET_AVID1",
	0x003B0000: "WNNC_NET_DFS",
	0x003C0000: "WNNC_NET_KWNP",
	0x003D0000: "WNNC_NET_ZENWORKS",
	0x003E0000: "WNNC_NET_DRIVEONWEB",
	0x003F0000: "WNNC_NET_VMWARE",
	0x00400000: "WNNC_NET_RSFX",
	0x00410000: "WNNC_NET_MFILES",
	0x00420000: "WNNC_NET_MS_NFS",
	0x00430000: "WNNC_NET_GOOGLE",
}

func (t NetworkProviderType) String() string {
	if name, ok := networkProviderNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%08x", uint32(t))
}

// MarshalText renders the provider type by name.
func (t NetworkProviderType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// CommonNetworkRelativeLink describes the network share holding the link
// target.
type CommonNetworkRelativeLink struct {
	Size                uint32                         `json:"size"`
	Flags               CommonNetworkRelativeLinkFlags `json:"flags"`
	NetName             string                         `json:"netName"`
	DeviceName          *string                        `json:"deviceName,omitempty"`
	NetworkProviderType *NetworkProviderType           `json:"networkProviderType,omitempty"`
}

const networkLinkHeaderSize = 0x14

func decodeCommonNetworkRelativeLink(data []byte, offset int, o *options) (*CommonNetworkRelativeLink, error) {
	size, err := internal.Uint32(data, offset)
	if err != nil {
		return nil, err
	}
	if size < networkLinkHeaderSize {
		return nil, formatError(offset, "network link size 0x%x is smaller than its header", size)
	}
	raw, err := internal.Slice(data, offset, int(size))
	if err != nil {
		return nil, err
	}

	flags, _ := internal.Uint32(raw, 4)
	netNameOffset, _ := internal.Uint32(raw, 8)
	deviceNameOffset, _ := internal.Uint32(raw, 12)
	providerType, _ := internal.Uint32(raw, 16)

	if netNameOffset > networkLinkHeaderSize {
		return nil, &NotImplementedError{Structure: "CommonNetworkRelativeLink with Unicode names", Offset: offset}
	}

	link := &CommonNetworkRelativeLink{
		Size:  size,
		Flags: CommonNetworkRelativeLinkFlags(flags),
	}
	if link.NetName, _, err = internal.ReadString(raw, int(netNameOffset), o.encoding); err != nil {
		return nil, rebase(err, offset)
	}
	if link.Flags.Has(ValidDevice) {
		device, _, err := internal.ReadString(raw, int(deviceNameOffset), o.encoding)
		if err != nil {
			return nil, rebase(err, offset)
		}
		link.DeviceName = &device
	}
	if link.Flags.Has(ValidNetType) {
		provider := NetworkProviderType(providerType)
		link.NetworkProviderType = &provider
	}
	return link, nil
}
