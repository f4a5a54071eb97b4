package lnk

import (
	"encoding/json"
	"fmt"
	"strings"
)

type flagName struct {
	bit  uint32
	name string
}

func flagNames(value uint32, names []flagName) []string {
	set := []string{}
	for _, flag := range names {
		if value&flag.bit != 0 {
			set = append(set, flag.name)
			value &^= flag.bit
		}
	}
	if value != 0 {
		set = append(set, fmt.Sprintf("0x%x", value))
	}
	return set
}

// LinkFlags controls which optional structures follow the header.
type LinkFlags uint32

// Link flags.
const (
	HasLinkTargetIDList LinkFlags = 1 << iota
	HasLinkInfo
	HasName
	HasRelativePath
	HasWorkingDir
	HasArguments
	HasIconLocation
	IsUnicode
	ForceNoLinkInfo
	HasExpString
	RunInSeparateProcess
	Unused1
	HasDarwinID
	RunAsUser
	HasExpIcon
	NoPidlAlias
	Unused2
	RunWithShimLayer
	ForceNoLinkTrack
	EnableTargetMetadata
	DisableLinkPathTracking
	DisableKnownFolderTracking
	DisableKnownFolderAlias
	AllowLinkToLink
	UnaliasOnSave
	PreferEnvironmentPath
	KeepLocalIDListForUNCTarget
)

var linkFlagNames = []flagName{
	{uint32(HasLinkTargetIDList), "HasLinkTargetIDList"},
	{uint32(HasLinkInfo), "HasLinkInfo"},
	{uint32(HasName), "HasName"},
	{uint32(HasRelativePath), "HasRelativePath"},
	{uint32(HasWorkingDir), "HasWorkingDir"},
	{uint32(HasArguments), "HasArguments"},
	{uint32(HasIconLocation), "HasIconLocation"},
	{uint32(IsUnicode), "IsUnicode"},
	{uint32(ForceNoLinkInfo), "ForceNoLinkInfo"},
	{uint32(HasExpString), "HasExpString"},
	{uint32(RunInSeparateProcess), "RunInSeparateProcess"},
	{uint32(Unused1), "Unused1"},
	{uint32(HasDarwinID), "HasDarwinID"},
	{uint32(RunAsUser), "RunAsUser"},
	{uint32(HasExpIcon), "HasExpIcon"},
	{uint32(NoPidlAlias), "NoPidlAlias"},
	{uint32(Unused2), "Unused2"},
	{uint32(RunWithShimLayer), "RunWithShimLayer"},
	{uint32(ForceNoLinkTrack), "ForceNoLinkTrack"},
	{uint32(EnableTargetMetadata), "EnableTargetMetadata"},
	{uint32(DisableLinkPathTracking), "DisableLinkPathTracking"},
	{uint32(DisableKnownFolderTracking), "DisableKnownFolderTracking"},
	{uint32(DisableKnownFolderAlias), "DisableKnownFolderAlias"},
	{uint32(AllowLinkToLink), "AllowLinkToLink"},
	{uint32(UnaliasOnSave), "UnaliasOnSave"},
	{uint32(PreferEnvironmentPath), "PreferEnvironmentPath"},
	{uint32(KeepLocalIDListForUNCTarget), "KeepLocalIDListForUNCTarget"},
}

// Has reports whether every bit of flag is set.
func (f LinkFlags) Has(flag LinkFlags) bool {
	return f&flag == flag
}

func (f LinkFlags) String() string {
	return strings.Join(flagNames(uint32(f), linkFlagNames), "|")
}

// MarshalJSON renders the set flags by name.
func (f LinkFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(f), linkFlagNames))
}

// FileAttributes mirrors the FILE_ATTRIBUTE_* bits of the link target.
type FileAttributes uint32

// File attributes.
const (
	FileAttributeReadonly          FileAttributes = 0x00000001
	FileAttributeHidden            FileAttributes = 0x00000002
	FileAttributeSystem            FileAttributes = 0x00000004
	FileAttributeDirectory         FileAttributes = 0x00000010
	FileAttributeArchive           FileAttributes = 0x00000020
	FileAttributeNormal            FileAttributes = 0x00000080
	FileAttributeTemporary         FileAttributes = 0x00000100
	FileAttributeSparseFile        FileAttributes = 0x00000200
	FileAttributeReparsePoint      FileAttributes = 0x00000400
	FileAttributeCompressed        FileAttributes = 0x00000800
	FileAttributeOffline           FileAttributes = 0x00001000
	FileAttributeNotContentIndexed FileAttributes = 0x00002000
	FileAttributeEncrypted         FileAttributes = 0x00004000
)

var fileAttributeNames = []flagName{
	{uint32(FileAttributeReadonly), "FILE_ATTRIBUTE_READONLY"},
	{uint32(FileAttributeHidden), "FILE_ATTRIBUTE_HIDDEN"},
	{uint32(FileAttributeSystem), "FILE_ATTRIBUTE_SYSTEM"},
	{uint32(FileAttributeDirectory), "FILE_ATTRIBUTE_DIRECTORY"},
	{uint32(FileAttributeArchive), "FILE_ATTRIBUTE_ARCHIVE"},
	{uint32(FileAttributeNormal), "FILE_ATTRIBUTE_NORMAL"},
	{uint32(FileAttributeTemporary), "FILE_ATTRIBUTE_TEMPORARY"},
	{uint32(FileAttributeSparseFile), "FILE_ATTRIBUTE_SPARSE_FILE"},
	{uint32(FileAttributeReparsePoint), "FILE_ATTRIBUTE_REPARSE_POINT"},
	{uint32(FileAttributeCompressed), "FILE_ATTRIBUTE_COMPRESSED"},
	{uint32(FileAttributeOffline), "FILE_ATTRIBUTE_OFFLINE"},
	{uint32(FileAttributeNotContentIndexed), "FILE_ATTRIBUTE_NOT_CONTENT_INDEXED"},
	{uint32(FileAttributeEncrypted), "FILE_ATTRIBUTE_ENCRYPTED"},
}

// Has reports whether every bit of attribute is set.
func (a FileAttributes) Has(attribute FileAttributes) bool {
	return a&attribute == attribute
}

func (a FileAttributes) String() string {
	return strings.Join(flagNames(uint32(a), fileAttributeNames), "|")
}

// MarshalJSON renders the set attributes by name.
func (a FileAttributes) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(a), fileAttributeNames))
}

// LinkInfoFlags selects the location records present in a LinkInfo.
type LinkInfoFlags uint32

// Link info flags.
const (
	VolumeIDAndLocalBasePath               LinkInfoFlags = 0x1
	CommonNetworkRelativeLinkAndPathSuffix LinkInfoFlags = 0x2
)

var linkInfoFlagNames = []flagName{
	{uint32(VolumeIDAndLocalBasePath), "VolumeIDAndLocalBasePath"},
	{uint32(CommonNetworkRelativeLinkAndPathSuffix), "CommonNetworkRelativeLinkAndPathSuffix"},
}

// Has reports whether every bit of flag is set.
func (f LinkInfoFlags) Has(flag LinkInfoFlags) bool {
	return f&flag == flag
}

func (f LinkInfoFlags) String() string {
	return strings.Join(flagNames(uint32(f), linkInfoFlagNames), "|")
}

// MarshalJSON renders the set flags by name.
func (f LinkInfoFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(f), linkInfoFlagNames))
}

// FileEntryShellItemFlags are the low bits of a file entry class type
// indicator.
type FileEntryShellItemFlags uint8

// File entry shell item flags.
const (
	FileEntryIsDirectory        FileEntryShellItemFlags = 0x1
	FileEntryIsFile             FileEntryShellItemFlags = 0x2
	FileEntryHasUnicodeStrings  FileEntryShellItemFlags = 0x4
	FileEntryUnknown            FileEntryShellItemFlags = 0x8
	FileEntryHasClassIdentifier FileEntryShellItemFlags = 0x80
)

var fileEntryFlagNames = []flagName{
	{uint32(FileEntryIsDirectory), "IS_DIRECTORY"},
	{uint32(FileEntryIsFile), "IS_FILE"},
	{uint32(FileEntryHasUnicodeStrings), "HAS_UNICODE_STRINGS"},
	{uint32(FileEntryUnknown), "UNKNOWN"},
	{uint32(FileEntryHasClassIdentifier), "HAS_CLASS_IDENTIFIER"},
}

// Has reports whether every bit of flag is set.
func (f FileEntryShellItemFlags) Has(flag FileEntryShellItemFlags) bool {
	return f&flag == flag
}

func (f FileEntryShellItemFlags) String() string {
	return strings.Join(flagNames(uint32(f), fileEntryFlagNames), "|")
}

// MarshalJSON renders the set flags by name.
func (f FileEntryShellItemFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(f), fileEntryFlagNames))
}

// VolumeShellItemFlags are the low bits of a volume class type indicator.
type VolumeShellItemFlags uint8

// Volume shell item flags.
const (
	VolumeHasName          VolumeShellItemFlags = 0x1
	VolumeUnknown1         VolumeShellItemFlags = 0x2
	VolumeUnknown2         VolumeShellItemFlags = 0x4
	VolumeIsRemovableMedia VolumeShellItemFlags = 0x8
)

var volumeFlagNames = []flagName{
	{uint32(VolumeHasName), "HAS_NAME"},
	{uint32(VolumeUnknown1), "UNKNOWN_1"},
	{uint32(VolumeUnknown2), "UNKNOWN_2"},
	{uint32(VolumeIsRemovableMedia), "IS_REMOVABLE_MEDIA"},
}

// Has reports whether every bit of flag is set.
func (f VolumeShellItemFlags) Has(flag VolumeShellItemFlags) bool {
	return f&flag == flag
}

func (f VolumeShellItemFlags) String() string {
	return strings.Join(flagNames(uint32(f), volumeFlagNames), "|")
}

// MarshalJSON renders the set flags by name.
func (f VolumeShellItemFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(flagNames(uint32(f), volumeFlagNames))
}
