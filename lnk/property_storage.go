package lnk

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrewstucki/lnkparse/internal"
)

// StringNamedFormatID marks a property storage whose values are keyed by
// name rather than by integer ID.
var StringNamedFormatID = internal.MustParseGUID("D5CDD505-2E9C-101B-9397-08002B2CF9AE")

const (
	propertyStorageHeaderSize = 24
	propertyValueHeaderSize   = 13
)

// PropertyType is the OLE property type tag of a serialized value.
type PropertyType uint16

// Decoded property types. Every other tag keeps its payload raw.
const (
	PropertyTypeLPWSTR   PropertyType = 0x001F
	PropertyTypeFiletime PropertyType = 0x0040
	PropertyTypeCLSID    PropertyType = 0x0048
)

func (t PropertyType) String() string {
	switch t {
	case PropertyTypeLPWSTR:
		return "VT_LPWSTR"
	case PropertyTypeFiletime:
		return "VT_FILETIME"
	case PropertyTypeCLSID:
		return "VT_CLSID"
	}
	return fmt.Sprintf("0x%04x", uint16(t))
}

// MarshalText renders the type tag by name.
func (t PropertyType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// PropertyValue is the decoded payload of a serialized property. It is one
// of StringProperty, FiletimeProperty, GUIDProperty or RawProperty.
type PropertyValue interface {
	propertyValue()
}

// StringProperty is a VT_LPWSTR payload.
type StringProperty struct {
	Value string `json:"value"`
}

// FiletimeProperty is a VT_FILETIME payload. A zero FILETIME decodes to a
// nil Value.
type FiletimeProperty struct {
	Value *time.Time `json:"value"`
}

// GUIDProperty is a VT_CLSID payload.
type GUIDProperty struct {
	Value GUID `json:"value"`
}

// RawProperty keeps the payload of any other type tag.
type RawProperty struct {
	Value []byte `json:"value"`
}

func (StringProperty) propertyValue()   {}
func (FiletimeProperty) propertyValue() {}
func (GUIDProperty) propertyValue()     {}
func (RawProperty) propertyValue()      {}

// SerializedPropertyValue is one integer-keyed entry of a property storage.
type SerializedPropertyValue struct {
	ValueSize  uint32        `json:"valueSize"`
	PropertyID uint32        `json:"propertyId"`
	Type       PropertyType  `json:"type"`
	Value      PropertyValue `json:"value"`
}

// PropertyStorage is one serialized property storage of a property store.
type PropertyStorage struct {
	StorageSize uint32                     `json:"storageSize"`
	Version     uint32                     `json:"version"`
	FormatID    GUID                       `json:"formatId"`
	Values      []*SerializedPropertyValue `json:"values"`
}

// decodePropertyStorages reads storages from offset until a zero storage
// size. The returned size excludes that 4-byte terminator.
func decodePropertyStorages(data []byte, offset int, o *options) ([]*PropertyStorage, int, error) {
	storages := []*PropertyStorage{}
	start := offset
	for {
		size, err := internal.Uint32(data, offset)
		if err != nil {
			return nil, 0, err
		}
		if size == 0 {
			return storages, offset - start, nil
		}
		if size < propertyStorageHeaderSize {
			return nil, 0, formatError(offset, "property storage size %d cannot hold its header", size)
		}
		raw, err := internal.Slice(data, offset, int(size))
		if err != nil {
			return nil, 0, err
		}
		storage, err := decodePropertyStorage(raw, o)
		if err != nil {
			return nil, 0, rebase(err, offset)
		}
		storages = append(storages, storage)
		offset += int(size)
	}
}

func decodePropertyStorage(raw []byte, o *options) (*PropertyStorage, error) {
	storage := &PropertyStorage{StorageSize: uint32(len(raw))}
	storage.Version, _ = internal.Uint32(raw, 4)
	storage.FormatID, _ = internal.ReadGUID(raw, 8)
	if storage.FormatID == StringNamedFormatID {
		return nil, &NotImplementedError{Structure: "string-named property storage", Offset: 0}
	}

	storage.Values = []*SerializedPropertyValue{}
	offset := propertyStorageHeaderSize
	for {
		size, err := internal.Uint32(raw, offset)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return storage, nil
		}
		if size < propertyValueHeaderSize {
			return nil, formatError(offset, "property value size %d cannot hold its header", size)
		}
		entry, err := internal.Slice(raw, offset, int(size))
		if err != nil {
			return nil, err
		}
		value, err := decodeSerializedPropertyValue(entry)
		if err != nil {
			return nil, rebase(err, offset)
		}
		o.logger.Trace().Uint32("propertyId", value.PropertyID).Str("type", value.Type.String()).Msg("decoded property value")
		storage.Values = append(storage.Values, value)
		offset += int(size)
	}
}

func decodeSerializedPropertyValue(entry []byte) (*SerializedPropertyValue, error) {
	value := &SerializedPropertyValue{ValueSize: uint32(len(entry))}
	value.PropertyID, _ = internal.Uint32(entry, 4)
	// one reserved byte at 8, two after the type tag
	valueType, _ := internal.Uint16(entry, 9)
	value.Type = PropertyType(valueType)
	payload := entry[propertyValueHeaderSize:]

	switch value.Type {
	case PropertyTypeLPWSTR:
		// a 4-byte length precedes the string
		s, _, err := internal.ReadUnicode(payload, 4)
		if err != nil {
			return nil, internal.Rebase(err, propertyValueHeaderSize)
		}
		value.Value = StringProperty{Value: s}
	case PropertyTypeFiletime:
		t, err := internal.ReadFiletime(payload, 0)
		if err != nil {
			return nil, internal.Rebase(err, propertyValueHeaderSize)
		}
		value.Value = FiletimeProperty{Value: t}
	case PropertyTypeCLSID:
		id, err := internal.ReadGUID(payload, 0)
		if err != nil {
			return nil, internal.Rebase(err, propertyValueHeaderSize)
		}
		value.Value = GUIDProperty{Value: id}
	default:
		value.Value = RawProperty{Value: append([]byte(nil), payload...)}
	}
	return value, nil
}

// MarshalJSON adds the payload kind next to the value.
func (v *SerializedPropertyValue) MarshalJSON() ([]byte, error) {
	type plain SerializedPropertyValue
	kind := ""
	switch v.Value.(type) {
	case StringProperty:
		kind = "string"
	case FiletimeProperty:
		kind = "filetime"
	case GUIDProperty:
		kind = "guid"
	case RawProperty:
		kind = "raw"
	}
	return json.Marshal(struct {
		*plain
		Kind string `json:"kind"`
	}{plain: (*plain)(v), Kind: kind})
}
