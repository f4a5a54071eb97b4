package lnk

import (
	"encoding/json"
	"fmt"

	"github.com/andrewstucki/lnkparse/internal"
)

// ExtraDataBlock is one block of the extra data chain. It is one of the
// *XxxDataBlock types of this package or *UnsupportedExtraData.
type ExtraDataBlock interface {
	Signature() uint32
	// Size is the number of bytes the block occupies.
	Size() uint32
	kind() string
}

// ExtraDataHeader is the size and signature prefix shared by every block.
type ExtraDataHeader struct {
	BlockSize      uint32 `json:"blockSize"`
	BlockSignature uint32 `json:"blockSignature"`
}

// Signature returns the block signature.
func (h ExtraDataHeader) Signature() uint32 { return h.BlockSignature }

// Size returns the declared block size.
func (h ExtraDataHeader) Size() uint32 { return h.BlockSize }

func readExtraDataHeader(block []byte) ExtraDataHeader {
	size, _ := internal.Uint32(block, 0)
	signature, _ := internal.Uint32(block, 4)
	return ExtraDataHeader{BlockSize: size, BlockSignature: signature}
}

// UnsupportedExtraData keeps a block whose signature has no decoder.
type UnsupportedExtraData struct {
	ExtraDataHeader
	Data []byte `json:"data"`
}

func (b *UnsupportedExtraData) kind() string { return "UnsupportedExtraData" }

type extraDataDecoder struct {
	name      string
	signature uint32
	blockSize uint32 // checked in strict mode, 0 when the size varies
	minSize   uint32 // checked in strict mode, 0 when unbounded
	decode    func(block []byte, o *options) (ExtraDataBlock, error)
}

var (
	// signature -> decoder, filled once at startup
	extraDataDecoders = newExtraDataRegistry(
		&extraDataDecoder{name: "EnvironmentVariableDataBlock", signature: EnvironmentVariableSignature, blockSize: targetBlockSize, decode: decodeAs(parseExtraEnvironment)},
		&extraDataDecoder{name: "ConsoleDataBlock", signature: ConsoleSignature, blockSize: consoleBlockSize, decode: decodeAs(parseExtraConsole)},
		&extraDataDecoder{name: "TrackerDataBlock", signature: TrackerSignature, blockSize: trackerBlockSize, decode: decodeAs(parseExtraTracker)},
		&extraDataDecoder{name: "ConsoleFEDataBlock", signature: ConsoleFESignature, blockSize: consoleFEBlockSize, decode: decodeAs(parseExtraConsoleFE)},
		&extraDataDecoder{name: "SpecialFolderDataBlock", signature: SpecialFolderSignature, blockSize: specialFolderBlockSize, decode: decodeAs(parseExtraSpecialFolder)},
		&extraDataDecoder{name: "DarwinDataBlock", signature: DarwinSignature, blockSize: targetBlockSize, decode: decodeAs(parseExtraDarwin)},
		&extraDataDecoder{name: "IconEnvironmentDataBlock", signature: IconEnvironmentSignature, blockSize: targetBlockSize, decode: decodeAs(parseExtraIconEnvironment)},
		&extraDataDecoder{name: "ShimDataBlock", signature: ShimSignature, minSize: shimMinBlockSize, decode: decodeAs(parseExtraShim)},
		&extraDataDecoder{name: "PropertyStoreDataBlock", signature: PropertyStoreSignature, decode: decodeAs(parseExtraPropertyStore)},
		&extraDataDecoder{name: "KnownFolderDataBlock", signature: KnownFolderSignature, blockSize: knownFolderBlockSize, decode: decodeAs(parseExtraKnownFolder)},
		&extraDataDecoder{name: "VistaAndAboveIDListDataBlock", signature: VistaAndAboveIDListSignature, decode: decodeAs(parseExtraVistaAndAboveIDList)},
	)
)

// decodeAs adapts a typed block parser to the registry signature.
func decodeAs[T ExtraDataBlock](parse func(block []byte, o *options) (T, error)) func([]byte, *options) (ExtraDataBlock, error) {
	return func(block []byte, o *options) (ExtraDataBlock, error) {
		decoded, err := parse(block, o)
		if err != nil {
			return nil, err
		}
		return decoded, nil
	}
}

func newExtraDataRegistry(decoders ...*extraDataDecoder) map[uint32]*extraDataDecoder {
	registry := make(map[uint32]*extraDataDecoder, len(decoders))
	for _, decoder := range decoders {
		registry[decoder.signature] = decoder
	}
	return registry
}

func (d *extraDataDecoder) run(block []byte, o *options) (ExtraDataBlock, error) {
	header := readExtraDataHeader(block)
	if header.BlockSignature != d.signature {
		return nil, &SignatureMismatchError{Block: d.name, Observed: header.BlockSignature, Expected: d.signature}
	}
	if o.strict {
		if d.blockSize != 0 && header.BlockSize != d.blockSize {
			return nil, &BlockSizeMismatchError{Block: d.name, Observed: header.BlockSize, Expected: d.blockSize}
		}
		if d.minSize != 0 && header.BlockSize < d.minSize {
			return nil, &BlockSizeMismatchError{Block: d.name, Observed: header.BlockSize, Expected: d.minSize}
		}
	}
	return d.decode(block, o)
}

func signatureString(signature uint32) string {
	return fmt.Sprintf("0x%08X", signature)
}

// a block size below this value ends the chain
const extraDataTerminatorLimit = 4

// DecodeExtraDataBlock decodes the block at offset. A nil block with a nil
// error means offset holds the chain terminator; consumed then covers it.
func DecodeExtraDataBlock(data []byte, offset int, opts ...Option) (ExtraDataBlock, int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, 0, wrap(err)
	}
	block, consumed, err := decodeExtraDataBlock(data, offset, o)
	return block, consumed, wrap(err)
}

func decodeExtraDataBlock(data []byte, offset int, o *options) (ExtraDataBlock, int, error) {
	size, err := internal.Uint32(data, offset)
	if err != nil {
		return nil, 0, err
	}
	if size < extraDataTerminatorLimit {
		if size != 0 {
			o.logger.Warn().Int("offset", offset).Uint32("size", size).Msg("extra data chain ended by a non-zero terminator")
		}
		return nil, 4, nil
	}
	if size < 8 {
		return nil, 0, formatError(offset, "extra data block size %d cannot hold its header", size)
	}
	block, err := internal.Slice(data, offset, int(size))
	if err != nil {
		return nil, 0, err
	}

	header := readExtraDataHeader(block)
	decoder, ok := extraDataDecoders[header.BlockSignature]
	if !ok {
		o.logger.Warn().
			Str("signature", signatureString(header.BlockSignature)).
			Uint32("size", size).
			Int("offset", offset).
			Msg("unsupported extra data block")
		return &UnsupportedExtraData{
			ExtraDataHeader: header,
			Data:            append([]byte(nil), block[8:]...),
		}, int(size), nil
	}

	decoded, err := decoder.run(block, o)
	if err != nil {
		return nil, 0, rebase(err, offset)
	}
	o.logger.Debug().Str("block", decoder.name).Int("offset", offset).Uint32("size", size).Msg("decoded extra data block")
	return decoded, int(size), nil
}

// ExtraData is the ordered list of decoded extra data blocks.
type ExtraData []ExtraDataBlock

type taggedExtraDataBlock struct {
	Type  string         `json:"type"`
	Block ExtraDataBlock `json:"block"`
}

// MarshalJSON tags each block with its type name.
func (blocks ExtraData) MarshalJSON() ([]byte, error) {
	tagged := make([]taggedExtraDataBlock, len(blocks))
	for i, block := range blocks {
		tagged[i] = taggedExtraDataBlock{Type: block.kind(), Block: block}
	}
	return json.Marshal(tagged)
}

// DecodeExtraData decodes the extra data chain starting at offset until its
// terminator. It returns the number of bytes consumed, terminator included.
func DecodeExtraData(data []byte, offset int, opts ...Option) (ExtraData, int, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, 0, wrap(err)
	}
	blocks, consumed, err := decodeExtraData(data, offset, o)
	return blocks, consumed, wrap(err)
}

func decodeExtraData(data []byte, offset int, o *options) (ExtraData, int, error) {
	blocks := ExtraData{}
	start := offset
	for {
		if len(data)-offset < 4 {
			o.logger.Warn().Int("offset", offset).Msg("extra data chain has no terminal block")
			return blocks, offset - start, nil
		}
		block, consumed, err := decodeExtraDataBlock(data, offset, o)
		if err != nil {
			return nil, 0, err
		}
		offset += consumed
		if block == nil {
			return blocks, offset - start, nil
		}
		blocks = append(blocks, block)
	}
}
