// Package cartridge implements the one-shot header/descriptor parser and
// the memory bank controller (MBC) family: None, MBC1, MBC2, and MBC3+RTC.
//
// The header layout and checksum formula are grounded on
// original_source's dev/cart/header.rs; the MBC bank-selection rules are
// grounded on dev/cart/mbc/{mbc1,mbc2,mbc3,rtc}.rs.
package cartridge

import (
	"errors"
	"fmt"
)

var nintendoLogo = [48]byte{
	0xCE, 0xED, 0x66, 0x66, 0xCC, 0x0D, 0x00, 0x0B, 0x03, 0x73, 0x00, 0x83,
	0x00, 0x0C, 0x00, 0x0D, 0x00, 0x08, 0x11, 0x1F, 0x88, 0x89, 0x00, 0x0E,
	0xDC, 0xCC, 0x6E, 0xE6, 0xDD, 0xDD, 0xD9, 0x99, 0xBB, 0xBB, 0x67, 0x63,
	0x6E, 0x0E, 0xEC, 0xCC, 0xDD, 0xDC, 0x99, 0x9F, 0xBB, 0xB9, 0x33, 0x3E,
}

// Kind identifies which MBC family a cartridge type code maps to.
type Kind int

const (
	KindNone Kind = iota
	KindMBC1
	KindMBC2
	KindMBC3
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindMBC1:
		return "MBC1"
	case KindMBC2:
		return "MBC2"
	case KindMBC3:
		return "MBC3"
	default:
		return "Unknown"
	}
}

// Header is the descriptor produced once from a ROM image's 0x0100-0x014F
// bytes.
type Header struct {
	Title       string
	Kind        Kind
	HasRAM      bool
	HasBattery  bool
	HasRTC      bool
	ROMBanks    int
	RAMSize     int
	Destination byte
	Version     byte
	ChecksumOK  bool
}

var (
	ErrTooShort         = errors.New("cartridge: rom image shorter than header region")
	ErrInvalidLogo      = errors.New("cartridge: nintendo logo mismatch")
	ErrInvalidChecksum  = errors.New("cartridge: header checksum mismatch")
	ErrUnknownCartType  = errors.New("cartridge: unrecognized cartridge type code")
	ErrInvalidROMSize   = errors.New("cartridge: rom size code does not match image length")
)

// Parse validates and decodes the header of rom, the full cartridge image.
func Parse(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, ErrTooShort
	}

	var h Header
	for i, b := range nintendoLogo {
		if rom[0x0104+i] != b {
			return Header{}, ErrInvalidLogo
		}
	}

	titleEnd := 0x0134
	for titleEnd < 0x0144 && rom[titleEnd] != 0 {
		titleEnd++
	}
	h.Title = string(rom[0x0134:titleEnd])

	cartType := rom[0x0147]
	kind, hasRAM, hasBattery, hasRTC, err := classify(cartType)
	if err != nil {
		return Header{}, err
	}
	h.Kind = kind
	h.HasRAM = hasRAM
	h.HasBattery = hasBattery
	h.HasRTC = hasRTC

	romSizeCode := rom[0x0148]
	h.ROMBanks = 2 << romSizeCode
	if len(rom) != h.ROMBanks*0x4000 {
		return Header{}, fmt.Errorf("%w: header says %d banks (%d bytes), image is %d bytes",
			ErrInvalidROMSize, h.ROMBanks, h.ROMBanks*0x4000, len(rom))
	}

	ramSizeCode := rom[0x0149]
	switch ramSizeCode {
	case 0x00:
		h.RAMSize = 0
	case 0x02:
		h.RAMSize = 8 * 1024
	case 0x03:
		h.RAMSize = 32 * 1024
	case 0x04:
		h.RAMSize = 128 * 1024
	case 0x05:
		h.RAMSize = 64 * 1024
	default:
		h.RAMSize = 0
	}

	h.Destination = rom[0x014A]
	h.Version = rom[0x014C]

	sum := byte(0)
	for i := 0x0134; i <= 0x014C; i++ {
		sum = sum - rom[i] - 1
	}
	h.ChecksumOK = sum == rom[0x014D]
	if !h.ChecksumOK {
		return h, ErrInvalidChecksum
	}

	return h, nil
}

func classify(cartType byte) (kind Kind, hasRAM, hasBattery, hasRTC bool, err error) {
	switch cartType {
	case 0x00:
		return KindNone, false, false, false, nil
	case 0x08:
		return KindNone, true, false, false, nil
	case 0x09:
		return KindNone, true, true, false, nil
	case 0x01:
		return KindMBC1, false, false, false, nil
	case 0x02:
		return KindMBC1, true, false, false, nil
	case 0x03:
		return KindMBC1, true, true, false, nil
	case 0x05:
		return KindMBC2, false, false, false, nil
	case 0x06:
		return KindMBC2, false, true, false, nil
	case 0x0F:
		return KindMBC3, false, true, true, nil
	case 0x10:
		return KindMBC3, true, true, true, nil
	case 0x11:
		return KindMBC3, false, false, false, nil
	case 0x12:
		return KindMBC3, true, false, false, nil
	case 0x13:
		return KindMBC3, true, true, false, nil
	default:
		return 0, false, false, false, fmt.Errorf("%w: 0x%02X", ErrUnknownCartType, cartType)
	}
}
