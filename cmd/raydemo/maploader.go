package main

import (
	"encoding/binary"
	"fmt"
	"os"
)

// LoadMapFile reads the raw map binary format of spec.md §6: a
// contiguous, row-major array of width*width little-endian uint64 cells.
// Writers are external (map authoring tooling is out of scope per
// spec.md §1); this loader only decodes.
func LoadMapFile(path string, width int) ([]uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %q: %w", path, err)
	}
	want := width * width
	if len(data) != want*8 {
		return nil, fmt.Errorf("map file %q has %d bytes, want %d for a %dx%d grid", path, len(data), want*8, width, width)
	}
	cells := make([]uint64, want)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint64(data[i*8 : i*8+8])
	}
	return cells, nil
}

// GenerateDemoMap builds a small procedural room used when no map file
// is configured: a bordering thick wall, one sub-cell offset wall that
// carries a window, one door, and a floor/ceiling/road mix across the
// interior —
// enough to exercise every wall-slot and surface kind in a single scene.
func GenerateDemoMap(width int) []uint64 {
	cells := make([]uint64, width*width)
	at := func(x, y int) int { return y*width + x }

	const (
		ceilingBit = 1 << 1
		roadBit    = 1 << 3
	)

	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == width-1 {
				cells[at(x, y)] = 1 // legacy thick wall border
				continue
			}
			cells[at(x, y)] = ceilingBit
		}
	}

	// A road strip down the middle column.
	mid := width / 2
	for y := 1; y < width-1; y++ {
		cells[at(mid, y)] |= roadBit
	}

	// A sub-cell offset wall with a window, east-facing, near the start.
	if width > 6 {
		cells[at(3, 2)] = packWallCell(1, [3]wallSlotBits{
			{offset: 5, thickness: 1, depth: 10, offsetSecondary: 0, north: false, door: false, window: true},
		})
	}

	// A door cell further along the same corridor.
	if width > 8 {
		cells[at(5, 2)] = packWallCell(1, [3]wallSlotBits{
			{offset: 0, thickness: 1, depth: 10, offsetSecondary: 0, north: true, door: true, window: false},
		})
	}

	return cells
}

// wallSlotBits mirrors gridmap's packed-slot layout in pre-decoded
// (0..10) form, so the demo map generator can describe a slot
// declaratively instead of hand-shifting bits inline.
type wallSlotBits struct {
	offset, thickness, depth, offsetSecondary uint64
	north, door, window                       bool
}

// packWallCell packs a cell with wallCount active slots (only slot 0 is
// populated by GenerateDemoMap, but the helper supports all three so a
// future scene can add more without re-deriving the bit layout).
func packWallCell(wallCount uint64, slots [3]wallSlotBits) uint64 {
	var cell uint64
	cell |= wallCount << 12

	for i, s := range slots {
		if s.depth == 0 {
			continue
		}
		raw := (s.offset & 0xF) | (s.thickness&0xF)<<4 | (s.depth&0xF)<<8 | (s.offsetSecondary&0xF)<<12
		cell |= raw << (16 + 16*uint(i))

		switch i {
		case 0:
			if s.north {
				cell |= 1 << 6
			}
			if s.door {
				cell |= 1 << 5
			}
			if s.window {
				cell |= 1 << 8
			}
		case 1:
			if s.north {
				cell |= 1 << 7
			}
			if s.door {
				cell |= 1 << 4
			}
			if s.window {
				cell |= 1 << 9
			}
		case 2:
			if s.north {
				cell |= 1 << 2
			}
			if s.door {
				cell |= 1 << 4
			}
		}
	}
	return cell
}
