package cdi

import (
	"fmt"
	"io"
	"sort"

	"github.com/hansbonini/cditools/pkg/common"
)

// Disc is an ordered, randomly addressable view over the sectors of a raw
// CD-i image (or a single real-time file dumped from one).
type Disc struct {
	name     string
	size     int
	sectors  []*Sector
	trailing int
}

// Open splits data into consecutive SectorSize records. A final record
// shorter than SectorSize is dropped. The buffer is retained and must not
// be modified afterwards.
func Open(data []byte) *Disc {
	count := len(data) / SectorSize
	d := &Disc{
		size:     len(data),
		sectors:  make([]*Sector, 0, count),
		trailing: len(data) % SectorSize,
	}

	for i := 0; i < count; i++ {
		offset := i * SectorSize
		// Full-length chunks cannot fail
		sector, _ := NewSector(i, data[offset:offset+SectorSize:offset+SectorSize])
		d.sectors = append(d.sectors, sector)
	}

	return d
}

// OpenFile loads a disc image from disk (plain or zstd compressed) and opens it.
// Any read failure aborts the whole operation.
func OpenFile(path string) (*Disc, error) {
	data, err := common.LoadImage(path)
	if err != nil {
		return nil, err
	}

	d := Open(data)
	d.name = path
	return d, nil
}

// Read consumes reader completely and opens the result.
func Read(reader io.Reader) (*Disc, error) {
	data, err := common.ReadImage(reader)
	if err != nil {
		return nil, err
	}
	return Open(data), nil
}

// Name returns the path the disc was loaded from, if any
func (d *Disc) Name() string { return d.name }

// Size returns the size in bytes of the source buffer
func (d *Disc) Size() int { return d.size }

// TrailingBytes returns the number of bytes dropped after the last full sector
func (d *Disc) TrailingBytes() int { return d.trailing }

// SectorCount returns the number of complete sectors
func (d *Disc) SectorCount() int { return len(d.sectors) }

// Sectors returns all sectors in disc order
func (d *Disc) Sectors() []*Sector {
	out := make([]*Sector, len(d.sectors))
	copy(out, d.sectors)
	return out
}

// Sector returns the sector at index
func (d *Disc) Sector(index int) (*Sector, error) {
	if index < 0 || index >= len(d.sectors) {
		return nil, fmt.Errorf("%s: %d (total: %d)", common.ErrSectorOutOfRange, index, len(d.sectors))
	}
	return d.sectors[index], nil
}

// Filter returns the sectors for which keep returns true, in disc order
func (d *Disc) Filter(keep func(*Sector) bool) []*Sector {
	var out []*Sector
	for _, s := range d.sectors {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}

// SectorsOfType returns the sectors whose resolved category is t. A sector
// belongs to exactly one category, so a submode with both the Audio and
// Data bits set is listed as audio only.
func (d *Disc) SectorsOfType(t SectorType) []*Sector {
	return d.Filter(func(s *Sector) bool { return s.Type() == t })
}

// SectorsWithSubmode returns the sectors whose submode has bit set,
// regardless of their resolved category
func (d *Disc) SectorsWithSubmode(bit SubmodeBit) []*Sector {
	return d.Filter(func(s *Sector) bool { return s.Submode().Has(bit) })
}

func (d *Disc) AudioSectors() []*Sector { return d.SectorsOfType(SectorAudio) }
func (d *Disc) VideoSectors() []*Sector { return d.SectorsOfType(SectorVideo) }
func (d *Disc) DataSectors() []*Sector  { return d.SectorsOfType(SectorData) }

// ChannelSectors returns the sectors of type t on channel
func (d *Disc) ChannelSectors(channel uint8, t SectorType) []*Sector {
	return d.Filter(func(s *Sector) bool {
		return s.ChannelNumber() == channel && s.Type() == t
	})
}

// ChannelStats counts sectors per category on one channel
type ChannelStats struct {
	Channel uint8 `yaml:"channel"`
	Audio   int   `yaml:"audio"`
	Video   int   `yaml:"video"`
	Data    int   `yaml:"data"`
	Empty   int   `yaml:"empty"`
}

// Channels summarizes every channel number that appears on the disc,
// ordered by channel number.
func (d *Disc) Channels() []ChannelStats {
	byChannel := make(map[uint8]*ChannelStats)
	for _, s := range d.sectors {
		ch := s.ChannelNumber()
		stats, ok := byChannel[ch]
		if !ok {
			stats = &ChannelStats{Channel: ch}
			byChannel[ch] = stats
		}
		stats.add(s.Type())
	}

	out := make([]ChannelStats, 0, len(byChannel))
	for _, stats := range byChannel {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out
}

// Totals counts sectors per category over the whole disc
func (d *Disc) Totals() ChannelStats {
	var total ChannelStats
	for _, s := range d.sectors {
		total.add(s.Type())
	}
	return total
}

func (c *ChannelStats) add(t SectorType) {
	switch t {
	case SectorAudio:
		c.Audio++
	case SectorVideo:
		c.Video++
	case SectorData:
		c.Data++
	default:
		c.Empty++
	}
}
