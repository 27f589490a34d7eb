// Package pkg provides the processors behind the cditools commands.
// This file contains disc loading, sector listing and YAML sector reports.
package pkg

import (
	"fmt"
	"io"

	"github.com/hansbonini/cditools/pkg/cdi"
	"github.com/hansbonini/cditools/pkg/common"
)

// DiscProcessor inspects the sectors of a disc image
type DiscProcessor struct{}

// NewDiscProcessor creates a new disc processor instance
func NewDiscProcessor() *DiscProcessor {
	return &DiscProcessor{}
}

// Load reads a disc image (plain or zstd compressed) from path
func (p *DiscProcessor) Load(path string) (*cdi.Disc, error) {
	disc, err := cdi.OpenFile(path)
	if err != nil {
		return nil, err
	}
	common.LogInfo(common.InfoDiscLoaded, disc.SectorCount(), path, disc.TrailingBytes())
	return disc, nil
}

// Info writes the per-channel sector breakdown of disc to w
func (p *DiscProcessor) Info(disc *cdi.Disc, w io.Writer) error {
	totals := disc.Totals()
	common.LogInfo(common.InfoSectorBreakdown, totals.Audio, totals.Video, totals.Data, totals.Empty)

	if _, err := fmt.Fprintf(w, "%s:\n", common.InfoChannelsFound); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Channel | Audio  | Video  | Data   | Empty\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "--------|--------|--------|--------|-------\n"); err != nil {
		return err
	}
	for _, ch := range disc.Channels() {
		if _, err := fmt.Fprintf(w, "%7d | %6d | %6d | %6d | %6d\n",
			ch.Channel, ch.Audio, ch.Video, ch.Data, ch.Empty); err != nil {
			return err
		}
	}
	return nil
}

// ListSectors writes one line per sector accepted by keep (every sector
// when keep is nil).
func (p *DiscProcessor) ListSectors(disc *cdi.Disc, keep func(*cdi.Sector) bool, w io.Writer) error {
	if keep == nil {
		keep = func(*cdi.Sector) bool { return true }
	}

	if _, err := fmt.Fprintf(w, "Index  | MSF      | File | Ch | Type  | Submode  | Coding\n"); err != nil {
		return err
	}
	for _, s := range disc.Filter(keep) {
		entry := newSectorEntry(s)
		if _, err := fmt.Fprintf(w, "%6d | %s | %4d | %2d | %-5s | %s | %s\n",
			entry.Index, entry.MSF, entry.File, entry.Channel, entry.Type, entry.Submode, entry.Coding); err != nil {
			return err
		}
	}
	return nil
}

// BuildReport summarizes disc; withSectors adds one entry per sector
func (p *DiscProcessor) BuildReport(disc *cdi.Disc, withSectors bool) *DiscReport {
	report := &DiscReport{
		Name:          disc.Name(),
		Size:          disc.Size(),
		SectorCount:   disc.SectorCount(),
		TrailingBytes: disc.TrailingBytes(),
		Totals:        disc.Totals(),
		Channels:      disc.Channels(),
	}

	if withSectors {
		report.Sectors = make([]SectorEntry, 0, disc.SectorCount())
		for _, s := range disc.Sectors() {
			report.Sectors = append(report.Sectors, newSectorEntry(s))
		}
	}
	return report
}

// ExportReport writes the disc report to a YAML file
func (p *DiscProcessor) ExportReport(disc *cdi.Disc, outputFile string, withSectors bool) error {
	report := p.BuildReport(disc, withSectors)
	if err := writeYAMLFile(report, outputFile); err != nil {
		return err
	}
	common.LogInfo(common.InfoReportExported, report.SectorCount, outputFile)
	return nil
}

// Select returns the sectors matching the selection, in disc order
func (s SectorSelection) Select(disc *cdi.Disc) []*cdi.Sector {
	sectors := disc.Filter(func(sector *cdi.Sector) bool {
		if sector.ChannelNumber() != s.Channel || sector.Type() != s.Type {
			return false
		}
		return s.File == nil || sector.FileNumber() == *s.File
	})
	common.LogDebug(common.DebugSectorsSelected, len(sectors), s.Channel, s.Type)
	return sectors
}

func newSectorEntry(s *cdi.Sector) SectorEntry {
	return SectorEntry{
		Index:   s.Index(),
		MSF:     s.MSF(),
		File:    s.FileNumber(),
		Channel: s.ChannelNumber(),
		Type:    s.Type().String(),
		Submode: s.Submode().String(),
		Coding:  s.CodingInfo().String(),
	}
}
