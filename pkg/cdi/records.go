package cdi

// Payloads concatenates the category payloads of sectors in order
func Payloads(sectors []*Sector) []byte {
	total := 0
	for _, s := range sectors {
		total += s.Type().PayloadSize()
	}

	out := make([]byte, 0, total)
	for _, s := range sectors {
		out = append(out, s.raw[PayloadOffset:PayloadOffset+s.Type().PayloadSize()]...)
	}
	return out
}

// Boundary decides whether a sector closes the current record
type Boundary func(*Sector) bool

// TriggerBoundary closes a record on sectors with the trigger bit set,
// which real-time video streams use to mark the last sector of a frame.
func TriggerBoundary(s *Sector) bool { return s.Submode().IsTrigger() }

// EORBoundary closes a record on end-of-record or end-of-file sectors
func EORBoundary(s *Sector) bool { return s.Submode().IsEOR() || s.Submode().IsEOF() }

// Record is a group of consecutive sectors closed by a boundary sector
type Record struct {
	Sectors []*Sector
	// Closed is false for a trailing group that never reached a boundary
	Closed bool
}

// Payload concatenates the payloads of the record sectors
func (r Record) Payload() []byte {
	return Payloads(r.Sectors)
}

// First returns the index of the first sector of the record
func (r Record) First() int {
	if len(r.Sectors) == 0 {
		return -1
	}
	return r.Sectors[0].Index()
}

// SplitRecords groups sectors into records, each ending with a sector for
// which boundary returns true. Sectors after the last boundary form a final
// record with Closed set to false.
func SplitRecords(sectors []*Sector, boundary Boundary) []Record {
	var records []Record
	var current []*Sector

	for _, s := range sectors {
		current = append(current, s)
		if boundary(s) {
			records = append(records, Record{Sectors: current, Closed: true})
			current = nil
		}
	}
	if len(current) > 0 {
		records = append(records, Record{Sectors: current})
	}
	return records
}
