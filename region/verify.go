package region

import "fmt"

// sectorRange is a half-open [start, end) run of 4096-byte sectors claimed
// by one chunk entry, used by Verify to detect overlaps.
type sectorRange struct {
	start, end int64
	x, z       int
}

// Verify scans the whole header for structural integrity problems the read
// path doesn't otherwise notice until (or unless) that particular chunk is
// read: entries whose sector range falls outside the file (CorruptHeader),
// and entries whose sector ranges overlap each other (SectorOverlap). It
// returns the first problem found, or nil if the header is internally
// consistent.
//
// Verify does not decompress or parse any chunk payload; it only checks
// the offset/count bookkeeping.
func (r *Region) Verify() error {
	fileSectors := sectorsInFile(r.size)

	var claimed []sectorRange
	for z := 0; z < 32; z++ {
		for x := 0; x < 32; x++ {
			e, err := r.header.Get(x, z)
			if err != nil || !e.present() {
				continue
			}
			start := int64(e.Offset)
			end := start + int64(e.SectorCount)
			if e.SectorCount == 0 {
				return newError(ErrCorruptHeader, x, z, "entry has a nonzero offset but zero sector count")
			}
			if start < 2 || end > fileSectors {
				return newError(ErrCorruptHeader, x, z, fmt.Sprintf("sector range [%d,%d) falls outside the %d-sector file", start, end, fileSectors))
			}
			claimed = append(claimed, sectorRange{start: start, end: end, x: x, z: z})
		}
	}

	for i := 0; i < len(claimed); i++ {
		for j := i + 1; j < len(claimed); j++ {
			a, b := claimed[i], claimed[j]
			if a.start < b.end && b.start < a.end {
				return newError(ErrSectorOverlap, a.x, a.z, fmt.Sprintf("chunk (%d,%d) sectors [%d,%d) overlap chunk (%d,%d) sectors [%d,%d)", a.x, a.z, a.start, a.end, b.x, b.z, b.start, b.end))
			}
		}
	}
	return nil
}
