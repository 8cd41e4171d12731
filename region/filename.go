package region

import "fmt"

// ParseRegionFilename extracts the region coordinates from a standard
// "r.<x>.<z>.mca" or "r.<x>.<z>.mcr" filename. It returns an error if name
// doesn't match that pattern; callers that already know the coordinates by
// other means (e.g. a directory listing keyed differently) can ignore the
// error and supply their own.
func ParseRegionFilename(name string) (x, z int, err error) {
	var ext string
	n, err := fmt.Sscanf(name, "r.%d.%d.%3s", &x, &z, &ext)
	if err != nil || n != 3 || (ext != "mca" && ext != "mcr") {
		return 0, 0, fmt.Errorf("region: %q is not a valid region filename", name)
	}
	return x, z, nil
}

// RegionFilename formats the standard filename for the region at (x, z).
// ext should be "mca" (current) or "mcr" (legacy, pre-Anvil).
func RegionFilename(x, z int, ext string) string {
	return fmt.Sprintf("r.%d.%d.%s", x, z, ext)
}
