package world

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theJ8910/jnbt/region"
)

// Dimension IDs for the three vanilla dimensions. Custom dimensions (added
// by mods or data packs) use any other int.
const (
	DimNether    = -1
	DimOverworld = 0
	DimEnd       = 1
)

// Dimension is one of a World's dimensions: the Overworld, the Nether, the
// End, or a custom dimension contributed by a mod or data pack. Dimension
// 0 (the Overworld) lives directly in the world directory; every other
// dimension lives in a "DIM<id>" subdirectory of it.
type Dimension struct {
	ID   int
	Path string

	world *World
}

func dimensionDirName(id int) string {
	if id == DimOverworld {
		return ""
	}
	return fmt.Sprintf("DIM%d", id)
}

// parseDimensionDirName extracts a dimension ID from a "DIM<id>" directory
// name (case-insensitively), or reports ok=false if name doesn't match
// that pattern. "DIM0" is deliberately excluded: some mods
// mistakenly create it, and the overworld already owns ID 0 at world root.
func parseDimensionDirName(name string) (id int, ok bool) {
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "DIM") {
		return 0, false
	}
	n, err := strconv.Atoi(upper[3:])
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// World is an entire Minecraft save: a set of dimensions plus save-wide
// metadata (level.dat, playerdata/).
type World struct {
	Path string
}

// Open returns a World rooted at path. It does not validate the directory
// beyond confirming it exists.
func Open(path string) (*World, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, wrapError(ErrNotFound, "failed to stat world directory", err)
	}
	if !info.IsDir() {
		return nil, newError(ErrNotFound, "world path is not a directory: "+path)
	}
	return &World{Path: path}, nil
}

// Dimensions enumerates every dimension in the world: the Overworld
// (always present at the world root), plus every "DIM<id>" subdirectory.
func (w *World) Dimensions() ([]*Dimension, error) {
	dims := []*Dimension{{ID: DimOverworld, Path: w.Path, world: w}}

	entries, err := os.ReadDir(w.Path)
	if err != nil {
		return nil, wrapError(ErrIoFailure, "failed to list world directory", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, ok := parseDimensionDirName(entry.Name())
		if !ok {
			continue
		}
		dims = append(dims, &Dimension{ID: id, Path: filepath.Join(w.Path, entry.Name()), world: w})
	}
	return dims, nil
}

// Dimension returns the dimension with the given ID, or an error if it
// doesn't exist in this world.
func (w *World) Dimension(id int) (*Dimension, error) {
	path := w.Path
	if id != DimOverworld {
		path = filepath.Join(w.Path, dimensionDirName(id))
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, newError(ErrNotFound, fmt.Sprintf("no dimension %d in this world", id))
	}
	return &Dimension{ID: id, Path: path, world: w}, nil
}

// World returns the world this dimension belongs to.
func (d *Dimension) World() *World { return d.world }

// RegionInfo describes one region file found in a dimension's "region"
// subdirectory, without opening it.
type RegionInfo struct {
	X, Z int
	Path string
	// Legacy is true for ".mcr" (pre-Anvil) region files.
	Legacy bool
}

// Regions lists every region file present in this dimension.
func (d *Dimension) Regions() ([]*RegionInfo, error) {
	regionDir := filepath.Join(d.Path, "region")
	entries, err := os.ReadDir(regionDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapError(ErrIoFailure, "failed to list region directory", err)
	}

	var infos []*RegionInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		x, z, err := region.ParseRegionFilename(entry.Name())
		if err != nil {
			continue
		}
		infos = append(infos, &RegionInfo{
			X:      x,
			Z:      z,
			Path:   filepath.Join(regionDir, entry.Name()),
			Legacy: strings.HasSuffix(strings.ToLower(entry.Name()), ".mcr"),
		})
	}
	return infos, nil
}

// Region opens the region file at region coordinates (rx, rz), trying the
// modern ".mca" extension before falling back to the legacy ".mcr" one.
func (d *Dimension) Region(rx, rz int) (*region.Region, error) {
	regionDir := filepath.Join(d.Path, "region")
	for _, ext := range []string{"mca", "mcr"} {
		path := filepath.Join(regionDir, region.RegionFilename(rx, rz, ext))
		if _, err := os.Stat(path); err == nil {
			r, err := region.Open(path)
			if err != nil {
				return nil, wrapError(ErrIoFailure, "failed to open region file", err)
			}
			return r, nil
		}
	}
	return nil, newError(ErrNotFound, fmt.Sprintf("no region (%d,%d) in this dimension", rx, rz))
}

// ChunkRegion locates the region and region-local chunk coordinates for
// the absolute chunk coordinates (cx, cz).
func (d *Dimension) ChunkRegion(cx, cz int) (r *region.Region, localX, localZ int, err error) {
	rx, lx := floorDivMod(cx, 32)
	rz, lz := floorDivMod(cz, 32)
	r, err = d.Region(rx, rz)
	if err != nil {
		return nil, 0, 0, err
	}
	return r, lx, lz, nil
}

// floorDivMod returns (q, r) such that a == q*n + r, 0 <= r < n (n > 0), matching
// Python's divmod semantics for negative a (truncating-division-based
// divmod would give a negative remainder instead).
func floorDivMod(a, n int) (q, r int) {
	q = a / n
	r = a % n
	if r < 0 {
		q--
		r += n
	}
	return q, r
}
