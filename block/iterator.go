package block

import (
	"io"
	"sort"

	"github.com/theJ8910/jnbt/nbt"
	"github.com/theJ8910/jnbt/world"
)

// Block is one decoded block position and identity.
type Block struct {
	X, Y, Z int
	Name    string
}

// IterateOptions controls a dimension block walk.
type IterateOptions struct {
	// IncludeAir, if true, visits every position in every empty section as
	// "minecraft:air" instead of skipping it.
	IncludeAir bool
}

// VisitFunc receives one decoded block during a dimension walk.
type VisitFunc func(b Block) error

// ChunkErrorFunc receives a per-chunk decode failure. The walk continues
// to the next chunk regardless of what this function does: one malformed
// chunk shouldn't abort a walk over an otherwise-healthy dimension.
type ChunkErrorFunc func(chunkX, chunkZ int, err error)

// IterateDimension walks every region, chunk, and section in dim, calling
// visit for each block. Regions are taken in the order dim.Regions lists
// them; within a region, chunks go in ascending z then x; within a chunk,
// blocks go in ascending section-Y, then y, z, x order. A chunk that fails to decode is reported
// to onError (if non-nil) and skipped; a failure listing regions or
// opening a region file aborts the whole walk, since those indicate the
// dimension itself can't be read rather than one bad chunk.
func IterateDimension(dim *world.Dimension, opts *IterateOptions, visit VisitFunc, onError ChunkErrorFunc) error {
	if opts == nil {
		opts = &IterateOptions{}
	}

	infos, err := dim.Regions()
	if err != nil {
		return err
	}

	for _, info := range infos {
		if err := iterateRegionFile(dim, info, opts, visit, onError); err != nil {
			return err
		}
	}
	return nil
}

func iterateRegionFile(dim *world.Dimension, info *world.RegionInfo, opts *IterateOptions, visit VisitFunc, onError ChunkErrorFunc) error {
	r, err := dim.Region(info.X, info.Z)
	if err != nil {
		return err
	}
	defer r.Close()

	for lz := 0; lz < 32; lz++ {
		for lx := 0; lx < 32; lx++ {
			if !r.ChunkExists(lx, lz) {
				continue
			}
			chunkX := info.X*32 + lx
			chunkZ := info.Z*32 + lz

			if err := iterateChunk(r, lx, lz, chunkX, chunkZ, opts, visit); err != nil {
				if onError != nil {
					onError(chunkX, chunkZ, err)
				}
			}
		}
	}
	return nil
}

func iterateChunk(r regionReader, lx, lz, chunkX, chunkZ int, opts *IterateOptions, visit VisitFunc) error {
	reader, err := r.ReadChunk(lx, lz)
	if err != nil {
		return wrapError(ErrMalformedSection, chunkX, chunkZ, 0, "read chunk", err)
	}
	root, _, err := nbt.ParseTree(reader)
	if err != nil {
		return wrapError(ErrMalformedSection, chunkX, chunkZ, 0, "parse", err)
	}
	rootCompound, err := root.AsCompound()
	if err != nil {
		return wrapError(ErrMalformedSection, chunkX, chunkZ, 0, "chunk root", err)
	}

	body := rootCompound
	if levelNode, ok := rootCompound.Get("Level"); ok {
		body, err = levelNode.AsCompound()
		if err != nil {
			return wrapError(ErrMalformedSection, chunkX, chunkZ, 0, "Level", err)
		}
	}

	var dataVersion int32
	if dvNode, ok := rootCompound.Get("DataVersion"); ok {
		dataVersion, _ = dvNode.AsInt()
	}

	sectionsNode, ok := body.Get("Sections")
	if !ok {
		return nil // chunk has no sections yet (e.g. ungenerated stub)
	}
	sectionsList, err := sectionsNode.AsList()
	if err != nil {
		return wrapError(ErrMalformedSection, chunkX, chunkZ, 0, "Sections", err)
	}

	sections := make([]*Section, 0, sectionsList.Len())
	for _, sectionNode := range sectionsList.Items() {
		sectionCompound, err := sectionNode.AsCompound()
		if err != nil {
			return wrapError(ErrMalformedSection, chunkX, chunkZ, 0, "Sections[]", err)
		}
		section, err := DecodeSection(sectionCompound, dataVersion)
		if err != nil {
			return attachChunk(err, chunkX, chunkZ)
		}
		sections = append(sections, section)
	}
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Y < sections[j].Y })

	for _, section := range sections {
		if err := visitSection(section, chunkX, chunkZ, opts, visit); err != nil {
			return err
		}
	}
	return nil
}

// regionReader is the subset of *region.Region the iterator needs; kept
// as an interface so this file doesn't have to import the region package
// just to name a parameter type.
type regionReader interface {
	ReadChunk(localX, localZ int) (io.Reader, error)
}

func visitSection(s *Section, chunkX, chunkZ int, opts *IterateOptions, visit VisitFunc) error {
	if s.Empty && !opts.IncludeAir {
		return nil
	}
	baseX := chunkX * 16
	baseZ := chunkZ * 16
	baseY := int(s.Y) * 16

	for y := 0; y < 16; y++ {
		for z := 0; z < 16; z++ {
			for x := 0; x < 16; x++ {
				name := "minecraft:air"
				if !s.Empty {
					name = s.BlockAt(x, y, z)
				}
				b := Block{X: baseX + x, Y: baseY + y, Z: baseZ + z, Name: name}
				if err := visit(b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
