package world

import (
	"path/filepath"

	"github.com/theJ8910/jnbt/nbt"
)

// LevelData is a typed view over level.dat's root "Data" compound, exposing
// the handful of well-known fields callers reach for constantly instead of
// leaving them to re-walk the generic tree on every access.
type LevelData struct {
	Data *nbt.Compound
}

func loadLevelData(path string) (*LevelData, error) {
	doc, err := nbt.Load(path)
	if err != nil {
		return nil, wrapError(ErrMalformedLevelData, "failed to load level.dat", err)
	}
	root, err := doc.Root.AsCompound()
	if err != nil {
		return nil, wrapError(ErrMalformedLevelData, "level.dat root is not a compound", err)
	}
	dataNode, ok := root.Get("Data")
	if !ok {
		return nil, newError(ErrMalformedLevelData, `level.dat is missing its root "Data" compound`)
	}
	data, err := dataNode.AsCompound()
	if err != nil {
		return nil, wrapError(ErrMalformedLevelData, `level.dat "Data" entry is not a compound`, err)
	}
	return &LevelData{Data: data}, nil
}

func (ld *LevelData) getString(name string) (string, bool) {
	n, ok := ld.Data.Get(name)
	if !ok {
		return "", false
	}
	v, err := n.AsString()
	return v, err == nil
}

func (ld *LevelData) getInt(name string) (int32, bool) {
	n, ok := ld.Data.Get(name)
	if !ok {
		return 0, false
	}
	v, err := n.AsInt()
	return v, err == nil
}

func (ld *LevelData) getLong(name string) (int64, bool) {
	n, ok := ld.Data.Get(name)
	if !ok {
		return 0, false
	}
	v, err := n.AsLong()
	return v, err == nil
}

func (ld *LevelData) getByte(name string) (int8, bool) {
	n, ok := ld.Data.Get(name)
	if !ok {
		return 0, false
	}
	v, err := n.AsByte()
	return v, err == nil
}

// LevelName is the world's display name, as set at creation.
func (ld *LevelData) LevelName() (string, bool) { return ld.getString("LevelName") }

// SpawnX/SpawnY/SpawnZ are the world spawn point, in block coordinates.
func (ld *LevelData) SpawnX() (int32, bool) { return ld.getInt("SpawnX") }
func (ld *LevelData) SpawnY() (int32, bool) { return ld.getInt("SpawnY") }
func (ld *LevelData) SpawnZ() (int32, bool) { return ld.getInt("SpawnZ") }

// DataVersion identifies the on-disk schema revision this save was last
// written with; it's the same field block.Section decoding keys its
// straddling/non-straddling choice on.
func (ld *LevelData) DataVersion() (int32, bool) { return ld.getInt("DataVersion") }

// GameType is the world's game mode (0=survival, 1=creative, 2=adventure,
// 3=spectator).
func (ld *LevelData) GameType() (int32, bool) { return ld.getInt("GameType") }

// Difficulty is the world's difficulty (0=peaceful .. 3=hard).
func (ld *LevelData) Difficulty() (int8, bool) { return ld.getByte("Difficulty") }

// Time is the number of ticks the world has existed for.
func (ld *LevelData) Time() (int64, bool) { return ld.getLong("Time") }

// LevelData returns the world's level.dat, parsed on every call (the
// teacher's own leveldata access is similarly call-by-call rather than
// mutating cached state, per anvil_world.go's decode-on-demand style).
func (w *World) LevelData() (*LevelData, error) {
	return loadLevelData(w.levelDatPath())
}

func (w *World) levelDatPath() string {
	return filepath.Join(w.Path, "level.dat")
}
