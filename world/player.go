package world

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/theJ8910/jnbt/nbt"
)

// Player is one player's save data: playerdata/<uuid>.dat, a gzip-
// compressed NBT document keyed by the player's UUID.
type Player struct {
	UUID uuid.UUID
	Data *nbt.Compound
}

// Players enumerates every player who has ever played in this world, by
// scanning playerdata/ for "<uuid>.dat" files.
func (w *World) Players() ([]*Player, error) {
	dir := filepath.Join(w.Path, "playerdata")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, wrapError(ErrIoFailure, "failed to list playerdata directory", err)
	}

	var players []*Player
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := parsePlayerFilename(entry.Name())
		if !ok {
			continue
		}
		p, err := loadPlayer(filepath.Join(dir, entry.Name()), id)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

// Player returns the save data for the player with the given UUID, or an
// error if they've never played in this world.
func (w *World) Player(id uuid.UUID) (*Player, error) {
	path := filepath.Join(w.Path, "playerdata", id.String()+".dat")
	if _, err := os.Stat(path); err != nil {
		return nil, newError(ErrNotFound, "no player data for "+id.String())
	}
	return loadPlayer(path, id)
}

func parsePlayerFilename(name string) (uuid.UUID, bool) {
	stem := strings.TrimSuffix(name, ".dat")
	if stem == name {
		return uuid.UUID{}, false // no ".dat" suffix
	}
	id, err := uuid.Parse(stem)
	if err != nil {
		return uuid.UUID{}, false
	}
	return id, true
}

func loadPlayer(path string, id uuid.UUID) (*Player, error) {
	doc, err := nbt.Load(path)
	if err != nil {
		return nil, wrapError(ErrIoFailure, "failed to load player data "+path, err)
	}
	data, err := doc.Root.AsCompound()
	if err != nil {
		return nil, wrapError(ErrMalformedLevelData, "player data root is not a compound", err)
	}
	return &Player{UUID: id, Data: data}, nil
}
