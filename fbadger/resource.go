package fbadger

import (
	"fmt"
	"path/filepath"

	"simpl/resource"

	"github.com/dgraph-io/badger/v3"
)

type DB struct {
	*badger.DB
	Config Config
	resource.Scope
}

func (d DB) Close() error {
	return d.DB.Close()
}

func (d DB) Type() resource.Type {
	return resource.Badger
}

var _ resource.Resource = DB{}

type Config struct {
	Opts  badger.Options
	Scope resource.Scope
}

// Materialize opens the database. On disk, each scope gets its own
// subdirectory of Opts.Dir.
func (c Config) Materialize() (resource.Resource, error) {
	if !c.Opts.InMemory {
		dir := filepath.Join(c.Opts.Dir, fmt.Sprintf("i_%d", c.Scope.ID()))
		c.Opts = c.Opts.WithDir(dir).WithValueDir(dir)
	}
	db, err := badger.Open(c.Opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at '%s': %w", c.Opts.Dir, err)
	}
	return DB{DB: db, Config: c, Scope: c.Scope}, nil
}

var _ resource.Config = Config{}

// Options returns badger options for dir, or for an in-memory database when
// dir is empty.
func Options(dir string) badger.Options {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	return opts.WithLoggingLevel(badger.ERROR)
}
