package fbadger

import (
	"fmt"
	"os"
	"testing"

	"simpl/resource"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T, memory bool) DB {
	dir := ""
	if !memory {
		dir = t.TempDir()
	}
	conf := Config{
		Opts:  Options(dir),
		Scope: resource.NewInstanceScope(3),
	}
	db, err := conf.Materialize()
	require.NoError(t, err)
	return db.(DB)
}

func cleanup(db *DB) error {
	if err := db.Close(); err != nil {
		return err
	}
	if !db.Opts().InMemory {
		return os.RemoveAll(db.Opts().Dir)
	}
	return nil
}

func TestDB(t *testing.T) {
	t.Parallel()
	t.Run("test_badger_basic_disk", func(t *testing.T) {
		db := newDB(t, false)
		defer func() { assert.NoError(t, cleanup(&db)) }()
		assert.Contains(t, db.Opts().Dir, "i_3")
		testBasic(t, db)
	})

	t.Run("test_badger_basic_memory", func(t *testing.T) {
		db := newDB(t, true)
		defer func() { assert.NoError(t, cleanup(&db)) }()
		testBasic(t, db)
	})
	t.Run("test_badger_write_batch_memory", func(t *testing.T) {
		db := newDB(t, true)
		defer func() { assert.NoError(t, cleanup(&db)) }()
		testWriteBatch(t, db)
	})
}

func TestDB_Type(t *testing.T) {
	db := newDB(t, true)
	defer db.Close()
	assert.Equal(t, resource.Badger, db.Type())
	assert.Equal(t, resource.RealmID(3), db.ID())
	RecordBadgerStats(db)
}

func testBasic(t *testing.T, db DB) {
	key := []byte("key")
	value1 := []byte("value1")
	value2 := []byte("value2")
	// initially value is not found
	assert.Equal(t, badger.ErrKeyNotFound, db.View(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		return err
	}))
	// set the value1
	assert.NoError(t, db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, value1)
	}))
	assertValue(t, db, key, value1)

	// change the value1 to value2
	assert.NoError(t, db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, value2)
	}))
	assertValue(t, db, key, value2)

	// delete the value and verify it is gone
	assert.NoError(t, db.Update(func(tx *badger.Txn) error {
		return tx.Delete(key)
	}))
	assert.Equal(t, badger.ErrKeyNotFound, db.View(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		return err
	}))
}

func assertValue(t *testing.T, db DB, key, expected []byte) {
	assert.NoError(t, db.View(func(tx *badger.Txn) error {
		entry, err := tx.Get(key)
		if err != nil {
			return err
		}
		return entry.Value(func(val []byte) error {
			assert.Equal(t, expected, val)
			return nil
		})
	}))
}

func testWriteBatch(t *testing.T, db DB) {
	keys := make([][]byte, 10)
	vals := make([][]byte, 10)
	for i := 0; i < 10; i++ {
		keys[i] = []byte(fmt.Sprintf("key-%d", i))
		vals[i] = []byte(fmt.Sprintf("val-%d", i))
	}
	// set values in a batch
	batch := db.NewWriteBatch()
	for i := range keys {
		assert.NoError(t, batch.Set(keys[i], vals[i]))
	}
	assert.NoError(t, batch.Flush())
	for i := range keys {
		assertValue(t, db, keys[i], vals[i])
	}
}
