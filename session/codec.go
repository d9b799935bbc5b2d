package session

import (
	"encoding/json"
	"fmt"

	"simpl/engine/interpreter"

	"github.com/golang/snappy"
)

// codecs are stored in the badger user meta byte of each entry
const (
	codecSnappyJSON byte = 1
)

func encode(env *interpreter.Env) ([]byte, error) {
	b, err := json.Marshal(env.Snapshot())
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, b), nil
}

func decode(codec byte, v []byte) (*interpreter.Env, error) {
	if codec != codecSnappyJSON {
		return nil, fmt.Errorf("unknown session codec: %d", codec)
	}
	b, err := snappy.Decode(nil, v)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %s", err)
	}
	var snapshot map[string]int32
	if err = json.Unmarshal(b, &snapshot); err != nil {
		return nil, err
	}
	return interpreter.EnvFromSnapshot(snapshot), nil
}
