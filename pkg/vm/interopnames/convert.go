package interopnames

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"errors"
)

var (
	errNotFound = errors.New("interop not found")

	ids = make([][]byte, len(names))
)

func init() {
	for i := range names {
		h := sha256.Sum256([]byte(names[i]))
		ids[i] = h[:4]
	}
}

// ToID returns an identificator of the method based on its name.
func ToID(name []byte) uint32 {
	h := sha256.Sum256(name)
	return binary.LittleEndian.Uint32(h[:4])
}

// FromID returns interop name from its id.
func FromID(id uint32) (string, error) {
	x := make([]byte, 4)
	binary.LittleEndian.PutUint32(x, id)
	for i := range names {
		if bytes.Equal(x, ids[i]) {
			return names[i], nil
		}
	}
	return "", errNotFound
}
