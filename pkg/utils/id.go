package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.NewString()
}

const roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewRoomCode returns a short join code for screen-share sessions.
// Not a secret; collisions are caught by the unique column.
func NewRoomCode() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(roomCodeAlphabet[rand.Intn(len(roomCodeAlphabet))])
	}
	return b.String()
}
