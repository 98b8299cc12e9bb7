package treestore

import (
	"crypto/rand"
	"sync"
	"time"
)

// Push ids follow the realtime database convention: 20 characters, the
// first 8 encoding the timestamp so that ids sort chronologically, the last
// 12 random. Ids generated in the same millisecond increment the previous
// random suffix to stay strictly ordered.
const pushChars = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

type pushIDGenerator struct {
	mu       sync.Mutex
	lastMs   int64
	lastRand [12]int
}

func newPushIDGenerator() *pushIDGenerator {
	return &pushIDGenerator{lastMs: -1}
}

func (g *pushIDGenerator) next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()

	var id [20]byte
	for i := 7; i >= 0; i-- {
		id[i] = pushChars[ms%64]
		ms /= 64
	}

	if now.UnixMilli() == g.lastMs {
		// Same millisecond: bump the previous suffix.
		for i := 11; i >= 0; i-- {
			g.lastRand[i]++
			if g.lastRand[i] < 64 {
				break
			}
			g.lastRand[i] = 0
		}
	} else {
		var buf [12]byte
		_, _ = rand.Read(buf[:])
		for i := 0; i < 12; i++ {
			g.lastRand[i] = int(buf[i]) % 64
		}
		g.lastMs = now.UnixMilli()
	}

	for i := 0; i < 12; i++ {
		id[8+i] = pushChars[g.lastRand[i]]
	}

	return string(id[:])
}
