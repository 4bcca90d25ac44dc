package pinyindata

import (
	"context"
	"fmt"

	pool "github.com/jolestar/go-commons-pool"
)

// Scratch is a re-usable working area for splitting a single joined reading.
// Segmenting a word dictionary creates one of these per row, which makes for a
// lot of short-lived objects. We therefore pool them.
//
// Runes holds the prepared input, Tokens collects the output tokens.
type Scratch struct {
	Runes  []rune
	Tokens []string
}

type scratchPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

var globalScratchPool *scratchPool

func init() {
	globalScratchPool = &scratchPool{}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			sc := &Scratch{
				Runes:  make([]rune, 0, 32),
				Tokens: make([]string, 0, 8),
			}
			return sc, nil
		})
	globalScratchPool.ctx = context.Background()
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	globalScratchPool.opool = pool.NewObjectPool(globalScratchPool.ctx, factory, config)
}

// NewPooledScratch returns an empty Scratch from the pool.
// Clients must call Release() when done with it.
func NewPooledScratch() *Scratch {
	o, err := globalScratchPool.opool.BorrowObject(globalScratchPool.ctx)
	if err != nil {
		CT().Errorf("scratch pool: %v", err)
		return &Scratch{}
	}
	return o.(*Scratch)
}

// Release clears the Scratch and puts it back into the pool.
// sc must not be used after calling Release.
func (sc *Scratch) Release() {
	sc.Runes = sc.Runes[:0]
	sc.Tokens = sc.Tokens[:0]
	_ = globalScratchPool.opool.ReturnObject(globalScratchPool.ctx, sc)
}

// Simple stringer for debugging purposes.
func (sc *Scratch) String() string {
	if sc == nil {
		return "[nil scratch]"
	}
	return fmt.Sprintf("[scratch %q -> %v]", string(sc.Runes), sc.Tokens)
}
