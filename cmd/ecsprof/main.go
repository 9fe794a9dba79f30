// Profiling:
// go build ./cmd/ecsprof
// go tool pprof -http=":8000" -nodefraction=0.001 ./ecsprof mem.pprof

package main

import (
	"github.com/l1jgo/ecscore/internal/core/ecs"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run churns entities through create, attach, iterate and destroy so that
// slot and dense-index recycling dominate the profile.
func run(rounds, iters, numEntities int) {
	for range rounds {
		cfg := ecs.DefaultConfig()
		cfg.EntitiesCapacity = numEntities
		cfg.Checked = false
		w, err := ecs.NewWorld(0, cfg, nil)
		if err != nil {
			panic(err)
		}
		p1 := ecs.GetPool[comp1](w)
		p2 := ecs.GetPool[comp2](w)

		ids := make([]ecs.EntityID, 0, numEntities)
		for range iters {
			for i := range numEntities {
				id := w.NewEntity()
				p1.TryAdd(id.Slot(), comp1{})
				p2.TryAdd(id.Slot(), comp2{V: int64(i), W: 1})
				ids = append(ids, id)
			}
			p1.Each(func(slot uint32, c *comp1) {
				other, err := p2.Get(slot)
				if err != nil {
					return
				}
				c.V += other.V
				c.W += other.W
			})
			for _, id := range ids {
				w.DelEntity(id)
			}
			ids = ids[:0]
		}
	}
}
