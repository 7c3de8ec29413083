package colony

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"
)

var (
	//workers per benchmarked engine
	engines = map[string]int{
		"inline":    1,
		"workers2":  2,
		"workers4":  4,
		"workers10": 10,
	}
)

const (
	width   = 200
	height  = 200
	density = 0.3
)

func newBenchColony(workers int) *Colony {
	o := Options{Width: width, Height: height, Workers: workers, Seed: 11}
	return NewFromGrid(&o, RandomGrid(height, width, density, rand.New(rand.NewPCG(5, 5))), nil)
}

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func Benchmark_Advance(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			c := newBenchColony(engines[e])
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.Advance()
			}
		})
	}
}

func Benchmark_Populate(b *testing.B) {
	for _, d := range []float64{0.1, 0.5, 1} {
		b.Run(fmt.Sprintf("density=%v", d), func(b *testing.B) {
			c := newBenchColony(1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c.Populate(0, 0, width, height, d)
			}
		})
	}
}
