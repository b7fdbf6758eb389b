package layout

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"

	"github.com/lanternlab/lantern/pkg/graph"

	"golang.org/x/sync/errgroup"
)

const (
	forceRepulsion  = 80000.0
	forceSpring     = 0.08
	forceRestLength = 140.0
	forceDamping    = 0.85
	forceTimeStep   = 0.12
	forceEpsilon    = 0.5
	componentGap    = 200.0
)

// forceLayout runs a damped spring/repulsion simulation. The RNG that
// seeds initial positions is derived from the component's id ordering,
// never from the clock, so a fixed input always converges to the same
// picture. Disconnected components are simulated concurrently and then
// lined up horizontally.
func forceLayout(s *graph.Snapshot, params Params) map[string]graph.Position {
	components := connectedComponents(s)
	results := make([]map[string]graph.Position, len(components))

	var eg errgroup.Group
	for i, component := range components {
		i, component := i, component
		eg.Go(func() error {
			results[i] = simulateComponent(s, component, params)
			return nil
		})
	}
	// Simulation goroutines cannot fail; Wait only synchronizes them.
	_ = eg.Wait()

	positions := make(map[string]graph.Position, s.NodeCount())
	offsetX := 0.0
	for _, result := range results {
		minX, maxX := math.Inf(1), math.Inf(-1)
		for _, pos := range result {
			minX = math.Min(minX, pos.X)
			maxX = math.Max(maxX, pos.X)
		}
		for id, pos := range result {
			positions[id] = graph.Position{X: pos.X - minX + offsetX, Y: pos.Y}
		}
		offsetX += maxX - minX + componentGap
	}
	return positions
}

// connectedComponents groups node ids by connectivity, each component
// sorted by id and the components ordered by their smallest member.
func connectedComponents(s *graph.Snapshot) [][]string {
	visited := make(map[string]bool, s.NodeCount())
	var components [][]string

	for _, id := range sortedIDs(s) {
		if visited[id] {
			continue
		}
		var component []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)
			for _, neighbor := range s.Neighbors(current) {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}
	return components
}

func simulateComponent(s *graph.Snapshot, ids []string, params Params) map[string]graph.Position {
	n := len(ids)
	if n == 1 {
		return map[string]graph.Position{ids[0]: {X: 0, Y: 0}}
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	rng := rand.New(rand.NewSource(int64(idSeed(ids))))
	span := params.radius() * math.Sqrt(float64(n))
	px := make([]float64, n)
	py := make([]float64, n)
	vx := make([]float64, n)
	vy := make([]float64, n)
	for i := range px {
		px[i] = (rng.Float64() - 0.5) * span
		py[i] = (rng.Float64() - 0.5) * span
	}

	type spring struct {
		a, b     int
		strength float64
	}
	var springs []spring
	for _, edge := range s.Edges() {
		a, aOK := index[edge.Source]
		b, bOK := index[edge.Target]
		if !aOK || !bOK || a == b {
			continue
		}
		strength := math.Max(edge.Strength, 0.1)
		springs = append(springs, spring{a: a, b: b, strength: strength})
	}

	fx := make([]float64, n)
	fy := make([]float64, n)
	for iter := 0; iter < params.iterations(defaultForceIterations); iter++ {
		for i := range fx {
			fx[i], fy[i] = 0, 0
		}

		// Inverse-square repulsion between all pairs.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := px[i] - px[j]
				dy := py[i] - py[j]
				distSq := dx*dx + dy*dy
				if distSq < 1 {
					distSq = 1
				}
				dist := math.Sqrt(distSq)
				f := forceRepulsion / distSq
				fx[i] += f * dx / dist
				fy[i] += f * dy / dist
				fx[j] -= f * dx / dist
				fy[j] -= f * dy / dist
			}
		}

		// Spring attraction along edges, scaled by edge strength.
		for _, sp := range springs {
			dx := px[sp.b] - px[sp.a]
			dy := py[sp.b] - py[sp.a]
			dist := math.Max(math.Sqrt(dx*dx+dy*dy), 1)
			f := forceSpring * (dist - forceRestLength) * sp.strength
			fx[sp.a] += f * dx / dist
			fy[sp.a] += f * dy / dist
			fx[sp.b] -= f * dx / dist
			fy[sp.b] -= f * dy / dist
		}

		totalDisplacement := 0.0
		for i := 0; i < n; i++ {
			vx[i] = (vx[i] + fx[i]*forceTimeStep) * forceDamping
			vy[i] = (vy[i] + fy[i]*forceTimeStep) * forceDamping
			px[i] += vx[i] * forceTimeStep
			py[i] += vy[i] * forceTimeStep
			totalDisplacement += math.Hypot(vx[i]*forceTimeStep, vy[i]*forceTimeStep)
		}
		if totalDisplacement < forceEpsilon {
			break
		}
	}

	positions := make(map[string]graph.Position, n)
	for i, id := range ids {
		positions[id] = graph.Position{X: px[i], Y: py[i]}
	}
	return positions
}

// idSeed hashes the sorted id list into a stable RNG seed.
func idSeed(ids []string) uint64 {
	h := fnv.New64a()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return h.Sum64()
}
