package world

import "github.com/zyedidia/generic/mapset"

var neighbors = [4]Vec2{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Reachable flood-fills the passage network from start and returns every
// cell it reaches. Doors count as passable whether open or closed. The set
// is empty when start itself is not a passage.
func Reachable(g *Grid, start Vec2) mapset.Set[Vec2] {
	visited := mapset.New[Vec2]()
	if !g.At(start).IsPassage() {
		return visited
	}

	visited.Put(start)
	queue := []Vec2{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range neighbors {
			n := current.Add(d)
			if visited.Has(n) || !g.At(n).IsPassage() {
				continue
			}
			visited.Put(n)
			queue = append(queue, n)
		}
	}

	return visited
}

// Connected reports whether b can be reached from a through passages.
func Connected(g *Grid, a, b Vec2) bool {
	return Reachable(g, a).Has(b)
}
