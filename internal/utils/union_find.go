// internal/utils/union_find.go
package utils

// UnionFind is a data structure for finding connected components over
// integer keys (grid cell ids).
type UnionFind struct {
	parent map[int]int
	rank   map[int]int
}

// NewUnionFind creates a new UnionFind structure.
func NewUnionFind() *UnionFind {
	return &UnionFind{
		parent: make(map[int]int),
		rank:   make(map[int]int),
	}
}

// Find finds the root of the set containing id.
func (uf *UnionFind) Find(id int) int {
	if _, exists := uf.parent[id]; !exists {
		uf.parent[id] = id
		uf.rank[id] = 0
	}
	if uf.parent[id] != id {
		uf.parent[id] = uf.Find(uf.parent[id]) // Path compression
	}
	return uf.parent[id]
}

// Union merges the sets containing idA and idB.
func (uf *UnionFind) Union(idA, idB int) {
	rootA := uf.Find(idA)
	rootB := uf.Find(idB)
	if rootA == rootB {
		return
	}
	if uf.rank[rootA] < uf.rank[rootB] {
		uf.parent[rootA] = rootB
	} else if uf.rank[rootA] > uf.rank[rootB] {
		uf.parent[rootB] = rootA
	} else {
		uf.parent[rootB] = rootA
		uf.rank[rootA]++
	}
}

// Connected reports whether idA and idB are in the same set.
func (uf *UnionFind) Connected(idA, idB int) bool {
	return uf.Find(idA) == uf.Find(idB)
}

// Components groups every key seen so far by its root.
func (uf *UnionFind) Components() map[int][]int {
	out := make(map[int][]int)
	for id := range uf.parent {
		root := uf.Find(id)
		out[root] = append(out[root], id)
	}
	return out
}
