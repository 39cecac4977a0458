package label

// unionFind is a disjoint-set forest over provisional component ids.
// Index 0 is unused so provisional ids can be used directly.
type unionFind struct {
	parent []int32
	size   []int32
}

func newUnionFind(n int) *unionFind {
	parent := make([]int32, n+1)
	size := make([]int32, n+1)
	for i := range parent {
		parent[i] = int32(i)
		size[i] = 1
	}
	return &unionFind{parent: parent, size: size}
}

// find returns the root of id, halving the path as it walks.
func (u *unionFind) find(id int32) int32 {
	for u.parent[id] != id {
		u.parent[id] = u.parent[u.parent[id]]
		id = u.parent[id]
	}
	return id
}

// union merges the sets containing a and b, attaching the smaller tree
// under the larger.
func (u *unionFind) union(a, b int32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}
