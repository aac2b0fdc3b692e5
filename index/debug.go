package index

import (
	"errors"
	"fmt"

	"github.com/xlab/treeprint"
)

var ErrCorrupt = errors.New("index invariant violated")

// Returns a printable representation of the tree structure.
// Every branch is labeled with its key and the side it hangs on.
func (t *Index[K, V]) Tree() treeprint.Tree {
	if t.root == none {
		return treeprint.NewWithRoot("(empty)")
	}
	root := treeprint.NewWithRoot(fmt.Sprintf("%v", t.nodes[t.root].key))
	t.addBranches(t.root, root)
	return root
}

func (t *Index[K, V]) addBranches(n int, branch treeprint.Tree) {
	left, right := t.nodes[n].left, t.nodes[n].right
	if left != none {
		b := branch.AddBranch(fmt.Sprintf("L %v", t.nodes[left].key))
		t.addBranches(left, b)
	}
	if right != none {
		b := branch.AddBranch(fmt.Sprintf("R %v", t.nodes[right].key))
		t.addBranches(right, b)
	}
}

// Checks the structural invariants of the tree: strictly ascending
// in-order keys, a balance factor within [-1, 1] at every node and
// consistent cached heights and subtree sizes.
func (t *Index[K, V]) Validate() error {
	_, _, err := t.check(t.root, nil, nil)
	return err
}

func (t *Index[K, V]) check(n int, low, high *K) (height, size int, err error) {
	if n == none {
		return 0, 0, nil
	}
	nd := &t.nodes[n]
	if low != nil && t.compare(nd.key, *low) <= 0 {
		return 0, 0, fmt.Errorf("%w: key %v is not above %v", ErrCorrupt, nd.key, *low)
	}
	if high != nil && t.compare(nd.key, *high) >= 0 {
		return 0, 0, fmt.Errorf("%w: key %v is not below %v", ErrCorrupt, nd.key, *high)
	}

	lh, ls, err := t.check(nd.left, low, &nd.key)
	if err != nil {
		return 0, 0, err
	}
	rh, rs, err := t.check(nd.right, &nd.key, high)
	if err != nil {
		return 0, 0, err
	}

	if lh-rh > 1 || rh-lh > 1 {
		return 0, 0, fmt.Errorf("%w: node %v is unbalanced (%d, %d)", ErrCorrupt, nd.key, lh, rh)
	}
	height = 1 + max(lh, rh)
	size = 1 + ls + rs
	if nd.height != height || nd.size != size {
		return 0, 0, fmt.Errorf("%w: node %v caches height %d size %d, want %d %d",
			ErrCorrupt, nd.key, nd.height, nd.size, height, size)
	}
	return height, size, nil
}
