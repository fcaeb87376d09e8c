package cfgparser

import (
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// successors returns the nonterminals directly mentioned by g's rules, in an
// order that is deterministic within one call but otherwise unspecified
// (map iteration order is not guaranteed stable across processes).
func successors(g *Grammar) []*Grammar {
	nts := g.Nonterminals()
	out := make([]*Grammar, 0, len(nts))
	for node := range nts {
		out = append(out, node)
	}
	return out
}

// PreOrder walks the nonterminal-reachability graph rooted at root, visiting
// each node before its successors, each node at most once. The arc A -> B
// exists iff B is mentioned as a nonterminal in some rule of A.
func PreOrder(root *Grammar) []*Grammar {
	visited := hashset.New()
	order := make([]*Grammar, 0)

	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		top, _ := stack.Pop()
		node := top.(*Grammar)
		if visited.Contains(node) {
			continue
		}
		visited.Add(node)
		order = append(order, node)
		succ := successors(node)
		// Push in reverse so successors pop in the order returned.
		for i := len(succ) - 1; i >= 0; i-- {
			if !visited.Contains(succ[i]) {
				stack.Push(succ[i])
			}
		}
	}
	return order
}

// PostOrder walks the nonterminal-reachability graph rooted at root,
// visiting each node only after every node reachable from it has been
// visited, each node at most once. On a cycle, a successor that is still
// being walked further up the stack is skipped and is visited after the
// node that leads back to it.
func PostOrder(root *Grammar) []*Grammar {
	visited := hashset.New()
	onStack := map[*Grammar]bool{}
	order := make([]*Grammar, 0)

	type frame struct {
		node      *Grammar
		succ      []*Grammar
		nextChild int
	}
	stack := []*frame{{node: root, succ: successors(root)}}
	visited.Add(root)
	onStack[root] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		advanced := false
		for top.nextChild < len(top.succ) {
			child := top.succ[top.nextChild]
			top.nextChild++
			if visited.Contains(child) {
				continue
			}
			visited.Add(child)
			onStack[child] = true
			stack = append(stack, &frame{node: child, succ: successors(child)})
			advanced = true
			break
		}
		if advanced {
			continue
		}
		order = append(order, top.node)
		delete(onStack, top.node)
		stack = stack[:len(stack)-1]
	}
	return order
}

// ReachableFrom reports whether target is visited by a pre-order DFS rooted
// at source. Every grammar is reachable from itself.
func ReachableFrom(target, source *Grammar) bool {
	if target == source {
		return true
	}
	visited := hashset.New()
	stack := arraystack.New()
	stack.Push(source)
	for !stack.Empty() {
		top, _ := stack.Pop()
		node := top.(*Grammar)
		if visited.Contains(node) {
			continue
		}
		visited.Add(node)
		if node == target {
			return true
		}
		for _, succ := range successors(node) {
			if !visited.Contains(succ) {
				stack.Push(succ)
			}
		}
	}
	return false
}
