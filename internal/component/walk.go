package component

// Walk visits root and its descendants in pre-order, depth first, calling
// fn for each node. Hover values and translation arguments are not visited.
// Walking stops at the first error returned by fn.
//
// An explicit stack is used so that very deep trees do not grow the
// goroutine stack.
func Walk(root Component, fn func(Component) error) error {
	if root == nil {
		return nil
	}
	stack := []Component{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(n); err != nil {
			return err
		}

		// Push in reverse so the first child is popped next.
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at root.
func Count(root Component) int {
	var n int
	_ = Walk(root, func(Component) error {
		n++
		return nil
	})
	return n
}
