package bonsai

import (
	"fmt"

	"github.com/vovakirdan/bonsai/internal/core"
)

// GrowIterative grows the same tree as Grow, drawing the same cells in the
// same order, but keeps branches on an explicit stack instead of the call
// stack. Use it for large life or multiplier values.
func (e *Engine) GrowIterative(st *State, pos core.Point, typ BranchType, life int) error {
	if !typ.Valid() {
		return fmt.Errorf("bonsai: invalid branch type %d", int(typ))
	}

	stack := []frame{e.enter(st, pos, typ, life)}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		if f.pending {
			f.pending = false
			e.finish(st, f)
			continue
		}
		if f.life <= 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		child, ok, err := e.begin(st, f)
		if err != nil {
			return err
		}
		if !ok {
			e.finish(st, f)
			continue
		}
		f.pending = true
		stack = append(stack, e.enter(st, f.pos, child.typ, child.life))
	}
	return nil
}
