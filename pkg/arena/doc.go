// Package arena provides the region allocator that owns one frame's virtual
// tree, and the double buffer that alternates two of them across frames.
//
// An Arena hands out values from typed slabs (nodes, attributes, bindings,
// bytes). Reset rewinds every slab in O(1) and advances the arena's epoch;
// the memory is reused by the next frame, so anything still pointing into the
// arena after Reset observes recycled data. The double buffer is what keeps
// that from happening: the tree that is currently displayed always lives in
// the active arena, the next tree is built in the spare one, and the former
// active arena is only reset once the diff engine has finished reading it.
//
//	buf := arena.NewDoubleBuffer()
//	prev, _ := buf.Previous()
//	next := buf.Spare().Nodes(view(buf.Spare()))
//	differ.UpdateChildNodes(container, prev, next, 20)
//	buf.Commit(next)
package arena
