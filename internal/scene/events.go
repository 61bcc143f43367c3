package scene

// Events carries the tree's change notifications. Callbacks are
// optional; a nil Events or nil callback is a no-op. The UI subscribes
// here to keep its widgets in sync with the scene graph.
type Events struct {
	NodeAdded         func(uuid string)
	NodeRemoved       func(uuid string)
	NodeChanged       func(uuid string)
	VisibilityChanged func(uuid string, visible bool)
	StructureChanged  func()
}

func (e *Events) nodeAdded(uuid string) {
	if e != nil && e.NodeAdded != nil {
		e.NodeAdded(uuid)
	}
}

func (e *Events) nodeRemoved(uuid string) {
	if e != nil && e.NodeRemoved != nil {
		e.NodeRemoved(uuid)
	}
}

func (e *Events) nodeChanged(uuid string) {
	if e != nil && e.NodeChanged != nil {
		e.NodeChanged(uuid)
	}
}

func (e *Events) visibilityChanged(uuid string, visible bool) {
	if e != nil && e.VisibilityChanged != nil {
		e.VisibilityChanged(uuid, visible)
	}
}

func (e *Events) structureChanged() {
	if e != nil && e.StructureChanged != nil {
		e.StructureChanged()
	}
}
