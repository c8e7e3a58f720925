package playlist

// DragState is an in-progress seek-bar drag. PendingSeek is shown in place
// of the playback position until the drag ends.
type DragState struct {
	PendingSeek float64
}

// BeginDrag starts dragging the seek handle. It returns false while the
// duration is unknown, since there is nothing to map a fraction onto.
func (c *Controller) BeginDrag() bool {
	if c.closed || c.duration <= 0 {
		return false
	}
	c.drag = &DragState{PendingSeek: c.position}
	return true
}

// UpdateDrag moves the pending seek to fraction of the duration. The
// committed position and the element are untouched.
func (c *Controller) UpdateDrag(fraction float64) {
	if c.drag == nil {
		return
	}
	c.drag.PendingSeek = clamp01(fraction) * c.duration
}

// EndDrag commits the pending seek.
func (c *Controller) EndDrag() {
	if c.drag == nil {
		return
	}
	target := c.drag.PendingSeek
	c.drag = nil
	c.SeekTo(target)
}

// CancelDrag abandons the drag without seeking.
func (c *Controller) CancelDrag() {
	c.drag = nil
}

// Dragging reports whether a seek drag is active.
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// DisplayPosition is the position to render: the pending seek during a
// drag, otherwise the committed position.
func (c *Controller) DisplayPosition() float64 {
	if c.drag != nil {
		return c.drag.PendingSeek
	}
	return c.position
}
