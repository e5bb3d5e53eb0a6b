package rig

// RenderState tracks the scissor state last pushed to the host and
// elides redundant calls. The core changes clip regions often while
// walking the element tree; most changes are no-ops at the host level.
type RenderState struct {
	scissorEnabled bool
	scissorRegion  Rect
	regionSet      bool
}

// NewRenderState creates a render state with scissoring disabled.
func NewRenderState() *RenderState {
	return &RenderState{}
}

// EnableScissor toggles scissor testing, forwarding to the host only on
// an actual transition.
func (s *RenderState) EnableScissor(enable bool) {
	if s.scissorEnabled == enable {
		return
	}
	s.scissorEnabled = enable
	GetRenderInterface().EnableScissorRegion(enable)
}

// SetScissor sets the scissor rectangle, forwarding to the host only
// when the region differs from the one last set.
func (s *RenderState) SetScissor(region Rect) {
	if s.regionSet && s.scissorRegion == region {
		return
	}
	s.scissorRegion = region
	s.regionSet = true
	GetRenderInterface().SetScissorRegion(region)
}

// ScissorEnabled reports whether scissor testing is currently enabled.
func (s *RenderState) ScissorEnabled() bool { return s.scissorEnabled }

// Scissor returns the current scissor region and whether one has been
// set since construction.
func (s *RenderState) Scissor() (Rect, bool) { return s.scissorRegion, s.regionSet }
