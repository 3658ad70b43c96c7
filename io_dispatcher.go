// io_dispatcher.go - soft-switch page dispatch table
//
// The $C000-$C0FF page is shared by every device that has a soft switch:
// keyboard, video mode, speaker, language card, 80-column card. Rather than
// giving each device its own Layer, IODispatcher is a single BusTarget
// covering that page, routing each address to whichever device registered a
// handler for it. This is the same "I/O region table keyed by address"
// approach as a page-granularity bus-mapping table, narrowed from a
// callback-per-page to a callback-per-byte since the soft-switch page is
// only 256 bytes and most of them are individually meaningful.
package main

// IOHandler answers a single soft-switch address. A read handler returns
// the value and whether it actually drove the bus (false means "fall
// through to the floating bus"). A write handler returns whether it
// consumed the write.
type IOHandler struct {
	Name  string
	Read  func(access BusAccess) (byte, bool)
	Write func(value byte, access BusAccess) bool
}

// IODispatcher is a BusTarget covering the 256-byte soft-switch page. It is
// side-effect-free from the page map's point of view (individual handlers
// decide their own side effects), so it always reports itself as a plain
// RAM-capability target without the side-effect-free capability bit.
type IODispatcher struct {
	handlers [256]*IOHandler
}

// NewIODispatcher creates a dispatcher with no handlers registered; every
// address reads as the floating bus until a device registers one.
func NewIODispatcher() *IODispatcher {
	return &IODispatcher{}
}

// Register binds handler to a single offset within the soft-switch page
// (0x00-0xFF, i.e. $C000-$C0FF). Panics on a double registration since that
// can only be a wiring bug.
func (d *IODispatcher) Register(offset byte, handler *IOHandler) {
	if existing := d.handlers[offset]; existing != nil {
		if handler.Read != nil && existing.Read != nil {
			panic("io_dispatcher: read offset already registered: " + existing.Name)
		}
		if handler.Write != nil && existing.Write != nil {
			panic("io_dispatcher: write offset already registered: " + existing.Name)
		}
		// Two devices may legitimately share one address when they claim
		// opposite directions ($C000 reads as KBD, writes as 80STOREOFF).
		if handler.Read != nil {
			existing.Read = handler.Read
		}
		if handler.Write != nil {
			existing.Write = handler.Write
		}
		return
	}
	d.handlers[offset] = handler
}

// RegisterRead binds only the read direction of an offset.
func (d *IODispatcher) RegisterRead(offset byte, name string, read func(access BusAccess) (byte, bool)) {
	d.Register(offset, &IOHandler{Name: name, Read: read})
}

// RegisterWrite binds only the write direction of an offset.
func (d *IODispatcher) RegisterWrite(offset byte, name string, write func(value byte, access BusAccess) bool) {
	d.Register(offset, &IOHandler{Name: name, Write: write})
}

func (d *IODispatcher) Capabilities() Capability {
	return CapSupportsPeek | CapSupportsPoke
}

func (d *IODispatcher) Read8(physAddr uint32, access BusAccess) (byte, bool) {
	if physAddr > 0xFF {
		return FloatingBus, false
	}
	h := d.handlers[physAddr]
	if h == nil || h.Read == nil {
		return FloatingBus, false
	}
	val, ok := h.Read(access)
	if !ok {
		return FloatingBus, false
	}
	return val, true
}

func (d *IODispatcher) Write8(physAddr uint32, value byte, access BusAccess) bool {
	if physAddr > 0xFF {
		return false
	}
	h := d.handlers[physAddr]
	if h == nil || h.Write == nil {
		return false
	}
	return h.Write(value, access)
}
