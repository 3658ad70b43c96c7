// video_timing.go - VBL scheduling and the text/lores/hires mode state machine
package main

// VideoMode is the derived display mode computed from the raw soft-switch
// flags, tie-broken text > hires > dhires > mixed > 80col.
type VideoMode int

const (
	ModeText40 VideoMode = iota
	ModeText80
	ModeLoRes
	ModeLoResMixed
	ModeDoubleLoRes
	ModeDoubleLoResMixed
	ModeHiRes
	ModeHiResMixed
	ModeDoubleHiRes
	ModeDoubleHiResMixed
)

const (
	framesCyclesDefault Cycle = 17030
	vblDurationDefault  Cycle = 4550
)

// VideoTiming owns the frame/VBL scheduler events and the mode soft
// switches. VBlankCallback and ModeChangedCallback are set by the host
// (main.go / the debug monitor) to observe frame boundaries and mode
// transitions without the device depending on a renderer.
type VideoTiming struct {
	profile MachineProfile

	verticalBlanking bool
	text             bool
	mixed            bool
	page2            bool
	hires            bool
	col80            bool
	doubleRes        bool
	annunciators     [4]bool

	frameCycles Cycle
	vblDuration Cycle

	VBlankCallback    func()
	ModeChangedCallback func(VideoMode)
}

// NewVideoTiming creates a video timing device starting in 40-column text
// mode, the Apple II power-on default.
func NewVideoTiming(profile MachineProfile) *VideoTiming {
	return &VideoTiming{
		profile:     profile,
		text:        true,
		frameCycles: framesCyclesDefault,
		vblDuration: vblDurationDefault,
	}
}

func (v *VideoTiming) Name() string     { return "VideoTiming" }
func (v *VideoTiming) Kind() DeviceKind { return KindMotherboard }

func (v *VideoTiming) Initialize(ctx *EventContext) {
	v.scheduleVBLStart(ctx.Scheduler, v.frameCycles-v.vblDuration)
}

func (v *VideoTiming) scheduleVBLStart(sched *Scheduler, delay Cycle) {
	sched.ScheduleAfter(delay, EventVBLStart, 0, "vbl-start", v.onVBLStart)
}

func (v *VideoTiming) onVBLStart(ctx *EventContext) {
	v.verticalBlanking = true
	if v.VBlankCallback != nil {
		v.VBlankCallback()
	}
	ctx.Scheduler.ScheduleAfter(v.vblDuration, EventVBLEnd, 0, "vbl-end", v.onVBLEnd)
}

func (v *VideoTiming) onVBLEnd(ctx *EventContext) {
	v.verticalBlanking = false
	v.scheduleVBLStart(ctx.Scheduler, v.frameCycles-v.vblDuration)
}

// RegisterHandlers wires $C019 and $C050-$C057.
func (v *VideoTiming) RegisterHandlers(d *IODispatcher) {
	d.Register(byte(AddrRDVBLBAR-AddrIOPageStart), &IOHandler{
		Name: "RDVBLBAR",
		Read: func(access BusAccess) (byte, bool) {
			if v.verticalBlanking {
				return 0x00, true
			}
			return 0x80, true
		},
	})

	toggle := func(set func(), flag bool) *IOHandler {
		return &IOHandler{
			Read: func(access BusAccess) (byte, bool) {
				if !access.NoSideEffects() {
					set()
					v.notifyModeChanged()
				}
				return 0, true
			},
			Write: func(value byte, access BusAccess) bool {
				set()
				v.notifyModeChanged()
				return true
			},
		}
	}

	d.Register(byte(AddrTXTCLR-AddrIOPageStart), toggle(func() { v.text = false }, false))
	d.Register(byte(AddrTXTSET-AddrIOPageStart), toggle(func() { v.text = true }, true))
	d.Register(byte(AddrMIXCLR-AddrIOPageStart), toggle(func() { v.mixed = false }, false))
	d.Register(byte(AddrMIXSET-AddrIOPageStart), toggle(func() { v.mixed = true }, true))
	d.Register(byte(AddrTXTPAGE1-AddrIOPageStart), toggle(func() { v.page2 = false }, false))
	d.Register(byte(AddrTXTPAGE2-AddrIOPageStart), toggle(func() { v.page2 = true }, true))
	d.Register(byte(AddrLORES-AddrIOPageStart), toggle(func() { v.hires = false }, false))
	d.Register(byte(AddrHIRES-AddrIOPageStart), toggle(func() { v.hires = true }, true))

	status := func(addr Address, name string, get func() bool) {
		d.RegisterRead(byte(addr-AddrIOPageStart), name, func(access BusAccess) (byte, bool) {
			if get() {
				return 0x80, true
			}
			return 0x00, true
		})
	}
	status(AddrRDTEXT, "RDTEXT", func() bool { return v.text })
	status(AddrRDMIXED, "RDMIXED", func() bool { return v.mixed })
	status(AddrRDPAGE2, "RDPAGE2", func() bool { return v.page2 })
	status(AddrRDHIRES, "RDHIRES", func() bool { return v.hires })
	status(AddrRD80COL, "RD80COL", func() bool { return v.col80 })

	// $C058-$C05F: annunciator off/on pairs. AN3 doubles as the
	// double-resolution gate when 80COL is on.
	for an := 0; an < 4; an++ {
		an := an
		set := func(on bool) {
			v.annunciators[an] = on
			if an == 3 {
				v.doubleRes = !on && v.col80
				v.notifyModeChanged()
			}
		}
		pair := func(on bool) *IOHandler {
			return &IOHandler{
				Name: "AN" + string(rune('0'+an)),
				Read: func(access BusAccess) (byte, bool) {
					if !access.NoSideEffects() {
						set(on)
					}
					return FloatingBus, true
				},
				Write: func(value byte, access BusAccess) bool {
					set(on)
					return true
				},
			}
		}
		base := byte(AddrAnnunciatorBase-AddrIOPageStart) + byte(an*2)
		d.Register(base, pair(false))
		d.Register(base+1, pair(true))
	}
}

// Page2 reports the PAGE2 soft-switch state; the 80-column controller's
// page-0 routing consults it when 80STORE is on.
func (v *VideoTiming) Page2() bool { return v.page2 }

func (v *VideoTiming) notifyModeChanged() {
	if v.ModeChangedCallback != nil {
		v.ModeChangedCallback(v.CurrentMode())
	}
}

// CurrentMode derives the display mode from the raw flags, tie-broken
// text > hires > dhires > mixed > 80col.
func (v *VideoTiming) CurrentMode() VideoMode {
	switch {
	case v.text && v.col80:
		return ModeText80
	case v.text:
		return ModeText40
	case v.hires && v.doubleRes && v.mixed:
		return ModeDoubleHiResMixed
	case v.hires && v.doubleRes:
		return ModeDoubleHiRes
	case v.hires && v.mixed:
		return ModeHiResMixed
	case v.hires:
		return ModeHiRes
	case v.doubleRes && v.mixed:
		return ModeDoubleLoResMixed
	case v.doubleRes:
		return ModeDoubleLoRes
	case v.mixed:
		return ModeLoResMixed
	default:
		return ModeLoRes
	}
}

// Set80Column is called by the extended 80-column controller since the
// 80COL switch lives in its soft-switch range, not video_timing's, but
// affects mode derivation here.
func (v *VideoTiming) Set80Column(on bool) {
	v.col80 = on
	if !on {
		v.doubleRes = false
	}
	v.notifyModeChanged()
}

func (v *VideoTiming) SoftSwitchStates() []SoftSwitchState {
	return []SoftSwitchState{
		{Name: "TEXT", Address: AddrTXTSET, IsOn: v.text, Description: "text mode"},
		{Name: "MIXED", Address: AddrMIXSET, IsOn: v.mixed, Description: "mixed mode"},
		{Name: "PAGE2", Address: AddrTXTPAGE2, IsOn: v.page2, Description: "display page 2"},
		{Name: "HIRES", Address: AddrHIRES, IsOn: v.hires, Description: "hi-res graphics"},
		{Name: "RDVBL", Address: AddrRDVBLBAR, IsOn: v.verticalBlanking, Description: "vertical blanking"},
	}
}

func (v *VideoTiming) Reset() {
	v.verticalBlanking = false
	v.text = true
	v.mixed = false
	v.page2 = false
	v.hires = false
	v.col80 = false
	v.doubleRes = false
	v.annunciators = [4]bool{}
}
