// keyboard.go - keyboard soft switches plus a host-independent injection pump
//
// Real key events arrive from keyboard_host.go (a goroutine reading raw
// terminal input); type_string injection is also routed through here so a
// loader or test can key in a BASIC program the same way a human would.
package main

// Keyboard models $C000 (key data + strobe) and $C010 (strobe clear, any-key
// status).
type Keyboard struct {
	lastKey   byte
	strobe    bool
	anyKeyDown bool
	modifiers  ModifierSet

	pending []injectedKey
	cyclesPerMs Cycle
	sched       *Scheduler
	pumpHandle  EventHandle
}

// ModifierSet tracks shift/ctrl/open-apple/closed-apple state, exposed for
// get_soft_switch_states observability; the core ASCII path does not
// consult it directly since host key translation already folds modifiers
// into the delivered ASCII code.
type ModifierSet struct {
	Shift       bool
	Control     bool
	OpenApple   bool
	ClosedApple bool
}

type injectedKey struct {
	ascii byte
	delayMs int
}

// NewKeyboard creates a keyboard with no key latched and the injection pump
// idle. cyclesPerMs should be close to the machine's clock rate in
// cycles-per-millisecond (≈1020 for ~1.02 MHz).
func NewKeyboard(cyclesPerMs Cycle) *Keyboard {
	return &Keyboard{cyclesPerMs: cyclesPerMs}
}

func (k *Keyboard) Name() string      { return "Keyboard" }
func (k *Keyboard) Kind() DeviceKind  { return KindMotherboard }
func (k *Keyboard) Initialize(ctx *EventContext) {}

// RegisterHandlers wires the keyboard's soft switches into dispatcher.
func (k *Keyboard) RegisterHandlers(dispatcher *IODispatcher) {
	dispatcher.Register(byte(AddrKBD-AddrIOPageStart), &IOHandler{
		Name: "KBD",
		Read: func(access BusAccess) (byte, bool) {
			v := k.lastKey
			if k.strobe {
				v |= 0x80
			}
			return v, true
		},
	})
	dispatcher.Register(byte(AddrKBDSTRB-AddrIOPageStart), &IOHandler{
		Name: "KBDSTRB",
		Read: func(access BusAccess) (byte, bool) {
			v := byte(0)
			if k.anyKeyDown {
				v = 0x80
			}
			if !access.NoSideEffects() {
				k.strobe = false
			}
			return v, true
		},
		Write: func(value byte, access BusAccess) bool {
			if !access.NoSideEffects() {
				k.strobe = false
			}
			return true
		},
	})
}

// KeyDown latches ascii, sets the strobe, and marks any-key-down.
func (k *Keyboard) KeyDown(ascii byte) {
	k.lastKey = ascii & 0x7F
	k.strobe = true
	k.anyKeyDown = true
}

// KeyUp clears any-key-down only; the last latched key and its strobe are
// untouched until the application reads $C010.
func (k *Keyboard) KeyUp() {
	k.anyKeyDown = false
}

// TypeString queues text for injection, one character landing every
// perCharDelayMs milliseconds, starting immediately on sched.
func (k *Keyboard) TypeString(sched *Scheduler, text string, perCharDelayMs int) {
	k.sched = sched
	for i := 0; i < len(text); i++ {
		k.pending = append(k.pending, injectedKey{ascii: text[i], delayMs: perCharDelayMs})
	}
	k.schedulePump(sched, 0)
}

func (k *Keyboard) schedulePump(sched *Scheduler, delayCycles Cycle) {
	if len(k.pending) == 0 {
		return
	}
	k.pumpHandle = sched.ScheduleAfter(delayCycles, EventKeyboardPump, 0, "kbd-pump", func(ctx *EventContext) {
		k.pump(ctx)
	})
}

func (k *Keyboard) pump(ctx *EventContext) {
	k.KeyUp() // release the previously injected key
	if k.strobe {
		// Application has not consumed the previous key yet; retry shortly
		// rather than dropping or overwriting it.
		k.schedulePump(ctx.Scheduler, k.cyclesPerMs)
		return
	}
	if len(k.pending) == 0 {
		return
	}
	next := k.pending[0]
	k.pending = k.pending[1:]
	k.KeyDown(next.ascii)
	if len(k.pending) > 0 {
		delay := Cycle(next.delayMs) * k.cyclesPerMs
		k.schedulePump(ctx.Scheduler, delay)
	}
}

// SoftSwitchStates reports the keyboard's observable switches for the debug
// monitor.
func (k *Keyboard) SoftSwitchStates() []SoftSwitchState {
	return []SoftSwitchState{
		{Name: "KBD", Address: AddrKBD, IsOn: k.strobe, Description: "keyboard strobe"},
		{Name: "KBDSTRB", Address: AddrKBDSTRB, IsOn: k.anyKeyDown, Description: "any key down"},
	}
}

// Reset clears all latched state and any pending injection.
func (k *Keyboard) Reset() {
	k.lastKey = 0
	k.strobe = false
	k.anyKeyDown = false
	k.modifiers = ModifierSet{}
	k.pending = nil
}
