// speaker.go - one-bit speaker toggle, recorded as events rather than rendered
//
// Audio synthesis is an external collaborator; this device only records the
// cycle at which $C030 was accessed so a host audio backend can reconstruct
// a waveform from the toggle train.
package main

// ToggleEvent is one speaker click, timestamped in cycles since reset.
type ToggleEvent struct {
	Cycle Cycle
}

// Speaker records toggle events for a host audio backend to consume; it
// never itself produces sound.
type Speaker struct {
	toggles []ToggleEvent
	ToggleCallback func(ToggleEvent)
}

// NewSpeaker creates a speaker with an empty toggle log.
func NewSpeaker() *Speaker {
	return &Speaker{}
}

func (s *Speaker) Name() string     { return "Speaker" }
func (s *Speaker) Kind() DeviceKind { return KindMotherboard }
func (s *Speaker) Initialize(ctx *EventContext) {}

func (s *Speaker) RegisterHandlers(d *IODispatcher) {
	handler := &IOHandler{
		Name: "SPKR",
		Read: func(access BusAccess) (byte, bool) {
			if !access.NoSideEffects() {
				s.toggle(access.Cycle)
			}
			return FloatingBus, true
		},
		Write: func(value byte, access BusAccess) bool {
			s.toggle(access.Cycle)
			return true
		},
	}
	d.Register(byte(AddrSPKR-AddrIOPageStart), handler)
}

func (s *Speaker) toggle(cycle Cycle) {
	ev := ToggleEvent{Cycle: cycle}
	s.toggles = append(s.toggles, ev)
	if s.ToggleCallback != nil {
		s.ToggleCallback(ev)
	}
}

// Toggles returns every recorded toggle since the last Reset.
func (s *Speaker) Toggles() []ToggleEvent { return s.toggles }

func (s *Speaker) SoftSwitchStates() []SoftSwitchState {
	on := len(s.toggles)%2 == 1
	return []SoftSwitchState{
		{Name: "SPKR", Address: AddrSPKR, IsOn: on, Description: "speaker toggle count parity"},
	}
}

func (s *Speaker) Reset() {
	s.toggles = nil
}
