// langcard.go - bank-switched 16 KiB language card RAM over the ROM window
//
// $D000-$DFFF is backed by two selectable 4 KiB banks (classic language
// card bank 1 / bank 2); $E000-$FFFF is one 8 KiB bank. Enabling the card
// activates RAM layers that shadow the base ROM layer; disabling it
// deactivates them so reads fall through to ROM via the layer stack itself,
// never via an explicit pass-through. Matches the two-consecutive-read
// write-enable quirk of the real hardware: writes stay disabled until the
// same odd-numbered switch has been read twice in a row without an
// intervening access elsewhere.
package main

const (
	langcardBank1Size = 0x1000
	langcardBank2Size = 0x1000
	langcardUpperSize = 0x2000

	langcardLayerBank1 = "langcard-bank1-d000"
	langcardLayerBank2 = "langcard-bank2-d000"
	langcardLayerUpper = "langcard-upper-e000"
)

// LanguageCard owns the bank RAM and the two layers representing bank 1 and
// bank 2 of the $D000-$DFFF window, plus one layer for $E000-$FFFF.
type LanguageCard struct {
	bank1 *RAMTarget
	bank2 *RAMTarget
	upper *RAMTarget

	bus *MemoryBus

	readEnable  bool
	writeEnable bool
	selectedBank int // 1 or 2

	lastReadOffset  int
	lastReadWasSame bool
}

// NewLanguageCard creates the card's RAM banks. AttachToBus must be called
// once the machine's bus exists to register the (initially inactive)
// layers.
func NewLanguageCard() *LanguageCard {
	return &LanguageCard{
		bank1:        NewRAMTarget("langcard-bank1", langcardBank1Size),
		bank2:        NewRAMTarget("langcard-bank2", langcardBank2Size),
		upper:        NewRAMTarget("langcard-upper", langcardUpperSize),
		selectedBank: 2,
	}
}

func (l *LanguageCard) Name() string     { return "LanguageCard" }
func (l *LanguageCard) Kind() DeviceKind { return KindMotherboard }
func (l *LanguageCard) Initialize(ctx *EventContext) {}

// AttachToBus registers the card's layers, inactive, at priority above the
// base system ROM so activating them shadows it.
func (l *LanguageCard) AttachToBus(bus *MemoryBus) {
	l.bus = bus
	bus.AddLayer(&Layer{
		Name: langcardLayerBank1, StartPage: pageOf(0xD000), EndPage: pageOf(0xDFFF),
		Target: l.bank1, Perms: PermRead | PermWrite, RegionTag: RegionRAM, Priority: 50, Active: false,
	})
	bus.AddLayer(&Layer{
		Name: langcardLayerBank2, StartPage: pageOf(0xD000), EndPage: pageOf(0xDFFF),
		Target: l.bank2, Perms: PermRead | PermWrite, RegionTag: RegionRAM, Priority: 51, Active: false,
	})
	bus.AddLayer(&Layer{
		Name: langcardLayerUpper, StartPage: pageOf(0xE000), EndPage: pageOf(0xFFFF),
		Target: l.upper, Perms: PermRead | PermWrite, RegionTag: RegionRAM, Priority: 50, Active: false,
	})
}

func (l *LanguageCard) applyLayerState() {
	l.bus.SetLayerActive(langcardLayerBank1, l.readEnable && l.selectedBank == 1)
	l.bus.SetLayerActive(langcardLayerBank2, l.readEnable && l.selectedBank == 2)
	l.bus.SetLayerActive(langcardLayerUpper, l.readEnable)

	perm := PermRead
	if l.writeEnable {
		perm |= PermWrite
	}
	for _, name := range []string{langcardLayerBank1, langcardLayerBank2, langcardLayerUpper} {
		l.bus.SetLayerPermissions(name, perm)
	}
}

// RegisterHandlers wires $C080-$C08F. Offsets 0-7 select bank 2; 8-F select
// bank 1. Within each half: bit0 clear and bit1 set = read ROM, no write;
// bit0 set and bit1 set = read ROM, write enable (after the double-read
// quirk); bit0 clear and bit1 clear = read RAM, write enable (double-read
// quirk); bit0 set and bit1 clear = read RAM, no write.
func (l *LanguageCard) RegisterHandlers(d *IODispatcher) {
	for off := 0; off < 16; off++ {
		offset := off
		d.Register(byte(0x80+offset), &IOHandler{
			Name: "LCBANK",
			Read: func(access BusAccess) (byte, bool) {
				if !access.NoSideEffects() {
					l.accessSwitch(offset, true)
				}
				return FloatingBus, true
			},
			Write: func(value byte, access BusAccess) bool {
				l.accessSwitch(offset, false)
				return true
			},
		})
	}
}

func (l *LanguageCard) accessSwitch(offset int, isRead bool) {
	bank := 2
	if offset&0x08 != 0 {
		bank = 1
	}
	bit0 := offset&0x01 != 0
	bit1 := offset&0x02 != 0

	l.selectedBank = bank
	l.readEnable = !bit1

	wantWriteSequence := (!bit1 && !bit0) || (bit1 && bit0)
	if isRead && wantWriteSequence {
		sameAsLast := l.lastReadWasSame && l.lastReadOffset == offset
		if sameAsLast {
			l.writeEnable = true
		}
		l.lastReadOffset = offset
		l.lastReadWasSame = true
	} else {
		l.lastReadWasSame = false
		if !wantWriteSequence {
			l.writeEnable = false
		}
	}

	l.applyLayerState()
}

func (l *LanguageCard) SoftSwitchStates() []SoftSwitchState {
	return []SoftSwitchState{
		{Name: "LCRAM", IsOn: l.readEnable, Description: "language card RAM read enabled"},
		{Name: "LCWRITE", IsOn: l.writeEnable, Description: "language card RAM write enabled"},
	}
}

func (l *LanguageCard) Reset() {
	l.readEnable = false
	l.writeEnable = false
	l.selectedBank = 2
	l.lastReadOffset = 0
	l.lastReadWasSame = false
	if l.bus != nil {
		l.applyLayerState()
	}
}
