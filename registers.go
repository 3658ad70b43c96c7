// registers.go - Centralized I/O register address map for the Apple II machine core
//
// This file is a reference map of the soft-switch address space, mirroring
// how each device's detailed register constants live in their own file
// (keyboard.go, video_timing.go, speaker.go, langcard.go, ext80col.go).

package main

/*
MEMORY MAP OVERVIEW
===================

Address Range    Size   Device                  Constants File
---------------------------------------------------------------------
$0000-$00FF      256B   Zero page               -
$0100-$01FF      256B   Stack page              -
$0200-$BFFF      ~48KB  Main RAM                -
$C000-$C0FF      256B   Soft-switch I/O page    keyboard.go, video_timing.go,
                                                 speaker.go, langcard.go,
                                                 ext80col.go
$C100-$CFFF      3.75KB Slot ROM / expansion    io_dispatcher.go
$D000-$FFFF      12KB   System ROM (or language
                        card RAM bank)          langcard.go

SOFT-SWITCH PAGE DETAIL ($C000-$C0FF)
======================================

$C000   KBD           keyboard data + strobe (read)     keyboard.go
$C010   KBDSTRB        clear keyboard strobe (read/write) keyboard.go
$C020   TAPEOUT        cassette output toggle             (unused)
$C030   SPKR           speaker toggle                     speaker.go
$C050   TXTCLR         graphics mode                      video_timing.go
$C051   TXTSET         text mode                          video_timing.go
$C052   MIXCLR         full screen                        video_timing.go
$C053   MIXSET         mixed mode                         video_timing.go
$C054   TXTPAGE1       display page 1                     video_timing.go
$C055   TXTPAGE2       display page 2                     video_timing.go
$C056   LORES          lo-res graphics                     video_timing.go
$C057   HIRES          hi-res graphics                     video_timing.go
$C019   RDVBLBAR       VBL state (read)                    video_timing.go
$C000-$C00F (write)    80STORE/RAMRD/RAMWRT/80COL/ALTCHAR  ext80col.go
$C080-$C08F   language card bank control                   langcard.go

Unmapped addresses in the soft-switch page return the floating bus value
rather than faulting the CPU; io_dispatcher.go implements that fallback.
*/

// Soft-switch addresses referenced by device files.
const (
	AddrKBD      Address = 0xC000
	AddrKBDSTRB  Address = 0xC010
	AddrSPKR     Address = 0xC030
	AddrTXTCLR   Address = 0xC050
	AddrTXTSET   Address = 0xC051
	AddrMIXCLR   Address = 0xC052
	AddrMIXSET   Address = 0xC053
	AddrTXTPAGE1 Address = 0xC054
	AddrTXTPAGE2 Address = 0xC055
	AddrLORES    Address = 0xC056
	AddrHIRES    Address = 0xC057
	AddrRDVBLBAR Address = 0xC019

	Addr80STOREOff   Address = 0xC000
	Addr80STOREOn    Address = 0xC001
	AddrRAMRDOff     Address = 0xC002
	AddrRAMRDOn      Address = 0xC003
	AddrRAMWRTOff    Address = 0xC004
	AddrRAMWRTOn     Address = 0xC005
	AddrINTCXROMOff  Address = 0xC006
	AddrINTCXROMOn   Address = 0xC007
	AddrALTZPOff     Address = 0xC008
	AddrALTZPOn      Address = 0xC009
	AddrSLOTC3ROMOff Address = 0xC00A
	AddrSLOTC3ROMOn  Address = 0xC00B
	Addr80COLOff     Address = 0xC00C
	Addr80COLOn      Address = 0xC00D
	AddrALTCHAROff   Address = 0xC00E
	AddrALTCHAROn    Address = 0xC00F

	AddrRDTEXT    Address = 0xC01A
	AddrRDMIXED   Address = 0xC01B
	AddrRDPAGE2   Address = 0xC01C
	AddrRDHIRES   Address = 0xC01D
	AddrRDALTCHAR Address = 0xC01E
	AddrRD80COL   Address = 0xC01F

	AddrAnnunciatorBase Address = 0xC058 // AN0OFF; pairs run through $C05F (AN3ON)

	AddrLCBankBase Address = 0xC080
	AddrLCBankEnd  Address = 0xC08F
)

// Page boundaries of the soft-switch window and the ROM/language-card window.
const (
	AddrIOPageStart   Address = 0xC000
	AddrIOPageEnd     Address = 0xC0FF
	AddrSlotROMStart  Address = 0xC100
	AddrSlotROMEnd    Address = 0xCFFF
	AddrSystemROMBase Address = 0xD000
	AddrSystemROMEnd  Address = 0xFFFF
)
