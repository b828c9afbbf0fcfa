package sx126x

import "fmt"

// Opcode selects an SX126x chip command.
// The set is closed and fixed by the silicon revision (SX1261/2 datasheet
// chapter 13); it is never extended at runtime.
type Opcode byte

const (
	// Operational mode commands (13.1).
	OpResetStats            Opcode = 0x00
	OpClearIrqStatus        Opcode = 0x02
	OpClearDeviceErrors     Opcode = 0x07
	OpSetDioIrqParams       Opcode = 0x08
	OpWriteRegister         Opcode = 0x0D
	OpWriteBuffer           Opcode = 0x0E
	OpGetStats              Opcode = 0x10
	OpGetPacketType         Opcode = 0x11
	OpGetIrqStatus          Opcode = 0x12
	OpGetRxBufferStatus     Opcode = 0x13
	OpGetPacketStatus       Opcode = 0x14
	OpGetRssiInst           Opcode = 0x15
	OpGetDeviceErrors       Opcode = 0x17
	OpReadRegister          Opcode = 0x1D
	OpReadBuffer            Opcode = 0x1E
	OpSetStandby            Opcode = 0x80
	OpSetRx                 Opcode = 0x82
	OpSetTx                 Opcode = 0x83
	OpSetSleep              Opcode = 0x84
	OpSetRfFrequency        Opcode = 0x86
	OpSetCadParams          Opcode = 0x88
	OpCalibrate             Opcode = 0x89
	OpSetPacketType         Opcode = 0x8A
	OpSetModulationParams   Opcode = 0x8B
	OpSetPacketParams       Opcode = 0x8C
	OpSetTxParams           Opcode = 0x8E
	OpSetBufferBaseAddress  Opcode = 0x8F
	OpSetRxTxFallbackMode   Opcode = 0x93
	OpSetRxDutyCycle        Opcode = 0x94
	OpSetPaConfig           Opcode = 0x95
	OpSetRegulatorMode      Opcode = 0x96
	OpSetDio3AsTcxoCtrl     Opcode = 0x97
	OpCalibrateImage        Opcode = 0x98
	OpSetDio2AsRfSwitchCtrl Opcode = 0x9D
	OpStopTimerOnPreamble   Opcode = 0x9F
	OpSetLoRaSymbNumTimeout Opcode = 0xA0
	OpGetStatus             Opcode = 0xC0
	OpSetFs                 Opcode = 0xC1
	OpSetCad                Opcode = 0xC5
	OpSetTxContinuousWave   Opcode = 0xD1
	OpSetTxInfinitePreamble Opcode = 0xD2
)

var opcodeNames = map[Opcode]string{
	OpResetStats:            "ResetStats",
	OpClearIrqStatus:        "ClearIrqStatus",
	OpClearDeviceErrors:     "ClearDeviceErrors",
	OpSetDioIrqParams:       "SetDioIrqParams",
	OpWriteRegister:         "WriteRegister",
	OpWriteBuffer:           "WriteBuffer",
	OpGetStats:              "GetStats",
	OpGetPacketType:         "GetPacketType",
	OpGetIrqStatus:          "GetIrqStatus",
	OpGetRxBufferStatus:     "GetRxBufferStatus",
	OpGetPacketStatus:       "GetPacketStatus",
	OpGetRssiInst:           "GetRssiInst",
	OpGetDeviceErrors:       "GetDeviceErrors",
	OpReadRegister:          "ReadRegister",
	OpReadBuffer:            "ReadBuffer",
	OpSetStandby:            "SetStandby",
	OpSetRx:                 "SetRx",
	OpSetTx:                 "SetTx",
	OpSetSleep:              "SetSleep",
	OpSetRfFrequency:        "SetRfFrequency",
	OpSetCadParams:          "SetCadParams",
	OpCalibrate:             "Calibrate",
	OpSetPacketType:         "SetPacketType",
	OpSetModulationParams:   "SetModulationParams",
	OpSetPacketParams:       "SetPacketParams",
	OpSetTxParams:           "SetTxParams",
	OpSetBufferBaseAddress:  "SetBufferBaseAddress",
	OpSetRxTxFallbackMode:   "SetRxTxFallbackMode",
	OpSetRxDutyCycle:        "SetRxDutyCycle",
	OpSetPaConfig:           "SetPaConfig",
	OpSetRegulatorMode:      "SetRegulatorMode",
	OpSetDio3AsTcxoCtrl:     "SetDio3AsTcxoCtrl",
	OpCalibrateImage:        "CalibrateImage",
	OpSetDio2AsRfSwitchCtrl: "SetDio2AsRfSwitchCtrl",
	OpStopTimerOnPreamble:   "StopTimerOnPreamble",
	OpSetLoRaSymbNumTimeout: "SetLoRaSymbNumTimeout",
	OpGetStatus:             "GetStatus",
	OpSetFs:                 "SetFs",
	OpSetCad:                "SetCad",
	OpSetTxContinuousWave:   "SetTxContinuousWave",
	OpSetTxInfinitePreamble: "SetTxInfinitePreamble",
}

func (op Opcode) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Opcode(0x%02X)", byte(op))
}

// cmdLayout describes the fixed wire layout of one command: how many
// parameter bytes follow the opcode, how many trailing NOP bytes hold the
// clock open for the chip's reply, and where the status byte and payload
// sit in the echoed buffer. Variable-length commands (register and buffer
// access) store only the fixed part; their builders add the per-call bytes.
type cmdLayout struct {
	params     int // parameter bytes after the opcode
	nops       int // trailing NOP (0x00) bytes
	statusOff  int // response index of the status byte; 0 = none captured
	payloadOff int // response index where payload starts; 0 = no payload
}

// frameLen is the full-duplex frame length: every byte shifted out clocks
// exactly one byte in, so command and response lengths are always equal.
func (l cmdLayout) frameLen() int { return 1 + l.params + l.nops }

var layouts = map[Opcode]cmdLayout{
	OpSetSleep:              {params: 1, statusOff: 1},
	OpSetStandby:            {params: 1, statusOff: 1},
	OpSetFs:                 {},
	OpSetTx:                 {params: 3, statusOff: 1},
	OpSetRx:                 {params: 3, statusOff: 1},
	OpStopTimerOnPreamble:   {params: 1, statusOff: 1},
	OpSetRxDutyCycle:        {params: 6, statusOff: 1},
	OpSetCad:                {},
	OpSetTxContinuousWave:   {},
	OpSetTxInfinitePreamble: {},
	OpSetRegulatorMode:      {params: 1, statusOff: 1},
	OpCalibrate:             {params: 1, statusOff: 1},
	OpCalibrateImage:        {params: 2, statusOff: 1},
	OpSetPaConfig:           {params: 4, statusOff: 1},
	OpSetRxTxFallbackMode:   {params: 1, statusOff: 1},

	OpWriteRegister: {params: 2, statusOff: 1}, // + data bytes
	OpReadRegister:  {params: 2, nops: 1, statusOff: 3, payloadOff: 4},
	OpWriteBuffer:   {params: 1, statusOff: 1}, // + data bytes
	OpReadBuffer:    {params: 1, nops: 1, statusOff: 2, payloadOff: 3},

	OpSetDioIrqParams:       {params: 8, statusOff: 1},
	OpGetIrqStatus:          {nops: 3, statusOff: 1, payloadOff: 2},
	OpClearIrqStatus:        {params: 2, statusOff: 1},
	OpSetDio2AsRfSwitchCtrl: {params: 1, statusOff: 1},
	OpSetDio3AsTcxoCtrl:     {params: 4, statusOff: 1},

	OpSetRfFrequency:        {params: 4, statusOff: 1},
	OpSetPacketType:         {params: 1, statusOff: 1},
	OpGetPacketType:         {nops: 2, statusOff: 1, payloadOff: 2},
	OpSetTxParams:           {params: 2, statusOff: 1},
	OpSetModulationParams:   {params: 8, statusOff: 1},
	OpSetPacketParams:       {params: 9, statusOff: 1},
	OpSetCadParams:          {params: 7, statusOff: 1},
	OpSetBufferBaseAddress:  {params: 2, statusOff: 1},
	OpSetLoRaSymbNumTimeout: {params: 1, statusOff: 1},

	OpGetStatus:         {nops: 1, statusOff: 1},
	OpGetRxBufferStatus: {nops: 3, statusOff: 1, payloadOff: 2},
	OpGetPacketStatus:   {nops: 4, statusOff: 1, payloadOff: 2},
	OpGetRssiInst:       {nops: 2, statusOff: 1, payloadOff: 2},
	OpGetStats:          {nops: 7, statusOff: 1, payloadOff: 2},
	OpResetStats:        {params: 6, statusOff: 1},
	OpGetDeviceErrors:   {nops: 3, statusOff: 1, payloadOff: 2},
	OpClearDeviceErrors: {params: 2, statusOff: 1},
}
