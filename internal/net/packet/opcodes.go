package packet

// ProtocolVersion is checked in the hello packet.
const ProtocolVersion = 1

// Client → server opcodes.
const (
	C_OPCODE_HELLO   byte = 1 // [C version][S client name]
	C_OPCODE_HOLD    byte = 2 // [S action][C held]
	C_OPCODE_LOOK    byte = 3 // [F dx][F dy]
	C_OPCODE_ACTION  byte = 4 // [S name][C phase][S payload]
	C_OPCODE_BUTTONS byte = 5 // [DU mask]
)

// Server → client opcodes.
const (
	S_OPCODE_WELCOME byte = 100 // [DU session][H tick ms]
	S_OPCODE_ATTACH  byte = 101 // [DU handle][S visual]
	S_OPCODE_SYNC    byte = 102 // [DU handle][F x y z][F qw qx qy qz]
	S_OPCODE_DETACH  byte = 103 // [DU handle]
	S_OPCODE_REJECT  byte = 104 // [S reason]
)
