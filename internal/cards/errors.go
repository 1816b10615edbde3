package cards

import errorsmod "cosmossdk.io/errors"

// ModuleName is the error codespace of this package.
const ModuleName = "cards"

// cards sentinel errors.
var (
	ErrOutOfRange          = errorsmod.Register(ModuleName, 1, "index out of range")
	ErrDeserialization     = errorsmod.Register(ModuleName, 2, "malformed token")
	ErrInvalidCard         = errorsmod.Register(ModuleName, 3, "invalid card")
	ErrInvalidManipulation = errorsmod.Register(ModuleName, 4, "invalid manipulation")
)
