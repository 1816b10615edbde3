package trick

import errorsmod "cosmossdk.io/errors"

// ModuleName is the error codespace of this package.
const ModuleName = "trick"

var (
	ErrCardNotFound      = errorsmod.Register(ModuleName, 1, "card not found")
	ErrInconsistentState = errorsmod.Register(ModuleName, 2, "inconsistent state")
)
