package codec

import errorsmod "cosmossdk.io/errors"

// ModuleName is the error codespace of this package.
const ModuleName = "codec"

// ErrMalformed is returned for any framing defect.
var ErrMalformed = errorsmod.Register(ModuleName, 1, "malformed netstring")
