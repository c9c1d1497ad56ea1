package maskscore

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// msLog carries module=maskscore on every entry.
var msLog zerolog.Logger = log.With().Str("module", "maskscore").Logger()
