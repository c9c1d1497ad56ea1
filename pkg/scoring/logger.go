package scoring

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var scoreLog zerolog.Logger = log.With().Str("module", "scoring").Logger()
