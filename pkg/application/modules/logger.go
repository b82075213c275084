package modules

import (
	"github.com/justt1n/driffle-tool/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
