package web

import "embed"

// Static embeds the browser client served at / and /static/.
//
//go:embed static
var Static embed.FS
