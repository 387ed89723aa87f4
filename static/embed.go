// Package static embeds the admin UI's own assets. Bootstrap, Font Awesome
// and Datastar are loaded from their CDNs.
package static

import "embed"

//go:embed dist
var FS embed.FS
