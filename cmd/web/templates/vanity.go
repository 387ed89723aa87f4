package templates

import "thirdcoast.systems/adminkit/internal/store"

// Element ids of the vanity hosts page.
const (
	VanityFormID    = "vanityForm"
	VanityAddID     = "vanityAdd"
	VanityAddLabel  = `<i class="fas fa-plus"></i> Add`
	VanityRowsID    = "vanityRows"
	VanitySignal    = "vanity"
	VanityFieldHost = "vanityHost"
)

// VanityRowID is the id of the table row showing h.
func VanityRowID(h store.VanityHost) string {
	return "vanity-" + h.ID
}

func vanitySignals() map[string]any {
	return map[string]any{VanitySignal: map[string]any{"host": ""}}
}
