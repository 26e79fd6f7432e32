package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Node index not found",
		Detail:   "No node was registered at this index in the current view. The update pass addressed a slot the create pass never filled.",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Container child view not found",
		Detail:   "The container has no child view at the requested position.",
	},
	"E003": {
		Category: CategoryProjection,
		Message:  "Slotable projection parent out of sync",
		Detail:   "The slotable records a slot as its projection parent, but that slot does not list it among its children.",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Node kind mismatch",
		Detail:   "The instruction expects a different kind of node at this index.",
	},
	"E005": {
		Category: CategoryRuntime,
		Message:  "Node index already in use",
		Detail:   "A create instruction targeted an index that already holds a node.",
	},
	"E006": {
		Category: CategoryRuntime,
		Message:  "Refresh during an in-progress pass",
		Detail:   "A root cannot be refreshed while one of its passes is still running. Call refresh from a listener or after the pass returns.",
	},
	"E007": {
		Category: CategoryRuntime,
		Message:  "Unbalanced end instruction",
		Detail:   "An end instruction has no matching start instruction for the current insertion parent.",
	},
	"E008": {
		Category: CategoryRuntime,
		Message:  "Renderer destroyed",
		Detail:   "The root has been destroyed and can no longer be refreshed.",
	},
	"E009": {
		Category: CategoryRuntime,
		Message:  "Directive instance not found",
		Detail:   "No directive was attached to the host at the given data slot.",
	},

	// ============================================
	// Config Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be read or failed validation.",
	},
	"E021": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo template is not registered.",
	},

	// ============================================
	// Storage Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryStorage,
		Message:  "Snapshot publish failed",
		Detail:   "The rendered snapshot could not be written to its destination.",
	},

	// ============================================
	// Preview Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryPreview,
		Message:  "Invalid preview message",
		Detail:   "The preview client sent a message that could not be decoded or addressed no known node.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
