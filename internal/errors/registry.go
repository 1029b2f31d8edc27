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
	// Render Errors (D001-D099)
	// ============================================

	"D001": {
		Category: CategoryRender,
		Message:  "Unsupported element",
		Detail:   "A component returned a value that is not an element, a primitive, a list, a future or a stream. Nothing in that subtree was mounted.",
	},
	"D002": {
		Category: CategoryRender,
		Message:  "Unsupported component",
		Detail:   "Create was called with something that is neither a tag name nor a component function.",
	},
	"D003": {
		Category: CategoryRender,
		Message:  "Component failed",
		Detail:   "A future or stream component returned an error. The last rendered value stays in place.",
	},
	"D004": {
		Category: CategoryRender,
		Message:  "Render loop closed",
		Detail:   "Work was submitted after the render loop was closed.",
	},

	// ============================================
	// Config Errors (D100-D199)
	// ============================================

	"D100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No deuce.json, deuce.yaml or deuce.yml was found.",
	},
	"D101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file could not be parsed.",
	},
	"D102": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration value is out of range or not one of the accepted values.",
	},

	// ============================================
	// Store Errors (D200-D299)
	// ============================================

	"D200": {
		Category: CategoryStore,
		Message:  "Unknown store backend",
		Detail:   "The store backend must be one of memory, file, redis or s3.",
	},
	"D201": {
		Category: CategoryStore,
		Message:  "Store load failed",
		Detail:   "The to-do list could not be read from its store.",
	},
	"D202": {
		Category: CategoryStore,
		Message:  "Store save failed",
		Detail:   "The to-do list could not be written to its store.",
	},

	// ============================================
	// CLI Errors (D300-D399)
	// ============================================

	"D300": {
		Category: CategoryCLI,
		Message:  "Unknown demo",
		Detail:   "The requested demo is not registered. Run `deuce demos` to list them.",
	},
	"D301": {
		Category: CategoryCLI,
		Message:  "Port in use",
		Detail:   "The inspector could not listen on the configured address.",
	},
	"D302": {
		Category: CategoryCLI,
		Message:  "Inspector failed",
		Detail:   "The inspector HTTP server stopped with an error.",
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

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
