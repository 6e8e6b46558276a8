package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	mcpMode bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithMCPMode runs the editor as an MCP server on stdio instead of the
// HTTP service.
func WithMCPMode() Option {
	return func(a *application) {
		a.mcpMode = true
	}
}
