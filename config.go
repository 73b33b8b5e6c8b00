package linkctx

// Defaults for Config.
const (
	DefaultModel         = "gemini-2.5-flash"
	DefaultTemperature   = 0.3
	DefaultMaxPageTokens = 20000
)

// Config carries the settings for one contextualization run.
// It is passed explicitly to Contextualize; nothing reads credentials from
// the environment behind the caller's back.
type Config struct {
	// APIKey authenticates against the generative API. Required.
	APIKey string

	// Model names the generative model. Empty means DefaultModel.
	Model string

	// Temperature controls sampling. Nil means DefaultTemperature.
	Temperature *float32

	// Search lets the model read the live page through web search grounding.
	Search bool

	// MaxPageTokens bounds locally fetched page content included in the
	// prompt. Zero means DefaultMaxPageTokens.
	MaxPageTokens int
}

// NewConfig returns a Config with defaults and search grounding enabled.
func NewConfig(apiKey string) Config {
	return Config{APIKey: apiKey, Model: DefaultModel, Search: true}
}

// Validate returns ECONFIG if the configuration cannot be used to call the
// generative API.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return Errorf(ECONFIG, "API key is missing. Set GEMINI_API_KEY or pass --api-key.")
	}
	if c.MaxPageTokens < 0 {
		return Errorf(ECONFIG, "max page tokens must not be negative")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return Errorf(ECONFIG, "temperature must be between 0 and 2")
	}
	return nil
}

// ModelOrDefault returns the configured model or DefaultModel.
func (c Config) ModelOrDefault() string {
	if c.Model == "" {
		return DefaultModel
	}
	return c.Model
}

// TemperatureOrDefault returns the configured temperature or
// DefaultTemperature.
func (c Config) TemperatureOrDefault() float32 {
	if c.Temperature == nil {
		return DefaultTemperature
	}
	return *c.Temperature
}

// MaxPageTokensOrDefault returns the configured page token budget or
// DefaultMaxPageTokens.
func (c Config) MaxPageTokensOrDefault() int {
	if c.MaxPageTokens == 0 {
		return DefaultMaxPageTokens
	}
	return c.MaxPageTokens
}
