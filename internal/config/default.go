package config

// defaultYAML is the built-in configuration used when no config file is
// found. Environment variables keep parity with the reference
// deployment; every knob has a default so a bare `chacha start` works
// against a local Ollama.
const defaultYAML = `version: "1"

debug: ${DEBUG:-false}

admission:
  rate_limit:
    max_requests: ${RATE_LIMIT_MAX_REQUESTS:-20}
    window_ms: ${RATE_LIMIT_WINDOW_MS:-60000}
  token_quota:
    tokens: ${DEFAULT_TOKENS:-1000}
    window_ms: ${TOKEN_WINDOW_MS:-86400000}

profiles:
  dev_user:
    role: developer
    active_game: SkyRunner
    progress: "40%"
    completed_games: [StarQuest, MoonLander]
    views:
      yesterday: 23
      last_7_days: 150
  dev_user_2:
    role: developer
    active_game: Dragon Quest
    progress: "75%"
    completed_games: [Pixel Adventure]
    views:
      yesterday: 0
      last_7_days: 5
  buyer_1:
    role: buyer
    favourite_game: Call of Duty
    budget: "900"
    completed_games: [Indie Cat, Space Explorer]
  buyer_2:
    role: buyer
    favourite_game: The Witcher 3
    budget: "1200"
    completed_games: [Wars of Immortals, Fantasy Land]

modules:
  gateway.http:
    bind: ${CHACHA_BIND:-127.0.0.1:8080}
    debug: ${DEBUG:-false}
    auth:
      bearer_token: ${ADMIN_TOKEN:-}
  provider.ollama:
    base_url: ${LLM_BACKEND_URL:-http://localhost:11434}
    model: ${LLM_MODEL_NAME:-mistral}
`

// Default returns the built-in configuration, run through the same
// env-expansion and parse path as a file on disk.
func Default() (*Config, error) {
	return Parse([]byte(defaultYAML))
}
