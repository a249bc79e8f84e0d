package config

import (
	"log"
	"os"
)

type Config struct {
	Host string
	Port string

	// Real-time provider control plane.
	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	// Summary generation.
	GeminiAPIKey   string
	SummaryModel   string
	UseMockSummary bool // true = deterministic mock even with credentials

	// Speech synthesis.
	TTSAPIKey  string
	TTSModel   string
	UseMockTTS bool

	// Agent session tiers.
	EnableVoiceAI   bool
	EnableAgentMock bool

	StorageBackend string // "sqlite", "memory" or "firestore"
	DBPath         string
	GCPProjectID   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

// Load reads all env vars and builds the config
func Load() *Config {
	cfg := &Config{
		Host: getEnv("HOST", "127.0.0.1"),
		Port: getEnv("PORT", "8000"),

		LiveKitURL:       getEnv("LIVEKIT_URL", ""),
		LiveKitAPIKey:    getEnv("LIVEKIT_API_KEY", ""),
		LiveKitAPISecret: getEnv("LIVEKIT_API_SECRET", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		SummaryModel: getEnv("WARM_MODEL_NAME", "gemini-2.5-flash"),

		TTSAPIKey: getEnv("OPENAI_API_KEY", ""),
		TTSModel:  getEnv("WARM_TTS_MODEL", "gpt-4o-mini-tts"),

		EnableVoiceAI:   getBoolEnv("ENABLE_VOICE_AI", false),
		EnableAgentMock: getBoolEnv("ENABLE_AGENT_MOCK", true),

		StorageBackend: getEnv("WARM_STORAGE_BACKEND", "sqlite"),
		DBPath:         getEnv("PERSIST_DB_PATH", "data.db"),
		GCPProjectID:   getEnv("WARM_GCP_PROJECT", ""),
	}

	// Mock modes default on when the upstream credential is absent, so the
	// service stays usable offline.
	cfg.UseMockSummary = getBoolEnv("WARM_USE_MOCK_SUMMARY", cfg.GeminiAPIKey == "")
	cfg.UseMockTTS = getBoolEnv("WARM_USE_MOCK_TTS", cfg.TTSAPIKey == "")

	if cfg.LiveKitURL == "" || cfg.LiveKitAPIKey == "" || cfg.LiveKitAPISecret == "" {
		log.Fatal("LIVEKIT_URL, LIVEKIT_API_KEY and LIVEKIT_API_SECRET must be set")
	}

	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("WARM_GCP_PROJECT must be set for the firestore storage backend")
	}

	return cfg
}
