package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Vector store
	StoreBackend string // "qdrant" or "pgvector"
	QdrantURL    string
	QdrantAPIKey string
	Collection   string
	VectorSize   int
	DatabaseURL  string // pgvector backend only

	// Chunking
	ChunkSize    int
	ChunkOverlap int
	MinChunkSize int

	// Ingestion
	DataDir         string
	UpsertBatchSize int

	// Search
	DefaultTopK int

	// Embeddings
	EmbedProvider string // "ollama" or "gemini"
	OllamaURL     string
	EmbedModel    string
	AIAPIKey      string

	// Answer generation
	LLMProvider         string // "gemini" or "cli"
	GenModel            string
	AgentCmd            string
	AgentModel          string
	AgentTimeoutSeconds int

	// S3 document source (optional)
	AwsAccessKey string
	AwsSecretKey string
	AwsRegion    string
	BucketName   string

	Port string
}

// LoadConfig loads the environment variables and return config
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		StoreBackend: getEnv("STORE_BACKEND", "qdrant"),
		QdrantURL:    getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey: getEnv("QDRANT_API_KEY", ""),
		Collection:   getEnv("COLLECTION_NAME", "documents"),
		VectorSize:   getEnvInt("VECTOR_SIZE", 384),
		DatabaseURL:  getEnv("DATABASE_URL", ""),

		ChunkSize:    getEnvInt("CHUNK_SIZE", 300),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 80),
		MinChunkSize: getEnvInt("MIN_CHUNK_SIZE", 50),

		DataDir:         getEnv("DATA_DIR", "./data"),
		UpsertBatchSize: getEnvInt("UPSERT_BATCH_SIZE", 100),

		DefaultTopK: getEnvInt("DEFAULT_TOP_K", 5),

		EmbedProvider: getEnv("EMBED_PROVIDER", "ollama"),
		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel:    getEnv("EMBED_MODEL", "all-minilm"),
		AIAPIKey:      getEnv("GEMINI_API_KEY", ""),

		LLMProvider:         getEnv("LLM_PROVIDER", "cli"),
		GenModel:            getEnv("GEN_MODEL", "gemini-1.5-flash"),
		AgentCmd:            getEnv("AGENT_CMD", "agent"),
		AgentModel:          getEnv("AGENT_MODEL", "gemini-3-flash"),
		AgentTimeoutSeconds: getEnvInt("AGENT_TIMEOUT_SECONDS", 120),

		AwsAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey: getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:    getEnv("AWS_REGION", "us-east-2"),
		BucketName:   getEnv("BUCKET_NAME", ""),

		Port: getEnv("PORT", "8080"),
	}

	if cfg.ChunkOverlap >= cfg.ChunkSize {
		log.Fatalf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", cfg.ChunkOverlap, cfg.ChunkSize)
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
