package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging         LoggingConfig         `yaml:"logging"`
	Server          ServerConfig          `yaml:"server"`
	GeminiModel     string                `yaml:"gemini_model"`
	Enrichment      EnrichmentConfig      `yaml:"enrichment"`
	ClassifierQuota ClassifierQuotaConfig `yaml:"classifier_quota"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// EnrichmentConfig selects how classification tasks are dispatched.
// Mode "inprocess" runs a worker pool inside the API binary; mode "kafka"
// publishes item events to the broker for cmd/worker to consume.
type EnrichmentConfig struct {
	Mode    string `yaml:"mode"`
	Workers int    `yaml:"workers"`
}

// ClassifierQuotaConfig 는 분류용 LLM 호출에 대한 속도/일일 한도를 정의한다.
type ClassifierQuotaConfig struct {
	// RequestsPerMinute 는 분류용 LLM 호출에 대한 분당 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerMinute int `yaml:"requests_per_minute"`

	// RequestsPerDay 는 분류용 LLM 호출에 대한 일일 최대 요청 수이다.
	// 0 이하면 제한 없음으로 간주한다.
	RequestsPerDay int `yaml:"requests_per_day"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// MongoURI returns the MongoDB connection string from env.
func MongoURI() string {
	return os.Getenv("MONGO_URI")
}

// MongoDBName returns the database name from env, defaulting to "glana".
func MongoDBName() string {
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		return v
	}
	return "glana"
}

// GeminiAPIKey returns the Gemini API key from env.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// APIKey returns the shared secret that gates mutating API operations.
func APIKey() string {
	return os.Getenv("API_KEY")
}

// KafkaBrokers returns Kafka bootstrap servers from env (broker mode only).
func KafkaBrokers() string {
	return os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
