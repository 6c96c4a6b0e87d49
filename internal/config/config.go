package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	PostgresUser     string // 管理者DBユーザー
	PostgresPassword string // 管理者DBパスワード
	PostgresDB       string // 管理者DB名
	PostgresHost     string // 管理者DBホスト
	PostgresPort     int    // 管理者DBポート
	PostgresSSLMode  string // sslmode（デフォルト disable）

	MongoURI string // 注文ドキュメントDB
	MongoDB  string // 注文DB名

	RedisAddr     string // カート永続化
	RedisPassword string // 空なら認証なし

	JWTSecret string // 管理者セッショントークンの署名シークレット

	AdminEmail    string // 初期管理者（任意。両方空ならシードしない）
	AdminPassword string

	EmailJSServiceID  string // メール中継
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string // 任意（サーバー間呼び出し用）

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）
}

// Loadは環境変数から読む
func Load() (Config, error) {
	pgPort, err := mustAtoi("POSTGRES_PORT")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getenv("MONGO_DB", "oleo"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
		EmailJSPrivateKey: os.Getenv("EMAILJS_PRIVATE_KEY"),

		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: os.Getenv("FE_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}
	if cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.RedisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.EmailJSServiceID == "" {
		return Config{}, fmt.Errorf("EMAILJS_SERVICE_ID is required")
	}
	if cfg.EmailJSTemplateID == "" {
		return Config{}, fmt.Errorf("EMAILJS_TEMPLATE_ID is required")
	}
	if cfg.EmailJSPublicKey == "" {
		return Config{}, fmt.Errorf("EMAILJS_PUBLIC_KEY is required")
	}

	return cfg, nil
}

func mustAtoi(key string) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
