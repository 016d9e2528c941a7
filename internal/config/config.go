package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит конфигурацию приложения
type Config struct {
	RunAddress  string        // Адрес и порт запуска сервиса
	DatabaseURI string        // URI подключения к БД
	JWTSecret   string        // Секретный ключ для JWT
	JWTTokenTTL time.Duration // Время жизни JWT токена
	LogLevel    string        // Уровень логирования

	// Рулетка
	RewardMin int64 // Минимальная награда за спин
	RewardMax int64 // Максимальная награда за спин
	SpinCost  int64 // Стоимость спина в поинтах (0 — бесплатно)

	// Поинты
	SignupBonus   int64         // Бонус за регистрацию
	PointTTLDays  int           // Срок жизни начисленных поинтов в днях
	SweepInterval time.Duration // Интервал запуска сборщика истекших поинтов

	// Валидация
	MinPasswordLength int // Минимальная длина пароля
}

// Load загружает конфигурацию из переменных окружения и флагов
// Приоритет: env переменные > флаги > дефолтные значения
func Load() (*Config, error) {
	cfg := &Config{
		JWTTokenTTL:       24 * time.Hour,
		LogLevel:          "info",
		RewardMin:         100,
		RewardMax:         1000,
		SpinCost:          0,
		SignupBonus:       1000,
		PointTTLDays:      30,
		SweepInterval:     time.Hour,
		MinPasswordLength: 6,
	}

	// Определяем флаги
	flag.StringVar(&cfg.RunAddress, "a", ":8080", "address and port to run server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.Parse()

	// Переменные окружения имеют приоритет над флагами
	if envRunAddr, ok := os.LookupEnv("RUN_ADDRESS"); ok {
		cfg.RunAddress = envRunAddr
	}

	if envDBURI, ok := os.LookupEnv("DATABASE_URI"); ok {
		cfg.DatabaseURI = envDBURI
	}

	// JWT секрет (только из env, не из флагов для безопасности)
	if envJWTSecret, ok := os.LookupEnv("JWT_SECRET"); ok {
		cfg.JWTSecret = envJWTSecret
	} else {
		cfg.JWTSecret = "default-secret-key-change-in-production"
	}

	// Уровень логирования
	if envLogLevel, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = envLogLevel
	}

	// Параметры рулетки из env
	if envRewardMin, ok := os.LookupEnv("REWARD_MIN"); ok {
		if v, err := strconv.ParseInt(envRewardMin, 10, 64); err == nil && v > 0 {
			cfg.RewardMin = v
		}
	}

	if envRewardMax, ok := os.LookupEnv("REWARD_MAX"); ok {
		if v, err := strconv.ParseInt(envRewardMax, 10, 64); err == nil && v > 0 {
			cfg.RewardMax = v
		}
	}

	if envSpinCost, ok := os.LookupEnv("SPIN_COST"); ok {
		if v, err := strconv.ParseInt(envSpinCost, 10, 64); err == nil && v >= 0 {
			cfg.SpinCost = v
		}
	}

	// Параметры поинтов из env
	if envSignupBonus, ok := os.LookupEnv("SIGNUP_BONUS"); ok {
		if v, err := strconv.ParseInt(envSignupBonus, 10, 64); err == nil && v >= 0 {
			cfg.SignupBonus = v
		}
	}

	if envPointTTL, ok := os.LookupEnv("POINT_TTL_DAYS"); ok {
		if v, err := strconv.Atoi(envPointTTL); err == nil && v > 0 {
			cfg.PointTTLDays = v
		}
	}

	if envSweepInterval, ok := os.LookupEnv("SWEEP_INTERVAL"); ok {
		if interval, err := time.ParseDuration(envSweepInterval); err == nil && interval > 0 {
			cfg.SweepInterval = interval
		}
	}

	// Валидация обязательных параметров
	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI is required (use -d flag or DATABASE_URI env)")
	}

	if cfg.RewardMin > cfg.RewardMax {
		return nil, fmt.Errorf("REWARD_MIN (%d) must not exceed REWARD_MAX (%d)", cfg.RewardMin, cfg.RewardMax)
	}

	return cfg, nil
}
