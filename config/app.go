package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	RedisAddr   string `env:"REDIS_ADDR"`
	AMQPURL     string `env:"AMQP_URL"`
	Env         string `env:"APP_ENV" default:"dev"`
}
