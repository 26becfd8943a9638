package internal_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/finance-tracker/internal"
)

var _ = Describe("Config", func() {
	valid := func() internal.Config {
		return internal.Config{
			Server: internal.ServerConfig{
				Port:              3000,
				AllowedOrigins:    "http://localhost:5173, https://app.example.com",
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       15 * time.Second,
			},
			Database: internal.DatabaseConfig{Driver: internal.DriverSQLite, Source: "file::memory:", MaxOpenConns: 1, MaxIdleConns: 1},
			Security: internal.SecurityConfig{
				JWTSecret:  "0123456789abcdef0123456789abcdef",
				TokenTTL:   internal.DefaultTokenTTL,
				BCryptCost: internal.DefaultBCryptCost,
			},
			Observability: internal.ObservabilityConfig{Logging: internal.LoggingConfig{Level: "info", Format: "json"}},
		}
	}

	It("accepts a complete configuration", func() {
		cfg := valid()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Server.Origins()).To(Equal([]string{"http://localhost:5173", "https://app.example.com"}))
	})

	It("reports every invalid section at once", func() {
		cfg := valid()
		cfg.Security.JWTSecret = "short"
		cfg.Database.Driver = "mysql"

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("jwt_secret"))
		Expect(err.Error()).To(ContainSubstring("unsupported driver"))
	})

	It("bounds the bcrypt cost", func() {
		cfg := valid()
		cfg.Security.BCryptCost = 3
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("reads plain environment variables", func() {
		GinkgoT().Setenv("PORT", "8081")
		GinkgoT().Setenv("JWT_SECRET", "from-env")
		GinkgoT().Setenv("TOKEN_TTL", "2h")
		GinkgoT().Setenv("DB_DRIVER", "sqlite")

		cfg := internal.LoadConfigFromEnv()
		Expect(cfg.Server.Port).To(Equal(8081))
		Expect(cfg.Security.JWTSecret).To(Equal("from-env"))
		Expect(cfg.Security.TokenTTL).To(Equal(2 * time.Hour))
		Expect(cfg.Database.Driver).To(Equal(internal.DriverSQLite))
	})
})
