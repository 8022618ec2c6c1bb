package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from args on a dedicated
// FlagSet, so it can be called more than once (for example in tests).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN (postgres URL or sqlite://path)
//	-c/-config json file path with configs
//	-session-secret cookie session signing key
//	-secure-cookie mark the session cookie as HTTPS-only
//	-session-max-age session lifetime (e.g., "12h")
//	-redis-url redis URL for the login limiter
//	-max-login-attempts failed logins allowed per window
//	-bcrypt-cost bcrypt work factor
//	-log-level zerolog level
//	-seed-demo-user create the demo account on startup
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var sessionSecret string
	var secureCookie bool
	var sessionMaxAge time.Duration
	var redisURL string
	var maxAttempts int
	var bcryptCost int
	var logLevel string
	var seedDemoUser bool
	var requestTimeout time.Duration

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&sessionSecret, "session-secret", "", "Session signing key")
	fs.BoolVar(&secureCookie, "secure-cookie", false, "HTTPS-only session cookie")
	fs.DurationVar(&sessionMaxAge, "session-max-age", 0, "Session lifetime (e.g., 12h)")
	fs.StringVar(&redisURL, "redis-url", "", "Redis URL for the login limiter")
	fs.IntVar(&maxAttempts, "max-login-attempts", 0, "Failed logins allowed per window")
	fs.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt work factor")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.BoolVar(&seedDemoUser, "seed-demo-user", false, "Create the demo account on startup")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			BcryptCost:   bcryptCost,
			LogLevel:     logLevel,
			SeedDemoUser: seedDemoUser,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Session: Session{
			Secret:       sessionSecret,
			SecureCookie: secureCookie,
			MaxAge:       sessionMaxAge,
		},
		Limiter: Limiter{
			RedisURL:    redisURL,
			MaxAttempts: maxAttempts,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the default server address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
