package config

import (
	"net/http"
	"time"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
}

type MongoConfig struct {
	URI      string
	Database string
	// Transactions require a replica set; standalone servers run units of work without them.
	Transactions bool
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type AuthConfig struct {
	AccessSecret []byte
	// Zero means tokens never expire.
	AccessTTL      time.Duration
	GoogleClientID string
	GoogleEndpoint string
}

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}
