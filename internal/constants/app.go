package constants

import "time"

// Application Information
const (
	AppName    = "WideWorldImporters Purchasing API"
	AppVersion = "1.0.0"
)

// APIPrefix is the base path every route is mounted under.
const APIPrefix = "/api/v1"

// Environment Types
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix              = "wwi:"
	CacheKeySupplier            = CacheKeyPrefix + "supplier:"
	CacheKeySupplierCategory    = CacheKeyPrefix + "supplier_category:"
	CacheKeySupplierTransaction = CacheKeyPrefix + "supplier_transaction:"
)

// Timeouts
const (
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

