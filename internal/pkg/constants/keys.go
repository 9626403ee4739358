package constants

import "github.com/google/uuid"

// NoSectionID groups answer rows whose indicator hangs directly off a method
// with no intermediate section. The aggregation views emit NULL section ids;
// the engine substitutes this sentinel so "no section" is an ordinary
// grouping key instead of a dropped one.
var NoSectionID = uuid.MustParse("e2ef801f-adbc-60d2-36d0-0b9f3516ebc7")

// viper configuration keys
const (
	ViperKeyHTTPAddr     = "http.addr"
	ViperKeyDatabaseDSN  = "database.dsn"
	ViperKeyLogLevel     = "log.level"
	ViperKeyCacheEnabled = "cache.enabled"
	ViperKeyCacheAddr    = "cache.addr"
	ViperKeyCacheTTL     = "cache.ttl"
)
