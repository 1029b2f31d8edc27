// Package config loads the deuce configuration file.
//
// The configuration lives in deuce.json, deuce.yaml or deuce.yml:
//
//	{
//	  "log": {"level": "debug", "format": "json"},
//	  "inspector": {"host": "0.0.0.0", "port": 7070},
//	  "metrics": {"enabled": true},
//	  "store": {
//	    "backend": "redis",
//	    "redis": {"addr": "localhost:6379", "ttl": "24h"}
//	  },
//	  "demo": "todo"
//	}
//
// Missing fields take the values of New. Command line flags override the
// file.
package config
