// Package config provides configuration parsing for incr.
//
// The configuration is stored in incr.json or incr.yaml at the project
// root. This package handles loading, saving, and validating it.
//
// # Configuration File Structure
//
//	{
//	  "preview": {
//	    "host": "localhost",
//	    "port": 3000
//	  },
//	  "render": {
//	    "demo": "hello",
//	    "pretty": false,
//	    "refreshes": 0
//	  },
//	  "snapshot": {
//	    "dir": "snapshots",
//	    "bucket": "my-bucket",
//	    "prefix": "incr/",
//	    "region": "us-east-1"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "incr",
//	    "path": "/metrics"
//	  }
//	}
//
// The YAML form uses the same keys.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Preview:", cfg.PreviewURL())
package config
