// Package config loads frameloop project configuration.
//
// The configuration is stored in frameloop.json or frameloop.yaml at the
// project root. Values from a .env file and the environment override the
// file:
//
//	LISTEN_ADDR       listen
//	FRAMELOOP_AREA    area
//	FRAMELOOP_ASSETS  assets.dir
//
// # Configuration File Structure
//
//	{
//	  "listen": "localhost:8080",
//	  "area": "server",
//	  "assets": {
//	    "dir": "build",
//	    "bundle": "",
//	    "s3": {"bucket": "", "prefix": "", "region": ""}
//	  },
//	  "render": {"maxDepth": 20, "arenaLimit": 0, "frameRate": 60},
//	  "metrics": {"enabled": true, "path": "/metrics"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.Print(os.Stderr, err)
//	    os.Exit(1)
//	}
package config
