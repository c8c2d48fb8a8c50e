package config

import "os"

func IsDebug() bool {
	return os.Getenv("FLYER_DEBUG") == "1"
}
