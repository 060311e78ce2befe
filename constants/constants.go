package constants

import (
	"os"
	"strconv"
)

func GetOutputDir() string {
	path := os.Getenv("CHORDHARP_OUT")
	if path != "" {
		return path
	}
	return "./out"
}

func GetListenAddr() string {
	addr := os.Getenv("CHORDHARP_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetSerialPort returns the controller port, or "" when none is configured.
func GetSerialPort() string {
	return os.Getenv("CHORDHARP_SERIAL")
}

func GetBaudRate() int {
	if v, err := strconv.Atoi(os.Getenv("CHORDHARP_BAUD")); err == nil && v > 0 {
		return v
	}
	return DefaultBaudRate
}

const DefaultBaudRate = 115200

// FrameSlots is the size of the slot array a controller line is read into.
// 10 scalar slots leave room for a 22 value pattern.
const FrameSlots = 32

// MaxRequestBytes caps HTTP request bodies.
const MaxRequestBytes = 64 * 1024
