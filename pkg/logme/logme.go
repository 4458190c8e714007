package logme

import (
	"fmt"
	"os"
)

var isDebugMode = os.Getenv("DEBUG") == "1"

// DebugF prints only when the DEBUG env var is set to 1.
func DebugF(msg string, args ...interface{}) {
	if isDebugMode {
		fmt.Print("[DEBUG] ")
		fmt.Fprintf(os.Stdout, msg, args...)
	}
}

func Debugln(args ...interface{}) {
	if isDebugMode {
		fmt.Print("[DEBUG] ")
		fmt.Fprintln(os.Stdout, args...)
	}
}

func InfoF(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, msg, args...)
}

func Infoln(args ...interface{}) {
	fmt.Fprintln(os.Stdout, args...)
}

func ErrorF(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

func Errorln(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
}
