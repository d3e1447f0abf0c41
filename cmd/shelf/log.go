package main

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

// glogLogger adapts glog to the key/value logger interfaces used by the
// view model and the postgres provider. Debug maps to verbosity 1.
type glogLogger struct{}

func (glogLogger) Debug(msg string, args ...any) {
	if glog.V(1) {
		glog.InfoDepth(1, format(msg, args))
	}
}

func (glogLogger) Info(msg string, args ...any) {
	glog.InfoDepth(1, format(msg, args))
}

func (glogLogger) Warn(msg string, args ...any) {
	glog.WarningDepth(1, format(msg, args))
}

func (glogLogger) Error(msg string, args ...any) {
	glog.ErrorDepth(1, format(msg, args))
}

func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		sb.WriteByte(' ')
		if i+1 == len(args) {
			fmt.Fprintf(&sb, "!BADKEY=%v", args[i])
			break
		}
		fmt.Fprintf(&sb, "%v=%v", args[i], args[i+1])
	}
	return sb.String()
}
