package logger

import "fmt"

func sprintf(format string, v ...interface{}) string {
	if len(v) == 0 {
		return format
	}
	return fmt.Sprintf(format, v...)
}

// LogOrderError is the shared shape for order workflow failures so they can be
// grepped by action and order id.
func LogOrderError(orderID, action string, err error) {
	Warn("Order workflow error: action=%s, orderID=%s, error=%v", action, orderID, err)
}
