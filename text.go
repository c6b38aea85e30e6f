package main

import (
	"fmt"
)

// formatTime converts seconds to MM:SS format
func formatTime(seconds int64) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatSelection renders a picked minutes/seconds pair as MM:SS
func formatSelection(minutes, seconds int) string {
	return formatTime(int64(minutes)*60 + int64(seconds))
}
