package utils

import "fmt"

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

const line = "============================================================"

// Tagged console output, colored like the run log

func Info(msg string) {
	fmt.Printf("%s[INFO] %s%s\n", colorGreen, msg, colorReset)
}

func Ok(msg string) {
	fmt.Printf("%s[OK] %s%s\n", colorCyan, msg, colorReset)
}

func Warn(msg string) {
	fmt.Printf("%s[WARN] %s%s\n", colorYellow, msg, colorReset)
}

func Error(msg string) {
	fmt.Printf("%s[ERROR] %s%s\n", colorRed, msg, colorReset)
}

func Done(msg string) {
	fmt.Printf("%s[DONE] %s%s\n", colorGreen, msg, colorReset)
}

func Separator() {
	fmt.Printf("\n%s\n\n", line)
}
