package logger

import (
	"io"
	"log"
	"os"
)

var (
	// InfoLogger oddiy hodisalar uchun
	InfoLogger *log.Logger
	// ErrorLogger xatoliklar uchun
	ErrorLogger *log.Logger
)

func init() {
	setOutput(os.Stdout, os.Stderr)
}

// Init loggerlarni standart chiqishlarga ulaydi
func Init() {
	setOutput(os.Stdout, os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetOutput loglarni boshqa joyga yo'naltirish (testlar uchun)
func SetOutput(info, errs io.Writer) {
	setOutput(info, errs)
}

func setOutput(info, errs io.Writer) {
	InfoLogger = log.New(info, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(errs, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}
