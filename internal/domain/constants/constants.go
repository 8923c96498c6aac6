package constants

import "time"

// Kirish cheklovi (telefon tekshiruvi)
const (
	// DefaultMaxChecks oyna ichida ruxsat etilgan urinishlar soni
	DefaultMaxChecks = 10

	// DefaultBlockWindow urinishlar sanaladigan oyna
	DefaultBlockWindow = 24 * time.Hour

	// DefaultJanitorInterval access log tozalash davri
	DefaultJanitorInterval = time.Hour

	// DefaultTempMaxAge vaqtinchalik yuklamalar saqlanadigan muddat
	DefaultTempMaxAge = 24 * time.Hour
)

// Hisobot konstantalari
const (
	// PayrollTaxPercent daromad solig'i stavkasi (foiz)
	PayrollTaxPercent = 12

	// ReportYear hisobotlar yili
	ReportYear = 2025

	// MinFirmNameLen firma nomining minimal uzunligi
	MinFirmNameLen = 3

	// FirmsPerPage ro'yxatdagi sahifa hajmi
	FirmsPerPage = 10
)

// Fayl tizimi
const (
	TempDirName     = "temp"
	FirmDocsDirName = "firm_docs"
	DefaultDataPath = "data"
	SQLiteFileName  = "bot.db"

	// MaxFileUploadSize maksimal fayl hajmi (bayt)
	MaxFileUploadSize = 20 * 1024 * 1024
)
