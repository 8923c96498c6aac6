package entity

import "time"

// AccessAttempt hujjatlarni ko'rish uchun telefon tekshiruvi urinishi
type AccessAttempt struct {
	Stir      string
	Phone     string
	UserID    int64
	Timestamp time.Time
}

// DownloadLog muvaffaqiyatli yuborilgan hujjat
type DownloadLog struct {
	UserID    int64
	Phone     string
	Stir      string
	FilePath  string
	CreatedAt time.Time
}
