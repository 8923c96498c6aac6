package storage

import "time"

type userRow struct {
	UserID   int64  `gorm:"primaryKey;autoIncrement:false"`
	Language string `gorm:"not null;default:uz_latin"`
}

func (userRow) TableName() string { return "users" }

type firmRow struct {
	Stir      string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Director  string
	Regime    string `gorm:"not null"`
	DSRate    string
	YSRate    string
	QQSRate   string
	CreatedAt time.Time
}

func (firmRow) TableName() string { return "firms" }

type ownerRow struct {
	ID    uint   `gorm:"primaryKey"`
	Stir  string `gorm:"not null;uniqueIndex:idx_owner_stir_phone"`
	Phone string `gorm:"not null;uniqueIndex:idx_owner_stir_phone"`
}

func (ownerRow) TableName() string { return "firm_owners" }

type payrollRow struct {
	ID            int64  `gorm:"primaryKey"`
	Stir          string `gorm:"not null;index:idx_payroll_stir_month"`
	Month         string `gorm:"not null;index:idx_payroll_stir_month"`
	FirmName      string
	EmployeeCount int
	Employees     string `gorm:"type:json"`
	PeriodPay     int64
	TotalPay      int64
	Tax           int64
	CreatedAt     time.Time
}

func (payrollRow) TableName() string { return "payroll_reports" }

type turnoverRow struct {
	ID          int64  `gorm:"primaryKey"`
	Kind        string `gorm:"not null;index:idx_turnover_kind_stir_month"`
	Stir        string `gorm:"not null;index:idx_turnover_kind_stir_month"`
	Month       string `gorm:"not null;index:idx_turnover_kind_stir_month"`
	FirmName    string
	Director    string
	Rate        string
	YearToDate  int64
	MonthAmount int64
	Tax         int64
	CreatedAt   time.Time
}

func (turnoverRow) TableName() string { return "turnover_reports" }

type fileRow struct {
	Stir      string `gorm:"primaryKey"`
	TaxType   string `gorm:"primaryKey"`
	Month     string `gorm:"primaryKey"`
	Kind      string `gorm:"primaryKey"`
	Path      string `gorm:"not null"`
	UpdatedAt time.Time
}

func (fileRow) TableName() string { return "files" }

type firmDocsRow struct {
	Stir string `gorm:"primaryKey"`
	PDF1 string
	PDF2 string
	PFX  string
}

func (firmDocsRow) TableName() string { return "firm_docs" }

type accessRow struct {
	ID     uint   `gorm:"primaryKey"`
	Stir   string `gorm:"not null;index:idx_access_stir_user_ts"`
	Phone  string
	UserID int64 `gorm:"not null;index:idx_access_stir_user_ts"`
	TS     int64 `gorm:"column:ts;not null;index:idx_access_stir_user_ts"`
}

func (accessRow) TableName() string { return "access_log" }

type downloadRow struct {
	ID        uint `gorm:"primaryKey"`
	UserID    int64
	Phone     string
	Stir      string
	FilePath  string
	CreatedAt time.Time
}

func (downloadRow) TableName() string { return "download_log" }
