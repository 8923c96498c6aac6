package entity

import "time"

// FileKind yuklangan yoki yaratilgan artefakt turi
type FileKind string

const (
	FileExcel1Latin    FileKind = "excel1_latin"
	FileExcel1Cyrillic FileKind = "excel1_cyrillic"
	FileExcel2Latin    FileKind = "excel2_latin"
	FileExcel2Cyrillic FileKind = "excel2_cyrillic"
	FileHTML           FileKind = "html"
)

// UploadStage yuklash bosqichi (fayl nomidagi raqam)
type UploadStage int

const (
	StageExcel1 UploadStage = 1
	StageExcel2 UploadStage = 2
	StageHTML   UploadStage = 3
)

// Ext bosqich fayl kengaytmasi
func (s UploadStage) Ext() string {
	if s == StageHTML {
		return ".html"
	}
	return ".xlsx"
}

// Kind bosqich va yozuvga mos fayl turi
func (s UploadStage) Kind(lang Language) FileKind {
	switch s {
	case StageExcel1:
		if lang == LangCyrillic {
			return FileExcel1Cyrillic
		}
		return FileExcel1Latin
	case StageExcel2:
		if lang == LangCyrillic {
			return FileExcel2Cyrillic
		}
		return FileExcel2Latin
	default:
		return FileHTML
	}
}

// FilePointer diskdagi fayl manzili
type FilePointer struct {
	Stir      string
	TaxType   TaxType
	Month     Month
	Kind      FileKind
	Path      string
	UpdatedAt time.Time
}
