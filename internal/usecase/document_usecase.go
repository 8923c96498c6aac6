package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
)

// DocSlot firma hujjati o'rni
type DocSlot int

const (
	DocPDF1 DocSlot = iota + 1
	DocPDF2
	DocPFX
)

func (s DocSlot) Ext() string {
	if s == DocPFX {
		return ".pfx"
	}
	return ".pdf"
}

// StagedDoc oqim tugaguncha vaqtinchalik papkada turgan hujjat
type StagedDoc struct {
	Slot     DocSlot
	TempPath string
	Target   string
}

// DocumentUseCase egasi yuklab oladigan firma hujjatlari
type DocumentUseCase interface {
	// Target hujjat saqlanadigan joy. pfx asl nomi bilan saqlanadi.
	Target(stir string, slot DocSlot, fileName string) (string, error)
	// Install uchala hujjatni joyiga ko'chirib yo'llarni saqlaydi
	Install(ctx context.Context, stir string, staged []StagedDoc) (entity.FirmDocs, error)
	Save(ctx context.Context, docs entity.FirmDocs) error
	// Files papkadagi barcha .pdf va .pfx fayllar
	Files(stir string) ([]string, error)
	LogDownload(ctx context.Context, userID int64, phone, stir, path string) error
}

type documentUseCase struct {
	store  repository.Store
	layout Layout
	now    func() time.Time
}

// NewDocumentUseCase yangi DocumentUseCase
func NewDocumentUseCase(store repository.Store, layout Layout) DocumentUseCase {
	return &documentUseCase{store: store, layout: layout, now: time.Now}
}

func (u *documentUseCase) Target(stir string, slot DocSlot, fileName string) (string, error) {
	if !strings.EqualFold(filepath.Ext(fileName), slot.Ext()) {
		return "", fmt.Errorf("faqat %s fayl qabul qilinadi", slot.Ext())
	}
	dir := u.layout.DocsDir(stir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("hujjatlar papkasi: %w", err)
	}
	switch slot {
	case DocPDF1:
		return filepath.Join(dir, "doc1.pdf"), nil
	case DocPDF2:
		return filepath.Join(dir, "doc2.pdf"), nil
	default:
		name := filepath.Base(strings.TrimSpace(fileName))
		if name == "." || name == string(filepath.Separator) {
			name = "key.pfx"
		}
		return filepath.Join(dir, name), nil
	}
}

func (u *documentUseCase) Install(ctx context.Context, stir string, staged []StagedDoc) (entity.FirmDocs, error) {
	docs := entity.FirmDocs{Stir: stir}
	// birortasi yo'qolgan bo'lsa eski hujjatlarga tegilmaydi
	for _, d := range staged {
		if !fileExists(d.TempPath) {
			return docs, fmt.Errorf("vaqtinchalik hujjat topilmadi: %s", filepath.Base(d.TempPath))
		}
	}
	for _, d := range staged {
		if err := moveFile(d.TempPath, d.Target); err != nil {
			return docs, fmt.Errorf("hujjatni joylash (%s): %w", filepath.Base(d.Target), err)
		}
		switch d.Slot {
		case DocPDF1:
			docs.PDF1 = d.Target
		case DocPDF2:
			docs.PDF2 = d.Target
		case DocPFX:
			docs.PFX = d.Target
		}
	}
	return docs, u.Save(ctx, docs)
}

func (u *documentUseCase) Save(ctx context.Context, docs entity.FirmDocs) error {
	if err := u.store.UpsertFirmDocs(ctx, docs); err != nil {
		return fmt.Errorf("firma hujjatlarini saqlash: %w", err)
	}
	return nil
}

func (u *documentUseCase) Files(stir string) ([]string, error) {
	dir := u.layout.DocsDir(stir)
	var files []string
	for _, pattern := range []string{"*.pdf", "*.pfx"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}

func (u *documentUseCase) LogDownload(ctx context.Context, userID int64, phone, stir, path string) error {
	d := entity.DownloadLog{UserID: userID, Phone: phone, Stir: stir, FilePath: path, CreatedAt: u.now()}
	if err := u.store.LogDownload(ctx, d); err != nil {
		return fmt.Errorf("yuklab olishni yozish: %w", err)
	}
	return nil
}
