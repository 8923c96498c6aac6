package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Samandarmister/Firmauz-bot/internal/domain/entity"
	"github.com/Samandarmister/Firmauz-bot/internal/domain/repository"
	"github.com/Samandarmister/Firmauz-bot/internal/infrastructure/storage"
)

func TestDocumentTargetsAndFiles(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	layout := NewLayout(t.TempDir())
	docs := NewDocumentUseCase(store, layout)

	if _, err := docs.Target("123456789", DocPDF1, "hujjat.docx"); err == nil {
		t.Error("pdf o'rniga docx qabul qilindi")
	}

	var paths []string
	for _, tc := range []struct {
		slot DocSlot
		name string
		want string
	}{
		{DocPDF1, "shartnoma.PDF", "doc1.pdf"},
		{DocPDF2, "ilova.pdf", "doc2.pdf"},
		{DocPFX, "../kalit.pfx", "kalit.pfx"},
	} {
		p, err := docs.Target("123456789", tc.slot, tc.name)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if filepath.Base(p) != tc.want || filepath.Dir(p) != layout.DocsDir("123456789") {
			t.Errorf("%s: kutilgan=%s, natija=%s", tc.name, tc.want, p)
		}
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	if err := docs.Save(ctx, entity.FirmDocs{Stir: "123456789", PDF1: paths[0], PDF2: paths[1], PFX: paths[2]}); err != nil {
		t.Fatal(err)
	}
	saved, err := store.GetFirmDocs(ctx, "123456789")
	if err != nil || saved.PFX != paths[2] {
		t.Errorf("hujjatlar saqlanmadi: %+v %v", saved, err)
	}

	files, err := docs.Files("123456789")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 || filepath.Base(files[0]) != "doc1.pdf" || filepath.Base(files[2]) != "kalit.pfx" {
		t.Errorf("fayllar ro'yxati: %v", files)
	}

	if files, _ := docs.Files("999999999"); len(files) != 0 {
		t.Errorf("mavjud bo'lmagan papka: %v", files)
	}
	if err := docs.LogDownload(ctx, 5, "+998901234567", "123456789", paths[0]); err != nil {
		t.Errorf("yuklab olish yozilmadi: %v", err)
	}
}

func TestDocumentInstallMovesStagedFiles(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(repository.WriteAppend)
	layout := NewLayout(t.TempDir())
	docs := NewDocumentUseCase(store, layout)
	if err := os.MkdirAll(layout.TempDir(), 0o755); err != nil {
		t.Fatal(err)
	}

	var staged []StagedDoc
	for _, tc := range []struct {
		slot DocSlot
		name string
	}{
		{DocPDF1, "a.pdf"},
		{DocPDF2, "b.pdf"},
		{DocPFX, "kalit.pfx"},
	} {
		target, err := docs.Target("123456789", tc.slot, tc.name)
		if err != nil {
			t.Fatal(err)
		}
		tmp := filepath.Join(layout.TempDir(), "staged_"+tc.name)
		if err := os.WriteFile(tmp, []byte(tc.name), 0o644); err != nil {
			t.Fatal(err)
		}
		staged = append(staged, StagedDoc{Slot: tc.slot, TempPath: tmp, Target: target})
	}

	// bitta fayl yo'q: hech narsa ko'chirilmasligi kerak
	missing := append([]StagedDoc(nil), staged...)
	missing[1].TempPath = filepath.Join(layout.TempDir(), "yoq.pdf")
	if _, err := docs.Install(ctx, "123456789", missing); err == nil {
		t.Fatal("yo'qolgan vaqtinchalik fayl uchun xato kutilgan edi")
	}
	if _, err := os.Stat(staged[0].Target); !os.IsNotExist(err) {
		t.Fatal("xato bo'lganda doc1.pdf joyiga qo'yilmasligi kerak")
	}

	got, err := docs.Install(ctx, "123456789", staged)
	if err != nil {
		t.Fatal(err)
	}
	if got.PDF1 != staged[0].Target || got.PDF2 != staged[1].Target || got.PFX != staged[2].Target {
		t.Errorf("yo'llar noto'g'ri: %+v", got)
	}
	for _, d := range staged {
		if _, err := os.Stat(d.TempPath); !os.IsNotExist(err) {
			t.Errorf("vaqtinchalik fayl qoldi: %s", d.TempPath)
		}
		if _, err := os.Stat(d.Target); err != nil {
			t.Errorf("hujjat joyida emas: %v", err)
		}
	}
	saved, err := store.GetFirmDocs(ctx, "123456789")
	if err != nil || saved.PDF2 != staged[1].Target {
		t.Errorf("hujjatlar saqlanmadi: %+v %v", saved, err)
	}
}
