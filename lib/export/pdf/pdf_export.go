package pdfexport

import (
	"bytes"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	jsonexport "promptsync-backend/lib/export/json-export"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 5.0
)

// GenerateSession документ с исходным промтом и супер-промтами по каждой целевой модели.
// Используются базовые шрифты PDF, символы вне cp1252 заменяются.
func GenerateSession(snapshot jsonexport.Snapshot, createdAt time.Time) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateSession panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(sanitize(s))
	}
	pdf.SetTitle("PromptSync super prompts", true)
	pdf.SetAuthor("PromptSync", true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 10, text("PromptSync | "+createdAt.UTC().Format("2006-01-02 15:04 UTC")), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 16)
	pdf.CellFormat(0, 10, text("PromptSync super prompts"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontFamily, "", 10)
	meta := [][2]string{
		{"Purpose", string(snapshot.Purpose)},
		{"Tier", string(snapshot.Tier)},
		{"Models", targetNames(snapshot)},
	}
	for _, m := range meta {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.CellFormat(25, lineHeight+1, text(m[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont(fontFamily, "", 10)
		pdf.CellFormat(0, lineHeight+1, text(m[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont(fontFamily, "B", 12)
	pdf.CellFormat(0, 8, text("Original prompt"), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont(fontFamily, "", 10)
	pdf.MultiCell(0, lineHeight, text(snapshot.LazyPrompt), "", "L", false)
	pdf.Ln(4)

	for _, m := range snapshot.TargetModels {
		body, ok := snapshot.SuperPrompts[m]
		if !ok {
			continue
		}
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 8, text(m.ToHuman()), "B", 1, "L", false, 0, "")
		pdf.Ln(1)
		writeMarkdown(pdf, text, body)
		pdf.Ln(4)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeMarkdown заголовки ## и списки выделяются, остальное идёт обычным текстом
func writeMarkdown(pdf *fpdf.Fpdf, text func(string) string, body string) {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			pdf.Ln(2)
		case strings.HasPrefix(trimmed, "#"):
			pdf.SetFont(fontFamily, "B", 11)
			pdf.MultiCell(0, lineHeight+1, text(strings.TrimSpace(strings.TrimLeft(trimmed, "#"))), "", "L", false)
		case strings.HasPrefix(trimmed, ">"):
			pdf.SetFont(fontFamily, "I", 10)
			pdf.MultiCell(0, lineHeight, text(strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))), "", "L", false)
		default:
			pdf.SetFont(fontFamily, "", 10)
			pdf.MultiCell(0, lineHeight, text(trimmed), "", "L", false)
		}
	}
}

func targetNames(snapshot jsonexport.Snapshot) string {
	names := make([]string, 0, len(snapshot.TargetModels))
	for _, m := range snapshot.TargetModels {
		names = append(names, m.ToHuman())
	}
	return strings.Join(names, ", ")
}

// sanitize убирает эмодзи и служебные символы, которых нет в базовых шрифтах
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.Is(unicode.So, r) || unicode.Is(unicode.Variation_Selector, r) || r == '\u200d' {
			return -1
		}
		return r
	}, s)
}

// FileName имя файла выгрузки для записи истории
func FileName(createdAt time.Time) string {
	return "promptsync-super-prompts-" + createdAt.UTC().Format("20060102-150405") + ".pdf"
}
