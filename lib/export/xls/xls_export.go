package xlsexport

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	historyapimodels "promptsync-backend/models/api/history"
)

type Provider interface {
	ExportHistoryList(list []historyapimodels.HistoryItemView) (*bytes.Buffer, error)
}

func NewHandler() Provider {
	return impl{}
}

type impl struct{}

var historyHeaders = []string{"Дата", "Промт", "Назначение", "Целевые модели", "Тариф", "Уточнение"}

func (i impl) ExportHistoryList(list []historyapimodels.HistoryItemView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, historyHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		_, err = writeHistoryData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err = f.SetColWidth(sheet, "B", "B", 60); err != nil {
		return nil, errors.Wrap(err, "ошибка установки ширины колонки в xlsx")
	}
	if err = f.SetSheetName(sheet, "История"); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа в xlsx")
	}
	return f.WriteToBuffer()
}

func writeHistoryData(f *excelize.File, sheet string, list []historyapimodels.HistoryItemView, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(historyHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		values := []interface{}{
			item.CreatedAt.Format("02.01.2006 15:04"),
			item.LazyPrompt,
			string(item.Purpose),
			targetNames(item),
			item.Tier.ToHuman(),
			refinedLabel(item.Refined),
		}
		for idx, value := range values {
			if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

func targetNames(item historyapimodels.HistoryItemView) string {
	names := make([]string, 0, len(item.TargetModels))
	for _, m := range item.TargetModels {
		names = append(names, m.ToHuman())
	}
	return strings.Join(names, ", ")
}

func refinedLabel(refined bool) string {
	if refined {
		return "Да"
	}
	return "Нет"
}
