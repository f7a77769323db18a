package dbmodels

type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportFile выгрузка, загруженная в объектное хранилище
type ExportFile struct {
	BaseUserModel
	HistoryID string       `gorm:"type:varchar(36);index"`
	ObjectKey string       `gorm:"type:varchar(255)"`
	FileName  string       `gorm:"type:varchar(255)"`
	Format    ExportFormat `gorm:"type:varchar(10)"`
}

func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatPDF:
		return "application/pdf"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
