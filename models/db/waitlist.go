package dbmodels

type WaitlistEntry struct {
	BaseModel
	Email  string `gorm:"type:varchar(255);uniqueIndex"`
	Source string `gorm:"type:varchar(100)"`
}
