package dbmodels

type AiLog struct {
	BaseModel
	SysPromt    string       `comment:"System промт"`
	UserPromt   string       `comment:"User промт"`
	Answer      string       `comment:"Ответ ИИ"`
	Error       string       `comment:"Ошибка вызова"`
	DurationSec float64      `comment:"Длительность вызова"`
	ReqestType  AiReqestType `gorm:"type:varchar(255)" comment:"Тип запроса к ИИ"`
	AiName      AiName       `gorm:"type:varchar(255)" comment:"Название ИИ"`
	ModelName   string       `gorm:"type:varchar(255)" comment:"Модель"`
}

type AiName string

const (
	AiGeminiType AiName = "gemini"
	AiYaGptType  AiName = "yandexgpt"
	AiOllamaType AiName = "ollama"
)

type AiReqestType string

const (
	AiClassifyType  AiReqestType = "Classify"
	AiEnhanceType   AiReqestType = "Enhance"
	AiQuestionsType AiReqestType = "AskQuestions"
	AiAnalyzeType   AiReqestType = "Analyze"
)
