package apiv1

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"promptsync-backend/controllers"
	jsonexport "promptsync-backend/lib/export/json-export"
	pdfexport "promptsync-backend/lib/export/pdf"
	xlsexport "promptsync-backend/lib/export/xls"
	filestorage "promptsync-backend/lib/file-storage"
	"promptsync-backend/lib/history"
	authutils "promptsync-backend/lib/utils/auth-utils"
	"promptsync-backend/middleware"
	apimodels "promptsync-backend/models/api"
	historyapimodels "promptsync-backend/models/api/history"
	promptapimodels "promptsync-backend/models/api/prompt"
	dbmodels "promptsync-backend/models/db"
)

type historyApiController struct {
	controllers.BaseAPIController
	history history.Provider
	xls     xlsexport.Provider
	files   filestorage.Provider
	now     func() time.Time
}

func InitHistoryApiRouters(app *fiber.App, historyHandler history.Provider, xls xlsexport.Provider, files filestorage.Provider) {
	controller := historyApiController{
		history: historyHandler,
		xls:     xls,
		files:   files,
		now:     time.Now,
	}
	app.Route("history", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.list)
		router.Get("export/xlsx", controller.exportXlsx)
		router.Post("export", controller.exportSnapshot)
		router.Get(":id", controller.get)
		router.Delete(":id", controller.delete)
		router.Get(":id/export", controller.export)
		router.Post(":id/export/link", controller.exportLink)
	})
}

// @Summary История генераций
// @Tags История
// @Description Записи пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	limit	query	int		false	"Количество записей, по умолчанию 20, не больше 100"
// @Param	search	query	string	false	"Поиск по тексту промта"
// @Success 200 {object} apimodels.Response{data=[]historyapimodels.HistoryItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history [get]
func (c *historyApiController) list(ctx *fiber.Ctx) error {
	var filter historyapimodels.HistoryFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	list, err := c.history.List(ctx.UserContext(), authutils.GetUserID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения истории генераций")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Запись истории
// @Tags История
// @Description Полный снимок сессии генерации
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true    "history ID"
// @Success 200 {object} apimodels.Response{data=historyapimodels.HistoryView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/{id} [get]
func (c *historyApiController) get(ctx *fiber.Ctx) error {
	view, err := c.history.Get(ctx.UserContext(), authutils.GetUserID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения записи истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Удалить запись истории
// @Tags История
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true    "history ID"
// @Success 200 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/{id} [delete]
func (c *historyApiController) delete(ctx *fiber.Ctx) error {
	err := c.history.Delete(ctx.UserContext(), authutils.GetUserID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка удаления записи истории")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузить запись истории
// @Tags История
// @Description Файл json или pdf с супер-промтами
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true    "history ID"
// @Param	format	query	string	false	"json (по умолчанию) или pdf"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/{id}/export [get]
func (c *historyApiController) export(ctx *fiber.Ctx) error {
	format, ok := parseExportFormat(ctx.Query("format"))
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("поддерживаются форматы json и pdf"))
	}
	rec, err := c.history.GetRecord(ctx.UserContext(), authutils.GetUserID(ctx), ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения записи истории")
	}
	now := c.now()
	body, err := render(*rec, format, now)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка формирования выгрузки")
	}
	return sendFile(ctx, format.ContentType(), exportFileName(*rec, format, now), body)
}

// @Summary Выгрузить несохраненную сессию
// @Tags История
// @Description Файл json по снимку сессии из тела запроса
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		historyapimodels.SnapshotExportRequest	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/export [post]
func (c *historyApiController) exportSnapshot(ctx *fiber.Ctx) error {
	var payload historyapimodels.SnapshotExportRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	now := c.now()
	body, err := jsonexport.Export(payload.ToSnapshot(), now)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка формирования выгрузки")
	}
	return sendFile(ctx, dbmodels.ExportFormatJSON.ContentType(), jsonexport.FileName(now), body)
}

// @Summary Выгрузить историю в Excel
// @Tags История
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	limit	query	int		false	"Количество записей"
// @Param	search	query	string	false	"Поиск по тексту промта"
// @Success 200
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/history/export/xlsx [get]
func (c *historyApiController) exportXlsx(ctx *fiber.Ctx) error {
	var filter historyapimodels.HistoryFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректные параметры запроса"))
	}
	list, err := c.history.List(ctx.UserContext(), authutils.GetUserID(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения истории генераций")
	}
	data, err := c.xls.ExportHistoryList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка выгрузки истории в Excel")
	}
	fileName := "promptsync-history-" + c.now().Format("20060102-150405") + ".xlsx"
	return sendFile(ctx, dbmodels.ExportFormatXLSX.ContentType(), fileName, data.Bytes())
}

// @Summary Ссылка на выгрузку записи истории
// @Tags История
// @Description Загружает выгрузку в файловое хранилище и возвращает временную ссылку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true    "history ID"
// @Param	format	query	string	false	"json (по умолчанию) или pdf"
// @Success 200 {object} apimodels.Response{data=promptapimodels.LinkView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/history/{id}/export/link [post]
func (c *historyApiController) exportLink(ctx *fiber.Ctx) error {
	format, ok := parseExportFormat(ctx.Query("format"))
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("поддерживаются форматы json и pdf"))
	}
	userID := authutils.GetUserID(ctx)
	rec, err := c.history.GetRecord(ctx.UserContext(), userID, ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения записи истории")
	}
	now := c.now()
	link, err := c.files.ExportLink(ctx.UserContext(), userID, rec.ID, format, exportFileName(*rec, format, now), func() ([]byte, error) {
		return render(*rec, format, now)
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения ссылки на выгрузку")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(promptapimodels.LinkView{URL: link}))
}

func parseExportFormat(value string) (dbmodels.ExportFormat, bool) {
	switch dbmodels.ExportFormat(value) {
	case "", dbmodels.ExportFormatJSON:
		return dbmodels.ExportFormatJSON, true
	case dbmodels.ExportFormatPDF:
		return dbmodels.ExportFormatPDF, true
	default:
		return "", false
	}
}

func render(rec dbmodels.PromptHistory, format dbmodels.ExportFormat, now time.Time) ([]byte, error) {
	snapshot := jsonexport.FromHistory(rec)
	if format == dbmodels.ExportFormatPDF {
		return pdfexport.GenerateSession(snapshot, rec.CreatedAt)
	}
	return jsonexport.Export(snapshot, now)
}

func exportFileName(rec dbmodels.PromptHistory, format dbmodels.ExportFormat, now time.Time) string {
	if format == dbmodels.ExportFormatPDF {
		return pdfexport.FileName(rec.CreatedAt)
	}
	return jsonexport.FileName(now)
}

func sendFile(ctx *fiber.Ctx, contentType, fileName string, body []byte) error {
	ctx.Set(fiber.HeaderContentType, contentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(bytes.NewReader(body), len(body))
}
