package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"business-trips-backend/controllers"
	reporthandler "business-trips-backend/lib/report"
	"business-trips-backend/middleware"
	apimodels "business-trips-backend/models/api"
	tripapimodels "business-trips-backend/models/api/trip"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Post("summary", controller.summary)
		router.Post("export/xlsx", controller.exportXLS)
		router.Get("trip/:id/order.pdf", controller.tripOrder)
	})
}

// @Summary Сводный отчет
// @Tags Отчеты
// @Description Сводный отчет по командировкам в пределах видимости пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.ReportFilter	true	"request filter body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.SummaryView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/summary [post]
func (c *reportApiController) summary(ctx *fiber.Ctx) error {
	var payload tripapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := reporthandler.Instance.Summary(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования отчета")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Выгрузка в xlsx
// @Tags Отчеты
// @Description Выгрузка отчета по командировкам в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.ReportFilter	true	"request filter body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/export/xlsx [post]
func (c *reportApiController) exportXLS(ctx *fiber.Ctx) error {
	var payload tripapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buf, err := reporthandler.Instance.ExportXLS(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="trips_report.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Командировочное удостоверение
// @Tags Отчеты
// @Description Командировочное удостоверение по заявке в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/trip/{id}/order.pdf [get]
func (c *reportApiController) tripOrder(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, name, err := reporthandler.Instance.TripOrderPDF(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования удостоверения")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}
