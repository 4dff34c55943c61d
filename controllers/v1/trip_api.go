package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"business-trips-backend/config"
	"business-trips-backend/controllers"
	documenthandler "business-trips-backend/lib/document"
	triphandler "business-trips-backend/lib/trip"
	tripcosthandler "business-trips-backend/lib/trip-cost"
	"business-trips-backend/middleware"
	apimodels "business-trips-backend/models/api"
	tripapimodels "business-trips-backend/models/api/trip"
	dbmodels "business-trips-backend/models/db"
)

type tripApiController struct {
	controllers.BaseAPIController
}

func InitTripApiRouters(app *fiber.App) {
	controller := tripApiController{}
	app.Route("trips", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("dashboard", controller.dashboard)
		router.Get("planning", controller.planning)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)

			idRoute.Put("activate", controller.activate)
			idRoute.Put("deactivate", controller.deactivate)
			idRoute.Put("send_for_approval", controller.sendForApproval)
			idRoute.Put("approve", controller.approve)
			idRoute.Put("reject", controller.reject)
			idRoute.Put("cancel", controller.cancel)
			idRoute.Put("approve_overrun", controller.approveOverrun)

			idRoute.Put("booking", controller.updateBooking)
			idRoute.Put("complete_booking", controller.completeBooking)
			idRoute.Put("approve_booking_overrun", controller.approveBookingOverrun)

			idRoute.Put("procurement", controller.setProcurement)
			idRoute.Put("procurement_done", controller.setProcurementDone)

			idRoute.Put("geo_location", controller.setGeoLocation)
			idRoute.Put("verify_geo_location", controller.verifyGeoLocation)
			idRoute.Put("approve_report_overrun", controller.approveReportOverrun)
			idRoute.Put("report_prepared", controller.setReportPrepared)
			idRoute.Put("report_reviewed", controller.setReportReviewed)
			idRoute.Put("close", controller.close)

			idRoute.Route("costs", func(costRoute fiber.Router) {
				costRoute.Get("", controller.costList)
				costRoute.Post("", controller.costAdd)
				costRoute.Put(":cost_id", controller.costUpdate)
				costRoute.Delete(":cost_id", controller.costDelete)
			})

			idRoute.Route("documents", func(docRoute fiber.Router) {
				docRoute.Get("", controller.documentList)
				docRoute.Post("", middleware.WithBodyLimit(config.Conf.FileStore.MaxUploadSize), controller.documentUpload)
				docRoute.Get("archive", controller.documentArchive)
				docRoute.Get(":doc_id", controller.documentDownload)
				docRoute.Delete(":doc_id", controller.documentDelete)
			})
		})
	})
}

// @Summary Создание заявки
// @Tags Командировки
// @Description Создание заявки на командировку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.TripData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips [post]
func (c *tripApiController) create(ctx *fiber.Ctx) error {
	var payload tripapimodels.TripData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	id, err := triphandler.Instance.Create(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок
// @Tags Командировки
// @Description Список заявок с учетом видимости по роли
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.TripFilter	true	"request filter body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]tripapimodels.TripView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/list [post]
func (c *tripApiController) list(ctx *fiber.Ctx) error {
	var payload tripapimodels.TripFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	userID := middleware.GetUserID(ctx)
	list, rowCount, err := triphandler.Instance.List(userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Дашборд
// @Tags Командировки
// @Description Заявки, доступные пользователю
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]tripapimodels.TripView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/dashboard [get]
func (c *tripApiController) dashboard(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := triphandler.Instance.Dashboard(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения дашборда")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Планирование
// @Tags Командировки
// @Description Планируемые заявки, доступные пользователю
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]tripapimodels.TripView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/planning [get]
func (c *tripApiController) planning(ctx *fiber.Ctx) error {
	userID := middleware.GetUserID(ctx)
	list, err := triphandler.Instance.Planning(userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения планируемых заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение заявки
// @Tags Командировки
// @Description Получение заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=tripapimodels.TripView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id} [get]
func (c *tripApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := triphandler.Instance.GetByID(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Изменение заявки
// @Tags Командировки
// @Description Изменение основных данных заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.TripData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id} [put]
func (c *tripApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.TripData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = triphandler.Instance.UpdateDetails(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Активация заявки
// @Tags Жизненный цикл заявки
// @Description Перевод заявки в статус Активированная
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/activate [put]
func (c *tripApiController) activate(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.Activate, "Ошибка активации заявки")
}

// @Summary Деактивация заявки
// @Tags Жизненный цикл заявки
// @Description Возврат заявки в статус Планируемая
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/deactivate [put]
func (c *tripApiController) deactivate(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.Deactivate, "Ошибка деактивации заявки")
}

// @Summary Отправка на согласование
// @Tags Жизненный цикл заявки
// @Description Перевод заявки в статус Ожидают согласования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/send_for_approval [put]
func (c *tripApiController) sendForApproval(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.SendForApproval, "Ошибка отправки заявки на согласование")
}

// @Summary Согласование заявки
// @Tags Жизненный цикл заявки
// @Description Перевод заявки в статус Согласована
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/approve [put]
func (c *tripApiController) approve(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.Approve, "Ошибка согласования заявки")
}

// @Summary Несогласование заявки
// @Tags Жизненный цикл заявки
// @Description Перевод заявки в статус Не согласована с указанием причины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.ReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/reject [put]
func (c *tripApiController) reject(ctx *fiber.Ctx) error {
	return c.lifecycleWithReason(ctx, triphandler.Instance.Reject, "Ошибка несогласования заявки")
}

// @Summary Отмена заявки
// @Tags Жизненный цикл заявки
// @Description Перевод заявки в статус Отменена с указанием причины
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.ReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/cancel [put]
func (c *tripApiController) cancel(ctx *fiber.Ctx) error {
	return c.lifecycleWithReason(ctx, triphandler.Instance.Cancel, "Ошибка отмены заявки")
}

// @Summary Согласование превышения расходов
// @Tags Жизненный цикл заявки
// @Description Согласование заявленного превышения лимита расходов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/approve_overrun [put]
func (c *tripApiController) approveOverrun(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.ApproveOverrun, "Ошибка согласования превышения")
}

// @Summary Данные бронирования
// @Tags Бронирование
// @Description Изменение данных бронирования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.BookingData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/booking [put]
func (c *tripApiController) updateBooking(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.BookingData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = triphandler.Instance.UpdateBooking(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения данных бронирования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Завершение бронирования
// @Tags Бронирование
// @Description Отметка о завершении бронирования
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/complete_booking [put]
func (c *tripApiController) completeBooking(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.CompleteBooking, "Ошибка завершения бронирования")
}

// @Summary Согласование превышения по бронированию
// @Tags Бронирование
// @Description Согласование превышения лимита при бронировании
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/approve_booking_overrun [put]
func (c *tripApiController) approveBookingOverrun(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.ApproveBookingOverrun, "Ошибка согласования превышения по бронированию")
}

// @Summary Данные закупки
// @Tags Закупки
// @Description Изменение потребности в закупке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.ProcurementData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/procurement [put]
func (c *tripApiController) setProcurement(ctx *fiber.Ctx) error {
	return c.lifecycleWithProcurement(ctx, triphandler.Instance.SetProcurement, "Ошибка изменения данных закупки")
}

// @Summary Завершение закупки
// @Tags Закупки
// @Description Отметка о выполнении закупки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.ProcurementData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/procurement_done [put]
func (c *tripApiController) setProcurementDone(ctx *fiber.Ctx) error {
	return c.lifecycleWithProcurement(ctx, triphandler.Instance.SetProcurementDone, "Ошибка завершения закупки")
}

// @Summary Отметка геолокации
// @Tags Отчетность
// @Description Отметка геолокации сотрудником в командировке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.GeoLocationData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/geo_location [put]
func (c *tripApiController) setGeoLocation(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.GeoLocationData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = triphandler.Instance.SetGeoLocation(middleware.GetUserID(ctx), id, payload, ctx.IP(), string(ctx.Request().Header.UserAgent()))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки геолокации")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Подтверждение геолокации
// @Tags Отчетность
// @Description Подтверждение отметки геолокации руководителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.FlagData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/verify_geo_location [put]
func (c *tripApiController) verifyGeoLocation(ctx *fiber.Ctx) error {
	return c.lifecycleWithFlag(ctx, triphandler.Instance.VerifyGeoLocation, "Ошибка подтверждения геолокации")
}

// @Summary Согласование превышения по отчету
// @Tags Отчетность
// @Description Согласование превышения фактических расходов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/approve_report_overrun [put]
func (c *tripApiController) approveReportOverrun(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.ApproveReportOverrun, "Ошибка согласования превышения по отчету")
}

// @Summary Подготовка отчета
// @Tags Отчетность
// @Description Отметка о подготовке авансового отчета
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.FlagData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/report_prepared [put]
func (c *tripApiController) setReportPrepared(ctx *fiber.Ctx) error {
	return c.lifecycleWithFlag(ctx, triphandler.Instance.SetReportPrepared, "Ошибка отметки о подготовке отчета")
}

// @Summary Проверка отчета
// @Tags Отчетность
// @Description Отметка о проверке авансового отчета руководителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.FlagData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/report_reviewed [put]
func (c *tripApiController) setReportReviewed(ctx *fiber.Ctx) error {
	return c.lifecycleWithFlag(ctx, triphandler.Instance.SetReportReviewed, "Ошибка отметки о проверке отчета")
}

// @Summary Закрытие заявки
// @Tags Жизненный цикл заявки
// @Description Перевод заявки в статус Закрыта
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/close [put]
func (c *tripApiController) close(ctx *fiber.Ctx) error {
	return c.lifecycle(ctx, triphandler.Instance.Close, "Ошибка закрытия заявки")
}

// @Summary Список расходов
// @Tags Расходы
// @Description Список фактических расходов по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=tripapimodels.CostListView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/costs [get]
func (c *tripApiController) costList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := tripcosthandler.Instance.List(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения расходов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Добавление расхода
// @Tags Расходы
// @Description Добавление фактического расхода по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.CostData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/costs [post]
func (c *tripApiController) costAdd(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.CostData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	costID, err := tripcosthandler.Instance.Add(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(costID))
}

// @Summary Изменение расхода
// @Tags Расходы
// @Description Изменение фактического расхода по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 tripapimodels.CostData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   cost_id          	path    string  				    	true         "cost ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/costs/{cost_id} [put]
func (c *tripApiController) costUpdate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	costID := ctx.Params("cost_id")
	if costID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор расхода"))
	}
	var payload tripapimodels.CostData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = tripcosthandler.Instance.Update(middleware.GetUserID(ctx), id, costID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление расхода
// @Tags Расходы
// @Description Удаление фактического расхода по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   cost_id          	path    string  				    	true         "cost ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/costs/{cost_id} [delete]
func (c *tripApiController) costDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	costID := ctx.Params("cost_id")
	if costID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор расхода"))
	}
	err = tripcosthandler.Instance.Delete(middleware.GetUserID(ctx), id, costID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список документов
// @Tags Документы
// @Description Список документов по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/documents [get]
func (c *tripApiController) documentList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := documenthandler.Instance.List(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения документов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Загрузка документа
// @Tags Документы
// @Description Загрузка документа по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file				formData	file	true	"файл"
// @Param   type				formData	string	false	"тип документа"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/documents [post]
func (c *tripApiController) documentUpload(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка чтения файла")
	}
	defer file.Close()

	docType := dbmodels.DocumentType(ctx.FormValue("type"))
	docID, err := documenthandler.Instance.Upload(ctx.UserContext(), middleware.GetUserID(ctx), id,
		fileHeader.Filename, docType, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(docID))
}

// @Summary Скачивание документа
// @Tags Документы
// @Description Скачивание документа по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   doc_id          	path    string  				    	true         "doc ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/documents/{doc_id} [get]
func (c *tripApiController) documentDownload(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	docID := ctx.Params("doc_id")
	if docID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор документа"))
	}
	data, rec, err := documenthandler.Instance.GetFile(ctx.UserContext(), middleware.GetUserID(ctx), id, docID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка скачивания документа")
	}
	ctx.Set(fiber.HeaderContentType, rec.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+rec.Name+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Удаление документа
// @Tags Документы
// @Description Удаление документа по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   doc_id          	path    string  				    	true         "doc ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/documents/{doc_id} [delete]
func (c *tripApiController) documentDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	docID := ctx.Params("doc_id")
	if docID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор документа"))
	}
	err = documenthandler.Instance.Delete(ctx.UserContext(), middleware.GetUserID(ctx), id, docID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления документа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Архив документов
// @Tags Документы
// @Description Скачивание всех документов заявки одним архивом
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/trips/{id}/documents/archive [get]
func (c *tripApiController) documentArchive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, name, err := documenthandler.Instance.Archive(ctx.UserContext(), middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования архива документов")
	}
	ctx.Set(fiber.HeaderContentType, "application/zip")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}

func (c *tripApiController) lifecycle(ctx *fiber.Ctx, op func(userID, id string) error, hMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = op(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *tripApiController) lifecycleWithReason(ctx *fiber.Ctx, op func(userID, id string, data tripapimodels.ReasonData) error, hMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.ReasonData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = op(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *tripApiController) lifecycleWithFlag(ctx *fiber.Ctx, op func(userID, id string, value bool) error, hMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.FlagData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = op(middleware.GetUserID(ctx), id, payload.Value)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func (c *tripApiController) lifecycleWithProcurement(ctx *fiber.Ctx, op func(userID, id string, data tripapimodels.ProcurementData) error, hMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload tripapimodels.ProcurementData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = op(middleware.GetUserID(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, hMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
