package notifyhandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"business-trips-backend/config"
	"business-trips-backend/lib/smtp"
	dbmodels "business-trips-backend/models/db"
)

type Provider interface {
	TripSentForApproval(trip dbmodels.BusinessTrip, manager *dbmodels.User)
	TripApproved(trip dbmodels.BusinessTrip, employee *dbmodels.User)
	TripRejected(trip dbmodels.BusinessTrip, employee *dbmodels.User, reason string)
	TripEscalated(trip dbmodels.BusinessTrip, topManager *dbmodels.User)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) TripSentForApproval(trip dbmodels.BusinessTrip, manager *dbmodels.User) {
	subject := fmt.Sprintf("Заявка %s ожидает согласования", trip.TripNumber)
	message := fmt.Sprintf("Заявка на командировку %s (%s, %s) отправлена на согласование.",
		trip.TripNumber, trip.Destination, trip.Purpose)
	i.send(manager, subject, message)
}

func (i impl) TripApproved(trip dbmodels.BusinessTrip, employee *dbmodels.User) {
	subject := fmt.Sprintf("Заявка %s согласована", trip.TripNumber)
	message := fmt.Sprintf("Заявка на командировку %s (%s) согласована.", trip.TripNumber, trip.Destination)
	i.send(employee, subject, message)
}

func (i impl) TripRejected(trip dbmodels.BusinessTrip, employee *dbmodels.User, reason string) {
	subject := fmt.Sprintf("Заявка %s не согласована", trip.TripNumber)
	message := fmt.Sprintf("Заявка на командировку %s (%s) не согласована. Причина: %s",
		trip.TripNumber, trip.Destination, reason)
	i.send(employee, subject, message)
}

func (i impl) TripEscalated(trip dbmodels.BusinessTrip, topManager *dbmodels.User) {
	subject := fmt.Sprintf("Заявка %s переадресована вам", trip.TripNumber)
	message := fmt.Sprintf("Заявка на командировку %s (%s) ожидала согласования дольше допустимого срока и переадресована вам.",
		trip.TripNumber, trip.Destination)
	i.send(topManager, subject, message)
}

// уведомления не критичны: ошибки логируются и не прерывают операцию
func (i impl) send(to *dbmodels.User, subject, message string) {
	if to == nil || to.Email == "" {
		return
	}
	err := smtp.Instance.SendEMail(config.Conf.Smtp.From, to.Email, message, subject)
	if err != nil {
		log.WithError(err).
			WithField("email", to.Email).
			Error("ошибка отправки уведомления")
	}
}
