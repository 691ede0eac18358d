package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/domain"
	"github.com/LeonardoRFragoso/AndaimesPini-Project/internal/logger"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendOverdueReminder(ctx context.Context, to string, overdue []domain.ContractDetails) error {
	if len(overdue) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Devoluções atrasadas: %d contratos", len(overdue))
	plain, html := overdueDigest(overdue)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	logger.ExternalServiceCall("sendgrid", "send", "to", to, "contracts", len(overdue))
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err)
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}
	if response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "status", response.StatusCode)
	return nil
}

func overdueDigest(overdue []domain.ContractDetails) (plain, html string) {
	var pb, hb strings.Builder
	pb.WriteString("Contratos com devolução em atraso:\n\n")
	hb.WriteString("<html><body><h2>Contratos com devolução em atraso</h2><ul>")
	for _, d := range overdue {
		line := fmt.Sprintf("Contrato #%d — %s, venceu em %s, %d dia(s) de atraso",
			d.Contract.ID, d.ClientName, d.Contract.EndDate.Format("02/01/2006"), d.DaysLate)
		pb.WriteString(line)
		pb.WriteString("\n")
		hb.WriteString("<li>" + line + "</li>")
	}
	hb.WriteString("</ul></body></html>")
	return pb.String(), hb.String()
}
