package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/Jonp4208/cfa-eval-sub012/internal/config"
	"github.com/Jonp4208/cfa-eval-sub012/internal/domain"
	"github.com/Jonp4208/cfa-eval-sub012/internal/handler"
)

// notify consumes setup-sheet events and emails the configured managers when
// a weekly setup is created or replaced.
func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("could not load configuration", slog.String("error", err.Error()))
		return
	}

	if len(cfg.Email.ManagerRecipients) == 0 {
		logger.Error("no manager recipients configured, nothing to notify")
		return
	}

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("could not create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("could not connect to the mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("could not connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("could not open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		handler.EventQueue,
		true,  // durable
		false, // do not auto-delete while consumers are away
		false, // not exclusive
		false, // wait for the broker's confirmation
		nil,
	)
	if err != nil {
		logger.Error("could not declare the event queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("could not start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	bodyTemplate := template.Must(template.New("setup_published").Parse(setupPublishedBody))

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("received event", slog.String("message", string(msg.Body)))

				event := domain.SetupEvent{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("could not decode event", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				// deletions are not worth an email
				if event.Action == "deleted" {
					_ = msg.Ack(false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("could not set sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(cfg.Email.ManagerRecipients...); err != nil {
					logger.Error("could not set recipients", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				data := struct {
					Name      string
					Action    string
					WeekStart string
				}{
					Name:      event.Name,
					Action:    event.Action,
					WeekStart: event.WeekStart.Format("Monday, January 2"),
				}
				if err := m.SetBodyHTMLTemplate(bodyTemplate, data); err != nil {
					logger.Error("could not render email body", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject("Setup sheet " + event.Action + ": " + event.Name)

				if err := client.DialAndSend(m); err != nil {
					logger.Error("could not send email", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue for the next attempt
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for events... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notify worker...")
	cancel()
	wg.Wait()
	slog.Info("notify worker stopped")
}

const setupPublishedBody = `
<p>Hi team,</p>
<p>The setup sheet <strong>{{.Name}}</strong> for the week of {{.WeekStart}} was {{.Action}}.</p>
<p>Open the scheduler to review position assignments before the shift starts.</p>
`
