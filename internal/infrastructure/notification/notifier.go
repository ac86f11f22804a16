package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grant_portal/internal/domain/entities"
	"grant_portal/internal/infrastructure/logger"
	"grant_portal/internal/infrastructure/metrics"
	"grant_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

const (
	ChannelEmail = "email"
	ChannelTopic = "topic"
	ChannelLog   = "log"
)

var ErrNoRecipient = errors.New("application has no contact email")

// EmailSender is the part of *ses.Client the notifier uses.
type EmailSender interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// TopicPublisher is the part of *sns.Client the notifier uses.
type TopicPublisher interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Message is the rendered "missing elements" notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// BuildMissingElementsMessage renders the email sent when a reviewer returns
// the application for corrections.
func BuildMissingElementsMessage(app entities.Application, reason string) Message {
	name := strings.TrimSpace(app.Form.Nom)
	if name == "" {
		name = "Madame, Monsieur"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Bonjour %s,\n\n", name)
	b.WriteString("Votre dossier de demande d'aide a été examiné. Des éléments sont manquants ou doivent être corrigés :\n\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(reason))
	b.WriteString("Connectez-vous à votre espace pour mettre à jour le dossier puis le soumettre à nouveau.\n\n")
	fmt.Fprintf(&b, "Référence du dossier : %s\n", app.ID)

	return Message{
		To:      strings.TrimSpace(app.Form.Email),
		Subject: "Votre dossier : éléments manquants",
		Body:    b.String(),
	}
}

// Notifier sends the applicant an SES email and publishes the event on an SNS
// topic. When disabled it only logs the rendered message.
type Notifier struct {
	email    EmailSender
	topic    TopicPublisher
	sender   string
	topicARN string
	enabled  bool
	log      *zap.Logger
}

var _ interfaces.INotifier = (*Notifier)(nil)

type Options struct {
	Enabled  bool
	Sender   string
	TopicARN string
}

func NewNotifier(email EmailSender, topic TopicPublisher, opts Options, log *zap.Logger) *Notifier {
	log = logger.OrNop(log).Named("notification")
	if !opts.Enabled {
		log.Info("notifications disabled, messages are only logged")
	}
	return &Notifier{
		email:    email,
		topic:    topic,
		sender:   opts.Sender,
		topicARN: opts.TopicARN,
		enabled:  opts.Enabled,
		log:      log,
	}
}

func (n *Notifier) NotifyMissingElements(ctx context.Context, app entities.Application, reason string) error {
	msg := BuildMissingElementsMessage(app, reason)

	if !n.enabled {
		n.log.Info("missing elements notification",
			zap.String("application_id", app.ID),
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
		metrics.Notifications.WithLabelValues(ChannelLog, metrics.OutcomeSuccess).Inc()
		return nil
	}

	var errs []error
	if err := n.sendEmail(ctx, msg); err != nil {
		errs = append(errs, err)
	}
	if err := n.publish(ctx, app, reason); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (n *Notifier) sendEmail(ctx context.Context, msg Message) error {
	if n.email == nil || n.sender == "" {
		return nil
	}
	if msg.To == "" {
		metrics.Notifications.WithLabelValues(ChannelEmail, metrics.OutcomeRejected).Inc()
		return ErrNoRecipient
	}
	_, err := n.email.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(n.sender),
		Destination: &sestypes.Destination{ToAddresses: []string{msg.To}},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(msg.Body), Charset: aws.String("UTF-8")},
			},
		},
	})
	if err != nil {
		metrics.Notifications.WithLabelValues(ChannelEmail, metrics.OutcomeError).Inc()
		return fmt.Errorf("send email: %w", err)
	}
	metrics.Notifications.WithLabelValues(ChannelEmail, metrics.OutcomeSuccess).Inc()
	return nil
}

func (n *Notifier) publish(ctx context.Context, app entities.Application, reason string) error {
	if n.topic == nil || n.topicARN == "" {
		return nil
	}
	_, err := n.topic.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Subject:  aws.String("missing_elements"),
		Message:  aws.String(fmt.Sprintf("application %s returned to applicant %s: %s", app.ID, app.UserID, reason)),
	})
	if err != nil {
		metrics.Notifications.WithLabelValues(ChannelTopic, metrics.OutcomeError).Inc()
		return fmt.Errorf("publish topic: %w", err)
	}
	metrics.Notifications.WithLabelValues(ChannelTopic, metrics.OutcomeSuccess).Inc()
	return nil
}
