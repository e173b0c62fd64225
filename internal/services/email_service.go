// file: internal/services/email_service.go
package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/ktie09rich-crypto/greenloop/internal/config"
	"github.com/ktie09rich-crypto/greenloop/internal/events"
	"github.com/ktie09rich-crypto/greenloop/internal/models"
	"github.com/ktie09rich-crypto/greenloop/internal/repositories"
)

// emailService implements the EmailService interface over plain SMTP.
// When email is disabled the service logs instead of sending, which
// keeps development environments quiet.
type emailService struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// NewEmailService creates a new instance of EmailService
func NewEmailService(cfg config.EmailConfig, logger *zap.Logger) EmailService {
	return &emailService{
		cfg:    cfg,
		logger: logger,
	}
}

// SendBadgeEarned congratulates a user on a new badge
func (s *emailService) SendBadgeEarned(ctx context.Context, user *models.User, badge *models.Badge) error {
	subject := "You earned the " + badge.Name + " badge!"
	body := fmt.Sprintf(
		"Hi %s,\n\nYou just earned the %s badge (%s): %s\n\nKeep it up!",
		user.FirstName, badge.Name, badge.Rarity, badge.Description,
	)
	return s.send(ctx, user.Email, subject, body)
}

// SendChallengeCreated announces a newly opened challenge to a user
func (s *emailService) SendChallengeCreated(ctx context.Context, user *models.User, challenge *models.Challenge) error {
	subject := "New challenge: " + challenge.Title
	body := fmt.Sprintf(
		"Hi %s,\n\nA new challenge is open: %q.\n%s\n\nIt runs until %s and completing it earns %d bonus points. Join in the app to take part!",
		user.FirstName, challenge.Title, challenge.Description,
		challenge.EndDate.Format("January 2, 2006"), challenge.RewardPoints,
	)
	return s.send(ctx, user.Email, subject, body)
}

// SendChallengeCompleted congratulates a user on finishing a challenge
func (s *emailService) SendChallengeCompleted(ctx context.Context, user *models.User, challenge *models.Challenge) error {
	subject := "Challenge completed: " + challenge.Title
	body := fmt.Sprintf(
		"Hi %s,\n\nYou completed the challenge %q and earned %d bonus points.\n\nWell done!",
		user.FirstName, challenge.Title, challenge.RewardPoints,
	)
	return s.send(ctx, user.Email, subject, body)
}

// SendActionVerified tells a user their action was reviewed
func (s *emailService) SendActionVerified(ctx context.Context, user *models.User, action *models.Action) error {
	subject := "Your action was reviewed"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour action %q is now %s.",
		user.FirstName, action.Title, action.VerificationStatus,
	)
	if action.VerificationNotes != nil {
		body += "\n\nReviewer notes: " + *action.VerificationNotes
	}
	return s.send(ctx, user.Email, subject, body)
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	if !s.cfg.Enabled {
		s.logger.Info("Email sending disabled, skipping",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromAddress)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n\r\n", subject)
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, s.cfg.FromAddress, []string{to}, []byte(msg.String())); err != nil {
		s.logger.Error("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}

// ===============================
// EVENT SUBSCRIPTIONS
// ===============================

// RegisterEmailNotifications wires the notification emails to the event
// bus. Handler errors are logged by the bus and never reach the
// publishing request.
func RegisterEmailNotifications(
	bus events.EventBus,
	emailService EmailService,
	userRepo repositories.UserRepository,
	badgeRepo repositories.BadgeRepository,
	challengeRepo repositories.ChallengeRepository,
	logger *zap.Logger,
) {
	bus.Subscribe(events.EventBadgeAwarded, func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.BadgeAwardedEvent)
		if !ok || evt.GetUserID() == nil {
			return nil
		}
		user, err := userRepo.GetByID(ctx, *evt.GetUserID())
		if err != nil || user == nil {
			return err
		}
		badge, err := badgeRepo.GetByID(ctx, evt.BadgeID)
		if err != nil || badge == nil {
			return err
		}
		return emailService.SendBadgeEarned(ctx, user, badge)
	})

	bus.Subscribe(events.EventChallengeCreated, func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.ChallengeCreatedEvent)
		if !ok {
			return nil
		}
		// Individual and team challenges are opt-in; only the broad
		// scopes are announced to everyone.
		challengeType := models.ChallengeType(evt.ChallengeType)
		if challengeType != models.ChallengeCompanyWide && challengeType != models.ChallengeDepartment {
			return nil
		}
		challenge, err := challengeRepo.GetByID(ctx, evt.ChallengeID)
		if err != nil || challenge == nil {
			return err
		}
		users, err := userRepo.ListActive(ctx)
		if err != nil {
			return err
		}
		for _, user := range users {
			if err := emailService.SendChallengeCreated(ctx, user, challenge); err != nil {
				logger.Warn("Failed to send challenge announcement",
					zap.String("user_id", user.ID.String()),
					zap.String("challenge_id", challenge.ID.String()),
					zap.Error(err),
				)
			}
		}
		return nil
	})

	bus.Subscribe(events.EventChallengeCompleted, func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.ChallengeCompletedEvent)
		if !ok || evt.GetUserID() == nil {
			return nil
		}
		user, err := userRepo.GetByID(ctx, *evt.GetUserID())
		if err != nil || user == nil {
			return err
		}
		challenge, err := challengeRepo.GetByID(ctx, evt.ChallengeID)
		if err != nil || challenge == nil {
			return err
		}
		return emailService.SendChallengeCompleted(ctx, user, challenge)
	})

	bus.Subscribe(events.EventActionVerified, func(ctx context.Context, e events.Event) error {
		evt, ok := e.(*events.ActionVerifiedEvent)
		if !ok || evt.GetUserID() == nil {
			return nil
		}
		user, err := userRepo.GetByID(ctx, *evt.GetUserID())
		if err != nil || user == nil {
			return err
		}
		action := &models.Action{
			Title:              evt.Title,
			VerificationStatus: models.VerificationStatus(evt.Status),
		}
		return emailService.SendActionVerified(ctx, user, action)
	})

	logger.Info("Email notification handlers registered")
}
