package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"truongphat/internal/models"
)

// EmailService handles sending emails via Amazon SES.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	adminEmail string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates a new email service. An empty fromEmail produces a
// disabled service that logs instead of sending, which keeps local
// development working without AWS credentials.
func NewEmailService(awsRegion, fromEmail, fromName, adminEmail, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES from address not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// IsEnabled returns whether the email service is enabled.
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail sends a staff password reset link.
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): password reset to %s", toEmail)
		return nil
	}

	resetLink := fmt.Sprintf("%s/admin/reset-password?token=%s", s.appBaseURL, resetToken)
	subject := "Đặt lại mật khẩu / Reset your password"

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Đặt lại mật khẩu</h2>
		<p>Xin chào %s,</p>
		<p>Chúng tôi nhận được yêu cầu đặt lại mật khẩu cho tài khoản quản trị của bạn.
		Nhấn vào liên kết dưới đây để đặt lại mật khẩu:</p>
		<p><a href="%s">%s</a></p>
		<p><strong>Liên kết này sẽ hết hạn sau 1 giờ.</strong></p>
		<p>Nếu bạn không yêu cầu đặt lại mật khẩu, vui lòng bỏ qua email này.</p>
		<hr>
		<p style="font-size: 12px; color: #666;">We received a request to reset the password
		for your admin account. The link above expires in 1 hour. If you did not request
		this, you can safely ignore this email.</p>
	</div>
</body>
</html>
`, html.EscapeString(toName), resetLink, resetLink)

	textBody := fmt.Sprintf(`Xin chào %s,

Chúng tôi nhận được yêu cầu đặt lại mật khẩu cho tài khoản quản trị của bạn.
Nhấn vào liên kết dưới đây để đặt lại mật khẩu:

%s

Liên kết này sẽ hết hạn sau 1 giờ.
Nếu bạn không yêu cầu đặt lại mật khẩu, vui lòng bỏ qua email này.
`, toName, resetLink)

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// SendContactNotification notifies the site administrator about a new
// contact-form submission.
func (s *EmailService) SendContactNotification(ctx context.Context, contact *models.Contact) error {
	if !s.enabled || s.adminEmail == "" {
		log.Printf("Skipping email send (service disabled): contact notification for %s", contact.Email)
		return nil
	}

	subject := fmt.Sprintf("Liên hệ mới từ %s", contact.FullName)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2>Liên hệ mới từ website</h2>
		<table cellpadding="4">
			<tr><td><strong>Họ tên:</strong></td><td>%s</td></tr>
			<tr><td><strong>Email:</strong></td><td>%s</td></tr>
			<tr><td><strong>Điện thoại:</strong></td><td>%s</td></tr>
			<tr><td><strong>Chủ đề:</strong></td><td>%s</td></tr>
		</table>
		<p><strong>Nội dung:</strong></p>
		<p>%s</p>
	</div>
</body>
</html>
`, html.EscapeString(contact.FullName), html.EscapeString(contact.Email),
		html.EscapeString(contact.Phone), html.EscapeString(contact.Subject),
		html.EscapeString(contact.Message))

	textBody := fmt.Sprintf(`Liên hệ mới từ website

Họ tên: %s
Email: %s
Điện thoại: %s
Chủ đề: %s

Nội dung:
%s
`, contact.FullName, contact.Email, contact.Phone, contact.Subject, contact.Message)

	return s.sendEmail(ctx, s.adminEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES.
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
