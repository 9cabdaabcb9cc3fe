package notifications

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
	"github.com/you/laborhub/domain"
)

const approvedStatus = "approved"

// verifyAPI is the slice of the Twilio Verify v2 client this package uses
type verifyAPI interface {
	CreateVerification(serviceSid string, params *verify.CreateVerificationParams) (*verify.VerifyV2Verification, error)
	CreateVerificationCheck(serviceSid string, params *verify.CreateVerificationCheckParams) (*verify.VerifyV2VerificationCheck, error)
}

// TwilioVerifyImpl implements domain.VerificationProvider with Twilio Verify
type TwilioVerifyImpl struct {
	api        verifyAPI
	serviceSID string
	channel    string
}

// NewTwilioVerifyService creates a Twilio Verify provider. Without a Verify
// service SID the logging stub is returned instead.
func NewTwilioVerifyService(accountSID, authToken, serviceSID string, logger *slog.Logger) domain.VerificationProvider {
	if serviceSID == "" || accountSID == "" {
		logger.Warn("twilio verify not configured, using log-only verification provider")
		return NewLogVerificationProvider(logger)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioVerifyImpl{
		api:        client.VerifyV2,
		serviceSID: serviceSID,
		channel:    "sms",
	}
}

// SendVerificationCode implements domain.VerificationProvider
func (t *TwilioVerifyImpl) SendVerificationCode(_ context.Context, phone string) error {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel(t.channel)

	if _, err := t.api.CreateVerification(t.serviceSID, params); err != nil {
		return fmt.Errorf("%w: send verification: %v", domain.ErrServiceUnavailable, err)
	}
	return nil
}

// CheckVerificationCode implements domain.VerificationProvider
func (t *TwilioVerifyImpl) CheckVerificationCode(_ context.Context, phone, code string) (bool, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	check, err := t.api.CreateVerificationCheck(t.serviceSID, params)
	if err != nil {
		return false, fmt.Errorf("%w: check verification: %v", domain.ErrServiceUnavailable, err)
	}
	return check.Status != nil && *check.Status == approvedStatus, nil
}

// LogVerificationProvider implements domain.VerificationProvider for local
// development: codes are logged instead of sent and StubCode is accepted.
type LogVerificationProvider struct {
	logger *slog.Logger
}

// StubCode is the code accepted by LogVerificationProvider
const StubCode = "123456"

// NewLogVerificationProvider creates the log-only provider
func NewLogVerificationProvider(logger *slog.Logger) *LogVerificationProvider {
	return &LogVerificationProvider{logger: logger}
}

// SendVerificationCode implements domain.VerificationProvider
func (p *LogVerificationProvider) SendVerificationCode(ctx context.Context, phone string) error {
	p.logger.InfoContext(ctx, "mock verification code sent", "phone", phone, "code", StubCode)
	return nil
}

// CheckVerificationCode implements domain.VerificationProvider
func (p *LogVerificationProvider) CheckVerificationCode(ctx context.Context, phone, code string) (bool, error) {
	approved := code == StubCode
	p.logger.InfoContext(ctx, "mock verification code checked", "phone", phone, "approved", approved)
	return approved, nil
}

var (
	_ domain.VerificationProvider = (*TwilioVerifyImpl)(nil)
	_ domain.VerificationProvider = (*LogVerificationProvider)(nil)
)
