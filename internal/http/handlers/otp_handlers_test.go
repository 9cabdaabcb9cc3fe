package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/laborhub/domain"
	"github.com/you/laborhub/internal/mocks"
)

func TestOTPHandlers_Send(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    interface{}
		sendErr        error
		expectedStatus int
		expectedCode   string
	}{
		{name: "sent", requestBody: SendOTPRequest{Phone: "+911234567890"}, expectedStatus: http.StatusOK},
		{name: "missing phone", requestBody: map[string]string{}, expectedStatus: http.StatusBadRequest, expectedCode: "validation_error"},
		{name: "throttled", requestBody: SendOTPRequest{Phone: "+911234567890"}, sendErr: domain.ErrOTPResendLimit, expectedStatus: http.StatusTooManyRequests, expectedCode: "otp_resend_limit"},
		{name: "provider down", requestBody: SendOTPRequest{Phone: "+911234567890"}, sendErr: fmt.Errorf("%w: send verification: 503", domain.ErrServiceUnavailable), expectedStatus: http.StatusServiceUnavailable, expectedCode: "service_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otpSvc := mocks.NewMockOTPService()
			otpSvc.SendFunc = func(ctx context.Context, phone string) error {
				return tt.sendErr
			}
			h := NewOTPHandlers(otpSvc)

			router := gin.New()
			router.POST("/api/otp/send", h.Send)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/otp/send", tt.requestBody))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decodeBody(t, w)["code"])
			}
		})
	}
}

func TestOTPHandlers_Verify(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*mocks.MockOTPService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "approved code activates user",
			requestBody:    VerifyOTPRequest{Phone: "+911234567890", OTP: "123456"},
			setupMocks:     func(otpSvc *mocks.MockOTPService) {},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong code",
			requestBody:    VerifyOTPRequest{Phone: "+911234567890", OTP: "000000"},
			setupMocks:     func(otpSvc *mocks.MockOTPService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "otp_invalid",
		},
		{
			name:        "too many attempts",
			requestBody: VerifyOTPRequest{Phone: "+911234567890", OTP: "123456"},
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.VerifyFunc = func(ctx context.Context, phone, code string) (*domain.User, error) {
					return nil, domain.ErrOTPMaxAttempts
				}
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   "otp_max_attempts",
		},
		{
			name:        "no account for phone",
			requestBody: VerifyOTPRequest{Phone: "+919999999999", OTP: "123456"},
			setupMocks: func(otpSvc *mocks.MockOTPService) {
				otpSvc.VerifyFunc = func(ctx context.Context, phone, code string) (*domain.User, error) {
					return nil, domain.ErrUserNotFound
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "user_not_found",
		},
		{
			name:           "missing otp",
			requestBody:    map[string]string{"phone": "+911234567890"},
			setupMocks:     func(otpSvc *mocks.MockOTPService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "validation_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			otpSvc := mocks.NewMockOTPService()
			tt.setupMocks(otpSvc)
			h := NewOTPHandlers(otpSvc)

			router := gin.New()
			router.POST("/api/otp/verify", h.Verify)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/otp/verify", tt.requestBody))

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
				return
			}
			data := body["data"].(map[string]interface{})
			assert.Equal(t, "OTP verified successfully", data["message"])
			assert.NotContains(t, data, "tokens")
		})
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
		keepsCause     bool
	}{
		{name: "validation keeps detail", err: fmt.Errorf("%w: PIN must be exactly 6 digits", domain.ErrValidation), expectedStatus: http.StatusBadRequest, expectedCode: "validation_error", expectedMsg: "validation failed: PIN must be exactly 6 digits"},
		{name: "wrapped store failure", err: fmt.Errorf("%w: create user: pq: connection reset", domain.ErrServiceUnavailable), expectedStatus: http.StatusServiceUnavailable, expectedCode: "service_unavailable", expectedMsg: "Service temporarily unavailable", keepsCause: true},
		{name: "disabled", err: domain.ErrAccountDisabled, expectedStatus: http.StatusForbidden, expectedCode: "account_disabled", expectedMsg: "Account is disabled"},
		{name: "unknown error hides detail", err: errors.New("pq: relation users does not exist"), expectedStatus: http.StatusInternalServerError, expectedCode: "internal_error", expectedMsg: "Internal server error", keepsCause: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			writeError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tt.expectedCode, body["code"])
			assert.Equal(t, tt.expectedMsg, body["error"])
			assert.NotContains(t, w.Body.String(), "pq:")

			if tt.keepsCause {
				require.Len(t, c.Errors, 1)
				assert.ErrorIs(t, c.Errors.Last().Err, tt.err)
			} else {
				assert.Empty(t, c.Errors)
			}
		})
	}
}
