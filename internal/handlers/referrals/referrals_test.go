package referrals

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/developeragencia/valecash/internal/dto"
	referralservice "github.com/developeragencia/valecash/internal/service/referralservice"
	"github.com/developeragencia/valecash/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*ReferralHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetStatsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody dto.ReferralStatsDTO
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().
					GetStats(gomock.Any(), 1).
					Return(&referralservice.Stats{
						ReferralCode:  "ABCD1234",
						ReferralLink:  "https://valecash.example.com/signup?ref=ABCD1234",
						ReferredCount: 2,
						TotalEarned:   1.60,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.ReferralStatsDTO{
				ReferralCode:  "ABCD1234",
				ReferralLink:  "https://valecash.example.com/signup?ref=ABCD1234",
				ReferredCount: 2,
				TotalEarned:   1.60,
			},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetStats(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/referrals", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.GetStats(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body dto.ReferralStatsDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestGetQRCodeHandler(t *testing.T) {
	handler, service := NewMock(t)

	pngBytes := []byte("\x89PNG\r\n\x1a\nfake")

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		expectedBody []byte
	}{
		{
			name: "Successful retrieval",
			prepareMock: func() {
				service.EXPECT().QRCode(gomock.Any(), 1).Return(pngBytes, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: pngBytes,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().QRCode(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/user/referrals/qr", nil)
			r = r.WithContext(context.WithValue(context.Background(), auth.UserIDKey, 1))
			w := httptest.NewRecorder()
			handler.GetQRCode(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
			}
		})
	}
}
