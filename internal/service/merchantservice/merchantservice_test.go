package merchantservice

import (
	"context"
	"errors"
	"testing"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/settlement"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	defer ctrl.Finish()
	return service, repo
}

func TestGetSettings(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().FindByUserID(gomock.Any(), 100).
		Return(&domain.Merchant{ID: 10, UserID: 100, StoreName: "Store", BonusRate: 0.05}, nil)
	merchant, err := service.GetSettings(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, 0.05, merchant.BonusRate)

	repo.EXPECT().FindByUserID(gomock.Any(), 100).Return(nil, nil)
	_, err = service.GetSettings(context.Background(), 100)
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestUpdateSettings(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name          string
		storeName     string
		bonusRate     float64
		prepareMock   func()
		expectedError error
	}{
		{
			name:          "Negative bonus rate is rejected",
			storeName:     "Store",
			bonusRate:     -0.01,
			prepareMock:   func() {},
			expectedError: settlement.ErrInvalidBonusRate,
		},
		{
			name:          "Bonus rate above the cap is rejected, not clamped",
			storeName:     "Store",
			bonusRate:     0.11,
			prepareMock:   func() {},
			expectedError: settlement.ErrInvalidBonusRate,
		},
		{
			name:      "Bonus rate at the cap is accepted",
			storeName: "Store",
			bonusRate: 0.10,
			prepareMock: func() {
				repo.EXPECT().FindByUserID(gomock.Any(), 100).
					Return(&domain.Merchant{ID: 10, UserID: 100, StoreName: "Old", BonusRate: 0.01}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "Merchant not found",
			storeName: "Store",
			bonusRate: 0.05,
			prepareMock: func() {
				repo.EXPECT().FindByUserID(gomock.Any(), 100).Return(nil, nil)
			},
			expectedError: ErrMerchantNotFound,
		},
		{
			name:      "Update failure",
			storeName: "Store",
			bonusRate: 0.05,
			prepareMock: func() {
				repo.EXPECT().FindByUserID(gomock.Any(), 100).
					Return(&domain.Merchant{ID: 10, UserID: 100}, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			merchant, err := service.UpdateSettings(context.Background(), 100, tt.storeName, tt.bonusRate)
			if tt.expectedError != nil {
				assert.Error(t, err)
				if errors.Is(tt.expectedError, settlement.ErrInvalidBonusRate) || errors.Is(tt.expectedError, ErrMerchantNotFound) {
					assert.ErrorIs(t, err, tt.expectedError)
				} else {
					assert.Equal(t, tt.expectedError.Error(), err.Error())
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.storeName, merchant.StoreName)
				assert.Equal(t, tt.bonusRate, merchant.BonusRate)
			}
		})
	}
}

func TestSetActive(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().FindByID(gomock.Any(), 10).
		Return(&domain.Merchant{ID: 10, Active: true}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, merchant *domain.Merchant) error {
			assert.False(t, merchant.Active)
			return nil
		},
	)
	merchant, err := service.SetActive(context.Background(), 10, false)
	assert.NoError(t, err)
	assert.False(t, merchant.Active)

	repo.EXPECT().FindByID(gomock.Any(), 10).Return(nil, nil)
	_, err = service.SetActive(context.Background(), 10, true)
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}
