package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== NewCronScheduler Tests =====================

func TestNewCronScheduler(t *testing.T) {
	// Arrange
	mockSvc := new(MockReconcileService)

	// Act
	scheduler := NewCronScheduler(mockSvc)

	// Assert
	assert.NotNil(t, scheduler)
	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, mockSvc, scheduler.reconcileSvc)
}

// ===================== Start Tests =====================

func TestCronScheduler_Start_RunsInitialReconcile(t *testing.T) {
	// Arrange
	mockSvc := new(MockReconcileService)
	scheduler := NewCronScheduler(mockSvc)

	ctx := context.Background()

	// Первая сверка выполняется сразу при старте
	mockSvc.On("ReconcileAll", mock.Anything).Return(nil)

	// Act
	err := scheduler.Start(ctx, "0 3 * * *")

	// Assert
	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
	mockSvc.AssertCalled(t, "ReconcileAll", mock.Anything)

	// Cleanup
	scheduler.Stop()
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	// Arrange
	mockSvc := new(MockReconcileService)
	scheduler := NewCronScheduler(mockSvc)

	// Act
	err := scheduler.Start(context.Background(), "not a schedule")

	// Assert
	assert.Error(t, err)
	mockSvc.AssertNotCalled(t, "ReconcileAll", mock.Anything)
}

func TestCronScheduler_Start_InitialReconcileFailureIsNotFatal(t *testing.T) {
	// Arrange
	mockSvc := new(MockReconcileService)
	scheduler := NewCronScheduler(mockSvc)

	mockSvc.On("ReconcileAll", mock.Anything).Return(errors.New("db down"))

	// Act
	err := scheduler.Start(context.Background(), "0 3 * * *")

	// Assert
	assert.NoError(t, err)

	// Cleanup
	scheduler.Stop()
}
