package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

type recordingNotifier struct {
	enrollments []EnrollmentNotice
	contacts    []ContactNotice
	err         error
}

func (n *recordingNotifier) EnrollmentReceived(notice EnrollmentNotice) error {
	n.enrollments = append(n.enrollments, notice)
	return n.err
}

func (n *recordingNotifier) ContactReceived(notice ContactNotice) error {
	n.contacts = append(n.contacts, notice)
	return n.err
}

func validEnrollment() dto.EnrollmentRequest {
	return dto.EnrollmentRequest{
		ChildName:   "Aarav Sharma",
		DateOfBirth: "2021-04-12",
		ClassType:   "nursery",
		ParentName:  "Priya Sharma",
		Email:       "priya@example.com",
		Phone:       "+1 555 0100",
	}
}

func TestSubmitEnrollmentSuccess(t *testing.T) {
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	svc := NewIntakeService(gw, notifier, NewMetricsService(), 1500*time.Millisecond, nil, nil)

	result, err := svc.SubmitEnrollment(context.Background(), validEnrollment())
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.Equal(t, EnrollmentSubmittedMessage, result.Message)
	assert.Equal(t, dto.EnrollmentRequest{}, result.Form)
	assert.Equal(t, int64(1500), result.CloseAfterMS)

	inserts := gw.callsFor("insert")
	require.Len(t, inserts, 1)
	assert.Equal(t, models.TableEnrollments, inserts[0].Table)
	assert.Equal(t, "pending", inserts[0].Row["status"])
	require.Len(t, notifier.enrollments, 1)
	assert.Equal(t, "Aarav Sharma", notifier.enrollments[0].ChildName)
}

func TestSubmitEnrollmentFailurePreservesForm(t *testing.T) {
	gw := newFakeGateway()
	gw.insertErr[models.TableEnrollments] = errGatewayDown
	notifier := &recordingNotifier{}
	svc := NewIntakeService(gw, notifier, nil, 0, nil, nil)

	before := validEnrollment()
	before.ChildName = "  Aarav Sharma  "
	result, err := svc.SubmitEnrollment(context.Background(), before)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrGateway))
	assert.False(t, result.Submitted)
	assert.Equal(t, IntakeRetryMessage, result.Message)
	assert.Equal(t, before, result.Form)
	assert.Zero(t, result.CloseAfterMS)
	assert.Empty(t, notifier.enrollments)
}

func TestSubmitEnrollmentValidation(t *testing.T) {
	gw := newFakeGateway()
	svc := NewIntakeService(gw, nil, nil, 0, nil, nil)

	req := validEnrollment()
	req.ClassType = "college"
	req.DateOfBirth = "12/04/2021"
	result, err := svc.SubmitEnrollment(context.Background(), req)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "class_type")
	assert.Contains(t, appErr.Fields, "date_of_birth")
	assert.Equal(t, req, result.Form)
	assert.Empty(t, gw.callsFor("insert"))
}

func TestSubmitEnrollmentNotifierFailureStillSucceeds(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("queue full")}
	svc := NewIntakeService(newFakeGateway(), notifier, nil, 0, nil, nil)

	result, err := svc.SubmitEnrollment(context.Background(), validEnrollment())
	require.NoError(t, err)
	assert.True(t, result.Submitted)
}

func TestSubmitContact(t *testing.T) {
	gw := newFakeGateway()
	notifier := &recordingNotifier{}
	svc := NewIntakeService(gw, notifier, nil, 0, nil, nil)

	result, err := svc.SubmitContact(context.Background(), dto.ContactRequest{Name: "Ravi", Email: "ravi@example.com", Message: "Do you have a summer camp?"})
	require.NoError(t, err)
	assert.True(t, result.Submitted)
	assert.Equal(t, ContactSubmittedMessage, result.Message)

	inserts := gw.callsFor("insert")
	require.Len(t, inserts, 1)
	assert.Nil(t, inserts[0].Row["phone"])
	assert.Equal(t, false, inserts[0].Row["is_read"])
	assert.Len(t, notifier.contacts, 1)
}

func TestSubmitContactFailurePreservesForm(t *testing.T) {
	gw := newFakeGateway()
	gw.insertErr[models.TableContactMessages] = errGatewayDown
	svc := NewIntakeService(gw, nil, nil, 0, nil, nil)

	req := dto.ContactRequest{Name: "Ravi", Email: "ravi@example.com", Phone: "555", Message: "Hello"}
	result, err := svc.SubmitContact(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, req, result.Form)
	assert.Equal(t, IntakeRetryMessage, result.Message)
}
