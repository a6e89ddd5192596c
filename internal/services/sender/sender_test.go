package services

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-ledger/internal/lib/smtp"
)

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(smtp.Client), args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

type MockSMTPClient struct {
	mock.Mock
}

func (m *MockSMTPClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockSMTPClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockSMTPClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.WriteCloser), args.Error(1)
}

func (m *MockSMTPClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSMTPClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

type MockSMTPWriter struct {
	mock.Mock
}

func (m *MockSMTPWriter) Write(p []byte) (n int, err error) {
	args := m.Called(p)
	return args.Int(0), args.Error(1)
}

func (m *MockSMTPWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSenderService_SendDueReminder(t *testing.T) {
	transport := new(MockTransport)
	client := new(MockSMTPClient)
	writer := new(MockSMTPWriter)
	svc := NewSenderService(discardLogger(), transport)

	var sent []byte
	transport.On("GetSMTPUser").Return("gym@example.com")
	transport.On("Connect").Return(client, nil)
	client.On("Mail", "gym@example.com").Return(nil)
	client.On("Rcpt", "ravi@example.com").Return(nil)
	client.On("Data").Return(writer, nil)
	writer.On("Write", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).([]byte)
	}).Return(10, nil)
	writer.On("Close").Return(nil)
	client.On("Quit").Return(nil)
	client.On("Close").Return(nil)

	body := []byte(`{"email":"ravi@example.com","name":"Ravi","unpaid_count":3,"total_due":3000,"first_unpaid_month":"2024-02"}`)
	err := svc.SendDueReminder(body)
	require.NoError(t, err)

	text := string(sent)
	assert.Contains(t, text, "To: ravi@example.com")
	assert.Contains(t, text, "Membership payment overdue")
	assert.Contains(t, text, "3 unpaid months")
	assert.Contains(t, text, "2024-02")

	transport.AssertExpectations(t)
	client.AssertExpectations(t)
}

func TestSenderService_SendDueReminder_BadJSON(t *testing.T) {
	transport := new(MockTransport)
	svc := NewSenderService(discardLogger(), transport)

	err := svc.SendDueReminder([]byte("not-json"))
	require.Error(t, err)
	transport.AssertNotCalled(t, "Connect")
}

func TestSenderService_SendDueReminder_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	svc := NewSenderService(discardLogger(), transport)

	transport.On("GetSMTPUser").Return("gym@example.com")
	transport.On("Connect").Return(nil, errors.New("dial failed"))

	body := []byte(`{"email":"ravi@example.com","name":"Ravi"}`)
	err := svc.SendDueReminder(body)
	require.Error(t, err)
}
